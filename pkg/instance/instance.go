package instance

import "os"

// GetID returns the identifier this process reports in logs. Deploy
// platforms set SHOPRATE_INSTANCE_ID; otherwise the hostname is used.
func GetID() string {
	if id := os.Getenv("SHOPRATE_INSTANCE_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
