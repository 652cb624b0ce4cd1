package config

// EnvPrefix scopes every environment variable the platform reads.
const EnvPrefix = "SHOPRATE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "SHOPRATE_APP_ENV"
	EnvPort       = "SHOPRATE_APP_PORT"
	EnvDBDSN      = "SHOPRATE_DB_DSN"
	EnvDBHost     = "SHOPRATE_DB_HOST"
	EnvDBUser     = "SHOPRATE_DB_USER"
	EnvDBName     = "SHOPRATE_DB_NAME"
	EnvJWTSecret  = "SHOPRATE_JWT_SECRET"
	EnvJWTIssuer  = "SHOPRATE_JWT_ISSUER"
	EnvJWTExpMins = "SHOPRATE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
