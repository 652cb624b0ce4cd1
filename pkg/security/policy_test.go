package security

import "testing"

func TestValidatePasswordPolicy(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Sturdy#Pass1", false},
		{"valid minimal", "Abcdef!g", false},
		{"too short", "Ab#1", true},
		{"no uppercase", "alllower#1", true},
		{"no special", "NoSpecial11", true},
		{"digits count as neither", "12345678", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordPolicy(tc.password)
			if tc.wantErr && err == nil {
				t.Fatalf("expected policy rejection for %q", tc.password)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected %q to pass, got %v", tc.password, err)
			}
		})
	}
}
