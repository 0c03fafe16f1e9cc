package credentials

import (
	"fmt"
	"os"
	"strings"

	"higgsfield-mcp/internal/domain"
)

const (
	EnvAPIKey = "HF_API_KEY"
	EnvSecret = "HF_SECRET"
)

// Credentials is the key pair sent to the provider on every request.
type Credentials struct {
	APIKey string
	Secret string
}

// FromEnv reads the key pair from the process environment.
func FromEnv() Credentials {
	return Credentials{
		APIKey: strings.TrimSpace(os.Getenv(EnvAPIKey)),
		Secret: strings.TrimSpace(os.Getenv(EnvSecret)),
	}
}

// Merge fills blank fields of primary from fallback. Flags are passed as
// primary so they take precedence over the environment.
func Merge(primary, fallback Credentials) Credentials {
	out := Credentials{
		APIKey: strings.TrimSpace(primary.APIKey),
		Secret: strings.TrimSpace(primary.Secret),
	}
	if out.APIKey == "" {
		out.APIKey = strings.TrimSpace(fallback.APIKey)
	}
	if out.Secret == "" {
		out.Secret = strings.TrimSpace(fallback.Secret)
	}
	return out
}

// Validate returns domain.ErrMissingCredentials naming every absent value.
func (c Credentials) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey+" (--api-key)")
	}
	if c.Secret == "" {
		missing = append(missing, EnvSecret+" (--secret)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// Resolve merges flag values over the environment and validates the result.
func Resolve(flags Credentials) (Credentials, error) {
	creds := Merge(flags, FromEnv())
	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}
