// Package auth implements credential resolution, session persistence, and the
// cookie-based session manager for the CV-CUE API.
package auth

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/netkit-io/cvcue/internal/constants"
	"github.com/netkit-io/cvcue/pkg/cvcue"
)

// EnvPrefix is the prefix of the credential environment variables
// (CV_CUE_KEY_ID, CV_CUE_KEY_VALUE, CV_CUE_CLIENT_ID, CV_CUE_BASE_URL).
const EnvPrefix = "cv_cue"

// Credentials holds the four values required before any authenticated call.
type Credentials struct {
	KeyID    string
	KeyValue string
	ClientID string
	BaseURL  string
}

// envCredentials reads the environment-variable layer.
type envCredentials struct {
	KeyID    string `envconfig:"KEY_ID"`
	KeyValue string `envconfig:"KEY_VALUE"`
	ClientID string `envconfig:"CLIENT_ID"`
	BaseURL  string `envconfig:"BASE_URL"`
}

// ResolveCredentials resolves each field from the explicit value when
// non-empty, else from the environment. BaseURL falls back to the production
// default; the other fields have no fallback. The returned error lists every
// missing field, not just the first.
func ResolveCredentials(explicit Credentials) (Credentials, error) {
	var env envCredentials

	err := envconfig.Process(EnvPrefix, &env)
	if err != nil {
		return Credentials{}, fmt.Errorf("reading credential environment: %w", err)
	}

	resolved := Credentials{
		KeyID:    firstNonEmpty(explicit.KeyID, env.KeyID),
		KeyValue: firstNonEmpty(explicit.KeyValue, env.KeyValue),
		ClientID: firstNonEmpty(explicit.ClientID, env.ClientID),
		BaseURL:  firstNonEmpty(explicit.BaseURL, env.BaseURL, constants.DefaultBaseURL),
	}

	resolved.BaseURL = strings.TrimSuffix(resolved.BaseURL, "/")

	var missing []string

	if resolved.KeyID == "" {
		missing = append(missing, "key_id")
	}

	if resolved.KeyValue == "" {
		missing = append(missing, "key_value")
	}

	if resolved.ClientID == "" {
		missing = append(missing, "client_id")
	}

	if resolved.BaseURL == "" {
		missing = append(missing, "base_url")
	}

	if len(missing) > 0 {
		return Credentials{}, &cvcue.ConfigurationError{Missing: missing}
	}

	return resolved, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
