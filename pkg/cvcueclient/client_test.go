package cvcueclient_test

import (
	"path/filepath"
	"testing"

	"github.com/netkit-io/cvcue/pkg/cvcue"
	"github.com/netkit-io/cvcue/pkg/cvcueclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearCredentialEnv blanks the process credential variables so tests see
// only the explicit config.
func clearCredentialEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"CV_CUE_KEY_ID", "CV_CUE_KEY_VALUE", "CV_CUE_CLIENT_ID", "CV_CUE_BASE_URL"} {
		t.Setenv(key, "")
	}
}

func testConfig(t *testing.T) *cvcue.Config {
	t.Helper()

	return &cvcue.Config{
		KeyID:       "key-1",
		KeyValue:    "secret",
		ClientID:    "client-1",
		BaseURL:     "https://awm.example.test/wifi/api",
		SessionFile: filepath.Join(t.TempDir(), ".session"),
	}
}

func TestNew(t *testing.T) {
	clearCredentialEnv(t)

	client, err := cvcueclient.New(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, client)

	// Resource clients are wired at construction
	assert.NotNil(t, client.ManagedDevices())
	assert.NotNil(t, client.ClientDevices())
	assert.NotNil(t, client.Locations())
	assert.NotNil(t, client.Session())
}

func TestNewNilConfig(t *testing.T) {
	_, err := cvcueclient.New(nil)
	require.ErrorIs(t, err, cvcue.ErrConfigRequired)
}

func TestNewMissingCredentials(t *testing.T) {
	clearCredentialEnv(t)

	_, err := cvcueclient.New(&cvcue.Config{KeyID: "key-1"})
	require.Error(t, err)

	configErr := &cvcue.ConfigurationError{}
	require.ErrorAs(t, err, &configErr)
	assert.ElementsMatch(t, []string{"key_value", "client_id"}, configErr.Missing)
}

func TestNewCredentialsFromEnvironment(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("CV_CUE_KEY_ID", "env-key")
	t.Setenv("CV_CUE_KEY_VALUE", "env-secret")
	t.Setenv("CV_CUE_CLIENT_ID", "env-client")

	client, err := cvcueclient.New(&cvcue.Config{
		SessionFile: filepath.Join(t.TempDir(), ".session"),
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewInvalidCacheConfig(t *testing.T) {
	clearCredentialEnv(t)

	config := testConfig(t)
	config.Cache = &cvcue.CacheConfig{Type: "redis"}

	_, err := cvcueclient.New(config)
	require.ErrorIs(t, err, cvcue.ErrUnsupportedCacheType)
}
