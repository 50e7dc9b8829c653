// Package cvcueclient provides the main entry point for creating CV-CUE API
// clients.
package cvcueclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/netkit-io/cvcue/internal/auth"
	"github.com/netkit-io/cvcue/internal/client"
	"github.com/netkit-io/cvcue/internal/constants"
	internalhttp "github.com/netkit-io/cvcue/internal/http"
	"github.com/netkit-io/cvcue/pkg/cvcue"
)

// New creates a CV-CUE API client. Credentials missing from the config are
// resolved from the environment; construction fails with a
// *cvcue.ConfigurationError naming every unresolved field before any network
// call is made. No login happens here: the session is established lazily on
// the first request, reusing a persisted session cookie when one is still
// valid.
func New(config *cvcue.Config) (cvcue.Client, error) {
	if config == nil {
		return nil, cvcue.ErrConfigRequired
	}

	credentials, err := auth.ResolveCredentials(auth.Credentials{
		KeyID:    config.KeyID,
		KeyValue: config.KeyValue,
		ClientID: config.ClientID,
		BaseURL:  config.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	sessionFile := config.SessionFile
	if sessionFile == "" {
		sessionFile = constants.DefaultSessionFile
	}

	store, err := auth.NewSessionStore(sessionFile, config.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating session store: %w", err)
	}

	timeout := config.HTTPTimeout
	if timeout == 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	sessions, err := auth.NewCookieSessionManager(credentials, store, &http.Client{Timeout: timeout}, config.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating session manager: %w", err)
	}

	httpOpts, err := buildHTTPOptions(config, timeout)
	if err != nil {
		return nil, err
	}

	httpClient := internalhttp.NewClient(credentials.BaseURL, sessions, httpOpts...)

	return client.New(credentials.BaseURL, sessions, httpClient, config.Logger), nil
}

// buildHTTPOptions maps the public config onto transport options.
func buildHTTPOptions(config *cvcue.Config, timeout time.Duration) ([]internalhttp.Option, error) {
	opts := []internalhttp.Option{internalhttp.WithTimeout(timeout)}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		waitMin := config.RetryWaitMin
		if waitMin == 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax == 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	if config.Cache != nil && config.Cache.Type != cvcue.CacheTypeNone {
		cache, err := cvcue.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating response cache: %w", err)
		}

		opts = append(opts, internalhttp.WithCache(cache, config.Cache.TTL))
	}

	return opts, nil
}
