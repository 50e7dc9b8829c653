package cvcue

import (
	"context"
	"time"
)

// ManagedDevicesClient provides access to managed-device endpoints.
type ManagedDevicesClient interface {
	ListAPs(ctx context.Context, params *QueryParams) (*ListResponse[AccessPoint], error)
	GetAllAPs(ctx context.Context, filter *FilterBuilder) ([]AccessPoint, error)
}

// ClientDevicesClient provides access to wireless-client endpoints.
type ClientDevicesClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[ClientDevice], error)
}

// LocationsClient provides access to the location tree.
type LocationsClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[Location], error)
}

// SessionClient exposes session lifecycle operations for callers that manage
// authentication explicitly. Every resource call performs these implicitly.
type SessionClient interface {
	Login(ctx context.Context) error
	IsActive(ctx context.Context) bool
	Logout() error
}

// Client is the CV-CUE API client.
type Client interface {
	ManagedDevices() ManagedDevicesClient
	ClientDevices() ClientDevicesClient
	Locations() LocationsClient
	Session() SessionClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a cvcue.Client.
//
// Credentials resolve field by field: an explicit value here wins, then the
// CV_CUE_KEY_ID / CV_CUE_KEY_VALUE / CV_CUE_CLIENT_ID / CV_CUE_BASE_URL
// environment variables, then failure (BaseURL falls back to the production
// endpoint). cvcueclient.New reports every still-missing field at once.
type Config struct {
	// KeyID is the API key identifier.
	KeyID string
	// KeyValue is the API key secret.
	KeyValue string
	// ClientID identifies the integration to the API.
	ClientID string
	// BaseURL is the API base URL, e.g. "https://mycluster.cloudwifi.example.com/wifi/api".
	BaseURL string

	// SessionFile is the path of the persisted cookie jar. Defaults to
	// ".session" in the working directory.
	SessionFile string

	// HTTPTimeout bounds each HTTP round trip. Zero means the default.
	HTTPTimeout time.Duration
	// RetryMax is the transport-level retry budget for 5xx/429 responses.
	// Zero disables transport retries; the single auto-relogin retry on 401
	// is independent of this setting.
	RetryMax int
	// RetryWaitMin is the minimum backoff between transport retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between transport retries.
	RetryWaitMax time.Duration

	// Cache configures the optional GET response cache. Nil disables caching.
	Cache *CacheConfig

	// Debug enables verbose HTTP request/response logging when a Logger is set.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
