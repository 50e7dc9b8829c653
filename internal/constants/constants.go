package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration and session files.
	ConfigFilePerm = 0600
)

// API defaults.
const (
	// DefaultBaseURL is the production CV-CUE API endpoint used when no base
	// URL is configured.
	DefaultBaseURL = "https://awm.cloudwifi.arista.com/wifi/api"

	// SessionCookieName is the name of the server-issued session cookie.
	SessionCookieName = "JSESSIONID"

	// DefaultSessionFile is the default name of the persisted cookie jar.
	DefaultSessionFile = ".session"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as the session
	// liveness check.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. The single auto-relogin retry on 401 is separate and always
// exactly one.
const (
	// DefaultRetryWaitMin is the minimum wait time between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between transport retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination limits.
const (
	// StandardPageSize is the common page size for API responses.
	StandardPageSize = 50

	// MaxPages bounds page walks to prevent infinite loops.
	MaxPages = 200
)

// Cache defaults.
const (
	// DefaultCacheSize is the default cache size limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
