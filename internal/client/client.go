// Package client provides the concrete cvcue.Client implementation.
package client

import (
	"context"

	"github.com/netkit-io/cvcue/internal/auth"
	"github.com/netkit-io/cvcue/internal/http"
	"github.com/netkit-io/cvcue/pkg/cvcue"
)

// Client implements the cvcue.Client interface.
type Client struct {
	httpClient *http.Client
	sessions   auth.SessionManager
	baseURL    string
	logger     cvcue.Logger

	// Resource clients, wired once at construction. Accessors return the
	// same instance on repeated access.
	managedDevices cvcue.ManagedDevicesClient
	clientDevices  cvcue.ClientDevicesClient
	locations      cvcue.LocationsClient
}

// New creates a client over an already-configured transport and session
// manager.
func New(baseURL string, sessions auth.SessionManager, httpClient *http.Client, logger cvcue.Logger) *Client {
	client := &Client{
		httpClient: httpClient,
		sessions:   sessions,
		baseURL:    baseURL,
		logger:     logger,
	}

	client.initializeResourceClients()

	return client
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.managedDevices = NewManagedDevicesClient(c.httpClient)
	c.clientDevices = NewClientDevicesClient(c.httpClient)
	c.locations = NewLocationsClient(c.httpClient)
}

// ManagedDevices implements cvcue.Client.ManagedDevices.
func (c *Client) ManagedDevices() cvcue.ManagedDevicesClient {
	return c.managedDevices
}

// ClientDevices implements cvcue.Client.ClientDevices.
func (c *Client) ClientDevices() cvcue.ClientDevicesClient {
	return c.clientDevices
}

// Locations implements cvcue.Client.Locations.
func (c *Client) Locations() cvcue.LocationsClient {
	return c.locations
}

// Session implements cvcue.Client.Session.
func (c *Client) Session() cvcue.SessionClient {
	return &sessionClient{sessions: c.sessions}
}

// sessionClient adapts the session manager to the public SessionClient
// interface.
type sessionClient struct {
	sessions auth.SessionManager
}

func (s *sessionClient) Login(ctx context.Context) error {
	return s.sessions.Login(ctx)
}

func (s *sessionClient) IsActive(ctx context.Context) bool {
	return s.sessions.IsActive(ctx)
}

func (s *sessionClient) Logout() error {
	return s.sessions.Logout()
}
