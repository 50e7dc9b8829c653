package client

import (
	internalhttp "github.com/netkit-io/cvcue/internal/http"
)

// NewTestClient creates a client against the given base URL with no session
// manager, for tests that drive an httptest server directly.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	client.initializeResourceClients()

	return client
}
