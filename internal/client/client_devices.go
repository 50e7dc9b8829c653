package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/netkit-io/cvcue/internal/http"
	"github.com/netkit-io/cvcue/pkg/cvcue"
)

// ClientDevicesClient implements cvcue.ClientDevicesClient.
type ClientDevicesClient struct {
	httpClient *http.Client
}

// NewClientDevicesClient creates a new client devices client.
func NewClientDevicesClient(httpClient *http.Client) *ClientDevicesClient {
	return &ClientDevicesClient{
		httpClient: httpClient,
	}
}

// List implements cvcue.ClientDevicesClient.List.
func (c *ClientDevicesClient) List(ctx context.Context, params *cvcue.QueryParams) (*cvcue.ListResponse[cvcue.ClientDevice], error) {
	path := "/clientdevices"

	query, err := toValues(params)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing client devices: %w", err)
	}

	var list cvcue.ListResponse[cvcue.ClientDevice]

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing client devices list: %w", err)
	}

	return &list, nil
}
