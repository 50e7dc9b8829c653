package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/netkit-io/cvcue/internal/http"
	"github.com/netkit-io/cvcue/pkg/cvcue"
)

// LocationsClient implements cvcue.LocationsClient.
type LocationsClient struct {
	httpClient *http.Client
}

// NewLocationsClient creates a new locations client.
func NewLocationsClient(httpClient *http.Client) *LocationsClient {
	return &LocationsClient{
		httpClient: httpClient,
	}
}

// List implements cvcue.LocationsClient.List.
func (c *LocationsClient) List(ctx context.Context, params *cvcue.QueryParams) (*cvcue.ListResponse[cvcue.Location], error) {
	path := "/locations"

	query, err := toValues(params)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}

	var list cvcue.ListResponse[cvcue.Location]

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing locations list: %w", err)
	}

	return &list, nil
}
