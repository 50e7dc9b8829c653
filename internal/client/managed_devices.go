package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/netkit-io/cvcue/internal/constants"
	"github.com/netkit-io/cvcue/internal/http"
	"github.com/netkit-io/cvcue/pkg/cvcue"
)

// ManagedDevicesClient implements cvcue.ManagedDevicesClient.
type ManagedDevicesClient struct {
	httpClient *http.Client
}

// NewManagedDevicesClient creates a new managed devices client.
func NewManagedDevicesClient(httpClient *http.Client) *ManagedDevicesClient {
	return &ManagedDevicesClient{
		httpClient: httpClient,
	}
}

// ListAPs implements cvcue.ManagedDevicesClient.ListAPs.
func (c *ManagedDevicesClient) ListAPs(ctx context.Context, params *cvcue.QueryParams) (*cvcue.ListResponse[cvcue.AccessPoint], error) {
	path := "/manageddevices/aps"

	query, err := toValues(params)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing access points: %w", err)
	}

	var list cvcue.ListResponse[cvcue.AccessPoint]

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing access points list: %w", err)
	}

	return &list, nil
}

// GetAllAPs implements cvcue.ManagedDevicesClient.GetAllAPs. It walks every
// page of the listing, bounded to keep a bad paging response from looping.
func (c *ManagedDevicesClient) GetAllAPs(ctx context.Context, filter *cvcue.FilterBuilder) ([]cvcue.AccessPoint, error) {
	params := cvcue.NewQueryParams().
		WithPageSize(constants.StandardPageSize).
		WithFilter(filter)

	var all []cvcue.AccessPoint

	for page := 1; page <= constants.MaxPages; page++ {
		list, err := c.ListAPs(ctx, params.WithPage(page))
		if err != nil {
			return nil, err
		}

		all = append(all, list.Data...)

		if list.Pagination.TotalPages == 0 || page >= list.Pagination.TotalPages {
			break
		}
	}

	return all, nil
}

// toValues converts optional query params, failing fast on an invalid filter
// expression.
func toValues(params *cvcue.QueryParams) (url.Values, error) {
	if params == nil {
		return nil, nil
	}

	return params.ToValues()
}
