package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/netkit-io/cvcue/pkg/cvcue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDevicesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clientdevices", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": 7, "name": "laptop-7", "username": "jsmith", "ssid": "corp", "rssi": -61, "active": true}
			],
			"pagination": {"page": 1, "pageSize": 50, "totalCount": 1, "totalPages": 1}
		}`))
	}))
	t.Cleanup(server.Close)

	client := NewTestClient(server.URL)

	list, err := client.ClientDevices().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	assert.Equal(t, "jsmith", list.Data[0].Username)
	assert.Equal(t, "corp", list.Data[0].SSID)
	assert.Equal(t, -61, list.Data[0].RSSI)
}

func TestClientDevicesClient_ListWithQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ssid", r.URL.Query().Get("sortBy"))
		assert.NotEmpty(t, r.URL.Query().Get("filter"))
		assert.Equal(t, "OR", r.URL.Query().Get("combineOperation"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data": [], "pagination": {}}`))
	}))
	t.Cleanup(server.Close)

	client := NewTestClient(server.URL)

	params := cvcue.NewQueryParams().
		WithSortBy("ssid").
		WithFilter(cvcue.NewFilterBuilder(cvcue.CombineOr).
			Equals("ssid", "corp").
			Equals("ssid", "guest"))

	_, err := client.ClientDevices().List(context.Background(), params)
	require.NoError(t, err)
}

func TestClientDevicesClient_ListMalformedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`not json`))
	}))
	t.Cleanup(server.Close)

	client := NewTestClient(server.URL)

	_, err := client.ClientDevices().List(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing client devices list")
}
