package cvcue

import "time"

// ListResponse is the paged envelope returned by CV-CUE list endpoints.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination carries paging metadata for a list response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// AccessPoint represents a managed access point.
type AccessPoint struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	MACAddress   string     `json:"macaddress"`
	IPAddress    string     `json:"ipaddress"`
	Model        string     `json:"model"`
	Firmware     string     `json:"softwareVersion"`
	LocationID   string     `json:"locationId"`
	LocationName string     `json:"locationName"`
	Active       bool       `json:"active"`
	Clients      int        `json:"clientCount"`
	FirstSeen    *time.Time `json:"firstDetectedTime,omitempty"`
	LastSeen     *time.Time `json:"lastDetectedTime,omitempty"`
}

// ClientDevice represents a wireless client associated to a managed AP.
type ClientDevice struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	MACAddress string `json:"macaddress"`
	IPAddress  string `json:"ipaddress"`
	SSID       string `json:"ssid"`
	APName     string `json:"apName"`
	LocationID string `json:"locationId"`
	Protocol   string `json:"protocol"`
	RSSI       int    `json:"rssi"`
	Active     bool   `json:"active"`
}

// Location represents a node in the location tree.
type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId"`
	Type     string `json:"type"`
	APs      int    `json:"apCount"`
}
