// Package cvcue provides types, interfaces, and helpers for working with the
// CV-CUE WiFi-management REST API.
//
// # Overview
//
// The cvcue package defines the domain types (AccessPoint, ClientDevice,
// Location), the typed error taxonomy, the filter-expression builder, and the
// interfaces for resource-oriented clients. A concrete implementation is
// provided by the cvcueclient package, which wires credential resolution,
// session persistence, transport, and the optional response cache. Most
// consumers should import cvcueclient to construct a client and then interact
// with the resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/netkit-io/cvcue/pkg/cvcue"
//	  "github.com/netkit-io/cvcue/pkg/cvcueclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := cvcueclient.New(&cvcue.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  aps, err := cli.ManagedDevices().ListAPs(ctx, cvcue.NewQueryParams().WithPageSize(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = aps
//	}
//
// Credentials resolve from the Config first, then from the CV_CUE_KEY_ID,
// CV_CUE_KEY_VALUE, CV_CUE_CLIENT_ID, and CV_CUE_BASE_URL environment
// variables. The client logs in lazily, persists the session cookie to disk,
// and transparently re-authenticates exactly once when the server reports an
// expired session.
//
// # Filters
//
// Use FilterBuilder to constrain list queries:
//
//	fb := cvcue.NewFilterBuilder(cvcue.CombineAnd).
//	  Contains("name", "Arista").
//	  Equals("active", true)
//	aps, err := cli.ManagedDevices().ListAPs(ctx, cvcue.NewQueryParams().WithFilter(fb))
//
// Build serializes the predicates to the URL-encoded JSON array the API
// expects; an unknown operator or an empty expression fails with
// *InvalidFilterError before any request is made.
package cvcue
