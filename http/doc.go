// Package http serves linkshelf directory listings.
//
// Every GET below the listing path renders one directory: subdirectories link
// to their own listing and regular files link to a signed download URL that
// the edge proxy validates. File bytes are never served from here.
//
// # Usage
//
//	handlerCfg := http.HandlerConfig{
//	    ListingPath: "/downloads",
//	    Hosts:       http.HostResolver{TrustProxy: true},
//	}
//	handler := http.NewHandler(&handlerCfg, service)
//	http.ListenAndServe(":5708", handler.Router())
//
// The service parameter must implement the Service interface.
//
// # Responses
//
// Listings are HTML fragments unless the client sends Accept: application/json.
// Errors follow the same negotiation:
//
//   - 400 for malformed percent-encoding, query strings or a bad Host
//   - 404 for missing directories, files and paths outside the base directory
//   - 405 for methods other than GET
//   - 500 for filesystem and clock failures
package http
