// Package analyze implements the HTTP client for the external analyze
// endpoint.
//
// The endpoint contract is a single route:
//
//	GET /analyze?url=<percent-encoded product URL>
//
// A 2xx response carries {"summary": "..."}; any other status carries
// {"error": "..."}. The client classifies every call into one of three
// results that the controller maps onto user-facing behavior:
//
//   - *model.Result for a successful analysis
//   - *APIError for an application error reported by the endpoint
//   - an error wrapping ErrTransport or ErrMalformedResponse for network
//     failures and bodies that are not the expected JSON object
//
// The URL parameter is encoded with EncodeComponent, which follows
// JavaScript's encodeURIComponent byte for byte, so the endpoint sees the
// same query string a browser page would have sent.
//
// Requests can be routed through a SOCKS5 proxy (WithProxy) and may carry
// extra headers (WithHeaders). No timeout is applied unless WithTimeout is
// given.
package analyze
