// Package httpclient is the shared HTTP layer for registry and platform
// clients. It retries transient failures with exponential backoff, waiting
// at least as long as a server's Retry-After asks. Decoded responses are
// memoized for the lifetime of the process. GetPage returns the next page
// address from the Link header.
//
// Status handling:
//
//	200          success
//	204, 404     ErrNotFound (callers treat these as "no data")
//	401, 403     ErrUnauthorized
//	429, 5xx     ErrNetwork, retried
//	other        ErrNetwork
package httpclient
