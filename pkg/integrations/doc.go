// Package integrations provides the shared HTTP layer for remote APIs.
//
// # Overview
//
// The [Client] type wraps net/http with default headers, status
// classification and observability hooks. API-specific clients embed it;
// currently that is [github], which fetches repository star and fork counts.
//
// # Error Classification
//
// Every response is mapped to one of three outcomes:
//
//   - 200: the body is JSON-decoded into the caller's value
//   - 404: [ErrNotFound], an expected absence (renamed or umbrella repos)
//   - anything else: [ErrNetwork]; 5xx and transport failures are
//     additionally wrapped in [httputil.RetryableError]
//
// Rate-limit responses (403/429 with an exhausted quota) carry an
// [errors.RateLimitedError] so callers can report the reset delay.
//
// [github]: github.com/kitshelf/kitshelf/pkg/integrations/github
// [errors.RateLimitedError]: github.com/kitshelf/kitshelf/pkg/errors.RateLimitedError
package integrations
