// Package httputil provides HTTP helpers shared by the GitHub client.
//
// # Retry
//
// [Retry] re-runs an operation for transient failures only. Callers mark
// an error as transient by wrapping it in [RetryableError]; anything else
// (404s, decode errors) is returned immediately.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return client.Get(ctx, url, &v)
//	})
//
// The delay doubles after each failed attempt. An attempts value of 1
// disables retrying, which is what the enrichment pipeline uses by default:
// a failed fetch keeps the previous counters and is naturally retried on the
// next scheduled pass.
package httputil
