// Package httputil provides the HTTP plumbing behind tile downloads.
//
// [Client] performs GET requests with default headers and classifies the
// response: 404 becomes a NOT_FOUND error, transport failures and 5xx or
// 429 responses become NETWORK_ERROR wrapped in [RetryableError], and any
// other non-200 status is a plain NETWORK_ERROR.
//
// [Retry] re-runs an operation while it keeps failing with a
// [RetryableError], doubling the delay between attempts:
//
//	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
//	    data, err = client.Get(ctx, url)
//	    return err
//	})
//
// Tile servers ask clients to identify themselves, so [NewClient] always
// sets a User-Agent.
package httputil
