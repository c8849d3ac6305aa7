package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/trailblazer/pkg/buildinfo"
	errs "github.com/matzehuels/trailblazer/pkg/errors"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// maxBody caps the size of a downloaded body.
const maxBody = 16 << 20

// Client issues GET requests with a fixed set of headers.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a client with the given default headers. A User-Agent
// naming this program is added unless headers sets one.
func NewClient(headers map[string]string) *Client {
	h := map[string]string{"User-Agent": "trailblazer/" + buildinfo.Version}
	for k, v := range headers {
		h[k] = v
	}
	return &Client{http: &http.Client{Timeout: DefaultTimeout}, headers: h}
}

// WithHTTPClient replaces the underlying client, e.g. with an httptest
// server's client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Get fetches url and returns the body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "request %s", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errs.Wrap(errs.ErrCodeTimeout, ctx.Err(), "get %s", url)
		}
		return nil, &RetryableError{Err: errs.Wrap(errs.ErrCodeNetwork, err, "get %s", url)}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &RetryableError{Err: errs.Wrap(errs.ErrCodeNetwork, err, "read %s", url)}
	}
	return data, nil
}

func checkStatus(url string, resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errs.New(errs.ErrCodeNotFound, "get %s: status %d", url, code)
	case code >= 500 || code == http.StatusTooManyRequests:
		return &RetryableError{
			Err:   errs.New(errs.ErrCodeNetwork, "get %s: status %d", url, code),
			After: retryAfter(resp.Header.Get("Retry-After")),
		}
	default:
		return errs.New(errs.ErrCodeNetwork, "get %s: status %d", url, code)
	}
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
