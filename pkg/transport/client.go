package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
)

// Response is a settled request: the decoded-but-raw body plus enough status
// to decide what to do with it. Non-2xx responses are still responses, not
// errors; only failures to obtain any response at all surface as errors.
type Response struct {
	Status     int
	StatusText string
	Body       json.RawMessage
}

func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status <= 299
}

type Doer interface {
	Do(ctx context.Context, method, url string, body any) (*Response, error)
}

// Client is the HTTP transport collaborator. Retry with exponential backoff
// on network failures lives here; the layers above never retry.
type Client struct {
	client   *http.Client
	maxRetry uint64
}

var _ Doer = NewClient(0, 0)

func NewClient(timeout time.Duration, maxRetry uint64) *Client {
	return &Client{
		maxRetry: maxRetry,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 5 * time.Second,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) Do(ctx context.Context, method, url string, body any) (*Response, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		payload = encoded
	}

	var resp *Response
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, "build request"))
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		httpResp, err := c.client.Do(req)
		if err != nil {
			return errors.Wrapf(err, "%s %s", method, url)
		}
		defer httpResp.Body.Close()
		raw, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return errors.Wrap(err, "read response body")
		}
		resp = &Response{
			Status:     httpResp.StatusCode,
			StatusText: http.StatusText(httpResp.StatusCode),
			Body:       raw,
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetry), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return resp, nil
}
