// Package logclient is the stateless HTTP client that ships purchase and
// download events to the analytics backend. Delivery is at-most-once: one
// attempt per event, a generous timeout, no retries anywhere.
package logclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	pathLogPurchase = "/api/v1/log-purchase"
	pathLogDownload = "/api/v1/log-download"

	// One attempt per event, so the timeout is deliberately generous.
	requestTimeout = 2 * time.Minute
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client; tests use it to shorten
// the timeout.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New builds a client for the analytics backend at host:port. The backend
// speaks plain HTTP.
func New(host string, port int, opts ...Option) (*Client, error) {
	host = strings.TrimSpace(host)
	if host == "" || port <= 0 || port > 65535 {
		return nil, &Error{Kind: KindInvalidURL, Err: fmt.Errorf("host %q port %d", host, port)}
	}

	base := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
	}

	c := &Client{
		baseURL: base.String(),
		httpc:   &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// LogPurchase reports a purchase event.
func (c *Client) LogPurchase(ctx context.Context, event PurchaseEvent) (LogResponse, error) {
	return c.post(ctx, pathLogPurchase, event)
}

// LogDownload reports a first-launch download event.
func (c *Client) LogDownload(ctx context.Context, event DownloadEvent) (LogResponse, error) {
	return c.post(ctx, pathLogDownload, event)
}

func (c *Client) post(ctx context.Context, path string, body any) (LogResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return LogResponse{}, &Error{Kind: KindUnknown, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return LogResponse{}, &Error{Kind: KindInvalidURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return LogResponse{}, &Error{Kind: KindNoResponse, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return LogResponse{}, &Error{Kind: KindNoResponse, Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return decode(data)
	// The backend writes structured bodies for 400 and 500; those still count
	// as answers, not as delivery failures.
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusInternalServerError:
		return decode(data)
	case resp.StatusCode == http.StatusUnauthorized:
		return LogResponse{}, &Error{Kind: KindUnauthorized}
	case resp.StatusCode == http.StatusNotFound:
		return LogResponse{}, &Error{Kind: KindNotFound}
	case resp.StatusCode == http.StatusConflict:
		return LogResponse{}, &Error{Kind: KindConflict}
	default:
		return LogResponse{}, &Error{Kind: KindUnexpectedStatus, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
}

func decode(data []byte) (LogResponse, error) {
	var out LogResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return LogResponse{}, &Error{Kind: KindDecodeFailure, Err: err}
	}
	return out, nil
}
