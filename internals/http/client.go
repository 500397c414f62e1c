package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	RequestIDHeader = "X-Request-ID"

	// bodies longer than this are cut in log lines
	maxLoggedBody = 256
)

type Client struct {
	conn       Connection
	httpClient *http.Client
	log        zerolog.Logger
}

type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

// WithTimeout bounds every request. Zero keeps the default of no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func NewClient(url string, verifyCert bool, opts ...Option) *Client {
	conn := NewPlainConnection(url, verifyCert)
	client := &Client{
		conn:       conn,
		httpClient: &http.Client{Transport: newTransport(conn.verifyCertificate())},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// the TLS override stays on this client's transport instead of mutating
// http.DefaultTransport
func newTransport(verifyCert bool) http.RoundTripper {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !verifyCert {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return transport
}

// Ping reports whether anything answers at the base URL.
func (client *Client) Ping(ctx context.Context) error {
	resp, err := client.Get(ctx, "/")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func (client *Client) GetAndParse(ctx context.Context, path string, target interface{}) error {
	resp, err := client.Get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return client.parseResponse(resp, target, path)
}

func (client *Client) PostAndParse(ctx context.Context, path string, payload interface{}, target interface{}) error {
	resp, err := client.Post(ctx, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return client.parseResponse(resp, target, path)
}

func (client *Client) PutAndParse(ctx context.Context, path string, payload interface{}, target interface{}) error {
	resp, err := client.Put(ctx, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return client.parseResponse(resp, target, path)
}

func (client *Client) DeleteAndParse(ctx context.Context, path string, target interface{}) error {
	resp, err := client.Delete(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return client.parseResponse(resp, target, path)
}

// parseResponse checks the content type first: an HTML error page from a
// proxy is reported as ErrNotJSON whatever its status code.
func (client *Client) parseResponse(resp *http.Response, target interface{}, path string) error {
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		method := ""
		if resp.Request != nil {
			method = resp.Request.Method
		}
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		client.log.Warn().
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("content_type", contentType).
			Str("body", truncate(body)).
			Msg("response is not JSON")
		return fmt.Errorf("%w: status %d, content type %q", ErrNotJSON, resp.StatusCode, contentType)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: serverMessage(body)}
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}

func (client Client) GetUrl(path string) string {
	u, err := url.Parse(client.conn.getUrl())
	if err != nil {
		return client.conn.getUrl() + path
	}
	parsedPath, err := url.Parse(path)
	if err != nil {
		return client.conn.getUrl() + path
	}
	return u.ResolveReference(parsedPath).String()
}

func (client *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return client.do(ctx, http.MethodGet, path, nil)
}

func (client *Client) Post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	return client.do(ctx, http.MethodPost, path, payload)
}

func (client *Client) Put(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	return client.do(ctx, http.MethodPut, path, payload)
}

func (client *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return client.do(ctx, http.MethodDelete, path, nil)
}

// do issues exactly one request. There is no retry.
func (client *Client) do(ctx context.Context, method string, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, client.GetUrl(path), body)
	if err != nil {
		return nil, err
	}
	for _, h := range client.conn.headers() {
		req.Header.Set(h.Key, h.Value)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := client.httpClient.Do(req)
	if err != nil {
		client.log.Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Msg("request failed")
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}

	client.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("duration", time.Since(start)).
		Msg("request")
	return resp, nil
}

// IsNetwork reports whether err came from the transport rather than the server.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
