package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/nao1215/reviewlens/internal/model"
)

// Default client settings.
const (
	// DefaultMaxBodySize limits how much of a response body is read.
	// Summaries are plain text paragraphs, so 5MB leaves a wide margin.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies reviewlens in the endpoint's access logs.
	DefaultUserAgent = "reviewlens/1.0 (+https://github.com/nao1215/reviewlens)"

	// queryParam is the name of the query parameter carrying the product URL.
	queryParam = "url"
)

// Client sends analyze requests to a single endpoint.
// A Client is safe for concurrent use; overlapping Analyze calls share
// the underlying connection pool and are otherwise independent.
type Client struct {
	// endpoint is the parsed analyze route, e.g. http://127.0.0.1:8000/analyze.
	endpoint *url.URL

	// httpClient performs the requests. Its Transport injects the
	// configured headers.
	httpClient *http.Client

	// timeout bounds each call when positive. Zero means the call waits
	// until the transport settles.
	timeout time.Duration

	// userAgent is sent with every request.
	userAgent string

	// headers are extra request headers (e.g. an API key for the endpoint).
	headers map[string]string

	// proxyAddress routes requests through a SOCKS5 proxy when non-empty.
	proxyAddress string

	// maxBodySize is the largest response body accepted.
	maxBodySize int64

	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient makes the Client use hc instead of building its own.
// WithProxy has no effect on a supplied client; its Transport is still
// wrapped to inject headers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each Analyze and Health call. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHeaders adds headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		if len(headers) == 0 {
			return
		}
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithProxy routes requests through the SOCKS5 proxy at address ("host:port").
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithMaxBodySize sets the largest accepted response body in bytes.
// Non-positive values keep the default.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the analyze route at endpoint.
// The endpoint must be an absolute http or https URL. It may carry its own
// query parameters; the url parameter is appended to them.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:    u,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.httpClient == nil {
		transport, err := newTransport(c.proxyAddress)
		if err != nil {
			return nil, err
		}
		c.httpClient = &http.Client{Transport: transport}
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *c.httpClient
	wrapped.Transport = &headerInjectingTransport{
		base:      base,
		userAgent: c.userAgent,
		headers:   c.headers,
	}
	c.httpClient = &wrapped

	return c, nil
}

// parseEndpoint validates and parses the analyze endpoint URL.
func parseEndpoint(endpoint string) (*url.URL, error) {
	if endpoint == "" {
		return nil, ErrInvalidEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidEndpoint
	}
	return u, nil
}

// Endpoint returns the analyze route this client calls.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// RequestURL returns the full request URL for productURL.
// The query string is built by hand so the url parameter carries exactly
// EncodeComponent(productURL).
func (c *Client) RequestURL(productURL string) string {
	u := *c.endpoint
	param := queryParam + "=" + EncodeComponent(productURL)
	if u.RawQuery == "" {
		u.RawQuery = param
	} else {
		u.RawQuery += "&" + param
	}
	return u.String()
}

// responseBody mirrors the two possible endpoint bodies.
type responseBody struct {
	fields map[string]json.RawMessage
}

// stringField returns the named field if it is a JSON string.
func (b responseBody) stringField(name string) (string, bool) {
	raw, ok := b.fields[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Analyze requests an analysis of productURL.
//
// The body is decoded before the status is examined, so a body that is
// not a JSON object is ErrMalformedResponse on every status.
func (c *Client) Analyze(ctx context.Context, productURL string) (*model.Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.RequestURL(productURL)
	c.logger.Debug("sending analyze request", "url", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := c.decodeBody(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("received analyze response",
		"url", target,
		"status", resp.StatusCode,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, ok := body.stringField("error")
		if !ok {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	summary, ok := body.stringField("summary")
	if !ok {
		return nil, fmt.Errorf("%w: success body has no string summary field", ErrMalformedResponse)
	}

	return &model.Result{Summary: summary}, nil
}

// decodeBody reads at most maxBodySize bytes and decodes a JSON object.
func (c *Client) decodeBody(r io.Reader) (responseBody, error) {
	data, err := io.ReadAll(io.LimitReader(r, c.maxBodySize+1))
	if err != nil {
		return responseBody{}, fmt.Errorf("%w: failed to read body: %w", ErrTransport, err)
	}
	if int64(len(data)) > c.maxBodySize {
		return responseBody{}, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedResponse, c.maxBodySize)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &fields); err != nil {
		return responseBody{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if fields == nil {
		return responseBody{}, fmt.Errorf("%w: body is null", ErrMalformedResponse)
	}

	return responseBody{fields: fields}, nil
}

// Health checks the endpoint's sibling /health route, e.g.
// http://127.0.0.1:8000/health for http://127.0.0.1:8000/analyze.
func (c *Client) Health(ctx context.Context) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.HealthURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBodySize)) //nolint:errcheck // drain for connection reuse

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned status %d", ErrUnhealthy, target, resp.StatusCode)
	}
	return nil
}

// HealthURL returns the health route next to the analyze route.
func (c *Client) HealthURL() string {
	ref := &url.URL{Path: "health"}
	u := c.endpoint.ResolveReference(ref)
	u.RawQuery = c.endpoint.RawQuery
	return u.String()
}

// IsTransportError reports whether err is a transport or parse failure.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrMalformedResponse)
}
