// Package githubapi provides a small GitHub REST client used by the github
// tool module. Each call is one HTTP round trip; failures are reported as
// *APIError.
package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the public GitHub API. GitHub Enterprise Server
	// installations use https://<host>/api/v3.
	DefaultBaseURL = "https://api.github.com"
	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 30 * time.Second
	// APIVersion is sent as X-GitHub-Api-Version.
	APIVersion = "2022-11-28"

	defaultUserAgent = "gitmcp-server"
	maxResponseBytes = 10 << 20
)

// ResponseType selects how the response body is handled.
type ResponseType int

const (
	// ResponseJSON expects a JSON body (the default).
	ResponseJSON ResponseType = iota
	// ResponseText returns the body verbatim.
	ResponseText
	// ResponseNone discards the body; used for 204 endpoints.
	ResponseNone
)

// RequestOptions describes one outbound request. The zero value is a GET
// expecting JSON with the client's default timeout.
type RequestOptions struct {
	Method       string
	Query        url.Values
	Headers      map[string]string
	Body         any
	Timeout      time.Duration
	ResponseType ResponseType
}

// Response is a completed upstream response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client issues requests against a GitHub-compatible REST API.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string

	tracer   trace.Tracer
	duration metric.Float64Histogram
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client for baseURL authenticating with token. An
// empty token sends unauthenticated requests.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		token:      token,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		userAgent:  defaultUserAgent,
		tracer:     otel.Tracer("gitmcp/githubapi"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.duration, err = otel.Meter("gitmcp/githubapi").Float64Histogram(
		"githubapi.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of upstream GitHub API requests."),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create duration histogram")
	}
	return c, nil
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do performs a single request against path (relative to the base URL).
func (c *Client) Do(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	ctx, span := c.tracer.Start(ctx, "githubapi "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := c.do(ctx, method, path, opts, timeout)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	} else {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
	}
	c.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.Int("http.response.status_code", status),
	))
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, opts *RequestOptions, timeout time.Duration) (*Response, error) {
	if hasDotSegment(path) {
		return nil, &APIError{Kind: KindPath, Method: method, Path: path, Message: "refusing request", Err: ErrDotSegment}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := c.resolve(path, opts.Query)

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &APIError{Kind: KindEncode, Method: method, Path: path, Message: "failed to encode request body", Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Method: method, Path: path, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", APIVersion)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &APIError{
				Kind:    KindTimeout,
				Method:  method,
				Path:    path,
				Message: "request timed out after " + timeout.String(),
				Err:     err,
			}
		}
		return nil, &APIError{Kind: KindTransport, Method: method, Path: path, Message: "request failed", Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		kind := KindTransport
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return nil, &APIError{Kind: kind, Method: method, Path: path, StatusCode: res.StatusCode, Message: "failed to read response", Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &APIError{
			Kind:       KindStatus,
			Method:     method,
			Path:       path,
			StatusCode: res.StatusCode,
			Message:    errorMessage(res.StatusCode, data),
		}
	}

	out := &Response{StatusCode: res.StatusCode, Header: res.Header}
	switch opts.ResponseType {
	case ResponseNone:
	case ResponseText:
		out.Body = data
	default:
		if len(bytes.TrimSpace(data)) > 0 && !json.Valid(data) {
			return nil, &APIError{Kind: KindDecode, Method: method, Path: path, StatusCode: res.StatusCode, Message: "response is not valid JSON"}
		}
		out.Body = data
	}
	return out, nil
}

// resolve joins an already-escaped path onto the base URL.
func (c *Client) resolve(path string, query url.Values) string {
	target := strings.TrimRight(c.baseURL.String(), "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// errorMessage pulls "message" out of a GitHub error body.
func errorMessage(status int, data []byte) string {
	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Message string `json:"message"`
			Field   string `json:"field"`
			Code    string `json:"code"`
		} `json:"errors"`
	}
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		msg := body.Message
		for _, e := range body.Errors {
			switch {
			case e.Message != "":
				msg += "; " + e.Message
			case e.Field != "":
				msg += "; " + e.Field + " " + e.Code
			}
		}
		return msg
	}
	if text := strings.TrimSpace(string(data)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(status)
}

// Get issues a GET and returns the JSON body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	res, err := c.Do(ctx, path, &RequestOptions{Query: query})
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	res, err := c.Do(ctx, path, &RequestOptions{Method: http.MethodPost, Body: body})
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	res, err := c.Do(ctx, path, &RequestOptions{Method: http.MethodPatch, Body: body})
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// Put issues a PUT with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	res, err := c.Do(ctx, path, &RequestOptions{Method: http.MethodPut, Body: body})
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// Delete issues a DELETE and ignores the body.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, path, &RequestOptions{Method: http.MethodDelete, ResponseType: ResponseNone})
	return err
}

// hasDotSegment reports whether path has a "." or ".." element, raw or
// percent-encoded. Such paths would be resolved against a different
// endpoint by the upstream or a proxy in front of it.
func hasDotSegment(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if decoded, err := url.PathUnescape(part); err == nil {
			part = decoded
		}
		if part == "." || part == ".." {
			return true
		}
	}
	return false
}

// Path joins segments into an escaped API path. Segments containing "/"
// (file paths, workflow file names) are escaped per element. Dot elements
// are kept as is and rejected by Do.
func Path(segments ...string) string {
	var sb strings.Builder
	for _, seg := range segments {
		for _, part := range strings.Split(seg, "/") {
			if part == "" {
				continue
			}
			sb.WriteByte('/')
			sb.WriteString(url.PathEscape(part))
		}
	}
	return sb.String()
}
