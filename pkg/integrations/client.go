package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgutils/pkg/errors"
	"github.com/matzehuels/pkgutils/pkg/observability"
	"github.com/matzehuels/pkgutils/pkg/schema"
)

const (
	// HTTPTimeout bounds every registry request.
	HTTPTimeout = 60 * time.Second

	contentTypeJSON = "application/json"
)

// Client provides the shared GET-and-validate path for all registry API clients.
// It applies default headers, checks the response envelope, and runs the
// body through a JSON schema before handing it back.
//
// A Client holds no mutable state after construction and is safe for
// concurrent use.
type Client struct {
	http    *http.Client
	headers map[string]string
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithHeaders sets headers applied to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) { c.headers = headers }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client with a [HTTPTimeout] bound HTTP client and a
// logger that discards output.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:   NewHTTPClient(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient creates an HTTP client with the standard registry timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: HTTPTimeout}
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger { return c.logger }

// GetJSON performs an HTTP GET and returns the body once the response is
// known to be a 200 with an application/json content type and a
// syntactically valid JSON body.
//
// Every failure is an *errors.Error with one of the codes
// [errors.ErrCodeTransport], [errors.ErrCodeStatus],
// [errors.ErrCodeContentType] or [errors.ErrCodeDecode].
func (c *Client) GetJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "GET request failed")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path

	c.logger.Debug("Performing GET request", "url", url)
	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "GET request failed")
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "failed to read response body")
	}
	if err := checkJSON(body); err != nil {
		return nil, err
	}
	return body, nil
}

// GetValidated is GetJSON followed by validation against v.
// A body that does not match fails with [errors.ErrCodeSchema]; each
// individual violation is logged at debug level.
func (c *Client) GetValidated(ctx context.Context, url string, v *schema.Validator) ([]byte, error) {
	body, err := c.GetJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	res, err := v.ValidateBytes(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "returned JSON does not match minimum schema")
	}
	if !res.Valid {
		if u, perr := neturl.Parse(url); perr == nil {
			observability.Validation().OnRejected(ctx, u.Host, u.Path, len(res.Errors))
		}
		for _, verr := range res.Errors {
			c.logger.Debug("Schema violation", "url", url, "path", verr.Path, "error", verr.Message)
		}
		return nil, errors.Wrap(errors.ErrCodeSchema, &schemaError{res}, "returned JSON does not match minimum schema")
	}
	return body, nil
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.ErrCodeStatus, "API returned a %d HTTP status code", resp.StatusCode)
	}
	values, ok := resp.Header["Content-Type"]
	if !ok || len(values) == 0 {
		return errors.New(errors.ErrCodeContentType, "API returned with no `content-type` header")
	}
	if ct := values[0]; ct != contentTypeJSON {
		return errors.New(errors.ErrCodeContentType, "API returned a non-JSON `content-type`: %s", ct)
	}
	return nil
}

func checkJSON(body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	var v any
	if err := dec.Decode(&v); err != nil {
		return errors.Wrap(errors.ErrCodeDecode, err, "failed to parse JSON response")
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New(errors.ErrCodeDecode, "failed to parse JSON response: trailing data")
	}
	return nil
}

// schemaError carries a failed validation result as an error cause.
type schemaError struct {
	result *schema.Result
}

func (e *schemaError) Error() string {
	return strings.TrimSpace(e.result.Summary())
}

// ValidationErrors returns the individual schema violations behind err,
// or nil when err is not a schema failure.
func ValidationErrors(err error) []schema.ValidationError {
	var se *schemaError
	if stderrors.As(err, &se) {
		return se.result.Errors
	}
	return nil
}
