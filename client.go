package wandbox

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the Wandbox API host every client talks to unless
// [WithBaseURL] overrides it.
const DefaultBaseURL = "https://wandbox.org/api"

// maxErrorBodySize caps how much of an error response body is kept for the
// [StatusError] message.
const maxErrorBodySize = 4096

// jsonHeaders are the headers the remote expects on the standard JSON
// endpoints. The streaming endpoint declares its own content type.
var jsonHeaders = map[string]string{
	"Content-Type": "application/json",
	"Accept":       "text/plain",
}

// Client is a Wandbox API client. Each client owns at most one underlying
// HTTP transport, created lazily on first use or explicitly via
// [Client.Connect]. A Client is safe for concurrent use; in-flight calls
// share the transport's connection pool.
type Client struct {
	options *Options

	mu   sync.Mutex
	rest *resty.Client
}

// New creates a Wandbox client. No network activity happens until
// [Client.Connect] or the first endpoint call.
func New(opts ...Option) *Client {
	options := newClientOptions()

	for _, opt := range opts {
		opt(options)
	}

	return &Client{options: options}
}

// Connect creates the client's transport and registers the client as
// active. It is idempotent: calling it on an already-connected client is a
// no-op, and calling it after [Client.Close] opens a fresh transport. A
// client never holds two transports at once.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Client) connectLocked() error {
	if c.rest != nil {
		return nil
	}

	if err := c.options.validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	rest := resty.New().
		SetBaseURL(c.options.baseURL).
		SetRetryCount(c.options.retryCount).
		SetRetryWaitTime(c.options.retryWaitTime).
		SetRetryMaxWaitTime(c.options.retryMaxWaitTime).
		AddRetryCondition(c.options.retryPolicy).
		SetHeader("User-Agent", userAgent).
		SetHeaders(c.options.requestHeaders).
		SetAllowGetMethodPayload(true). // url.json carries the session token in a GET body
		SetLogger(c.options.requestLogger).
		SetDebug(debugLoggingRequested())

	if c.options.insecureSkipVerify {
		rest.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) // #nosec G402 -- explicit opt-in via WithInsecureSkipVerify
		c.options.requestLogger.Warnf("TLS certificate verification disabled for %s", c.options.baseURL)
	}

	rest.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		c.options.requestLogger.Debugf("%s %s -> %d (%s)", r.Request.Method, r.Request.URL, r.StatusCode(), r.Time())
		return nil
	})
	rest.OnError(func(req *resty.Request, err error) {
		c.options.requestLogger.Errorf("%s %s failed: %v", req.Method, req.URL, err)
	})

	c.rest = rest
	register(c)
	return nil
}

// transport returns the live resty client, connecting lazily if needed.
func (c *Client) transport() (*resty.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.connectLocked(); err != nil {
		return nil, err
	}
	return c.rest, nil
}

// Close shuts down the client's transport and removes the client from the
// active registry. Closing a never-opened or already-closed client is a
// no-op. The client can be reconnected afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rest == nil {
		return nil
	}
	c.rest.GetClient().CloseIdleConnections()
	c.rest = nil
	deregister(c)
	return nil
}

// do performs one request against an endpoint path and decodes the response
// body according to its declared content type. A non-2xx status yields a
// *StatusError and no documents.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) ([]json.RawMessage, string, error) {
	rest, err := c.transport()
	if err != nil {
		return nil, "", err
	}

	// The configured timeout bounds one buffered request/response cycle.
	// The ND-JSON stream is exempt; it is bounded by its caller's context.
	if c.options.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.options.timeout)
		defer cancel()
	}

	req := rest.R().SetContext(ctx).SetHeaders(jsonHeaders)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("wandbox: encode %s request: %w", endpoint, err)
		}
		req.SetBody(payload)
	}

	requestsTotal.WithLabelValues(endpoint, method).Inc()
	resp, err := req.Execute(method, "/"+endpoint)
	if err != nil {
		requestFailuresTotal.WithLabelValues(endpoint, method).Inc()
		return nil, "", fmt.Errorf("wandbox: %s %s: %w", method, endpoint, err)
	}
	if resp.IsError() {
		requestFailuresTotal.WithLabelValues(endpoint, method).Inc()
		return nil, "", statusErrorFromResponse(resp)
	}

	contentType := resp.Header().Get("Content-Type")
	docs, err := decodeBody(contentType, resp.Body())
	if err != nil {
		requestFailuresTotal.WithLabelValues(endpoint, method).Inc()
		return nil, "", err
	}
	return docs, contentType, nil
}

// doJSON runs do and decodes the single expected document into out.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	docs, contentType, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	return unmarshalOne(contentType, docs, out)
}

func statusErrorFromResponse(resp *resty.Response) *StatusError {
	body := resp.Body()
	if len(body) > maxErrorBodySize {
		body = body[:maxErrorBodySize]
	}
	return &StatusError{
		StatusCode: resp.StatusCode(),
		URL:        resp.Request.URL,
		Body:       string(body),
	}
}

// debugLoggingRequested reports whether verbose request/response dumps were
// requested via the environment.
//
// WANDBOX_DEBUG=true targets this client alone; DEBUG=true is the broader
// development switch. Dumps include full bodies, so keep both unset in
// production.
func debugLoggingRequested() bool {
	return os.Getenv("WANDBOX_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
