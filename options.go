package wandbox

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Option func(*Options)

type Options struct {
	baseURL            string
	timeout            time.Duration
	retryCount         int
	retryWaitTime      time.Duration
	retryMaxWaitTime   time.Duration
	requestLogger      RequestLogger
	retryPolicy        func(*resty.Response, error) bool
	requestHeaders     map[string]string
	insecureSkipVerify bool
}

func newClientOptions() *Options {
	return &Options{
		baseURL:          DefaultBaseURL,
		timeout:          30 * time.Second,
		retryCount:       0,
		retryWaitTime:    500 * time.Millisecond,
		retryMaxWaitTime: 3 * time.Second,
		requestLogger:    &NoopLogger{},
		retryPolicy:      DefaultRetryPolicy,
		requestHeaders:   map[string]string{},
	}
}

func (o *Options) validate() error {
	if o.baseURL == "" {
		return fmt.Errorf("base URL must be set")
	}
	if o.requestLogger == nil {
		return fmt.Errorf("request logger must be set")
	}
	if o.retryPolicy == nil {
		return fmt.Errorf("retry policy must be set")
	}
	return nil
}

// WithBaseURL overrides the default API base URL. Primarily useful for
// pointing the client at a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithTimeout sets the total per-request timeout, covering connection,
// TLS handshake, and reading the response. It does not bound the ND-JSON
// stream; use a context deadline there.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithRetryCount enables retries for failed requests. The default is 0:
// this layer does not retry unless asked to.
func WithRetryCount(count int) Option {
	return func(o *Options) {
		if count >= 0 {
			o.retryCount = count
		}
	}
}

func WithRetryWaitTime(waitTime time.Duration) Option {
	return func(o *Options) {
		if waitTime >= 100*time.Millisecond {
			o.retryWaitTime = waitTime
		}
	}
}

func WithRetryMaxWaitTime(maxWaitTime time.Duration) Option {
	return func(o *Options) {
		if maxWaitTime >= 100*time.Millisecond {
			o.retryMaxWaitTime = maxWaitTime
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

func WithRetryPolicy(policy func(*resty.Response, error) bool) Option {
	return func(o *Options) {
		if policy != nil {
			o.retryPolicy = policy
		}
	}
}

// WithRequestHeader adds an extra header to every request. Content-Type and
// Accept are owned by the endpoint methods and cannot be overridden.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || strings.EqualFold(header, "Content-Type") || strings.EqualFold(header, "Accept") {
			return
		}

		o.requestHeaders[header] = value
	}
}

// WithInsecureSkipVerify disables TLS certificate verification for all
// requests. Verification is on by default; disabling it is an explicit
// opt-in and is logged as a warning when the transport is created.
func WithInsecureSkipVerify() Option {
	return func(o *Options) {
		o.insecureSkipVerify = true
	}
}
