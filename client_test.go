package wandbox

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Parallel()

	client := New(WithBaseURL("http://example.com"), WithRetryCount(5))

	if client == nil {
		t.Fatal("expected client to be created")
	}

	if client.options.baseURL != "http://example.com" {
		t.Errorf("expected baseURL=http://example.com, got %s", client.options.baseURL)
	}

	if client.options.retryCount != 5 {
		t.Errorf("expected retryCount=5, got %d", client.options.retryCount)
	}

	if client.rest != nil {
		t.Error("expected no transport before Connect")
	}
}

func TestConnect_InvalidOptions(t *testing.T) {
	t.Parallel()

	client := New()
	// Force invalid options by setting nil logger
	client.options.requestLogger = nil

	err := client.Connect()

	if err == nil {
		t.Fatal("expected error for invalid options")
	}

	if !strings.Contains(err.Error(), "invalid options") {
		t.Errorf("expected error to contain 'invalid options', got: %v", err)
	}
}

func TestConnect_OnlyOneTransport(t *testing.T) {
	t.Parallel()

	client := New(WithBaseURL("http://example.com"))
	defer func() { _ = client.Close() }()

	if err := client.Connect(); err != nil {
		t.Fatalf("first connect failed: %v", err)
	}
	first := client.rest

	if err := client.Connect(); err != nil {
		t.Fatalf("second connect failed: %v", err)
	}

	if client.rest != first {
		t.Error("expected second Connect to reuse the transport")
	}

	active.Lock()
	_, registered := active.clients[client]
	active.Unlock()
	if !registered {
		t.Error("expected connected client to be registered")
	}
}

func TestClose_NeverOpened(t *testing.T) {
	t.Parallel()

	client := New(WithBaseURL("http://example.com"))

	if err := client.Close(); err != nil {
		t.Errorf("unexpected error closing a never-opened client: %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	t.Parallel()

	client := New(WithBaseURL("http://example.com"))

	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Fatalf("first close failed: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}

	if client.rest != nil {
		t.Error("expected transport to be released after Close")
	}

	active.Lock()
	_, registered := active.clients[client]
	active.Unlock()
	if registered {
		t.Error("expected closed client to be deregistered")
	}
}

func TestConnect_ReopensAfterClose(t *testing.T) {
	t.Parallel()

	client := New(WithBaseURL("http://example.com"))
	defer func() { _ = client.Close() }()

	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := client.Connect(); err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}

	if client.rest == nil {
		t.Fatal("expected a fresh transport after reconnect")
	}
}

func TestLazyConnect(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	// No explicit Connect; the first call creates the transport.
	if _, err := client.Compilers(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.rest == nil {
		t.Error("expected transport to be created lazily")
	}
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	var contentType, accept, custom, userAgentSeen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		accept = r.Header.Get("Accept")
		custom = r.Header.Get("X-Custom")
		userAgentSeen = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL), WithRequestHeader("X-Custom", "custom-value"))
	defer func() { _ = client.Close() }()

	if _, err := client.Compilers(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if contentType != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", contentType)
	}

	if accept != "text/plain" {
		t.Errorf("expected Accept=text/plain, got %s", accept)
	}

	if custom != "custom-value" {
		t.Errorf("expected X-Custom=custom-value, got %s", custom)
	}

	if userAgentSeen != userAgent {
		t.Errorf("expected User-Agent=%s, got %s", userAgent, userAgentSeen)
	}
}

func TestStatusError_JSONErrorResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "compiler is required"}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	_, err := client.Compilers(context.Background())

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}

	if statusErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", statusErr.StatusCode)
	}

	if !strings.Contains(statusErr.URL, "/list.json") {
		t.Errorf("expected URL to contain /list.json, got %s", statusErr.URL)
	}

	// Should extract the error message from JSON
	if !strings.Contains(err.Error(), "compiler is required") {
		t.Errorf("expected error to contain extracted message, got: %v", err)
	}
}

func TestStatusError_PlainTextResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not Found"))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	_, err := client.GetTemplate(context.Background(), "no-such-template")

	if err == nil {
		t.Fatal("expected error for HTTP error")
	}

	// Should fall back to raw body for non-JSON response
	if !strings.Contains(err.Error(), "Not Found") {
		t.Errorf("expected error to contain 'Not Found', got: %v", err)
	}
}

func TestStatusError_EmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	_, err := client.Compilers(context.Background())

	if err == nil {
		t.Fatal("expected error for HTTP error")
	}

	if !strings.Contains(err.Error(), "(empty error body)") {
		t.Errorf("expected error to contain '(empty error body)', got: %v", err)
	}
}

func TestConnectionError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	// Close server to cause a connection error
	server.Close()

	_, err := client.Compilers(context.Background())

	if err == nil {
		t.Fatal("expected error for connection failure")
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("connection failure must not be a StatusError, got: %v", err)
	}

	if !strings.Contains(err.Error(), "list.json") {
		t.Errorf("expected error to mention the endpoint, got: %v", err)
	}
}

func TestCancellation_LeavesTransportReusable(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// First call never responds; the client's deadline aborts it.
			<-r.Context().Done()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Compilers(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got: %v", err)
	}

	// The same transport must keep working for subsequent calls.
	if _, err := client.Compilers(context.Background()); err != nil {
		t.Fatalf("expected transport to be reusable after cancellation, got: %v", err)
	}
}
