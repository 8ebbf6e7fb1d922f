package wandbox

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetTemplate_Envelope(t *testing.T) {
	t.Parallel()

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "hello"}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	code, err := client.GetTemplate(context.Background(), "gcc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requestedPath != "/template/gcc" {
		t.Errorf("expected path=/template/gcc, got %s", requestedPath)
	}

	if code != "hello" {
		t.Errorf("expected unwrapped code 'hello', got %q", code)
	}
}

func TestGetTemplate_BareString(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`"hello"`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	code, err := client.GetTemplate(context.Background(), "gcc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if code != "hello" {
		t.Errorf("expected 'hello', got %q", code)
	}
}

func TestGetTemplate_UnknownName(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	// An unknown template is signaled by HTTP status, not a distinct error kind.
	_, err := client.GetTemplate(context.Background(), "no-such")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}

	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", statusErr.StatusCode)
	}
}

func TestGetTemplate_UnexpectedShape(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	_, err := client.GetTemplate(context.Background(), "gcc")

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestGetTemplate_EscapesName(t *testing.T) {
	t.Parallel()

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": ""}`))
	}))
	defer server.Close()

	client := New(WithBaseURL(server.URL))
	defer func() { _ = client.Close() }()

	if _, err := client.GetTemplate(context.Background(), "a/b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requestedPath != "/template/a%2Fb" {
		t.Errorf("expected escaped template name in path, got %s", requestedPath)
	}
}
