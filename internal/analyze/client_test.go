package analyze

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// newTestServer starts an endpoint that replies with status and body and
// records the last raw query it received.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Value) {
	t.Helper()

	var lastQuery atomic.Value
	lastQuery.Store("")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery.Store(r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &lastQuery
}

// TestNewClient tests endpoint validation.
func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("accepts http endpoint", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient("http://127.0.0.1:8000/analyze")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Endpoint() != "http://127.0.0.1:8000/analyze" {
			t.Errorf("unexpected endpoint %q", c.Endpoint())
		}
	})

	invalid := []string{"", "/analyze", "ftp://host/analyze", "http://", "://bad"}
	for _, endpoint := range invalid {
		t.Run("rejects "+endpoint, func(t *testing.T) {
			t.Parallel()
			_, err := NewClient(endpoint)
			if !errors.Is(err, ErrInvalidEndpoint) {
				t.Errorf("expected ErrInvalidEndpoint, got %v", err)
			}
		})
	}

	t.Run("rejects malformed proxy address", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient("http://127.0.0.1:8000/analyze", WithProxy("no-port"))
		if err == nil {
			t.Error("expected error for malformed proxy address")
		}
	})

	t.Run("accepts SOCKS5 proxy address", func(t *testing.T) {
		t.Parallel()
		if _, err := NewClient("http://127.0.0.1:8000/analyze", WithProxy("127.0.0.1:9050")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

// TestRequestURL tests query construction.
func TestRequestURL(t *testing.T) {
	t.Parallel()

	t.Run("plain endpoint", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient("http://localhost:8000/analyze")
		if err != nil {
			t.Fatal(err)
		}
		got := c.RequestURL("https://shop.example/item/123")
		want := "http://localhost:8000/analyze?url=https%3A%2F%2Fshop.example%2Fitem%2F123"
		if got != want {
			t.Errorf("got %q, expected %q", got, want)
		}
	})

	t.Run("endpoint with existing query", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient("http://localhost:8000/analyze?lang=tr")
		if err != nil {
			t.Fatal(err)
		}
		got := c.RequestURL("a b")
		want := "http://localhost:8000/analyze?lang=tr&url=a%20b"
		if got != want {
			t.Errorf("got %q, expected %q", got, want)
		}
	})
}

// TestAnalyzeSuccess tests the success path and the exact query sent.
func TestAnalyzeSuccess(t *testing.T) {
	t.Parallel()

	srv, lastQuery := newTestServer(t, http.StatusOK, `{"summary":"Good value, 4.5 stars"}`)
	c, err := NewClient(srv.URL + "/analyze")
	if err != nil {
		t.Fatal(err)
	}

	result, err := c.Analyze(context.Background(), "https://shop.example/item/123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "Good value, 4.5 stars" {
		t.Errorf("unexpected summary %q", result.Summary)
	}
	if got := lastQuery.Load().(string); got != "url=https%3A%2F%2Fshop.example%2Fitem%2F123" {
		t.Errorf("unexpected query %q", got)
	}
}

// TestAnalyzeClassification tests how response bodies and statuses are classified.
func TestAnalyzeClassification(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		status      int
		body        string
		wantSummary string
		wantAPI     *APIError
		wantErr     error
	}{
		{
			name:        "summary with extra fields",
			status:      http.StatusOK,
			body:        `{"summary":"ok","score":4.5}`,
			wantSummary: "ok",
		},
		{
			name:        "empty summary is valid",
			status:      http.StatusOK,
			body:        `{"summary":""}`,
			wantSummary: "",
		},
		{
			name:    "application error",
			status:  http.StatusInternalServerError,
			body:    `{"error":"scraper failed"}`,
			wantAPI: &APIError{StatusCode: 500, Message: "scraper failed"},
		},
		{
			name:    "missing url error",
			status:  http.StatusBadRequest,
			body:    `{"error":"URL is required"}`,
			wantAPI: &APIError{StatusCode: 400, Message: "URL is required"},
		},
		{
			name:    "error body without error field uses status text",
			status:  http.StatusBadGateway,
			body:    `{}`,
			wantAPI: &APIError{StatusCode: 502, Message: "Bad Gateway"},
		},
		{
			name:    "success without summary",
			status:  http.StatusOK,
			body:    `{"result":"x"}`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "non-string summary",
			status:  http.StatusOK,
			body:    `{"summary":42}`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "html body on success status",
			status:  http.StatusOK,
			body:    `<html>oops</html>`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "html body on error status",
			status:  http.StatusInternalServerError,
			body:    `<html>Internal Server Error</html>`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "null body",
			status:  http.StatusOK,
			body:    `null`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "array body",
			status:  http.StatusOK,
			body:    `["summary"]`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "empty body",
			status:  http.StatusOK,
			body:    ``,
			wantErr: ErrMalformedResponse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := newTestServer(t, tc.status, tc.body)
			c, err := NewClient(srv.URL + "/analyze")
			if err != nil {
				t.Fatal(err)
			}

			result, err := c.Analyze(context.Background(), "https://shop.example/item/1")

			switch {
			case tc.wantAPI != nil:
				apiErr, ok := AsAPIError(err)
				if !ok {
					t.Fatalf("expected *APIError, got %v", err)
				}
				if *apiErr != *tc.wantAPI {
					t.Errorf("got %+v, expected %+v", *apiErr, *tc.wantAPI)
				}
				if IsTransportError(err) {
					t.Error("application error must not be a transport error")
				}
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if !IsTransportError(err) {
					t.Error("expected IsTransportError to be true")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if result.Summary != tc.wantSummary {
					t.Errorf("got summary %q, expected %q", result.Summary, tc.wantSummary)
				}
			}
		})
	}
}

// TestAnalyzeTransportFailure tests a refused connection.
func TestAnalyzeTransportFailure(t *testing.T) {
	t.Parallel()

	// Reserve a port, then close the listener so the connection is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	c, err := NewClient("http://" + addr + "/analyze")
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Analyze(context.Background(), "https://shop.example/item/1")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if _, ok := AsAPIError(err); ok {
		t.Error("transport failure must not be an APIError")
	}
}

// TestAnalyzeBodyLimit tests that oversized bodies are rejected.
func TestAnalyzeBodyLimit(t *testing.T) {
	t.Parallel()

	body := `{"summary":"` + strings.Repeat("x", 100) + `"}`
	srv, _ := newTestServer(t, http.StatusOK, body)
	c, err := NewClient(srv.URL+"/analyze", WithMaxBodySize(32))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Analyze(context.Background(), "u")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

// TestAnalyzeTimeout tests that WithTimeout bounds a slow endpoint.
func TestAnalyzeTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c, err := NewClient(srv.URL+"/analyze", WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Analyze(context.Background(), "u")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded in chain, got %v", err)
	}
}

// TestAnalyzeHeaders tests User-Agent and custom header injection.
func TestAnalyzeHeaders(t *testing.T) {
	t.Parallel()

	var gotUA, gotKey, gotAccept atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		gotKey.Store(r.Header.Get("X-Api-Key"))
		gotAccept.Store(r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"summary":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/analyze",
		WithUserAgent("reviewlens-test/0.1"),
		WithHeaders(map[string]string{"X-Api-Key": "secret"}),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Analyze(context.Background(), "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA.Load() != "reviewlens-test/0.1" {
		t.Errorf("unexpected User-Agent %v", gotUA.Load())
	}
	if gotKey.Load() != "secret" {
		t.Errorf("unexpected X-Api-Key %v", gotKey.Load())
	}
	if gotAccept.Load() != "application/json" {
		t.Errorf("unexpected Accept %v", gotAccept.Load())
	}
}

// TestAnalyzeWithHTTPClient tests a caller-supplied client, here one that
// trusts a test TLS certificate, still gets the injected headers.
func TestAnalyzeWithHTTPClient(t *testing.T) {
	t.Parallel()

	var gotUA, gotKey atomic.Value
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		gotKey.Store(r.Header.Get("X-Api-Key"))
		_, _ = w.Write([]byte(`{"summary":"over tls"}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/analyze",
		WithHTTPClient(srv.Client()),
		WithUserAgent("reviewlens-test/0.1"),
		WithHeaders(map[string]string{"X-Api-Key": "secret"}),
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := c.Analyze(context.Background(), "https://shop.example/item/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "over tls" {
		t.Errorf("unexpected summary %q", result.Summary)
	}
	if gotUA.Load() != "reviewlens-test/0.1" || gotKey.Load() != "secret" {
		t.Errorf("expected injected headers, got User-Agent %v and X-Api-Key %v", gotUA.Load(), gotKey.Load())
	}

	// The default client does not trust the test certificate.
	plain, err := NewClient(srv.URL + "/analyze")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := plain.Analyze(context.Background(), "u"); !errors.Is(err, ErrTransport) {
		t.Errorf("expected ErrTransport without the supplied client, got %v", err)
	}
}

// TestHealth tests the health check against the sibling route.
func TestHealth(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Run("healthy endpoint", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient(srv.URL + "/api/analyze")
		if err != nil {
			t.Fatal(err)
		}
		if c.HealthURL() != srv.URL+"/api/health" {
			t.Errorf("unexpected health URL %q", c.HealthURL())
		}
		if err := c.Health(context.Background()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing health route", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient(srv.URL + "/analyze")
		if err != nil {
			t.Fatal(err)
		}
		if err := c.Health(context.Background()); !errors.Is(err, ErrUnhealthy) {
			t.Errorf("expected ErrUnhealthy, got %v", err)
		}
	})
}

// TestAPIErrorMessage tests the error string of APIError.
func TestAPIErrorMessage(t *testing.T) {
	t.Parallel()

	err := &APIError{StatusCode: 400, Message: "URL is required"}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "URL is required") {
		t.Errorf("unexpected error string %q", err.Error())
	}
}
