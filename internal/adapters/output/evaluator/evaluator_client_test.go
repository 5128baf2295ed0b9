package evaluator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"line-callback/configs"
	"line-callback/internal/domain"
)

// TestNewEvaluatorClientAdapterWithConfig tests adapter construction with valid config
func TestNewEvaluatorClientAdapterWithConfig(t *testing.T) {
	adapter, err := NewEvaluatorClientAdapter(configs.Evaluator{
		URL:     "http://localhost:5678/evaluate",
		Timeout: 3,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if adapter.url != "http://localhost:5678/evaluate" {
		t.Errorf("expected url to be http://localhost:5678/evaluate, got: %s", adapter.url)
	}

	if adapter.timeout != 3*time.Second {
		t.Errorf("expected timeout to be 3s, got: %v", adapter.timeout)
	}
}

// TestNewEvaluatorClientAdapterWithDefaultTimeout tests that a zero timeout falls back to 5 seconds
func TestNewEvaluatorClientAdapterWithDefaultTimeout(t *testing.T) {
	adapter, err := NewEvaluatorClientAdapter(configs.Evaluator{URL: "http://localhost:5678"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if adapter.timeout != 5*time.Second {
		t.Errorf("expected default timeout to be 5s, got: %v", adapter.timeout)
	}
}

// TestNewEvaluatorClientAdapterWithoutURL tests that a url is required
func TestNewEvaluatorClientAdapterWithoutURL(t *testing.T) {
	if _, err := NewEvaluatorClientAdapter(configs.Evaluator{}); err == nil {
		t.Fatal("expected error for missing url")
	}
}

// TestEvaluateSuccess tests the request shape and message extraction
func TestEvaluateSuccess(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		if r.Method != http.MethodPost {
			t.Errorf("expected POST method, got: %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got: %s", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "{}" {
			t.Errorf("expected empty JSON object body, got: %s", string(body))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"A","score":3}`))
	}))
	defer server.Close()

	adapter, err := NewEvaluatorClientAdapter(configs.Evaluator{URL: server.URL, Timeout: 1})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	result, err := adapter.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Message != "A" {
		t.Errorf("expected message A, got: %s", result.Message)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected exactly 1 call, got: %d", calls)
	}
}

// TestEvaluateFailures tests that every failure mode is reported as ErrEvaluatorUnavailable without retry
func TestEvaluateFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("boom"))
			},
		},
		{
			name: "client error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "missing message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"result":"ok"}`))
			},
		},
		{
			name: "empty message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"message":""}`))
			},
		},
		{
			name: "slower than timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(1500 * time.Millisecond)
				_, _ = w.Write([]byte(`{"message":"late"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				tt.handler(w, r)
			}))
			defer server.Close()

			adapter, err := NewEvaluatorClientAdapter(configs.Evaluator{URL: server.URL, Timeout: 1})
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			_, err = adapter.Evaluate(context.Background())
			if !errors.Is(err, domain.ErrEvaluatorUnavailable) {
				t.Fatalf("expected ErrEvaluatorUnavailable, got: %v", err)
			}
			if got := atomic.LoadInt32(&calls); got != 1 {
				t.Errorf("expected exactly 1 attempt, got: %d", got)
			}
		})
	}
}

// TestEvaluateUnreachable tests a connection failure
func TestEvaluateUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	adapter, err := NewEvaluatorClientAdapter(configs.Evaluator{URL: url, Timeout: 1})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, err := adapter.Evaluate(context.Background()); !errors.Is(err, domain.ErrEvaluatorUnavailable) {
		t.Fatalf("expected ErrEvaluatorUnavailable, got: %v", err)
	}
}

// TestEvaluateCancelledContext tests that a cancelled context aborts the call
func TestEvaluateCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"A"}`))
	}))
	defer server.Close()

	adapter, err := NewEvaluatorClientAdapter(configs.Evaluator{URL: server.URL, Timeout: 1})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := adapter.Evaluate(ctx); !errors.Is(err, domain.ErrEvaluatorUnavailable) {
		t.Fatalf("expected ErrEvaluatorUnavailable, got: %v", err)
	}
}
