package serpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		MaxAttempts: 3,
		RetryDelay:  1, // effectively zero, keeps retry tests fast
		RateLimit:   1000,
	}, nil)
}

func TestSearch_Success(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("api_key not forwarded")
		}
		w.Write([]byte(`{"best_flights":[{"price":450,"total_duration":500}]}`))
	})

	resp, err := c.Search(context.Background(), url.Values{"engine": {"google_flights"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.BestFlights) != 1 || resp.BestFlights[0].Price == nil || *resp.BestFlights[0].Price != 450 {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestSearch_TransientThenSuccess(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Write([]byte(`{"error":"Server busy, please try again later"}`))
			return
		}
		w.Write([]byte(`{"best_flights":[]}`))
	})

	_, err := c.Search(context.Background(), url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestSearch_PermanentErrorNoRetry(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"error":"Invalid API key"}`))
	})

	_, err := c.Search(context.Background(), url.Values{})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("permanent error should not be retried, got %d attempts", calls.Load())
	}
}

func TestSearch_NonJSONBodyRetried(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>gateway error</html>`))
	})

	_, err := c.Search(context.Background(), url.Values{})
	var ree *RetriesExhaustedError
	if !errors.As(err, &ree) {
		t.Fatalf("expected RetriesExhaustedError, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
	if ree.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", ree.Attempts)
	}
}

func TestSearch_TemporaryErrorExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"error":"temporary outage"}`))
	})

	_, err := c.Search(context.Background(), url.Values{})
	var ree *RetriesExhaustedError
	if !errors.As(err, &ree) {
		t.Fatalf("expected RetriesExhaustedError, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
	var pe *ProviderError
	if !errors.As(ree.Last, &pe) {
		t.Errorf("last error should wrap the provider message, got %v", ree.Last)
	}
}

func TestSearch_ContextCancelled(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"temporary outage"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Search(ctx, url.Values{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveCode(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("departure_id") != "Reykjavik" {
			t.Errorf("probe should pass the text as departure_id")
		}
		w.Write([]byte(`{"airports":[{"departure":[{"airport":{"id":"KEF"}}]}]}`))
	})

	code, err := c.ResolveCode(context.Background(), "Reykjavik")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "KEF" {
		t.Errorf("code = %q, want KEF", code)
	}
}

func TestResolveCode_NoMatch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"airports":[]}`))
	})

	if _, err := c.ResolveCode(context.Background(), "Nowhere"); err == nil {
		t.Fatal("expected error when no airports returned")
	}
}
