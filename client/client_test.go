package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental-radar/config"
	"rental-radar/utils"
)

func testClient(baseURL string) *Client {
	cfg := &config.Config{
		APIBaseURL:      baseURL,
		FetchTimeoutSec: 2,
		MaxRetries:      3,
		RetryBaseMs:     1,
	}
	return New(cfg, utils.NewLogger(false))
}

func TestFetchListingsDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/apartments/portal" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"apartments": [{"title": "Sunny 1BR", "price": 2500, "neighborhood": "mission", "source": "portal"}],
			"stats": {"total": 1, "excellent_deals": 0, "average_price": 2500},
			"last_updated": "2026-08-29 10:00"
		}`))
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).FetchListings(context.Background(), "/api/apartments/portal")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Apartments) != 1 || resp.Apartments[0].Title != "Sunny 1BR" {
		t.Errorf("unexpected apartments: %+v", resp.Apartments)
	}
	if resp.Stats.Total != 1 || resp.Stats.AveragePrice != 2500 {
		t.Errorf("unexpected stats: %+v", resp.Stats)
	}
}

func TestFetchListingsRetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"apartments": [], "stats": {"total": 0}}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).FetchListings(context.Background(), "/api/apartments"); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestFetchListingsUpstreamErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"apartments": [], "stats": {}, "error": "scrape backend down"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchListings(context.Background(), "/api/apartments")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("an error envelope should map to ErrUpstream, got %v", err)
	}
}

func TestFetchListingsFalseSuccessEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"apartments": [], "stats": {}, "success": false, "message": "not ready"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchListings(context.Background(), "/api/apartments")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("success=false should map to ErrUpstream, got %v", err)
	}
}

func TestFetchListingsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.FetchListings(ctx, "/api/apartments")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrTimeout) && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("deadline overrun should classify as a timeout, got %v", err)
	}
}

func TestRefreshCollectionRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("refresh must POST, got %s", r.Method)
		}
		w.Header().Set("Retry-After", "45")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).RefreshCollection(context.Background(), "/api/apartments/portal/refresh")
	var rl *RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if rl.RetryAfter != 45*time.Second {
		t.Errorf("RetryAfter: got %v", rl.RetryAfter)
	}
}

func TestRefreshCollectionIsNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).RefreshCollection(context.Background(), "/api/apartments/refresh"); err == nil {
		t.Fatal("expected an error")
	}
	if attempts != 1 {
		t.Errorf("refresh must issue exactly one request, got %d", attempts)
	}
}

func TestTriggerRefreshDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/refresh" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"ok": true, "updated": 1756500000.0, "duration_seconds": 12.5, "succeeded": 4, "failed": 0}`))
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).TriggerRefresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK || res.Succeeded != 4 || res.DurationSeconds != 12.5 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestFetchDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"portfolio": {"x": 1}, "trending": [], "errors": ["calendar: timeout"], "updated": 1756500000.0}`))
	}))
	defer srv.Close()

	d, err := testClient(srv.URL).FetchDashboard(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Errors) != 1 || d.Errors[0] != "calendar: timeout" {
		t.Errorf("partial-failure list should pass through, got %v", d.Errors)
	}
	if len(d.Portfolio) == 0 {
		t.Error("widget payloads should be preserved raw")
	}
}

func TestNon200NeverParsedAsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"apartments": [{"title": "ghost"}], "stats": {"total": 1}}`))
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).FetchListings(context.Background(), "/api/apartments")
	if err == nil {
		t.Fatal("a non-200 body must not be surfaced as listings")
	}
	if resp != nil {
		t.Error("response must be nil on error")
	}
}
