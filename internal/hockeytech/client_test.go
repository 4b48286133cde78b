package hockeytech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coldrink/pwhl-data/internal/config"
)

func testClient(srvURL string, maxRetries int) *Client {
	cfg := &config.Config{
		FeedBaseURL:    srvURL + "/",
		FeedKey:        "test-key",
		FeedClientCode: "pwhl",
		FeedRatePerSec: 1000,
		FeedMaxRetries: maxRetries,
		FeedTimeout:    5 * time.Second,
	}
	return NewClient(cfg, nil)
}

func TestFetchSeasonsUnwrapsJSONPAndAuthenticates(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(`({"SiteKit":{"Seasons":[]}});`))
	}))
	defer srv.Close()

	body, err := testClient(srv.URL, 0).FetchSeasons(context.Background())
	if err != nil {
		t.Fatalf("FetchSeasons: %v", err)
	}
	if got, want := string(body), `{"SiteKit":{"Seasons":[]}}`; got != want {
		t.Errorf("payload = %q, want %q", got, want)
	}
	if gotQuery["key"] != "test-key" || gotQuery["client_code"] != "pwhl" {
		t.Errorf("missing auth params, got %v", gotQuery)
	}
	if gotQuery["feed"] == "" {
		t.Errorf("missing feed selector, got %v", gotQuery)
	}
}

func TestRetriesServerErrorThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, err := testClient(srv.URL, 2).FetchBasicInfo(context.Background())
	if err != nil {
		t.Fatalf("FetchBasicInfo: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("payload = %q", body)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestExhaustedRetriesAreTransient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 1).FetchBasicInfo(context.Background())
	if !IsTransient(err) {
		t.Fatalf("err = %v, want transient", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestNotFoundOn404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 2).FetchGameSummary(context.Background(), 999)
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not-found", err)
	}
	if IsTransient(err) {
		t.Error("404 must not be transient")
	}
}

func TestEmptyEnvelopeOnIDRequestIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`({});`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 0).FetchRoster(context.Background(), 5, 1)
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not-found", err)
	}
}

func TestOtherClientErrorsDoNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 3).FetchBasicInfo(context.Background())
	if !IsTransient(err) {
		t.Fatalf("err = %v, want transient", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestStripJSONP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{`({"a":1})`, `{"a":1}`},
		{`({"a":1});`, `{"a":1}`},
		{` ({"a":1}) `, `{"a":1}`},
		{`(`, `(`},
	}
	for _, tt := range tests {
		if got := string(stripJSONP([]byte(tt.in))); got != tt.want {
			t.Errorf("stripJSONP(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmptyEnvelope(t *testing.T) {
	for _, empty := range []string{"", "null", "[]", "{}", `""`, "  {} "} {
		if !emptyEnvelope([]byte(empty)) {
			t.Errorf("emptyEnvelope(%q) = false, want true", empty)
		}
	}
	if emptyEnvelope([]byte(`{"SiteKit":{}}`)) {
		t.Error(`emptyEnvelope({"SiteKit":{}}) = true, want false`)
	}
}
