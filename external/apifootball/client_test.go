package apifootball

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/betfaro/engine/internal/platform/resilience"
	"github.com/betfaro/engine/internal/usecase"
)

const teamsPayload = `{
	"results": 3,
	"paging": {"current": 1, "total": 1},
	"response": [
		{"team": {"id": 127, "name": "Flamengo", "country": "Brazil", "national": false}},
		{"team": {"id": 6, "name": "Brazil", "country": "Brazil", "national": true}},
		{"team": {"id": 0, "name": "Ghost FC", "country": "", "national": false}}
	]
}`

const fixturesPayload = `{
	"results": 2,
	"paging": {"current": 1, "total": 1},
	"response": [
		{
			"fixture": {"id": 9001, "date": "2026-07-20T19:00:00-03:00", "status": {"short": "FT"}},
			"league": {"name": "Serie A", "type": "League"},
			"teams": {"home": {"id": 127, "name": "Flamengo"}, "away": {"id": 121, "name": "Palmeiras"}},
			"goals": {"home": 2, "away": 1}
		},
		{
			"fixture": {"id": 9000, "date": "2026-07-13T16:00:00-03:00", "status": {"short": "NS"}},
			"league": {"name": "Serie A", "type": "League"},
			"teams": {"home": {"id": 121, "name": "Palmeiras"}, "away": {"id": 127, "name": "Flamengo"}},
			"goals": {"home": null, "away": null}
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "secret-token",
	})
	return client, server
}

func TestSearchTeams_FiltersNationalAndInvalid(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("x-apisports-key"); got != "secret-token" {
			t.Errorf("auth header = %q", got)
		}
		if got := r.URL.Query().Get("search"); got != "flamengo" {
			t.Errorf("search query = %q", got)
		}
		_, _ = w.Write([]byte(teamsPayload))
	})

	teams, err := client.SearchTeams(context.Background(), "flamengo")
	if err != nil {
		t.Fatalf("search teams: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected 1 club, got %d: %+v", len(teams), teams)
	}
	if teams[0].ID != 127 || teams[0].Country != "Brazil" {
		t.Fatalf("unexpected team: %+v", teams[0])
	}
}

func TestSearchTeams_RejectsShortQuery(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Token: "t"})
	if _, err := client.SearchTeams(context.Background(), "fl"); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestLastFixtures_DecodesProviderShape(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("team"); got != "127" {
			t.Errorf("team query = %q", got)
		}
		if got := r.URL.Query().Get("last"); got != "10" {
			t.Errorf("last query = %q", got)
		}
		_, _ = w.Write([]byte(fixturesPayload))
	})

	records, err := client.LastFixtures(context.Background(), 127, 10)
	if err != nil {
		t.Fatalf("last fixtures: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	finished := records[0]
	if finished.Fixture.ID != 9001 || finished.Fixture.Status.Short != "FT" {
		t.Fatalf("unexpected first record: %+v", finished.Fixture)
	}
	if finished.Goals.Home == nil || *finished.Goals.Home != 2 {
		t.Fatalf("home goals not decoded: %+v", finished.Goals)
	}

	unfinished := records[1]
	if unfinished.Goals.Home != nil || unfinished.Goals.Away != nil {
		t.Fatalf("null goals must stay nil: %+v", unfinished.Goals)
	}
}

func TestLastFixtures_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(fixturesPayload))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "t",
		MaxRetries: 1,
	})

	if _, err := client.LastFixtures(context.Background(), 127, 10); err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestLastFixtures_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "t",
		MaxRetries: 3,
	})

	if _, err := client.LastFixtures(context.Background(), 127, 10); err == nil {
		t.Fatal("expected error for 403")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call, got %d", got)
	}
}

func TestDoJSON_CircuitRejectsWhenOpen(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "t",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
		},
	})

	if _, err := client.LastFixtures(context.Background(), 127, 10); err == nil {
		t.Fatal("expected first call to fail")
	}
	_, err := client.LastFixtures(context.Background(), 127, 10)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
}

func TestSanitizeSensitiveText_RedactsToken(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText("dial failed for key secret-token", "secret-token")
	if got != "dial failed for key REDACTED" {
		t.Fatalf("token leaked: %q", got)
	}
}
