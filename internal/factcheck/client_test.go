package factcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const searchFixture = `{
  "claims": [
    {"text": "claim one", "claimant": "someone", "claimDate": "2024-01-01T00:00:00Z",
     "claimReview": [{"publisher": {"name": "Fatabyyano"}, "url": "https://fatabyyano.net/a", "textualRating": "مضلل"}]},
    {"text": "claim two", "claimReview": [{"publisher": {}, "url": "https://example.org/b", "textualRating": "False"}]},
    {"text": "claim three", "claimReview": []},
    {"text": "claim four", "claimReview": [{"textualRating": "True"}]}
  ]
}`

type memCache struct {
	mu   sync.Mutex
	data map[string][]ClaimReview
	sets int
}

func (m *memCache) GetClaimReviews(_ context.Context, lang, claim string) ([]ClaimReview, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data[lang+"|"+claim]
	return r, ok
}

func (m *memCache) SetClaimReviews(_ context.Context, lang, claim string, reviews []ClaimReview) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]ClaimReview)
	}
	m.data[lang+"|"+claim] = reviews
	m.sets++
}

func TestCheckClaimMapsTopThree(t *testing.T) {
	var gotQuery, gotLang, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotLang = r.URL.Query().Get("languageCode")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	c := NewClient("test-key", WithBaseURL(server.URL))
	longClaim := strings.Repeat("ب", 150)
	reviews, err := c.CheckClaim(context.Background(), longClaim, "ar")
	if err != nil {
		t.Fatalf("CheckClaim error: %v", err)
	}

	if utf8.RuneCountInString(gotQuery) != maxClaimRunes {
		t.Fatalf("query length = %d runes, want %d", utf8.RuneCountInString(gotQuery), maxClaimRunes)
	}
	if gotLang != "ar" || gotKey != "test-key" {
		t.Fatalf("unexpected params lang=%q key=%q", gotLang, gotKey)
	}

	if len(reviews) != maxResults {
		t.Fatalf("len(reviews) = %d, want %d", len(reviews), maxResults)
	}
	if reviews[0].Reviewer != "Fatabyyano" || reviews[0].Rating != "مضلل" || reviews[0].Claimant != "someone" {
		t.Fatalf("unexpected first review: %+v", reviews[0])
	}
	// 缺失字段使用默认值
	if reviews[1].Reviewer != defaultReviewer || reviews[1].Claimant != defaultClaimant {
		t.Fatalf("unexpected defaults: %+v", reviews[1])
	}
	if reviews[2].Rating != defaultRating || reviews[2].URL != "" {
		t.Fatalf("claim without review should use defaults: %+v", reviews[2])
	}
}

func TestCheckClaimWithoutKey(t *testing.T) {
	for _, key := range []string{"", "  ", placeholderKey} {
		c := NewClient(key)
		if c.Enabled() {
			t.Fatalf("client with key %q should be disabled", key)
		}
		if _, err := c.CheckClaim(context.Background(), "claim", "en"); !errors.Is(err, ErrNoAPIKey) {
			t.Fatalf("key %q: err = %v, want ErrNoAPIKey", key, err)
		}
	}
}

func TestCheckClaimNon200IsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient("secret-key", WithBaseURL(server.URL))
	_, err := c.CheckClaim(context.Background(), "claim", "en")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if reviews, status := c.Lookup(context.Background(), "claim", "en"); reviews != nil || status != StatusUnavailable {
		t.Fatalf("Lookup = %v, %q; want nil, %q", reviews, status, StatusUnavailable)
	}
}

func TestCheckClaimTransportErrorRedactsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c := NewClient("secret-key", WithBaseURL(base))
	_, err := c.CheckClaim(context.Background(), "claim", "en")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("error leaks api key: %v", err)
	}
}

func TestCheckClaimNoClaims(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient("k", WithBaseURL(server.URL))
	if _, err := c.CheckClaim(context.Background(), "claim", "en"); !errors.Is(err, ErrNoClaims) {
		t.Fatalf("err = %v, want ErrNoClaims", err)
	}
	if _, err := c.CheckClaim(context.Background(), "   ", "en"); !errors.Is(err, ErrNoClaims) {
		t.Fatalf("blank claim: err = %v, want ErrNoClaims", err)
	}
	if reviews, status := c.Lookup(context.Background(), "claim", "en"); reviews != nil || status != StatusNone {
		t.Fatalf("Lookup = %v, %q; want nil, %q", reviews, status, StatusNone)
	}
}

func TestLookupDisabledWithoutKey(t *testing.T) {
	if _, status := NewClient("AIzaSyDexample...").Lookup(context.Background(), "claim", "en"); status != StatusDisabled {
		t.Fatalf("status = %q, want %q", status, StatusDisabled)
	}
}

func TestCheckClaimUsesCache(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	cache := &memCache{}
	c := NewClient("k", WithBaseURL(server.URL), WithCache(cache), WithRateLimit(1000))

	first, _ := c.Lookup(context.Background(), "claim", "en")
	second, status := c.Lookup(context.Background(), "claim", "en")
	if status != StatusFound {
		t.Fatalf("cached lookup status = %q, want %q", status, StatusFound)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 upstream call, got %d", n)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache to be filled once, got %d", cache.sets)
	}
	if len(first) != len(second) || second[0].Text != "claim one" {
		t.Fatalf("cached result differs: %v vs %v", first, second)
	}
}

func TestDefaultClientUsesOtelTransport(t *testing.T) {
	c := NewClient("k")
	if _, ok := c.http.Transport.(*otelhttp.Transport); !ok {
		t.Fatalf("default http client should use otelhttp.Transport, got %T", c.http.Transport)
	}
}
