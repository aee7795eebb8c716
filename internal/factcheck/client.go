package factcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/LJTian/NewsLens/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

	// 示例配置里的占位 key，视同未配置
	placeholderKey = "AIzaSyDexample..."

	maxClaimRunes    = 100
	maxResults       = 3
	clientTimeout    = 10 * time.Second
	maxResponseBytes = 1 << 20 // 1MB

	defaultClaimant = "unknown"
	defaultReviewer = "unknown"
	defaultRating   = "unavailable"
)

var (
	ErrNoAPIKey    = errors.New("factcheck: api key not configured")
	ErrUnavailable = errors.New("factcheck: service unavailable")
	ErrNoClaims    = errors.New("factcheck: no claim reviews found")
)

// ClaimReview 一条第三方核查记录
type ClaimReview struct {
	Text       string `json:"text"`
	Claimant   string `json:"claimant"`
	ClaimDate  string `json:"claimDate"`
	Rating     string `json:"rating"`
	Reviewer   string `json:"reviewer"`
	URL        string `json:"url"`
	ReviewDate string `json:"reviewDate,omitempty"`
}

// Cache 核查结果缓存，由存储层实现；未命中返回 false
type Cache interface {
	GetClaimReviews(ctx context.Context, lang, claim string) ([]ClaimReview, bool)
	SetClaimReviews(ctx context.Context, lang, claim string, reviews []ClaimReview)
}

// Client 调用 Google Fact Check Tools claims:search 接口
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cache   Cache
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRateLimit 限制每秒请求数，rps <= 0 表示不限速
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		http: &http.Client{
			Timeout:   clientTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled 是否配置了可用的 API key
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != "" && c.apiKey != placeholderKey
}

type searchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimDate   string `json:"claimDate"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			ReviewDate    string `json:"reviewDate"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// CheckClaim 查询与 claim 相关的核查记录，最多返回 3 条。
// claim 只取前 100 个字符；失败时返回 ErrNoAPIKey / ErrUnavailable / ErrNoClaims。
func (c *Client) CheckClaim(ctx context.Context, claim, lang string) ([]ClaimReview, error) {
	reviews, _, err := c.check(ctx, claim, lang)
	return reviews, err
}

func (c *Client) check(ctx context.Context, claim, lang string) ([]ClaimReview, bool, error) {
	if !c.Enabled() {
		return nil, false, ErrNoAPIKey
	}

	claim = truncateRunes(strings.TrimSpace(claim), maxClaimRunes)
	if claim == "" {
		return nil, false, ErrNoClaims
	}

	if c.cache != nil {
		if cached, ok := c.cache.GetClaimReviews(ctx, lang, claim); ok {
			return cached, true, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, false, fmt.Errorf("factcheck: rate limit wait: %w", err)
		}
	}

	params := url.Values{}
	params.Set("query", claim)
	params.Set("languageCode", lang)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("factcheck: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// 不直接返回 err：其中的 URL 带有 API key
		return nil, false, fmt.Errorf("%w: %s", ErrUnavailable, redactKey(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	if len(body.Claims) == 0 {
		return nil, false, ErrNoClaims
	}

	claims := body.Claims
	if len(claims) > maxResults {
		claims = claims[:maxResults]
	}

	reviews := make([]ClaimReview, 0, len(claims))
	for _, cl := range claims {
		r := ClaimReview{
			Text:      cl.Text,
			Claimant:  orDefault(cl.Claimant, defaultClaimant),
			ClaimDate: cl.ClaimDate,
			Rating:    defaultRating,
			Reviewer:  defaultReviewer,
		}
		if len(cl.ClaimReview) > 0 {
			first := cl.ClaimReview[0]
			r.Rating = orDefault(first.TextualRating, defaultRating)
			r.Reviewer = orDefault(first.Publisher.Name, defaultReviewer)
			r.URL = first.URL
			r.ReviewDate = first.ReviewDate
		}
		reviews = append(reviews, r)
	}

	if c.cache != nil {
		c.cache.SetClaimReviews(ctx, lang, claim, reviews)
	}
	return reviews, false, nil
}

// Status 一次软查询的结果
type Status string

const (
	StatusFound       Status = "found"
	StatusNone        Status = "none"
	StatusUnavailable Status = "unavailable"
	StatusDisabled    Status = "disabled"
)

// Lookup 是 CheckClaim 的软失败版本：出错时记录日志，返回 nil 和对应状态。
// StatusNone 表示服务正常但没有核查记录；StatusUnavailable 表示服务不可用，不代表声明无法核实。
func (c *Client) Lookup(ctx context.Context, claim, lang string) ([]ClaimReview, Status) {
	reviews, cached, err := c.check(ctx, claim, lang)
	switch {
	case errors.Is(err, ErrNoAPIKey):
		metrics.ObserveFactCheck("disabled")
		logging.Debug("factcheck skipped, api key not configured")
		return nil, StatusDisabled
	case errors.Is(err, ErrNoClaims):
		metrics.ObserveFactCheck("miss")
		logging.Debug("factcheck found no claims", "lang", lang)
		return nil, StatusNone
	case err != nil:
		// 传输错误、非 200、解析失败、限速等待被取消
		metrics.ObserveFactCheck("unavailable")
		logging.Warn("factcheck lookup failed", "lang", lang, "err", err)
		return nil, StatusUnavailable
	case cached:
		metrics.ObserveFactCheck("cache_hit")
	default:
		metrics.ObserveFactCheck("hit")
	}
	return reviews, StatusFound
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

func redactKey(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, "REDACTED")
}
