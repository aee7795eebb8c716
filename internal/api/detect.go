package api

import (
	"net/http"
	"strings"

	"github.com/LJTian/NewsLens/internal/collector"
	"github.com/LJTian/NewsLens/internal/detector"
	"github.com/LJTian/NewsLens/internal/factcheck"
	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/LJTian/NewsLens/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 未请求核查时的状态，其余状态取自 factcheck.Status
const factCheckSkipped factcheck.Status = "skipped"

type detectRequest struct {
	Title     string  `json:"title"`
	Text      string  `json:"text"`
	Source    *string `json:"source"`
	FactCheck bool    `json:"factCheck"`
	Language  string  `json:"language"`
}

type detectURLRequest struct {
	URL       string `json:"url" binding:"required"`
	FactCheck bool   `json:"factCheck"`
	Language  string `json:"language"`
}

type detectResponse struct {
	CheckID          string                  `json:"checkId"`
	Detection        detector.Result         `json:"detection"`
	FactCheck        []factcheck.ClaimReview `json:"factCheck"`
	FactCheckSummary *factcheck.Summary      `json:"factCheckSummary"`
	FactCheckStatus  factcheck.Status        `json:"factCheckStatus"`
	Article          *collector.Article      `json:"article,omitempty"`
}

func (s *Server) detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	// 只给来源也可以打分；三者都缺失时视为空请求
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Text) == "" && req.Source == nil {
		fail(c, http.StatusBadRequest, "invalid_request", "title, text or source is required")
		return
	}

	art := detector.Article{Title: req.Title, Text: req.Text, Source: req.Source}
	ok(c, s.check(c, art, req.FactCheck, req.Language, "api"))
}

func (s *Server) detectURL(c *gin.Context) {
	var req detectURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "url is required")
		return
	}

	page, err := s.articles.FetchArticle(req.URL)
	if err != nil {
		logging.Warn("fetch article failed", "url", req.URL, "err", err)
		fail(c, http.StatusBadGateway, "fetch_failed", "failed to fetch article")
		return
	}

	art := detector.Article{
		Title:  page.Title,
		Text:   page.Text,
		Source: detector.String(page.Source),
	}
	resp := s.check(c, art, req.FactCheck, req.Language, "url")
	resp.Article = page
	ok(c, resp)
}

// check 打分，按需附带第三方核查结果
func (s *Server) check(c *gin.Context, art detector.Article, withFactCheck bool, lang, origin string) detectResponse {
	res := s.detector.Detect(art)
	metrics.ObserveDetection(string(res.Result), origin)

	// 没有核查记录时 factCheck 为 null
	resp := detectResponse{
		CheckID:         uuid.NewString(),
		Detection:       res,
		FactCheckStatus: factCheckSkipped,
	}

	if !withFactCheck {
		return resp
	}
	if !s.factcheck.Enabled() {
		resp.FactCheckStatus = factcheck.StatusDisabled
		return resp
	}

	claim := claimFor(art)
	if lang == "" {
		lang = factcheck.DetectLanguage(claim, s.defaultLang)
	}

	reviews, status := s.factcheck.Lookup(c.Request.Context(), claim, lang)
	resp.FactCheckStatus = status
	if status != factcheck.StatusFound {
		return resp
	}

	resp.FactCheck = reviews
	if sum, ok := factcheck.Summarize(reviews); ok {
		resp.FactCheckSummary = &sum
	}

	logging.Debug("check done", "checkId", resp.CheckID, "result", res.Result, "score", res.Score, "reviews", len(reviews))
	return resp
}

// claimFor 用标题作为待核查的声明，标题为空时退回正文
func claimFor(art detector.Article) string {
	if t := strings.TrimSpace(art.Title); t != "" {
		return t
	}
	return strings.TrimSpace(art.Text)
}
