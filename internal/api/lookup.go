package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/LJTian/NewsLens/internal/factcheck"
	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/LJTian/NewsLens/internal/metrics"
	"github.com/LJTian/NewsLens/internal/processor"
	"github.com/gin-gonic/gin"
)

func (s *Server) searchFactCheck(c *gin.Context) {
	claim := strings.TrimSpace(c.Query("claim"))
	if claim == "" {
		fail(c, http.StatusBadRequest, "invalid_request", "claim is required")
		return
	}
	lang := c.Query("lang")
	if lang == "" {
		lang = factcheck.DetectLanguage(claim, s.defaultLang)
	}

	reviews, err := s.factcheck.CheckClaim(c.Request.Context(), claim, lang)
	switch {
	case errors.Is(err, factcheck.ErrNoAPIKey):
		metrics.ObserveFactCheck("disabled")
		fail(c, http.StatusServiceUnavailable, "factcheck_disabled", "fact-check api key not configured")
		return
	case errors.Is(err, factcheck.ErrNoClaims):
		metrics.ObserveFactCheck("miss")
		fail(c, http.StatusNotFound, "not_found", "no claim reviews found")
		return
	case err != nil:
		metrics.ObserveFactCheck("unavailable")
		logging.Warn("factcheck search failed", "lang", lang, "err", err)
		fail(c, http.StatusBadGateway, "factcheck_unavailable", "fact-check service unavailable")
		return
	}
	metrics.ObserveFactCheck("hit")

	sum, _ := factcheck.Summarize(reviews)
	ok(c, gin.H{
		"claim":   claim,
		"lang":    lang,
		"reviews": reviews,
		"summary": sum,
	})
}

func (s *Server) latestScan(c *gin.Context) {
	feed := strings.TrimSpace(c.Query("feed"))
	if feed == "" {
		fail(c, http.StatusBadRequest, "invalid_request", "feed is required")
		return
	}

	items, err := s.scans.LatestScan(c.Request.Context(), feed)
	if err != nil {
		logging.Error("load scan failed", "feed", feed, "err", err)
		fail(c, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if items == nil {
		items = []processor.ScoredNews{}
	}
	ok(c, items)
}

func (s *Server) lexicons(c *gin.Context) {
	ok(c, s.detector.Lexicons())
}
