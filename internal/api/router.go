package api

import (
	"context"
	"net/http"

	"github.com/LJTian/NewsLens/internal/collector"
	"github.com/LJTian/NewsLens/internal/detector"
	"github.com/LJTian/NewsLens/internal/factcheck"
	"github.com/LJTian/NewsLens/internal/metrics"
	"github.com/LJTian/NewsLens/internal/processor"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ArticleFetcher 抓取单个新闻页面，由 collector.ArticleFetcher 实现
type ArticleFetcher interface {
	FetchArticle(url string) (*collector.Article, error)
}

// ScanReader 读取最近一轮扫描结果，由 storage.Store 实现
type ScanReader interface {
	LatestScan(ctx context.Context, feed string) ([]processor.ScoredNews, error)
}

type Server struct {
	detector  *detector.Detector
	factcheck *factcheck.Client
	scans     ScanReader
	articles  ArticleFetcher
	// 请求未指定语言且无法从文本判断时使用
	defaultLang string
}

func NewServer(d *detector.Detector, fc *factcheck.Client, scans ScanReader, articles ArticleFetcher, defaultLang string) *Server {
	if defaultLang == "" {
		defaultLang = "ar"
	}
	return &Server{
		detector:    d,
		factcheck:   fc,
		scans:       scans,
		articles:    articles,
		defaultLang: defaultLang,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/detect", s.detect)
		v1.POST("/detect/url", s.detectURL)
		v1.GET("/factcheck", s.searchFactCheck)
		v1.GET("/scans", s.latestScan)
		v1.GET("/lexicons", s.lexicons)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
