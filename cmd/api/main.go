package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LJTian/NewsLens/internal/api"
	"github.com/LJTian/NewsLens/internal/collector"
	"github.com/LJTian/NewsLens/internal/config"
	"github.com/LJTian/NewsLens/internal/detector"
	"github.com/LJTian/NewsLens/internal/factcheck"
	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/LJTian/NewsLens/internal/processor"
	"github.com/LJTian/NewsLens/internal/scheduler"
	"github.com/LJTian/NewsLens/internal/storage"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	file, err := config.LoadFile(cfg.LexiconFile)
	if err != nil {
		logging.Fatal("load lexicon file failed", "path", cfg.LexiconFile, "err", err)
	}

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		logging.Fatal("init store failed", "err", err)
	}

	// 词表优先级：数据库 > 配置文件 > 内置默认
	base := file.Apply(detector.DefaultLexicons())
	if err := store.SeedLexicons(base); err != nil {
		logging.Warn("seed lexicons failed", "err", err)
	}
	lex, err := store.ApplyLexicons(base)
	if err != nil {
		logging.Warn("load lexicons from db failed, using file lexicons", "err", err)
		lex = base
	}

	d := detector.New(lex)
	fc := factcheck.NewClient(cfg.FactCheckAPIKey,
		factcheck.WithRateLimit(cfg.FactCheckRPS),
		factcheck.WithCache(store),
	)
	if !fc.Enabled() {
		logging.Warn("fact-check api key not configured, lookups disabled")
	}

	var articleOpts []collector.ArticleOption
	if cfg.RendererURL != "" {
		articleOpts = append(articleOpts, collector.WithRenderer(collector.NewRenderClient(cfg.RendererURL)))
	}

	// 每个订阅源独立的扫描周期
	jobs := scheduler.JobsFromFeeds(file.Feeds, cfg.CronSpec)
	s, err := scheduler.New(jobs, processor.New(d), store)
	if err != nil {
		logging.Fatal("init scheduler failed", "err", err)
	}
	s.Start()

	r := gin.Default()
	r.Use(api.CORS(cfg.CORSOrigins))
	// 若配置了全局访问密码，则启用 Basic Auth 保护（健康检查与指标抓取免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(api.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass, "/health", "/metrics"))
	}

	apiServer := api.NewServer(d, fc, store, collector.NewArticleFetcher(articleOpts...), cfg.FactCheckLanguage)
	apiServer.RegisterRoutes(r)

	srv := &http.Server{Addr: ":" + cfg.AppPort, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logging.Info("starting api server", "addr", srv.Addr, "feeds", len(jobs))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logging.Info("shutdown signal received")
	case err := <-serveErr:
		logging.Error("server exit", "err", err)
	}

	// 先停止接收请求，再停调度，最后释放存储连接
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logging.Warn("http shutdown failed", "err", err)
	}
	s.Stop()
	if err := store.Close(); err != nil {
		logging.Warn("close store failed", "err", err)
	}
	logging.Info("api server stopped")
}
