package main

import (
	"github.com/LJTian/NewsLens/internal/config"
	"github.com/LJTian/NewsLens/internal/detector"
	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/LJTian/NewsLens/internal/processor"
	"github.com/LJTian/NewsLens/internal/scheduler"
	"github.com/LJTian/NewsLens/internal/storage"
)

// 一个仅执行一轮扫描的命令行入口：适合手动触发或外部 cron 调用
func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	file, err := config.LoadFile(cfg.LexiconFile)
	if err != nil {
		logging.Fatal("load lexicon file failed", "path", cfg.LexiconFile, "err", err)
	}
	if len(file.Feeds) == 0 {
		logging.Fatal("no feeds configured", "path", cfg.LexiconFile)
	}

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		logging.Fatal("init store failed", "err", err)
	}
	defer store.Close()

	// 与 cmd/api 保持一致的词表来源
	base := file.Apply(detector.DefaultLexicons())
	lex, err := store.ApplyLexicons(base)
	if err != nil {
		logging.Warn("load lexicons from db failed, using file lexicons", "err", err)
		lex = base
	}

	s, err := scheduler.New(scheduler.JobsFromFeeds(file.Feeds, cfg.CronSpec), processor.New(detector.New(lex)), store)
	if err != nil {
		logging.Fatal("init scheduler failed", "err", err)
	}

	s.RunOnce()
}
