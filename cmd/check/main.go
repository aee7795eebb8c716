package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/LJTian/NewsLens/internal/collector"
	"github.com/LJTian/NewsLens/internal/config"
	"github.com/LJTian/NewsLens/internal/detector"
	"github.com/LJTian/NewsLens/internal/factcheck"
	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/LJTian/NewsLens/internal/report"
	"github.com/LJTian/NewsLens/internal/storage"
)

const lookupTimeout = 15 * time.Second

// 对单篇文章打分的命令行工具，可直接给出标题正文，也可给出 URL
func main() {
	title := flag.String("title", "", "article title")
	text := flag.String("text", "", "article body")
	source := flag.String("source", "", "publisher or channel the article came from")
	pageURL := flag.String("url", "", "fetch the article from this URL instead")
	withFactCheck := flag.Bool("factcheck", false, "look up third-party fact checks for the title")
	lang := flag.String("lang", "", "fact-check language code (detected from the title when empty)")
	flag.Parse()

	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	file, err := config.LoadFile(cfg.LexiconFile)
	if err != nil {
		logging.Fatal("load lexicon file failed", "path", cfg.LexiconFile, "err", err)
	}
	d := detector.New(file.Apply(detector.DefaultLexicons()))

	art := detector.Article{Title: *title, Text: *text}
	sourceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "source" {
			sourceSet = true
		}
	})
	if sourceSet {
		art.Source = detector.String(*source)
	}

	if *pageURL != "" {
		var opts []collector.ArticleOption
		if cfg.RendererURL != "" {
			opts = append(opts, collector.WithRenderer(collector.NewRenderClient(cfg.RendererURL)))
		}
		page, err := collector.NewArticleFetcher(opts...).FetchArticle(*pageURL)
		if err != nil {
			logging.Fatal("fetch article failed", "url", *pageURL, "err", err)
		}
		art = detector.Article{Title: page.Title, Text: page.Text, Source: detector.String(page.Source)}
	}

	if art.Title == "" && art.Text == "" && art.Source == nil {
		fmt.Fprintln(os.Stderr, "usage: check -title T [-text X] [-source S] [-factcheck] | check -url URL")
		os.Exit(2)
	}

	res := d.Detect(art)

	var reviews []factcheck.ClaimReview
	var sum *factcheck.Summary
	if *withFactCheck {
		store, err := storage.NewStore("", cfg.RedisAddr)
		if err != nil {
			logging.Fatal("init cache failed", "err", err)
		}
		defer store.Close()

		claim := art.Title
		if claim == "" {
			claim = art.Text
		}
		l := *lang
		if l == "" {
			l = factcheck.DetectLanguage(claim, cfg.FactCheckLanguage)
		}

		fc := factcheck.NewClient(cfg.FactCheckAPIKey, factcheck.WithCache(store))
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		var status factcheck.Status
		reviews, status = fc.Lookup(ctx, claim, l)
		cancel()
		if status == factcheck.StatusUnavailable {
			fmt.Fprintln(os.Stderr, "fact-check service unavailable")
		}
		if s, ok := factcheck.Summarize(reviews); ok {
			sum = &s
		}
	}

	if err := report.Render(os.Stdout, res, reviews, sum); err != nil {
		logging.Fatal("render report failed", "err", err)
	}
}
