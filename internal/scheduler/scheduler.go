package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LJTian/NewsLens/internal/collector"
	"github.com/LJTian/NewsLens/internal/config"
	"github.com/LJTian/NewsLens/internal/detector"
	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/LJTian/NewsLens/internal/metrics"
	"github.com/LJTian/NewsLens/internal/processor"
	"github.com/robfig/cron/v3"
)

const (
	saveTimeout = 5 * time.Second
	// 启动后延迟执行首轮扫描，避免和服务启动争抢资源
	defaultStartupDelay = 15 * time.Second
)

// FetcherJob 一个采集源及其独立的执行周期
type FetcherJob struct {
	Fetcher  collector.Fetcher
	CronSpec string
}

// ScanSaver 保存一轮扫描结果，由 storage.Store 实现
type ScanSaver interface {
	SaveScan(ctx context.Context, feed string, items []processor.ScoredNews) error
}

type Scheduler struct {
	cron      *cron.Cron
	jobs      []FetcherJob
	processor *processor.Processor
	store     ScanSaver

	mu           sync.Mutex
	startupDelay time.Duration
	startup      *time.Timer
}

func New(jobs []FetcherJob, p *processor.Processor, store ScanSaver) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:         c,
		jobs:         jobs,
		processor:    p,
		store:        store,
		startupDelay: defaultStartupDelay,
	}

	for _, j := range jobs {
		job := j
		if _, err := c.AddFunc(job.CronSpec, func() { s.runJob(job) }); err != nil {
			return nil, fmt.Errorf("scheduler: add job %s (%q): %w", job.Fetcher.Name(), job.CronSpec, err)
		}
	}

	return s, nil
}

// Cron 暴露底层 cron，便于追加其它定时任务
func (s *Scheduler) Cron() *cron.Cron {
	return s.cron
}

func (s *Scheduler) Start() {
	s.cron.Start()

	s.mu.Lock()
	s.startup = time.AfterFunc(s.startupDelay, s.RunOnce)
	s.mu.Unlock()
}

// Stop 取消尚未触发的首轮扫描，停止调度并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.startup != nil {
		s.startup.Stop()
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

// RunOnce 对外暴露的单次执行入口，并发执行所有任务并等待完成
func (s *Scheduler) RunOnce() {
	logging.Info("start scan job", "feeds", len(s.jobs))

	var wg sync.WaitGroup
	for _, j := range s.jobs {
		job := j
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.runJob(job)
		}()
	}

	wg.Wait()
	logging.Info("scan job done (all feeds)")
}

func (s *Scheduler) runJob(job FetcherJob) {
	name := job.Fetcher.Name()
	items, err := job.Fetcher.Fetch()
	if err != nil {
		logging.Error("fetch feed failed", "feed", name, "err", err)
		return
	}
	if len(items) == 0 {
		logging.Info("feed returned no items", "feed", name)
		return
	}

	scored := s.processor.Process(items)
	if len(scored) == 0 {
		return
	}

	var suspicious, fake int
	for _, it := range scored {
		metrics.ObserveDetection(string(it.Detection.Result), "feed")
		switch it.Detection.Result {
		case detector.VerdictSuspicious:
			suspicious++
		case detector.VerdictFake:
			fake++
			logging.Warn("fake news candidate", "feed", name, "title", it.Title, "score", it.Detection.Score, "url", it.URL)
		}
	}
	metrics.FeedItems.WithLabelValues(name).Add(float64(len(scored)))

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.store.SaveScan(ctx, name, scored); err != nil {
		logging.Error("save scan failed", "feed", name, "err", err)
		return
	}

	logging.Info("feed scanned", "feed", name, "fetched", len(items), "scored", len(scored), "suspicious", suspicious, "fake", fake)
}

// JobsFromFeeds 每个订阅源一个任务，未单独配置周期的使用 defaultSpec
func JobsFromFeeds(feeds []config.Feed, defaultSpec string) []FetcherJob {
	jobs := make([]FetcherJob, 0, len(feeds))
	for _, f := range feeds {
		spec := f.Cron
		if spec == "" {
			spec = defaultSpec
		}
		jobs = append(jobs, FetcherJob{
			Fetcher:  collector.NewRSSFetcher(f.Name, f.URL),
			CronSpec: spec,
		})
	}
	return jobs
}
