package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DetectionsTotal 按判定结果与请求来源（api / url / feed / cli）统计
	DetectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newslens",
		Name:      "detections_total",
		Help:      "Number of articles scored, by verdict and origin.",
	}, []string{"verdict", "origin"})

	FactCheckLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newslens",
		Name:      "factcheck_lookups_total",
		Help:      "Fact-check lookups by outcome.",
	}, []string{"outcome"})

	FeedItems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newslens",
		Name:      "feed_items_total",
		Help:      "Feed items scored by scheduled scans.",
	}, []string{"feed"})

	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(DetectionsTotal, FactCheckLookups, FeedItems)
}

// ObserveDetection 记录一次检测
func ObserveDetection(verdict, origin string) {
	DetectionsTotal.WithLabelValues(verdict, origin).Inc()
}

// ObserveFactCheck 记录一次事实核查查询结果（hit / cache_hit / miss / unavailable / disabled）
func ObserveFactCheck(outcome string) {
	FactCheckLookups.WithLabelValues(outcome).Inc()
}
