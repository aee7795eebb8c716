package collector

import "time"

// NewsItem 统一采集后的基础结构
type NewsItem struct {
	Title  string
	URL    string
	Source string
	// 原始描述，可能带 HTML，由 processor 清洗
	Description string
	PublishedAt time.Time
	RawData     map[string]any
}

// Fetcher 抽象每一个数据源
type Fetcher interface {
	Name() string
	Fetch() ([]NewsItem, error)
}
