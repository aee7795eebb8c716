package processor

import (
	"crypto/sha1"
	"encoding/hex"
	"html"
	"strings"
	"time"

	"github.com/LJTian/NewsLens/internal/collector"
	"github.com/LJTian/NewsLens/internal/detector"
	"github.com/microcosm-cc/bluemonday"
)

// summaryMaxRunes 摘要按 rune 截断的长度
const summaryMaxRunes = 200

// ScoredNews 打分后的新闻条目
type ScoredNews struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Source      string          `json:"source"`
	Summary     string          `json:"summary"`
	PublishedAt time.Time       `json:"publishedAt"`
	Detection   detector.Result `json:"detection"`
}

// Processor 去重、清洗 HTML，并对每条新闻做可信度检测
type Processor struct {
	detector *detector.Detector
	policy   *bluemonday.Policy
}

func New(d *detector.Detector) *Processor {
	policy := bluemonday.StrictPolicy()
	// 去标签时补空格，避免相邻段落的词粘在一起
	policy.AddSpaceWhenStrippingTag(true)

	return &Processor{
		detector: d,
		policy:   policy,
	}
}

func (p *Processor) Process(items []collector.NewsItem) []ScoredNews {
	out := make([]ScoredNews, 0, len(items))
	seen := make(map[string]struct{})

	for _, it := range items {
		id := hashURL(it.URL)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		title := strings.TrimSpace(p.sanitize(it.Title))
		text := p.sanitize(it.Description)

		// 来源是采集时已知的，总是参与打分
		res := p.detector.Detect(detector.Article{
			Title:  title,
			Text:   text,
			Source: detector.String(it.Source),
		})

		summary := truncateRunes(text, summaryMaxRunes)
		if summary == "" {
			// 没有描述时用标题兜底
			summary = title
		}

		out = append(out, ScoredNews{
			ID:          id,
			Title:       title,
			URL:         it.URL,
			Source:      it.Source,
			Summary:     summary,
			PublishedAt: it.PublishedAt,
			Detection:   res,
		})
	}

	return out
}

// sanitize 去掉全部标签，StrictPolicy 会转义实体，这里再还原成纯文本
func (p *Processor) sanitize(s string) string {
	if s == "" {
		return ""
	}
	clean := html.UnescapeString(p.policy.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

func hashURL(url string) string {
	h := sha1.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}

// truncateRunes 按 rune 截断，超出时追加省略号
func truncateRunes(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 || s == "" {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit]) + "…"
}
