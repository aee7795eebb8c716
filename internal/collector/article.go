package collector

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

const (
	articleTimeout  = 10 * time.Second
	articleMaxChars = 8000
)

// Article 从单个新闻页面提取的内容
type Article struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

// ArticleFetcher 抓取单个新闻页面，提取标题、来源和正文段落
type ArticleFetcher struct {
	timeout  time.Duration
	maxChars int
	// 静态解析拿不到正文时交给无头浏览器渲染，可为空
	renderer *RenderClient
}

type ArticleOption func(*ArticleFetcher)

// WithRenderer 启用 browser-scraper 渲染兜底
func WithRenderer(r *RenderClient) ArticleOption {
	return func(f *ArticleFetcher) { f.renderer = r }
}

func NewArticleFetcher(opts ...ArticleOption) *ArticleFetcher {
	f := &ArticleFetcher{timeout: articleTimeout, maxChars: articleMaxChars}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *ArticleFetcher) FetchArticle(pageURL string) (*Article, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("article: invalid url %q", pageURL)
	}

	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.SetRequestTimeout(f.timeout)

	art := &Article{URL: pageURL}
	found := false

	// 页面结构各不相同，这里只做“尽力而为”的通用解析
	c.OnHTML("html", func(e *colly.HTMLElement) {
		found = true
		art.Title = firstNonEmpty(
			metaContent(e.DOM, "og:title"),
			strings.TrimSpace(e.DOM.Find("title").First().Text()),
			strings.TrimSpace(e.DOM.Find("h1").First().Text()),
		)
		art.Source = metaContent(e.DOM, "og:site_name")
		art.Text = extractParagraphs(e.DOM, f.maxChars)
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("article: fetch %s: %w", pageURL, err)
	}
	if !found {
		return nil, fmt.Errorf("article: %s is not an html page", pageURL)
	}

	if art.Text == "" && f.renderer != nil {
		f.fillFromRenderer(art)
	}

	if art.Source == "" {
		art.Source = strings.TrimPrefix(u.Hostname(), "www.")
	}

	logging.Debug("article fetched", "url", pageURL, "title", art.Title, "chars", len([]rune(art.Text)))
	return art, nil
}

// fillFromRenderer 正文由脚本渲染的页面，静态 HTML 里没有段落
func (f *ArticleFetcher) fillFromRenderer(art *Article) {
	rendered, err := f.renderer.Render(art.URL, f.maxChars)
	if err != nil {
		logging.Warn("render article failed", "url", art.URL, "err", err)
		return
	}
	art.Text = rendered.Text
	art.Title = firstNonEmpty(art.Title, rendered.Title)
	art.Source = firstNonEmpty(art.Source, rendered.Source)
}

// extractParagraphs 优先取 <article> 内的段落，没有时退回到全部 <p>
func extractParagraphs(doc *goquery.Selection, maxChars int) string {
	sel := doc.Find("article p")
	if sel.Length() == 0 {
		sel = doc.Find("p")
	}

	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			parts = append(parts, t)
		}
	})

	text := strings.Join(parts, "\n")
	rs := []rune(text)
	if maxChars > 0 && len(rs) > maxChars {
		text = string(rs[:maxChars])
	}
	return text
}

func metaContent(doc *goquery.Selection, property string) string {
	if v, ok := doc.Find(`meta[property="` + property + `"]`).First().Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[name="` + property + `"]`).First().Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
