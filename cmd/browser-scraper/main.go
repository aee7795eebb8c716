package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/LJTian/NewsLens/internal/collector"
	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/chromedp/chromedp"
)

const (
	renderTimeout   = 20 * time.Second
	defaultMaxChars = 8000
)

// 渲染脚本输出
type pageContent struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

// 为依赖脚本渲染正文的新闻站点提供无头浏览器抽取服务，供 ArticleFetcher 兜底调用
func main() {
	logging.Init(getEnv("LOG_LEVEL", "info"))

	// 整个进程复用一个 headless 实例
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := chromedp.Run(browserCtx); err != nil {
		logging.Warn("warmup chromedp failed", "err", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/extract", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req collector.RenderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, collector.RenderResponse{Error: "invalid json"})
			return
		}
		if req.URL == "" {
			writeJSON(w, http.StatusBadRequest, collector.RenderResponse{Error: "url is required"})
			return
		}
		if req.MaxChars <= 0 || req.MaxChars > defaultMaxChars {
			req.MaxChars = defaultMaxChars
		}

		ctx, cancel := context.WithTimeout(browserCtx, renderTimeout)
		defer cancel()

		var page pageContent
		err := chromedp.Run(ctx,
			chromedp.Navigate(req.URL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Evaluate(extractJS, &page),
		)
		if err != nil {
			logging.Warn("render failed", "url", req.URL, "err", err)
			writeJSON(w, http.StatusOK, collector.RenderResponse{Error: err.Error()})
			return
		}

		text := truncateRunes(trimWhitespace(page.Text), req.MaxChars)
		if text == "" {
			writeJSON(w, http.StatusOK, collector.RenderResponse{Error: "empty content"})
			return
		}

		logging.Debug("rendered", "url", req.URL, "chars", len([]rune(text)))
		writeJSON(w, http.StatusOK, collector.RenderResponse{
			OK:     true,
			Title:  strings.TrimSpace(page.Title),
			Source: strings.TrimSpace(page.Source),
			Text:   text,
		})
	})

	addr := ":" + getEnv("PORT", "4000")
	logging.Info("browser-scraper listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logging.Fatal("http server exit", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// extractJS 取标题、站点名与正文段落。优先正文容器，找不到时收集全页较长段落
const extractJS = `(function () {
  function meta(name) {
    var el = document.querySelector('meta[property="' + name + '"]') ||
             document.querySelector('meta[name="' + name + '"]');
    return el ? (el.getAttribute("content") || "") : "";
  }

  var containers = [
    "article",
    "[itemprop=articleBody]",
    "div.article-body",
    "div.article-content",
    "div.story-body",
    "main"
  ];

  var text = "";
  for (var i = 0; i < containers.length; i++) {
    var el = document.querySelector(containers[i]);
    if (!el) continue;
    var ps = Array.prototype.slice.call(el.querySelectorAll("p"));
    text = ps.map(function (p) { return (p.innerText || "").trim(); })
             .filter(function (t) { return t.length > 0; })
             .join("\n");
    if (text.length > 200) break;
  }

  if (text.length < 200) {
    var pieces = [];
    var nodes = Array.prototype.slice.call(document.querySelectorAll("p"));
    for (var j = 0; j < nodes.length; j++) {
      var t = (nodes[j].innerText || "").trim();
      if (t.length >= 40) pieces.push(t);
    }
    text = pieces.join("\n");
  }

  var h1 = document.querySelector("h1");
  return {
    title: meta("og:title") || document.title || (h1 ? h1.innerText : ""),
    source: meta("og:site_name"),
    text: text
  };
})();`

func trimWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}
