package collector

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const renderTimeout = 30 * time.Second

// RenderRequest / RenderResponse 是 browser-scraper /extract 接口的报文
type RenderRequest struct {
	URL      string `json:"url"`
	MaxChars int    `json:"maxChars"`
}

type RenderResponse struct {
	OK     bool   `json:"ok"`
	Title  string `json:"title,omitempty"`
	Source string `json:"source,omitempty"`
	Text   string `json:"text,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RenderClient 调用 browser-scraper 渲染页面并提取正文
type RenderClient struct {
	endpoint string
	http     *http.Client
}

// NewRenderClient baseURL 形如 http://browser-scraper:4000
func NewRenderClient(baseURL string) *RenderClient {
	return &RenderClient{
		endpoint: strings.TrimRight(baseURL, "/") + "/extract",
		http:     &http.Client{Timeout: renderTimeout},
	}
}

func (c *RenderClient) Render(pageURL string, maxChars int) (*RenderResponse, error) {
	body, err := json.Marshal(RenderRequest{URL: pageURL, MaxChars: maxChars})
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render: unexpected status %d", resp.StatusCode)
	}

	var out RenderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("render: decode response: %w", err)
	}
	if !out.OK {
		return nil, errors.New("render: " + out.Error)
	}
	return &out, nil
}
