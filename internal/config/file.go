package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/LJTian/NewsLens/internal/detector"
	"gopkg.in/yaml.v2"
)

// Feed 一个需要定时扫描的 RSS 源
type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	// 为空时使用全局 CRON_SPEC
	Cron string `yaml:"cron"`
}

// File 对应 newslens.yml：词表覆盖与订阅源列表
type File struct {
	Clickbait        []string `yaml:"clickbait"`
	Sensational      []string `yaml:"sensational"`
	Credibility      []string `yaml:"credibility"`
	TrustedSources   []string `yaml:"trusted_sources"`
	UntrustedSources []string `yaml:"untrusted_sources"`
	Feeds            []Feed   `yaml:"feeds"`
}

// LoadFile 读取 YAML 配置文件；文件不存在时返回空配置
func LoadFile(path string) (*File, error) {
	f := &File{}
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	for i, feed := range f.Feeds {
		if feed.URL == "" {
			return nil, fmt.Errorf("config: feed #%d (%q) has no url", i, feed.Name)
		}
		if feed.Name == "" {
			f.Feeds[i].Name = feed.URL
		}
	}
	return f, nil
}

// Apply 用文件中非空的列表替换 base 中对应的词表，列表顺序保持不变
func (f *File) Apply(base detector.Lexicons) detector.Lexicons {
	out := base.Clone()
	if len(f.Clickbait) > 0 {
		out.Clickbait = f.Clickbait
	}
	if len(f.Sensational) > 0 {
		out.Sensational = f.Sensational
	}
	if len(f.Credibility) > 0 {
		out.Credibility = f.Credibility
	}
	if len(f.TrustedSources) > 0 {
		out.TrustedSources = f.TrustedSources
	}
	if len(f.UntrustedSources) > 0 {
		out.UntrustedSources = f.UntrustedSources
	}
	return out
}
