package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// 均可为空：为空时分别跳过词表库与缓存
	PostgresDSN string
	RedisAddr   string

	CronSpec    string
	LexiconFile string

	// browser-scraper 地址，为空时不做渲染兜底
	RendererURL string

	FactCheckAPIKey   string
	FactCheckLanguage string
	FactCheckRPS      float64

	BasicAuthUser string
	BasicAuthPass string
	CORSOrigins   []string

	LogLevel string
}

func Load() *Config {
	// .env 仅用于本地开发，不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Warn("load .env failed", "err", err)
	}

	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "9000"),
		PostgresDSN:       getEnv("POSTGRES_DSN", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		CronSpec:          getEnv("CRON_SPEC", "*/30 * * * *"),
		LexiconFile:       getEnv("LEXICON_FILE", "configs/newslens.yml"),
		RendererURL:       getEnv("RENDERER_URL", ""),
		FactCheckAPIKey:   getEnv("FACTCHECK_API_KEY", ""),
		FactCheckLanguage: getEnv("FACTCHECK_LANGUAGE", "ar"),
		FactCheckRPS:      getEnvFloat("FACTCHECK_RPS", 2),
		BasicAuthUser:     getEnv("APP_BASIC_USER", ""),
		BasicAuthPass:     getEnv("APP_BASIC_PASS", ""),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	logging.Info("config loaded",
		"port", cfg.AppPort,
		"cron", cfg.CronSpec,
		"lexicon", cfg.LexiconFile,
		"postgres", cfg.PostgresDSN != "",
		"redis", cfg.RedisAddr != "",
		"factcheck", cfg.FactCheckAPIKey != "",
	)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logging.Warn("invalid float env, using default", "key", key, "value", v, "default", def)
		return def
	}
	return f
}

// splitList 解析逗号分隔的列表，忽略空项
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
