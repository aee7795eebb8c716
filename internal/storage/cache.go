package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LJTian/NewsLens/internal/factcheck"
	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/LJTian/NewsLens/internal/processor"
	"github.com/redis/go-redis/v9"
)

const (
	factCheckTTL = 24 * time.Hour
	// 扫描快照只用于展示最近一轮结果，不做持久化
	scanTTL = 6 * time.Hour
)

func factCheckKey(lang, claim string) string {
	sum := sha1.Sum([]byte(claim))
	return fmt.Sprintf("factcheck:%s:%s", lang, hex.EncodeToString(sum[:]))
}

func scanKey(feed string) string {
	return "scan:latest:" + feed
}

// GetClaimReviews 实现 factcheck.Cache
func (s *Store) GetClaimReviews(ctx context.Context, lang, claim string) ([]factcheck.ClaimReview, bool) {
	if s == nil || s.Redis == nil {
		return nil, false
	}
	bs, err := s.Redis.Get(ctx, factCheckKey(lang, claim)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Warn("factcheck cache get failed", "err", err)
		}
		return nil, false
	}
	var cached []factcheck.ClaimReview
	if err := json.Unmarshal(bs, &cached); err != nil {
		return nil, false
	}
	return cached, true
}

// SetClaimReviews 实现 factcheck.Cache，写失败只记录日志
func (s *Store) SetClaimReviews(ctx context.Context, lang, claim string, reviews []factcheck.ClaimReview) {
	if s == nil || s.Redis == nil || len(reviews) == 0 {
		return
	}
	bs, err := json.Marshal(reviews)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, factCheckKey(lang, claim), bs, factCheckTTL).Err(); err != nil {
		logging.Warn("factcheck cache set failed", "err", err)
	}
}

// SaveScan 覆盖某个订阅源最近一轮的扫描结果
func (s *Store) SaveScan(ctx context.Context, feed string, items []processor.ScoredNews) error {
	if s == nil || s.Redis == nil {
		return nil
	}
	bs, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, scanKey(feed), bs, scanTTL).Err()
}

// LatestScan 返回最近一轮扫描结果，没有数据时返回 nil
func (s *Store) LatestScan(ctx context.Context, feed string) ([]processor.ScoredNews, error) {
	if s == nil || s.Redis == nil {
		return nil, nil
	}
	bs, err := s.Redis.Get(ctx, scanKey(feed)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []processor.ScoredNews
	if err := json.Unmarshal(bs, &items); err != nil {
		return nil, err
	}
	return items, nil
}
