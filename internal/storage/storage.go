package storage

import (
	"context"
	"time"

	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store 封装词表库（Postgres）与缓存（Redis），两者都可以为空
type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStore dsn 为空时不连接数据库，redisAddr 为空时不启用缓存
func NewStore(dsn, redisAddr string) (*Store, error) {
	s := &Store{}

	if dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&Lexicon{}); err != nil {
			return nil, err
		}
		s.DB = db
	}

	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logging.Warn("redis ping failed", "addr", redisAddr, "err", err)
		}
		s.Redis = rdb
	}

	return s, nil
}

// Close 释放连接
func (s *Store) Close() error {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return err
		}
	}
	if s.DB != nil {
		sqlDB, err := s.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
