package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/AmbHasan/My-quran-journey/dto"
)

const (
	chapterSnapshotKey = "quran:chapters:snapshot"
	chapterSnapshotTTL = 24 * time.Hour
)

var errRedisDisabled = errors.New("redis client not initialized")

// RedisService is optional. With REDIS_ADDR unset every call is a no-op
// returning errRedisDisabled.
type RedisService struct {
	appContext.DefaultService
	redis *redis.Client
}

const REDIS_SVC = "redis_svc"

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	svc.initRedisClient()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	if svc.redis == nil {
		log.Info("REDIS_ADDR not set, chapter snapshot disabled")
		return nil
	}
	if err := svc.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

func (svc *RedisService) Shutdown() {
	if svc.redis != nil {
		svc.redis.Close()
	}
}

func (svc *RedisService) initRedisClient() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return
	}

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	svc.redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})
}

func (svc *RedisService) Enabled() bool {
	return svc.redis != nil
}

func (svc *RedisService) Ping(ctx context.Context) error {
	if svc.redis == nil {
		return errRedisDisabled
	}
	return svc.redis.Ping(ctx).Err()
}

func (svc *RedisService) SaveChapters(ctx context.Context, chapters []dto.Chapter) error {
	if svc.redis == nil {
		return errRedisDisabled
	}

	data, err := sonic.Marshal(chapters)
	if err != nil {
		return fmt.Errorf("failed to marshal chapters: %w", err)
	}
	return svc.redis.Set(ctx, chapterSnapshotKey, data, chapterSnapshotTTL).Err()
}

// LoadChapters returns nil without error when no snapshot is stored.
func (svc *RedisService) LoadChapters(ctx context.Context) ([]dto.Chapter, error) {
	if svc.redis == nil {
		return nil, errRedisDisabled
	}

	result, err := svc.redis.Get(ctx, chapterSnapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var chapters []dto.Chapter
	if err := sonic.Unmarshal(result, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}
