package data

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"rag-backend/internal/conf"
)

// Data 持有所有存储句柄
// Redis 与 Minio 为可选项，未配置时为 nil
type Data struct {
	Store EntityStore
	Redis *redis.Client
	Minio *minio.Client
}

// NewData 按配置初始化数据层，返回清理函数
func NewData(ctx context.Context, cfg *conf.Config) (*Data, func(), error) {
	d := &Data{}

	// -------------------------------------------------------
	// 1. 实体存储
	// -------------------------------------------------------
	store, err := NewEntityStore(ctx, cfg.Data)
	if err != nil {
		return nil, nil, err
	}
	d.Store = store

	// -------------------------------------------------------
	// 2. Redis (播种锁)
	// -------------------------------------------------------
	if cfg.Data.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Data.RedisAddr,
			Password: cfg.Data.RedisPassword,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = store.Close(ctx)
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Data.RedisAddr, err)
		}
		log.Info().Str("addr", cfg.Data.RedisAddr).Msg("✅ Redis connected")
		d.Redis = rdb
	}

	// -------------------------------------------------------
	// 3. MinIO (文档源)
	// -------------------------------------------------------
	if cfg.Documents.Source == conf.SourceMinio {
		mc, err := minio.New(cfg.Data.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Data.MinioAccessKey, cfg.Data.MinioSecretKey, ""),
			Secure: cfg.Data.MinioSecure,
		})
		if err != nil {
			_ = store.Close(ctx)
			if d.Redis != nil {
				_ = d.Redis.Close()
			}
			return nil, nil, fmt.Errorf("minio client %s: %w", cfg.Data.MinioEndpoint, err)
		}
		log.Info().Str("endpoint", cfg.Data.MinioEndpoint).Str("bucket", cfg.Data.MinioBucket).Msg("✅ MinIO client ready")
		d.Minio = mc
	}

	cleanup := func() {
		log.Info().Msg("closing data layer")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.Store.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("closing entity store")
		}
		if d.Redis != nil {
			_ = d.Redis.Close()
		}
	}

	return d, cleanup, nil
}

// NewEntityStore 按 DATA_STORE_DRIVER 选择实现
func NewEntityStore(ctx context.Context, cfg conf.DataConfig) (EntityStore, error) {
	switch cfg.StoreDriver {
	case conf.DriverMemory:
		log.Info().Msg("✅ using in-memory entity store")
		return NewMemoryStore(), nil
	case conf.DriverMongo:
		s, err := NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("mongo connection error: %w", err)
		}
		// 不打印 URI，防止密码泄露
		log.Info().Str("database", cfg.MongoDatabase).Msg("✅ MongoDB connected")
		return s, nil
	case conf.DriverPostgres:
		s, err := NewPostgresStore(ctx, cfg.DatabaseSource)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		log.Info().Msg("✅ PostgreSQL connected")
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
