package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"rag-backend/internal/conf"
	"rag-backend/internal/data"
	"rag-backend/internal/logger"
	"rag-backend/internal/middleware"
	"rag-backend/internal/model"
	"rag-backend/internal/seed"
	"rag-backend/internal/service"
)

// Run 播种完成后启动 HTTP 服务，直到 ctx 被取消
func Run(ctx context.Context, envFile string) error {
	// 1 ~ 3. 配置、数据层、播种
	cfg, d, cleanup, err := prepare(ctx, envFile)
	if err != nil {
		return err
	}
	defer cleanup()

	// 4. 初始化服务层
	svcs, err := NewServices(cfg, d)
	if err != nil {
		return err
	}

	// 5. 初始化 Gin Server
	gin.SetMode(cfg.App.GinMode)
	srv := &http.Server{
		Addr:    net.JoinHostPort("", cfg.App.Port),
		Handler: NewRouter(svcs, middleware.NewMetrics()),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("🚀 RAG 后端已启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 6. 等待退出信号
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server 启动失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("✅ server stopped")
	return nil
}

// Seed 只播种，不启动服务
func Seed(ctx context.Context, envFile string) error {
	_, _, cleanup, err := prepare(ctx, envFile)
	if err != nil {
		return err
	}
	cleanup()
	return nil
}

func prepare(ctx context.Context, envFile string) (*conf.Config, *data.Data, func(), error) {
	// 1. 加载配置
	cfg, err := conf.LoadConfig(envFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	// 2. 初始化数据层
	d, cleanup, err := data.NewData(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("数据层初始化失败: %w", err)
	}

	// 3. 播种：全部写入完成之前不对外提供服务
	if err := RunSeed(ctx, cfg, d); err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return cfg, d, cleanup, nil
}

// RunSeed 按配置选择数据来源与锁
func RunSeed(ctx context.Context, cfg *conf.Config, d *data.Data) error {
	source, err := seed.NewSource(cfg.Seed)
	if err != nil {
		return fmt.Errorf("%w: %w", seed.ErrSeed, err)
	}

	var opts []seed.Option
	if d.Redis != nil {
		opts = append(opts, seed.WithLocker(seed.NewRedisLocker(d.Redis, cfg.Seed.LockWait)))
	}

	report, err := seed.NewSeeder(d.Store, source, opts...).Run(ctx)
	if err != nil {
		return err
	}
	log.Info().Interface("inserted", report).Msg("✅ seeding finished")
	return nil
}

// NewServices 组装服务层
func NewServices(cfg *conf.Config, d *data.Data) (Services, error) {
	var docs service.DocumentSource
	switch cfg.Documents.Source {
	case conf.SourceMinio:
		if d.Minio == nil {
			return Services{}, errors.New("minio document source selected but no minio client configured")
		}
		docs = service.NewMinioSource(d.Minio, cfg.Data.MinioBucket, cfg.Documents.Prefix)
	default:
		docs = service.NewDirSource(cfg.Documents.Dir)
	}

	identity := model.Identity{Name: cfg.Auth.IdentityName, Email: cfg.Auth.IdentityEmail}
	return Services{
		Auth:    service.NewAuthService(cfg.Auth.StaticToken, identity),
		Lookup:  service.NewLookupService(d.Store),
		Scrape:  service.NewScrapeService(seed.NewGenerator(seed.FixtureProfile, cfg.Seed.RandomSeed)),
		Archive: service.NewArchiveService(docs),
	}, nil
}
