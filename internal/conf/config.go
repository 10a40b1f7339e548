package conf

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Auth      AuthConfig
	Data      DataConfig
	Documents DocumentsConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json | console
}

type AuthConfig struct {
	StaticToken   string
	IdentityName  string
	IdentityEmail string
}

type DataConfig struct {
	// 存储后端: memory | mongo | postgres
	StoreDriver string

	// --- MongoDB ---
	MongoURI      string
	MongoDatabase string

	// --- Postgres ---
	DatabaseSource string // 连接字符串 (DSN)

	// --- Redis (可选，仅用于播种锁) ---
	RedisAddr     string
	RedisPassword string

	// --- MinIO (可选，仅当文档源为 minio) ---
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSecure    bool
}

type DocumentsConfig struct {
	Source string // dir | minio
	Dir    string
	Prefix string
}

type SeedConfig struct {
	Mode        string // full | fixture
	RandomSeed  int64
	FixtureFile string
	LockWait    time.Duration
}

const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"

	SourceDir   = "dir"
	SourceMinio = "minio"

	SeedModeFull    = "full"
	SeedModeFixture = "fixture"
)

// LoadConfig 读取默认值、.env 文件与环境变量
// envFile 为空时读取当前目录下的 .env (可选)
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()

	// ==========================================
	// 1. 设置默认值
	// ==========================================

	// App
	v.SetDefault("APP_PORT", "3456")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_SHUTDOWN_TIMEOUT", "10s")

	// Log
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	// Auth (静态 token，对应前端的演示 token)
	v.SetDefault("AUTH_STATIC_TOKEN", "psJN7z3J9q")
	v.SetDefault("AUTH_IDENTITY_NAME", "John Doe")
	v.SetDefault("AUTH_IDENTITY_EMAIL", "john.doe@example.com")

	// Store
	v.SetDefault("DATA_STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("DATA_MONGO_DATABASE", "rag")
	v.SetDefault("DATA_DB_SOURCE", "")

	// Redis
	v.SetDefault("DATA_REDIS_ADDR", "")
	v.SetDefault("DATA_REDIS_PASSWORD", "")

	// MinIO
	v.SetDefault("DATA_MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("DATA_MINIO_AK", "")
	v.SetDefault("DATA_MINIO_SK", "")
	v.SetDefault("DATA_MINIO_BUCKET", "rag-documents")
	v.SetDefault("DATA_MINIO_SECURE", false)

	// Documents
	v.SetDefault("DOCUMENTS_SOURCE", SourceDir)
	v.SetDefault("DOCUMENTS_DIR", "./documents")
	v.SetDefault("DOCUMENTS_PREFIX", "")

	// Seed
	v.SetDefault("SEED_MODE", SeedModeFull)
	v.SetDefault("SEED_RANDOM_SEED", 0)
	v.SetDefault("SEED_FIXTURE_FILE", "")
	v.SetDefault("SEED_LOCK_WAIT", "30s")

	// ==========================================
	// 2. 读取配置
	// ==========================================

	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading env file %s: %w", envFile, err)
		}
	} else {
		// 本地 .env 文件 (可选)
		v.SetConfigName(".env")
		v.SetConfigType("env")
		v.AddConfigPath(".")
		_ = v.ReadInConfig()
	}

	// ==========================================
	// 3. 映射到结构体
	// ==========================================

	var c Config

	c.App.Port = v.GetString("APP_PORT")
	c.App.GinMode = v.GetString("GIN_MODE")
	c.App.ShutdownTimeout = v.GetDuration("APP_SHUTDOWN_TIMEOUT")

	c.Log.Level = v.GetString("LOG_LEVEL")
	c.Log.Format = v.GetString("LOG_FORMAT")

	c.Auth.StaticToken = v.GetString("AUTH_STATIC_TOKEN")
	c.Auth.IdentityName = v.GetString("AUTH_IDENTITY_NAME")
	c.Auth.IdentityEmail = v.GetString("AUTH_IDENTITY_EMAIL")

	c.Data.StoreDriver = v.GetString("DATA_STORE_DRIVER")
	c.Data.MongoURI = v.GetString("MONGO_URI")
	c.Data.MongoDatabase = v.GetString("DATA_MONGO_DATABASE")
	c.Data.DatabaseSource = v.GetString("DATA_DB_SOURCE")
	c.Data.RedisAddr = v.GetString("DATA_REDIS_ADDR")
	c.Data.RedisPassword = v.GetString("DATA_REDIS_PASSWORD")
	c.Data.MinioEndpoint = v.GetString("DATA_MINIO_ENDPOINT")
	c.Data.MinioAccessKey = v.GetString("DATA_MINIO_AK")
	c.Data.MinioSecretKey = v.GetString("DATA_MINIO_SK")
	c.Data.MinioBucket = v.GetString("DATA_MINIO_BUCKET")
	c.Data.MinioSecure = v.GetBool("DATA_MINIO_SECURE")

	c.Documents.Source = v.GetString("DOCUMENTS_SOURCE")
	c.Documents.Dir = v.GetString("DOCUMENTS_DIR")
	c.Documents.Prefix = v.GetString("DOCUMENTS_PREFIX")

	c.Seed.Mode = v.GetString("SEED_MODE")
	c.Seed.RandomSeed = v.GetInt64("SEED_RANDOM_SEED")
	c.Seed.FixtureFile = v.GetString("SEED_FIXTURE_FILE")
	c.Seed.LockWait = v.GetDuration("SEED_LOCK_WAIT")

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate 校验互相依赖的配置项
func (c *Config) Validate() error {
	var errs []error

	if c.App.Port == "" {
		errs = append(errs, errors.New("APP_PORT is required"))
	}
	if c.Auth.StaticToken == "" {
		errs = append(errs, errors.New("AUTH_STATIC_TOKEN must not be empty"))
	}

	switch c.Data.StoreDriver {
	case DriverMemory:
	case DriverMongo:
		if c.Data.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI not defined in environment variables"))
		}
	case DriverPostgres:
		if c.Data.DatabaseSource == "" {
			errs = append(errs, errors.New("DATA_DB_SOURCE is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATA_STORE_DRIVER %q", c.Data.StoreDriver))
	}

	switch c.Documents.Source {
	case SourceDir:
		if c.Documents.Dir == "" {
			errs = append(errs, errors.New("DOCUMENTS_DIR is required for the dir source"))
		}
	case SourceMinio:
		if c.Data.MinioEndpoint == "" || c.Data.MinioBucket == "" {
			errs = append(errs, errors.New("DATA_MINIO_ENDPOINT and DATA_MINIO_BUCKET are required for the minio source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DOCUMENTS_SOURCE %q", c.Documents.Source))
	}

	switch c.Seed.Mode {
	case SeedModeFull, SeedModeFixture:
	default:
		errs = append(errs, fmt.Errorf("unknown SEED_MODE %q", c.Seed.Mode))
	}

	return errors.Join(errs...)
}
