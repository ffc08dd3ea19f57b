package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   Logger
	Storage  StorageConfig
	S3       S3Config
	Postgres DBConfig
	Redis    RedisConfig
	Media    MediaConfig
	Model    ModelConfig
	Clips    ClipsConfig
}

type ServerConfig struct {
	AppVersion   string
	Port         string `validate:"required"`
	Mode         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	MaxUploadMB  int `validate:"gt=0"`
	CorsOrigins  []string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string `validate:"oneof=json console"`
	Level             string
	FilePath          string
	MaxSizeMB         int
	MaxBackups        int
	MaxAgeDays        int
	Compress          bool
}

// StorageConfig selects where video bytes and label records live.
// Driver "fs" keeps videos on disk, "s3" uses the S3 section.
// LabelDriver "fs" keeps {id}.meta.json / {id}.labels.json files, "postgres" uses the DB.
type StorageConfig struct {
	Driver      string `validate:"oneof=fs s3"`
	LabelDriver string `validate:"oneof=fs postgres"`
	DataDir     string `validate:"required"`
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
	SSLMode  string
}

type RedisConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	UseTLS        bool
	CacheTTL      int
}

type MediaConfig struct {
	FFmpegPath  string
	FFprobePath string
	FrameSize   int `validate:"gt=0"`
	TempDir     string
}

type ModelConfig struct {
	Name               string `validate:"required"`
	WeightsPath        string
	InferenceEndpoint  string `validate:"required"`
	ManagementEndpoint string
	TimeoutSeconds     int
	// consecutive failed predictions before the breaker opens, and how long it stays open
	BreakerFailures       int
	BreakerTimeoutSeconds int
}

type ClipsConfig struct {
	FramesPerClip int `validate:"gt=0"`
	Stride        int `validate:"gt=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.appVersion", "1.0.0")
	v.SetDefault("server.port", ":5001")
	v.SetDefault("server.mode", "development")
	v.SetDefault("server.readTimeout", 60)
	v.SetDefault("server.writeTimeout", 600)
	v.SetDefault("server.idleTimeout", 120)
	v.SetDefault("server.maxUploadMB", 512)
	v.SetDefault("server.corsOrigins", []string{"*"})

	v.SetDefault("logger.development", true)
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.maxSizeMB", 100)
	v.SetDefault("logger.maxBackups", 3)
	v.SetDefault("logger.maxAgeDays", 28)

	v.SetDefault("storage.driver", "fs")
	v.SetDefault("storage.labelDriver", "fs")
	v.SetDefault("storage.dataDir", "data")

	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.pgDriver", "pgx")
	v.SetDefault("postgres.sslMode", "disable")

	v.SetDefault("redis.redisAddr", ":6379")
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("redis.poolTimeout", 5)
	v.SetDefault("redis.cacheTTL", 86400)

	v.SetDefault("media.ffmpegPath", "ffmpeg")
	v.SetDefault("media.ffprobePath", "ffprobe")
	v.SetDefault("media.frameSize", 112)

	v.SetDefault("model.name", "cube_phase_r3d")
	v.SetDefault("model.inferenceEndpoint", "http://localhost:8080")
	v.SetDefault("model.timeoutSeconds", 30)
	v.SetDefault("model.breakerFailures", 5)
	v.SetDefault("model.breakerTimeoutSeconds", 30)

	v.SetDefault("clips.framesPerClip", 16)
	v.SetDefault("clips.stride", 4)
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
