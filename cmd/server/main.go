package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/amankumarsingh77/cube-phase-detector/internal/classifier"
	"github.com/amankumarsingh77/cube-phase-detector/internal/config"
	"github.com/amankumarsingh77/cube-phase-detector/internal/media"
	"github.com/amankumarsingh77/cube-phase-detector/internal/server"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/db/aws"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/db/postgres"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/db/redis"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/utils"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	goredis "github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

const startupTimeout = 30 * time.Second

func main() {
	log.Println("Starting server")
	configFile := os.Getenv("CONFIG_PATH")
	if configFile == "" {
		configFile = "config.yml"
	}
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err = utils.ValidateStruct(ctx, cfg); err != nil {
		appLogger.Fatalf("invalid config: %v", err)
	}

	var psqlDB *sqlx.DB
	if cfg.Storage.LabelDriver == "postgres" {
		psqlDB, err = postgres.NewPsqlDB(cfg)
		if err != nil {
			appLogger.Fatalf("could not connect to db: %v", err)
		}
		appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
		defer psqlDB.Close()
	}

	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewRedisClient(ctx, cfg)
		if err != nil {
			// the cache is optional; analyze still works without it
			appLogger.Warnf("could not connect to redis, prediction cache disabled: %v", err)
		} else {
			appLogger.Infof("redis connected")
			defer redisClient.Close()
		}
	}

	var s3Client *s3.Client
	if cfg.Storage.Driver == "s3" {
		s3Client, err = aws.NewAWSClient(ctx, cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
		if err != nil {
			appLogger.Fatalf("could not connect to s3: %v", err)
		}
		if err = aws.EnsureBucket(ctx, s3Client, cfg.S3.Bucket); err != nil {
			appLogger.Fatalf("could not prepare bucket: %v", err)
		}
		appLogger.Infof("s3 bucket %s ready", cfg.S3.Bucket)
	}

	decoder := media.NewFFmpeg(cfg, appLogger)
	clf, err := classifier.Load(ctx, cfg, &http.Client{Timeout: time.Duration(cfg.Model.TimeoutSeconds) * time.Second}, appLogger)
	if err != nil {
		appLogger.Fatalf("could not load model: %v", err)
	}

	s := server.NewServer(cfg, psqlDB, redisClient, s3Client, decoder, clf, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Fatalf("could not start server: %v", err)
	}
}
