package server

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/amankumarsingh77/cube-phase-detector/internal/analyze"
	analyzeHttp "github.com/amankumarsingh77/cube-phase-detector/internal/analyze/delivery/http"
	analyzeRepository "github.com/amankumarsingh77/cube-phase-detector/internal/analyze/repository"
	analyzeUsecase "github.com/amankumarsingh77/cube-phase-detector/internal/analyze/usecase"
	"github.com/amankumarsingh77/cube-phase-detector/internal/inference"
	"github.com/amankumarsingh77/cube-phase-detector/internal/labeling"
	labelHttp "github.com/amankumarsingh77/cube-phase-detector/internal/labeling/delivery/http"
	labelRepository "github.com/amankumarsingh77/cube-phase-detector/internal/labeling/repository"
	labelUsecase "github.com/amankumarsingh77/cube-phase-detector/internal/labeling/usecase"
	"github.com/amankumarsingh77/cube-phase-detector/internal/middleware"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/utils"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxHealthyCPU = 95

func (s *Server) MapHandlers(e *echo.Echo) error {
	labelRepo, objectRepo, err := s.labelStores()
	if err != nil {
		return err
	}

	var aRedisRepo analyze.RedisRepository
	if s.cfg.Redis.Enabled && s.redisClient != nil {
		aRedisRepo = analyzeRepository.NewAnalyzeRedisRepo(s.redisClient)
	}

	pipeline := inference.NewPipeline(s.decoder, s.classifier, s.logger)
	labelUC := labelUsecase.NewLabelingUseCase(s.cfg, labelRepo, objectRepo, s.decoder, s.logger)
	analyzeUC := analyzeUsecase.NewAnalyzeUseCase(s.cfg, pipeline, aRedisRepo, s.logger)

	labelHandlers := labelHttp.NewLabelingHandler(labelUC, s.logger)
	analyzeHandlers := analyzeHttp.NewAnalyzeHandler(analyzeUC, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, s.cfg.Server.CorsOrigins, s.logger)

	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.Recover())
	e.Use(mw.CORS())
	e.Use(mw.RequestLoggerMiddleware)
	e.Use(mw.MetricsMiddleware)

	labelGroup := e.Group("/label")
	analyzeHttp.MapAnalyzeRoutes(e, analyzeHandlers, mw)
	labelHttp.MapLabelingRoutes(labelGroup, labelHandlers, mw)

	e.GET("/health", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		healthy, usage := utils.CheckCPUUsage(maxHealthyCPU)
		status := "OK"
		if !healthy {
			status = "DEGRADED"
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"status": status, "cpu": usage})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return nil
}

func (s *Server) labelStores() (labeling.Repository, labeling.ObjectRepository, error) {
	var labelRepo labeling.Repository
	switch s.cfg.Storage.LabelDriver {
	case "postgres":
		if s.db == nil {
			return nil, nil, fmt.Errorf("label driver postgres needs a database connection")
		}
		labelRepo = labelRepository.NewLabelRepo(s.db, s.logger)
	default:
		repo, err := labelRepository.NewFSLabelRepo(filepath.Join(s.cfg.Storage.DataDir, "labels"), s.logger)
		if err != nil {
			return nil, nil, err
		}
		labelRepo = repo
	}

	var objectRepo labeling.ObjectRepository
	switch s.cfg.Storage.Driver {
	case "s3":
		if s.s3Client == nil {
			return nil, nil, fmt.Errorf("storage driver s3 needs an s3 client")
		}
		objectRepo = labelRepository.NewAwsRepository(s.s3Client, s.cfg.S3.Bucket, s.cfg.Media.TempDir, s.logger)
	default:
		repo, err := labelRepository.NewFSStorage(filepath.Join(s.cfg.Storage.DataDir, "videos"))
		if err != nil {
			return nil, nil, err
		}
		objectRepo = repo
	}
	return labelRepo, objectRepo, nil
}
