package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/victor-POL/mi-uni-api/api/swagger"
	"github.com/victor-POL/mi-uni-api/internal/handler"
	"github.com/victor-POL/mi-uni-api/internal/middleware"
	"github.com/victor-POL/mi-uni-api/internal/repository"
	"github.com/victor-POL/mi-uni-api/internal/service"
	"github.com/victor-POL/mi-uni-api/pkg/cache"
	"github.com/victor-POL/mi-uni-api/pkg/config"
	"github.com/victor-POL/mi-uni-api/pkg/database"
	"github.com/victor-POL/mi-uni-api/pkg/logger"
	corsmiddleware "github.com/victor-POL/mi-uni-api/pkg/middleware/cors"
	reqidmiddleware "github.com/victor-POL/mi-uni-api/pkg/middleware/requestid"
)

// @title Mi Uni API
// @version 1.0.0
// @description Academic progress and curriculum engine
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Curriculum.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, curriculum cache disabled", "error", err)
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close()

	validate := validator.New()

	curriculumRepo := repository.NewCurriculumRepository(db)
	careerRepo := repository.NewCareerRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	yearRepo := repository.NewAcademicYearRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	termRepo := repository.NewTermRepository(db)

	metricsSvc := service.NewMetricsService()

	curriculumSvc := service.NewCurriculumService(curriculumRepo, cacheRepo, cfg.Curriculum.CacheTTL, metricsSvc, logr)
	enrollmentSvc := service.NewEnrollmentService(careerRepo, curriculumRepo, recordRepo, validate, logr)
	yearSvc := service.NewAcademicYearService(yearRepo, termRepo, logr)
	courseSvc := service.NewCourseService(courseRepo, careerRepo, curriculumRepo, yearRepo, logr)
	progressSvc := service.NewProgressService(careerRepo, recordRepo, courseRepo, metricsSvc, logr)
	filterSvc := service.NewFilterService(curriculumSvc, recordRepo, logr)
	reportSvc := service.NewReportService(careerRepo, recordRepo, curriculumSvc, nil, nil, logr)

	curriculumHandler := handler.NewCurriculumHandler(curriculumSvc, filterSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	yearHandler := handler.NewAcademicYearHandler(yearSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	progressHandler := handler.NewProgressHandler(progressSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(cfg.JWT.Secret))
	{
		api.GET("/plans", curriculumHandler.ListPlans)
		api.GET("/plans/:planId/subjects", curriculumHandler.ListSubjects)
		api.GET("/plans/:planId/subjects/:subjectId/prerequisites", curriculumHandler.Prerequisites)
		api.GET("/plans/:planId/subjects/:subjectId/unlocks", curriculumHandler.Unlocks)

		api.GET("/careers", enrollmentHandler.List)
		api.POST("/careers/:planId", enrollmentHandler.Join)
		api.DELETE("/careers/:planId", enrollmentHandler.Leave)
		api.GET("/careers/:planId/records", enrollmentHandler.Records)
		api.PUT("/careers/:planId/subjects/:subjectId/status", enrollmentHandler.SetStatus)

		api.GET("/academic-year", yearHandler.Get)
		api.POST("/academic-year", yearHandler.Establish)
		api.PUT("/academic-year", yearHandler.Change)
		api.DELETE("/academic-year", yearHandler.Clear)

		api.GET("/courses", courseHandler.List)
		api.GET("/courses/summary", progressHandler.InProgressSummary)
		api.POST("/careers/:planId/subjects/:subjectId/course", courseHandler.Start)
		api.GET("/careers/:planId/subjects/:subjectId/course", courseHandler.Get)
		api.PATCH("/careers/:planId/subjects/:subjectId/course/grades", courseHandler.Grades)
		api.DELETE("/careers/:planId/subjects/:subjectId/course", courseHandler.End)

		api.GET("/careers/:planId/progress", progressHandler.PlanProgress)

		if cfg.Reports.Enabled {
			api.GET("/careers/:planId/transcript", reportHandler.Transcript)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
