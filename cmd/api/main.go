package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edusync/academia-api/api/swagger"
	"github.com/edusync/academia-api/internal/handler"
	"github.com/edusync/academia-api/internal/middleware"
	"github.com/edusync/academia-api/internal/repository"
	"github.com/edusync/academia-api/internal/service"
	"github.com/edusync/academia-api/pkg/config"
	"github.com/edusync/academia-api/pkg/database"
	"github.com/edusync/academia-api/pkg/logger"
	corsmiddleware "github.com/edusync/academia-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edusync/academia-api/pkg/middleware/requestid"
)

// @title Academia API
// @version 1.0.0
// @description Academic scheduling backend: faculties, classrooms, teachers, subjects and timetables
// @BasePath /
// @schemes http

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
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	validate := validator.New()
	defaults := service.NewPageDefaults(cfg.Pagination)

	facultyRepo := repository.NewFacultyRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)

	metricsSvc := service.NewMetricsService()

	facultySvc := service.NewFacultyService(facultyRepo, defaults, validate, logr)
	classroomSvc := service.NewClassroomService(classroomRepo, facultyRepo, defaults, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, facultyRepo, defaults, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, facultyRepo, teacherRepo, defaults, validate, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, subjectRepo, classroomRepo, facultyRepo, metricsSvc, defaults, validate, logr)
	userSvc := service.NewUserService(userRepo, defaults, validate, logr)
	authSvc := service.NewAuthService(userSvc, cfg.JWT, logr)
	optimizerSvc := service.NewOptimizerService(cfg.Optimizer, logr)

	facultyHandler := handler.NewFacultyHandler(facultySvc)
	classroomHandler := handler.NewClassroomHandler(classroomSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc, subjectSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, optimizerSvc, metricsSvc)
	userHandler := handler.NewUserHandler(userSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/register", authHandler.Register)

		api.GET("/faculties", facultyHandler.List)
		api.POST("/faculties", facultyHandler.Create)
		api.GET("/faculties/:id", facultyHandler.Get)
		api.PATCH("/faculties/:id", facultyHandler.Update)
		api.DELETE("/faculties/:id", facultyHandler.Delete)
		api.GET("/faculties/:id/classrooms", classroomHandler.ListByFaculty)
		api.GET("/faculties/:id/teachers", teacherHandler.ListByFaculty)
		api.GET("/faculties/:id/schedules", scheduleHandler.ListByFaculty)
		api.GET("/faculties/:id/schedules/export", scheduleHandler.Export)

		api.GET("/classrooms", classroomHandler.List)
		api.POST("/classrooms", classroomHandler.Create)
		api.GET("/classrooms/:id", classroomHandler.Get)
		api.PATCH("/classrooms/:id", classroomHandler.Update)
		api.DELETE("/classrooms/:id", classroomHandler.Delete)

		api.GET("/teachers", teacherHandler.List)
		api.POST("/teachers", teacherHandler.Create)
		api.GET("/teachers/:id", teacherHandler.Get)
		api.PATCH("/teachers/:id", teacherHandler.Update)
		api.DELETE("/teachers/:id", teacherHandler.Delete)
		api.GET("/teachers/:id/subjects", teacherHandler.ListSubjects)

		api.GET("/subjects", subjectHandler.List)
		api.POST("/subjects", subjectHandler.Create)
		api.GET("/subjects/:id", subjectHandler.Get)
		api.PATCH("/subjects/:id", subjectHandler.Update)
		api.DELETE("/subjects/:id", subjectHandler.Delete)

		api.GET("/schedules", scheduleHandler.List)
		api.POST("/schedules", scheduleHandler.Create)
		api.POST("/schedules/generate", scheduleHandler.Generate)
		api.GET("/schedules/:id", scheduleHandler.Get)
		api.PATCH("/schedules/:id", scheduleHandler.Update)
		api.DELETE("/schedules/:id", scheduleHandler.Delete)

		users := api.Group("/users")
		users.Use(middleware.JWT(authSvc))
		{
			users.GET("", userHandler.List)
			users.POST("", userHandler.Create)
			users.GET("/me", userHandler.Me)
			users.GET("/:id", userHandler.Get)
			users.PATCH("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
