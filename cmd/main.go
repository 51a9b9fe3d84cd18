package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hireview/config"
	"hireview/database"
	_ "hireview/docs" // Swagger docs - auto-generated
	authctrl "hireview/internal/controller/auth"
	candidatectrl "hireview/internal/controller/candidate"
	recruiterctrl "hireview/internal/controller/recruiter"
	"hireview/internal/logger"
	"hireview/internal/model"
	"hireview/internal/repository"
	"hireview/internal/service"
	"hireview/internal/storage"
)

// @title HireView API
// @version 1.0
// @description Async video interview platform. Recruiters publish jobs with timed questions and share a link; candidates record webcam answers and submit them one by one.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			func(cfg *config.Config) (storage.MediaStore, error) {
				return storage.NewLocalMediaStore(cfg.Storage.Dir)
			},
		),

		// Repositories Layer
		fx.Provide(
			repository.NewRecruiterRepository,
			repository.NewJobRepository,
			repository.NewQuestionRepository,
			repository.NewCandidateRepository,
			repository.NewApplicationRepository,
			repository.NewVideoResponseRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewCandidateJobService,
			service.NewRecruiterJobService,
			service.NewRecruiterSubmissionService,
			service.NewSubmissionService,
		),

		// API Controllers Layer
		fx.Provide(
			authctrl.NewAuthController,
			candidatectrl.NewCandidateController,
			recruiterctrl.NewJobController,
			recruiterctrl.NewSubmissionController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Route request logs through the global zerolog instance.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *authctrl.AuthController,
	candidateCtrl *candidatectrl.CandidateController,
	jobCtrl *recruiterctrl.JobController,
	submissionCtrl *recruiterctrl.SubmissionController,
) {
	// Recorded answers are served back to recruiters as static files.
	router.Static("/uploads", cfg.Storage.Dir+"/uploads")

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/signup", authCtrl.Signup)
		authGroup.POST("/login", authCtrl.Login)

		candidateGroup := api.Group("/candidate")
		candidateGroup.GET("/job", candidateCtrl.GetJob)
		candidateGroup.POST("/submit", candidateCtrl.SubmitResponse)
		candidateGroup.POST("/complete", candidateCtrl.CompleteApplication)

		recruiterGroup := api.Group("/recruiter")
		recruiterGroup.GET("/jobs", jobCtrl.ListJobs)
		recruiterGroup.POST("/jobs", jobCtrl.CreateJob)
		recruiterGroup.PUT("/jobs", jobCtrl.UpdateJob)
		recruiterGroup.DELETE("/jobs", jobCtrl.DeleteJob)
		recruiterGroup.GET("/submissions", submissionCtrl.ListSubmissions)
		recruiterGroup.GET("/submissions/:candidateId", submissionCtrl.GetSubmission)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("HireView API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Recruiter{},
		&model.Job{},
		&model.Question{},
		&model.Candidate{},
		&model.Application{},
		&model.VideoResponse{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
