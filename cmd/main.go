package main

import (
	"context"
	"net/http"
	"time"

	"github.com/careloop/formflow/config"
	"github.com/careloop/formflow/database"
	"github.com/careloop/formflow/internal/cache"
	adminctrl "github.com/careloop/formflow/internal/controller/admin"
	userctrl "github.com/careloop/formflow/internal/controller/user"
	"github.com/careloop/formflow/internal/events"
	"github.com/careloop/formflow/internal/logger"
	"github.com/careloop/formflow/internal/model"
	"github.com/careloop/formflow/internal/registry"
	"github.com/careloop/formflow/internal/repository"
	"github.com/careloop/formflow/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Formflow API
// @version 1.0
// @description Dynamic questionnaire engine: multi-page forms, per-type answer storage, scoring and longitudinal insights.
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewRedisClient,
			NewGinEngine,
			registry.New,
		),

		fx.Provide(
			repository.NewFormRepository,
			repository.NewQuestionRepository,
			repository.NewOptionRepository,
			repository.NewAnswerRepository,
			repository.NewPagePointsRepository,
			repository.NewUserFormAnswerRepository,
			repository.NewSubmitPageInfoRepository,
			repository.NewCareRepository,
		),

		fx.Provide(
			cache.NewFormCache,
			events.NewRedisPublisher,
			service.NewPassthroughTranslator,
			service.NewScoringService,
			service.NewFormService,
			service.NewAnswerService,
			service.NewFormResultService,
			service.NewHistoryService,
			service.NewInsightService,
			service.NewAdminFormService,
		),

		fx.Provide(
			userctrl.NewFormController,
			adminctrl.NewAdminFormController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

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

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	formCtrl *userctrl.FormController,
	adminFormCtrl *adminctrl.AdminFormController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/forms", adminFormCtrl.CreateForm)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/forms/info", formCtrl.GetFormInfo)
		userAPIGroup.GET("/forms/history", formCtrl.GetFormHistory)
		userAPIGroup.GET("/forms/:form_id/pages/:page_id/questions", formCtrl.GetFormPageQuestions)
		userAPIGroup.POST("/forms/:form_id/pages/:page_id/answers", formCtrl.SavePageAnswers)
		userAPIGroup.POST("/forms/:form_id/answers", formCtrl.SaveUserFormAnswers)
		userAPIGroup.GET("/form-answers/:user_form_answer_id/result", formCtrl.GetFormResult)
		userAPIGroup.GET("/treatments/:treatment_id/forms-insight", formCtrl.GetAppointmentFormsInsight)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Formflow API server starting on port %s", cfg.Server.Port)
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

// AutoMigrateDB migrates the core tables plus every per-type answer and
// option table the registry knows about.
func AutoMigrateDB(db *gorm.DB, reg *registry.Registry) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Form{},
		&model.FormPage{},
		&model.Question{},
		&model.FormPagePoints{},
		&model.UserFormAnswer{},
		&model.FormSubmitPageInfo{},
		&model.User{},
		&model.Schedule{},
		&model.Toolkit{},
		&model.ToolkitEpisode{},
		&model.Treatment{},
		&model.Appointment{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	for _, t := range reg.Types() {
		answerTable, err := reg.AnswerTable(t)
		if err != nil {
			return err
		}
		if err := db.Table(answerTable).AutoMigrate(&model.QuestionAnswer{}); err != nil {
			log.Error().Err(err).Str("table", answerTable).Msg("Answer table migration failed")
			return err
		}
		optionTable, err := reg.OptionTable(t)
		if err != nil {
			return err
		}
		if err := db.Table(optionTable).AutoMigrate(&model.QuestionOption{}); err != nil {
			log.Error().Err(err).Str("table", optionTable).Msg("Option table migration failed")
			return err
		}
	}

	log.Info().Int("questionTypes", len(reg.Types())).Msg("Database migration completed successfully")
	return nil
}
