package main

import (
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"

	"github.com/AmbHasan/My-quran-journey/middleware"
	"github.com/AmbHasan/My-quran-journey/services"
)

// @title My Quran Journey API
// @version 1.0.0
// @description Quran learning backend with progress tracking and gamification.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using process environment")
	}

	configureLogging(os.Getenv("LOG_LEVEL"))

	ctx, err := context.NewCtx(
		&services.MonitoringService{},
		&services.PostgresService{},
		&services.RedisService{},
		&services.JWTService{},

		&services.QuranService{},
		&services.LearningService{},
		&services.PaymentService{},
		&services.AuthService{},

		&middleware.AuthMiddleware{},
		&middleware.RateLimitMiddleware{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service context stopped")
		return
	}
}

func configureLogging(level string) {
	level = strings.ToLower(level)
	if level == "" {
		level = "info"
	}

	zlevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zlevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(zlevel)

	llevel, err := logrus.ParseLevel(level)
	if err != nil {
		llevel = logrus.InfoLevel
	}
	logrus.SetLevel(llevel)
	logrus.SetFormatter(&logrus.JSONFormatter{})
}
