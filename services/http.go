package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	docs "github.com/AmbHasan/My-quran-journey/docs"
	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/services/handlers"
	"github.com/AmbHasan/My-quran-journey/shared"
)

type HttpService struct {
	appContext.DefaultService

	sqlSvc        *PostgresService
	redisSvc      *RedisService
	monitoringSvc *MonitoringService

	authHandler        *handlers.AuthHandler
	userHandler        *handlers.UserHandler
	quranHandler       *handlers.QuranHandler
	learningHandler    *handlers.LearningHandler
	leaderboardHandler *handlers.LeaderboardHandler
	paymentHandler     *handlers.PaymentHandler

	port           int
	allowOrigins   string
	trustedProxies []string
	app            *fiber.App
}

const HTTP_SVC = "http_svc"

const healthCheckTimeout = 3 * time.Second

type authGate interface {
	RequiredAuth() fiber.Handler
}

type rateLimitGate interface {
	IPRateLimit() fiber.Handler
	AuthRateLimit() fiber.Handler
}

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *appContext.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	svc.allowOrigins = envOrDefault("CORS_ALLOW_ORIGINS", "*")
	svc.trustedProxies = shared.TrustedProxiesFromEnv()

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	authSvc := svc.Service(AUTH_SVC).(*AuthService)
	quranSvc := svc.Service(QURAN_SVC).(*QuranService)
	learningSvc := svc.Service(LEARNING_SVC).(*LearningService)
	paymentSvc := svc.Service(PAYMENT_SVC).(*PaymentService)

	svc.authHandler = handlers.NewAuthHandler(authSvc)
	svc.userHandler = handlers.NewUserHandler(authSvc)
	svc.quranHandler = handlers.NewQuranHandler(quranSvc)
	svc.learningHandler = handlers.NewLearningHandler(learningSvc)
	svc.leaderboardHandler = handlers.NewLeaderboardHandler(learningSvc)
	svc.paymentHandler = handlers.NewPaymentHandler(paymentSvc)

	auth := svc.Service(shared.AUTH_MIDDLEWARE_SVC).(authGate)
	limits := svc.Service(shared.RATE_LIMIT_MIDDLEWARE_SVC).(rateLimitGate)

	svc.app = svc.NewApp()
	svc.setupRoutes(auth, limits)

	log.WithField("port", svc.port).Info("HTTP server listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// NewApp builds the fiber app with the shared error envelope and the global
// middleware stack.
func (svc *HttpService) NewApp() *fiber.App {
	app := fiber.New(shared.WithTrustedProxies(fiber.Config{
		AppName:      "My Quran Journey API",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: shared.ResponseError,
	}, svc.trustedProxies))

	app.Use(recover.New())
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "trace") {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: svc.allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
	}))
	if svc.monitoringSvc != nil {
		app.Use(MonitoringMiddleware(svc.monitoringSvc))
	}

	return app
}

func (svc *HttpService) setupRoutes(auth authGate, limits rateLimitGate) {
	docs.SwaggerInfo.BasePath = "/"

	svc.app.Get("/ping", svc.ping)
	svc.app.Get("/swagger/*", swagger.HandlerDefault)

	// Health checks and payment webhooks skip the per-client limit.
	svc.app.Get("/api/health", svc.health)
	svc.app.Post("/api/stripe-webhook", svc.paymentHandler.Webhook)

	api := svc.app.Group("/api", limits.IPRateLimit())

	authGroup := api.Group("/auth", limits.AuthRateLimit())
	authGroup.Post("/register", svc.authHandler.Register)
	authGroup.Post("/login", svc.authHandler.Login)

	api.Get("/user/profile", auth.RequiredAuth(), svc.userHandler.GetProfile)

	quran := api.Group("/quran")
	quran.Get("/chapters", svc.quranHandler.GetChapters)
	quran.Get("/chapter/:id/verses", svc.quranHandler.GetVerses)
	quran.Get("/verse/:id/:verse/audio", svc.quranHandler.GetVerseAudio)
	quran.Get("/reciters", svc.quranHandler.GetReciters)

	learning := api.Group("/learning", auth.RequiredAuth())
	learning.Post("/session", svc.learningHandler.CreateSession)
	learning.Get("/progress", svc.learningHandler.GetProgress)
	learning.Post("/progress", svc.learningHandler.UpdateProgress)

	api.Get("/leaderboard", svc.leaderboardHandler.GetLeaderboard)

	api.Post("/create-payment-intent", auth.RequiredAuth(), svc.paymentHandler.CreatePaymentIntent)
	api.Get("/subscription-status", auth.RequiredAuth(), svc.paymentHandler.SubscriptionStatus)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseOK(c, "pong")
}

// @Summary Health check
// @Description Pings the database and, when configured, the cache
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=dto.HealthResponse}
// @Failure 503 {object} shared.Response
// @Router /api/health [get]
func (svc *HttpService) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	if err := svc.checkDependencies(ctx); err != nil {
		log.WithError(err).Warn("Health check failed")
		return shared.NewServiceUnavailableError(err, "Service unhealthy")
	}

	return shared.ResponseOK(c, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   shared.APIVersion,
	})
}

func (svc *HttpService) checkDependencies(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return svc.sqlSvc.Ping(gctx)
	})
	if svc.redisSvc != nil && svc.redisSvc.Enabled() {
		g.Go(func() error {
			return svc.redisSvc.Ping(gctx)
		})
	}

	return g.Wait()
}
