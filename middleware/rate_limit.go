package middleware

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	log "github.com/sirupsen/logrus"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/services"
	"github.com/AmbHasan/My-quran-journey/shared"
)

const (
	EndpointGeneral = "api_general"
	EndpointAuth    = "auth"

	defaultMaxKeys = 10000
)

type RateLimitMiddleware struct {
	context.DefaultService

	limiters  map[string]*Limiter
	scheduler *gocron.Scheduler
	maxKeys   int
}

func NewRateLimitMiddleware(maxKeys int, now func() time.Time) *RateLimitMiddleware {
	svc := &RateLimitMiddleware{maxKeys: maxKeys}
	svc.initLimiters(now)
	return svc
}

func (svc RateLimitMiddleware) Id() string {
	return shared.RATE_LIMIT_MIDDLEWARE_SVC
}

func (svc *RateLimitMiddleware) Configure(ctx *context.Context) error {
	svc.maxKeys = defaultMaxKeys
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv("RATE_LIMIT_MAX_KEYS"))); err == nil && v > 0 {
		svc.maxKeys = v
	}
	svc.initLimiters(time.Now)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitMiddleware) initLimiters(now func() time.Time) {
	configs := []RateLimitConfig{
		{
			EndpointType: EndpointGeneral,
			MaxRequests:  100,
			WindowSize:   time.Hour,
			Description:  "General API rate limit per IP",
		},
		{
			EndpointType: EndpointAuth,
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			Description:  "Registration and login attempts per IP",
		},
	}

	svc.limiters = make(map[string]*Limiter, len(configs))
	for _, cfg := range configs {
		svc.limiters[cfg.EndpointType] = NewLimiter(cfg, svc.maxKeys, now)
	}
}

func (svc *RateLimitMiddleware) Start() error {
	svc.scheduler = gocron.NewScheduler(time.UTC)
	if _, err := svc.scheduler.Every(1).Minute().Do(svc.Sweep); err != nil {
		return err
	}
	svc.scheduler.StartAsync()
	return nil
}

func (svc *RateLimitMiddleware) Shutdown() {
	if svc.scheduler != nil {
		svc.scheduler.Stop()
	}
}

// Sweep releases keys with no requests left inside their window.
func (svc *RateLimitMiddleware) Sweep() {
	for endpointType, limiter := range svc.limiters {
		if removed := limiter.Sweep(); removed > 0 {
			log.WithFields(log.Fields{
				"endpoint_type": endpointType,
				"removed":       removed,
				"remaining":     limiter.Len(),
			}).Debug("Rate limit sweep")
		}
	}
}

// IPRateLimit applies general rate limiting by IP address
func (svc *RateLimitMiddleware) IPRateLimit() fiber.Handler {
	return svc.RateLimit(EndpointGeneral)
}

// AuthRateLimit guards registration and login.
func (svc *RateLimitMiddleware) AuthRateLimit() fiber.Handler {
	return svc.RateLimit(EndpointAuth)
}

func (svc *RateLimitMiddleware) RateLimit(endpointType string) fiber.Handler {
	limiter, ok := svc.limiters[endpointType]
	if !ok {
		log.WithField("endpoint_type", endpointType).Warn("No rate limit configured")
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		// c.IP() may point into the request buffer; the key outlives it.
		info := limiter.Allow(utils.CopyString(c.IP()))

		svc.addRateLimitHeaders(c, info)

		if !info.Allowed {
			services.RateLimitRejectionsTotal.WithLabelValues(endpointType).Inc()
			return svc.handleRateLimitExceeded(c, endpointType, info)
		}

		return c.Next()
	}
}

func (svc *RateLimitMiddleware) addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info == nil {
		return
	}

	if info.Remaining >= 0 {
		c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	}

	if info.ResetTime != nil {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}

	if info.BlockedUntil != nil {
		retryAfter := int(time.Until(*info.BlockedUntil).Seconds())
		if retryAfter > 0 {
			c.Set("Retry-After", strconv.Itoa(retryAfter))
		}
	}
}

func (svc *RateLimitMiddleware) handleRateLimitExceeded(c *fiber.Ctx, endpointType string, info *dto.RateLimitInfo) error {
	message := getRateLimitMessage(endpointType)

	response := map[string]interface{}{
		"error":   "Rate limit exceeded",
		"message": message,
	}

	if info.BlockedUntil != nil {
		response["blocked_until"] = info.BlockedUntil.Unix()
		response["retry_after"] = int(time.Until(*info.BlockedUntil).Seconds())
	}

	log.WithFields(log.Fields{
		"endpoint_type": endpointType,
		"ip":            c.IP(),
	}).Warn("Rate limit exceeded")

	return shared.NewTooManyRequestsError(shared.ErrRateLimited, message, response)
}

func getRateLimitMessage(endpointType string) string {
	switch endpointType {
	case EndpointAuth:
		return "Too many authentication attempts. Please try again later."
	case EndpointGeneral:
		return "Rate limit exceeded. Please try again later."
	}
	return "Too many requests. Please try again later."
}
