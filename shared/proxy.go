package shared

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// WithTrustedProxies makes c.IP() read X-Forwarded-For only when the peer is
// one of proxies (addresses or CIDR ranges). Any other peer is keyed by its
// own address, whatever headers it sends.
func WithTrustedProxies(cfg fiber.Config, proxies []string) fiber.Config {
	cfg.ProxyHeader = fiber.HeaderXForwardedFor
	cfg.EnableTrustedProxyCheck = true
	cfg.EnableIPValidation = true
	cfg.TrustedProxies = proxies
	return cfg
}

// TrustedProxiesFromEnv reads the comma separated TRUSTED_PROXIES list.
func TrustedProxiesFromEnv() []string {
	var proxies []string
	for _, p := range strings.Split(os.Getenv("TRUSTED_PROXIES"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}
