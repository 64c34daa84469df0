package api

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RedirectToHTTPS answers plain HTTP requests with a 301 to the same URL on
// https. Requests whose Host matches one of ignoreHosts pass through, as do
// requests already on TLS or forwarded with X-Forwarded-Proto: https.
func RedirectToHTTPS(ignoreHosts []string, log *zap.Logger) fiber.Handler {
	patterns := make([]*regexp.Regexp, 0, len(ignoreHosts))
	for _, host := range ignoreHosts {
		re, err := regexp.Compile(host)
		if err != nil {
			log.Warn("Ignoring invalid HTTPS redirect host pattern",
				zap.String("pattern", host),
				zap.Error(err))
			continue
		}
		patterns = append(patterns, re)
	}

	return func(c *fiber.Ctx) error {
		if c.Protocol() == "https" {
			return c.Next()
		}

		host := c.Hostname()
		for _, re := range patterns {
			if re.MatchString(host) {
				return c.Next()
			}
		}

		return c.Redirect("https://"+host+c.OriginalURL(), fiber.StatusMovedPermanently)
	}
}
