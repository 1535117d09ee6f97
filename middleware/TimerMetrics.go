package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// TimerMetrics middleware tracks request duration and logs it
func TimerMetrics(c *fiber.Ctx) error {
	startTime := time.Now()

	err := c.Next()

	duration := time.Since(startTime)

	method := c.Method()
	path := c.Path()
	statusCode := c.Response().StatusCode()

	log.Printf("[METRICS] %s %s - Status: %d - Duration: %dms (%.3fs)",
		method, path, statusCode, duration.Milliseconds(), duration.Seconds())

	return err
}
