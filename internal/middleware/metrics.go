package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ImageStoreOps counts image store operations by kind and outcome.
	ImageStoreOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_image_store_operations_total",
		Help: "Total image store operations by operation and result",
	}, []string{"operation", "result"})

	// AuthTokensIssued counts issued bearer tokens by flow.
	AuthTokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_auth_tokens_issued_total",
		Help: "Total bearer tokens issued by flow (register or login)",
	}, []string{"flow"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP metrics collection handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
