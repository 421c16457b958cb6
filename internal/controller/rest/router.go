package rest

import (
	"time"

	"paymentrelay/internal/controller/rest/handlers"
	"paymentrelay/pkg/health"
	"paymentrelay/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readinessTimeout = 5 * time.Second

type Router struct {
	callback handlers.CallbackHandler
	order    handlers.OrderHandler
	payment  handlers.PaymentHandler

	health *health.Registry
}

func NewRouter(
	callback handlers.CallbackHandler,
	order handlers.OrderHandler,
	payment handlers.PaymentHandler,
	healthRegistry *health.Registry,
) *Router {
	return &Router{
		callback: callback,
		order:    order,
		payment:  payment,
		health:   healthRegistry,
	}
}

func (r *Router) SetUp(engine *gin.Engine) {
	engine.POST("/api/callback", r.callback.Notify)

	engine.GET("/orders", r.order.Filter)
	engine.GET("/orders/:order_id", r.order.Get)
	engine.PUT("/orders/:order_id/status", r.order.UpdateStatus)

	engine.GET("/payments/:payment_id/status", r.payment.GetStatus)

	engine.GET("/healthz", health.LivenessHandler())
	engine.GET("/readyz", health.ReadinessHandler(r.health, readinessTimeout))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}
