// Package httpapi serves the plain HTTP routes that sit beside the RPC
// services: health checks, the messaging webhook and file exports.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/famledger/internal/ai"
	"github.com/mmynk/famledger/internal/auth"
	"github.com/mmynk/famledger/internal/metrics"
	"github.com/mmynk/famledger/internal/storage"
)

// Config holds the router's dependencies.
type Config struct {
	Store storage.Store
	JWT   *auth.JWTManager

	// Processor handles webhook messages. Nil disables the webhook.
	Processor *ai.Processor

	// WebhookSecret must match the X-Telegram-Bot-Api-Secret-Token header.
	WebhookSecret string

	// Metrics, when set, is exposed at /metrics.
	Metrics *metrics.Metrics

	Now func() time.Time
}

type handler struct {
	store         storage.Store
	jwt           *auth.JWTManager
	processor     *ai.Processor
	webhookSecret string
	now           func() time.Time
}

// NewRouter builds the gin engine.
func NewRouter(cfg Config) *gin.Engine {
	h := &handler{
		store:         cfg.Store,
		jwt:           cfg.JWT,
		processor:     cfg.Processor,
		webhookSecret: cfg.WebhookSecret,
		now:           cfg.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	r.POST("/webhooks/messaging", h.messagingWebhook)

	export := r.Group("/export", h.requireUser, h.requireSubscription)
	export.GET("/transactions.csv", h.exportCSV)
	export.GET("/transactions.xlsx", h.exportXLSX)

	return r
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
