package http

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/infrastructure/telegram"
	"github.com/shoplens/backend/internal/metrics"
	"github.com/shoplens/backend/internal/usecase"
)

// Defaults applied when /go parameters are missing or malformed.
const (
	defaultRedirectDomain = "www.amazon.com"
	defaultUserID         = "anon"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	bot    *usecase.BotService
	links  *usecase.LinkBuilder
	clicks domain.ClickStore
}

// NewHandler creates a new HTTP handler.
func NewHandler(bot *usecase.BotService, links *usecase.LinkBuilder, clicks domain.ClickStore) *Handler {
	return &Handler{
		bot:    bot,
		links:  links,
		clicks: clicks,
	}
}

// Root answers liveness probes with a trivial body.
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shoplens-backend",
		"version": "1.0.0",
	})
}

// Redirect handles /go: it records the click and forwards the user to the
// marketplace search page. Missing parameters fall back to defaults, so a
// mangled link still lands somewhere sensible. A ledger persistence
// failure never blocks the redirect.
func (h *Handler) Redirect(c *gin.Context) {
	req := parseRedirectRequest(c)

	if h.clicks == nil {
		c.String(http.StatusInternalServerError, "click ledger unavailable")
		return
	}
	if err := h.clicks.Increment(req.UserID, req.Product); err != nil {
		log.Printf("[HTTP] click increment failed uid=%s: %v", req.UserID, err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	metrics.RedirectsServed.WithLabelValues(req.Domain).Inc()
	c.Redirect(http.StatusFound, h.links.SearchLink(req.Product, req.Domain))
}

func parseRedirectRequest(c *gin.Context) domain.RedirectRequest {
	req := domain.RedirectRequest{
		Product: c.Query("product"),
		Domain:  c.Query("domain"),
		UserID:  c.Query("uid"),
	}
	if req.Domain == "" {
		req.Domain = defaultRedirectDomain
	}
	if req.UserID == "" {
		req.UserID = defaultUserID
	}
	return req
}

// Clicks returns the full ledger snapshot as JSON.
func (h *Handler) Clicks(c *gin.Context) {
	if h.clicks == nil {
		c.String(http.StatusInternalServerError, "click ledger unavailable")
		return
	}
	c.JSON(http.StatusOK, h.clicks.Snapshot())
}

// Webhook accepts Telegram update payloads. Processing happens off the
// request goroutine: the platform retries on anything but a fast 200, and
// an identification round can take longer than its patience.
func (h *Handler) Webhook(c *gin.Context) {
	var upd tgbotapi.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	if h.bot != nil {
		go h.bot.Handle(context.Background(), telegram.FromUpdate(upd))
	}
	c.Status(http.StatusOK)
}
