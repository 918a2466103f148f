package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mauv0809/earnings-lens/internal/config"
	"github.com/mauv0809/earnings-lens/internal/dashboard"
	"github.com/mauv0809/earnings-lens/internal/gateway"
	"github.com/mauv0809/earnings-lens/internal/views"
)

const sessionCookie = "el_session"

// Handler serves the dashboard page and its actions.
type Handler struct {
	cfg     *config.Config
	store   *dashboard.Store
	gateway *gateway.Client
}

// New creates the handler set.
func New(cfg *config.Config, gw *gateway.Client, store *dashboard.Store) *Handler {
	return &Handler{
		cfg:     cfg,
		store:   store,
		gateway: gw,
	}
}

// Register wires all routes onto the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/", h.Index)

	e.POST("/select/sector", h.SelectSector)
	e.POST("/select/ticker", h.SelectTicker)
	e.POST("/refresh", h.Refresh)
	e.POST("/tab", h.SelectTab)
	e.POST("/guidance/toggle", h.ToggleTheme)
	e.POST("/citation/open", h.OpenCitation)
	e.POST("/viewer/close", h.CloseViewer)
	e.POST("/chat", h.Chat)
	e.POST("/upload", h.Upload)

	e.GET("/export/metrics.csv", h.ExportMetrics)
	e.GET("/export/guidance.csv", h.ExportGuidance)
}

// Health returns application health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Index renders the dashboard for the caller's session.
func (h *Handler) Index(c echo.Context) error {
	ctrl := h.controller(c)
	data := views.Build(h.cfg, ctrl.Snapshot(), h.cfg.UploadEndpoint != "")

	var buf bytes.Buffer
	if err := views.Render(&buf, data); err != nil {
		log.Printf("Error rendering dashboard: %v", err)
		return c.String(http.StatusInternalServerError, "render error")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// controller returns the session's controller, creating a session when
// the cookie is absent or expired.
func (h *Handler) controller(c echo.Context) *dashboard.Controller {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if ctrl, ok := h.store.Get(cookie.Value); ok {
			return ctrl
		}
	}

	id, ctrl := h.store.Create()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctrl
}

func redirectHome(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}
