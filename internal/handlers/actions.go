package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mauv0809/earnings-lens/internal/dashboard"
	"github.com/mauv0809/earnings-lens/internal/models"
)

// SelectSector handles POST /select/sector.
func (h *Handler) SelectSector(c echo.Context) error {
	h.controller(c).SelectSector(c.FormValue("sector"))
	return redirectHome(c)
}

// SelectTicker handles POST /select/ticker.
func (h *Handler) SelectTicker(c echo.Context) error {
	h.controller(c).SelectTicker(c.FormValue("ticker"))
	return redirectHome(c)
}

// Refresh handles POST /refresh: re-issues both fetches for the current
// selection.
func (h *Handler) Refresh(c echo.Context) error {
	h.controller(c).Refresh()
	return redirectHome(c)
}

// SelectTab handles POST /tab.
func (h *Handler) SelectTab(c echo.Context) error {
	h.controller(c).SelectTab(c.FormValue("tab"))
	return redirectHome(c)
}

// ToggleTheme handles POST /guidance/toggle.
func (h *Handler) ToggleTheme(c echo.Context) error {
	ctrl := h.controller(c)
	if theme := c.FormValue("theme"); theme != "" {
		ctrl.SelectTab(dashboard.TabGuidance)
		ctrl.ToggleTheme(theme)
	}
	return redirectHome(c)
}

// OpenCitation handles POST /citation/open: any citation click from any
// section routes here and into the shared viewer.
func (h *Handler) OpenCitation(c echo.Context) error {
	page, _ := strconv.Atoi(c.FormValue("page_number"))
	h.controller(c).OpenCitation(models.Citation{
		SourceFile: c.FormValue("source_file"),
		PageNumber: page,
		Quote:      c.FormValue("quote"),
	})
	return redirectHome(c)
}

// CloseViewer handles POST /viewer/close.
func (h *Handler) CloseViewer(c echo.Context) error {
	h.controller(c).CloseViewer()
	return redirectHome(c)
}

// Chat handles POST /chat. The send is serialized by the controller; a
// blank message is a no-op.
func (h *Handler) Chat(c echo.Context) error {
	ctrl := h.controller(c)
	ctrl.SelectTab(dashboard.TabChat)
	ctrl.SendChat(c.Request().Context(), c.FormValue("message"))
	return redirectHome(c)
}
