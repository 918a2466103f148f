package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mauv0809/earnings-lens/internal/dashboard"
	"github.com/mauv0809/earnings-lens/internal/export"
	"github.com/mauv0809/earnings-lens/internal/models"
)

// ExportMetrics handles GET /export/metrics.csv. Only currently visible
// rows are exported: the metric block-list applies to downloads too.
func (h *Handler) ExportMetrics(c echo.Context) error {
	snap := h.controller(c).Snapshot()

	var metrics []models.MetricSeries
	if snap.Metrics.Report != nil {
		metrics = dashboard.VisibleMetrics(snap.Metrics.Report.Metrics, h.cfg.ExcludedMetrics)
	}

	data, err := export.MetricsCSV(metrics, snap.Quarters)
	if err != nil {
		log.Printf("Error exporting metrics: %v", err)
		return c.String(http.StatusInternalServerError, "export error")
	}
	return h.sendCSV(c, exportName(snap.Ticker, "metrics"), data)
}

// ExportGuidance handles GET /export/guidance.csv.
func (h *Handler) ExportGuidance(c echo.Context) error {
	snap := h.controller(c).Snapshot()

	var themes []models.GuidanceTheme
	if snap.Guidance.Report != nil {
		themes = snap.Guidance.Report.Themes
	}

	data, err := export.GuidanceCSV(themes, snap.Quarters)
	if err != nil {
		log.Printf("Error exporting guidance: %v", err)
		return c.String(http.StatusInternalServerError, "export error")
	}
	return h.sendCSV(c, exportName(snap.Ticker, "guidance"), data)
}

func (h *Handler) sendCSV(c echo.Context, filename string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

func exportName(ticker, kind string) string {
	if ticker == "" {
		return kind + ".csv"
	}
	return fmt.Sprintf("%s_%s.csv", ticker, kind)
}
