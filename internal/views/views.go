// Package views renders the dashboard page from embedded templates.
// All rendering decisions (placeholders, delta arrows, badge styles,
// citation availability) are made here in Go; the template only lays
// the prepared cells out.
package views

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/mauv0809/earnings-lens/internal/config"
	"github.com/mauv0809/earnings-lens/internal/dashboard"
	"github.com/mauv0809/earnings-lens/internal/models"
)

//go:embed dashboard.html
var files embed.FS

var page = template.Must(template.ParseFS(files, "dashboard.html"))

// PageData is everything the dashboard template needs.
type PageData struct {
	Sectors   []string
	Companies []models.Company
	Sector    string
	Ticker    string
	Company   string
	Tab       string
	Loading   bool
	Note      string
	CanUpload bool

	Metrics  MetricsView
	Guidance GuidanceView
	Chat     ChatView
	Viewer   ViewerView
}

// MetricsView is the prepared metrics table.
type MetricsView struct {
	Loading  bool
	Err      string
	Empty    bool
	Quarters []string
	Rows     []MetricRow
}

// MetricRow is one metric across all quarters.
type MetricRow struct {
	Name     string
	Unit     string
	Currency string
	Cells    []MetricCell
}

// MetricCell is one rendered table cell.
type MetricCell struct {
	Display  string
	Delta    *DeltaView
	Citation *CitationView
}

// DeltaView is a rendered period-over-period change.
type DeltaView struct {
	Label string
	Class string // up, down, flat
	Arrow string
}

// CitationView is a rendered citation control.
type CitationView struct {
	SourceFile string
	Page       int
	Quote      string
}

// GuidanceView is the prepared guidance accordion.
type GuidanceView struct {
	Loading  bool
	Err      string
	Empty    bool
	Quarters []string
	Themes   []ThemeView
}

// ThemeView is one collapsible theme group.
type ThemeView struct {
	Name     string
	Style    string
	Count    int
	Expanded bool
	Items    []GuidanceRow
}

// GuidanceRow is one subtheme across all quarters.
type GuidanceRow struct {
	Subtheme string
	Cells    [][]PointView
}

// PointView is one rendered guidance point.
type PointView struct {
	Text            string
	TargetDate      string
	Confidence      string
	ConfidenceStyle string
	Citation        *CitationView
}

// ChatView is the prepared conversation.
type ChatView struct {
	Busy     bool
	Messages []MessageView
}

// MessageView is one rendered chat turn.
type MessageView struct {
	Role      string
	Content   string
	IsError   bool
	Citations []CitationView
}

// ViewerView is the document viewer overlay.
type ViewerView struct {
	Open       bool
	FrameURL   string // pdf url with page fragment, empty when unavailable
	Page       int
	Quote      string
	SourceFile string
}

// Render writes the dashboard page.
func Render(w io.Writer, data PageData) error {
	return page.Execute(w, data)
}

// Build prepares the page view model from a controller snapshot.
func Build(cfg *config.Config, snap dashboard.Snapshot, canUpload bool) PageData {
	data := PageData{
		Sectors:   cfg.SectorNames(),
		Companies: cfg.CompaniesIn(snap.Sector),
		Sector:    snap.Sector,
		Ticker:    snap.Ticker,
		Company:   cfg.DisplayName(snap.Ticker),
		Tab:       snap.Tab,
		Loading:   snap.Loading(),
		Note:      snap.Note,
		CanUpload: canUpload,
		Metrics:   buildMetrics(cfg, snap),
		Guidance:  buildGuidance(snap),
		Chat:      buildChat(snap),
		Viewer:    buildViewer(snap),
	}
	return data
}

func buildMetrics(cfg *config.Config, snap dashboard.Snapshot) MetricsView {
	view := MetricsView{
		Loading:  snap.Metrics.Loading,
		Err:      snap.Metrics.Err,
		Quarters: snap.Quarters,
	}
	if snap.Metrics.Report == nil || len(snap.Metrics.Report.Metrics) == 0 {
		view.Empty = view.Err == "" && !view.Loading
		return view
	}

	visible := dashboard.VisibleMetrics(snap.Metrics.Report.Metrics, cfg.ExcludedMetrics)
	view.Empty = len(visible) == 0 && view.Err == "" && !view.Loading
	for _, series := range visible {
		row := MetricRow{
			Name:     series.Name,
			Unit:     series.Unit,
			Currency: series.Currency,
		}
		for i, quarter := range snap.Quarters {
			obs := series.ByQuarter[quarter]
			cell := MetricCell{Display: dashboard.FormatValue(obs, series.Currency)}
			if obs.HasValue() {
				if delta, ok := dashboard.DeltaFor(series, snap.Quarters, i); ok {
					cell.Delta = deltaView(delta)
				}
			}
			if obs.HasCitation() {
				cite := obs.Citation()
				cell.Citation = &CitationView{SourceFile: cite.SourceFile, Page: cite.PageNumber, Quote: cite.Quote}
			}
			row.Cells = append(row.Cells, cell)
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

func deltaView(d dashboard.Delta) *DeltaView {
	view := &DeltaView{Label: d.Label}
	switch d.Direction {
	case dashboard.DirectionUp:
		view.Class, view.Arrow = "up", "▲"
	case dashboard.DirectionDown:
		view.Class, view.Arrow = "down", "▼"
	default:
		view.Class, view.Arrow = "flat", "—"
	}
	return view
}

func buildGuidance(snap dashboard.Snapshot) GuidanceView {
	view := GuidanceView{
		Loading:  snap.Guidance.Loading,
		Err:      snap.Guidance.Err,
		Quarters: snap.Quarters,
	}
	if snap.Guidance.Report == nil || len(snap.Guidance.Report.Themes) == 0 {
		view.Empty = view.Err == "" && !view.Loading
		return view
	}

	for _, theme := range snap.Guidance.Report.Themes {
		tv := ThemeView{
			Name:     theme.Theme,
			Style:    dashboard.ThemeStyle(theme.Theme),
			Count:    len(theme.Items),
			Expanded: snap.Expanded[theme.Theme],
		}
		for _, item := range theme.Items {
			row := GuidanceRow{Subtheme: item.Subtheme}
			for _, quarter := range snap.Quarters {
				var cell []PointView
				for _, point := range item.ByQuarter[quarter] {
					pv := PointView{
						Text:       point.Text,
						TargetDate: point.TargetDate,
					}
					if point.Confidence != "" {
						pv.Confidence = string(point.Confidence)
						pv.ConfidenceStyle = dashboard.ConfidenceStyle(point.Confidence)
					}
					if point.HasCitation() {
						cite := point.Citation()
						pv.Citation = &CitationView{SourceFile: cite.SourceFile, Page: cite.PageNumber, Quote: cite.Quote}
					}
					cell = append(cell, pv)
				}
				row.Cells = append(row.Cells, cell)
			}
			tv.Items = append(tv.Items, row)
		}
		view.Themes = append(view.Themes, tv)
	}
	return view
}

func buildChat(snap dashboard.Snapshot) ChatView {
	view := ChatView{Busy: snap.ChatBusy}
	for _, msg := range snap.Chat {
		mv := MessageView{Role: msg.Role, Content: msg.Content, IsError: msg.IsError}
		for _, cite := range msg.Citations {
			if !cite.Complete() {
				continue
			}
			mv.Citations = append(mv.Citations, CitationView{
				SourceFile: cite.SourceFile,
				Page:       cite.PageNumber,
				Quote:      cite.Quote,
			})
		}
		view.Messages = append(view.Messages, mv)
	}
	return view
}

func buildViewer(snap dashboard.Snapshot) ViewerView {
	view := ViewerView{
		Open:       snap.Viewer.Open,
		Page:       snap.Viewer.PageNumber,
		Quote:      snap.Viewer.Quote,
		SourceFile: snap.Viewer.SourceFile,
	}
	if view.Page < 1 {
		view.Page = 1
	}
	if snap.Viewer.PDFURL != "" {
		// The embedding viewer understands the #page fragment.
		view.FrameURL = snap.Viewer.PDFURL + "#page=" + strconv.Itoa(view.Page)
	}
	return view
}
