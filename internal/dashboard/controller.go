// Package dashboard holds the per-session view state of the analysis
// dashboard: company selection, the two independent data loads, the
// guidance expand state, the chat transcript and the single document
// viewer. Handlers call controller methods and re-render; no view state
// lives anywhere else.
package dashboard

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mauv0809/earnings-lens/internal/citations"
	"github.com/mauv0809/earnings-lens/internal/config"
	"github.com/mauv0809/earnings-lens/internal/models"
)

// Fetcher is the slice of the gateway the controller needs.
type Fetcher interface {
	FetchMetrics(ctx context.Context, ticker string) (*models.MetricsReport, error)
	FetchGuidance(ctx context.Context, ticker string) (*models.GuidanceReport, error)
	Ask(ctx context.Context, ticker, question string) (string, []models.Citation, error)
}

// Tabs of the dashboard page.
const (
	TabMetrics  = "metrics"
	TabGuidance = "guidance"
	TabChat     = "chat"
)

// MetricsSection tracks one data load independently of the other: its
// own loading flag, its own error, its own data.
type MetricsSection struct {
	Loading bool
	Err     string
	Report  *models.MetricsReport
}

// GuidanceSection mirrors MetricsSection for the guidance load.
type GuidanceSection struct {
	Loading bool
	Err     string
	Report  *models.GuidanceReport
}

// Controller owns the view state for one analyst session. All methods
// are safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	cfg      *config.Config
	fetcher  Fetcher
	resolver citations.Resolver
	timeout  time.Duration

	sector     string
	ticker     string
	tab        string
	generation uint64

	metrics  MetricsSection
	guidance GuidanceSection

	expanded map[string]bool

	chat     []models.ChatMessage
	chatBusy bool
	chatGen  uint64

	viewer     models.ViewerState
	uploadNote string
}

// NewController creates a controller seeded with the first configured
// sector and its first ticker, and kicks off the initial data load.
func NewController(cfg *config.Config, fetcher Fetcher) *Controller {
	c := &Controller{
		cfg:      cfg,
		fetcher:  fetcher,
		resolver: citations.Resolver{BaseURL: cfg.StorageBaseURL},
		timeout:  cfg.RequestTimeout,
		tab:      TabMetrics,
		expanded: make(map[string]bool),
		viewer:   models.ViewerState{PageNumber: 1},
	}
	if c.timeout <= 0 {
		c.timeout = 30 * time.Second
	}
	if names := cfg.SectorNames(); len(names) > 0 {
		c.sector = names[0]
		c.ticker = cfg.FirstTicker(c.sector)
	}

	c.mu.Lock()
	c.resetChatLocked()
	c.startLoadLocked()
	c.mu.Unlock()
	return c
}

// SelectSector switches the sector scope. If the current ticker is not
// in the new sector's list, it is replaced with the list's first member,
// or cleared when the sector is empty.
func (c *Controller) SelectSector(sector string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cfg.HasSector(sector) {
		return
	}
	c.sector = sector
	if !c.cfg.HasTicker(sector, c.ticker) {
		c.ticker = c.cfg.FirstTicker(sector)
		c.resetChatLocked()
	}
	c.startLoadLocked()
}

// SelectTicker switches the selected company. Tickers outside the
// current sector's list are invalid and ignored. The conversation is
// scoped to the company, so it resets to a fresh greeting.
func (c *Controller) SelectTicker(ticker string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cfg.HasTicker(c.sector, ticker) {
		return
	}
	if ticker != c.ticker {
		c.ticker = ticker
		c.resetChatLocked()
	}
	c.startLoadLocked()
}

// Refresh re-issues both fetches for the current selection.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLoadLocked()
}

// startLoadLocked dispatches the two independent fetches. Each load is
// tagged with the selection generation at dispatch time; responses that
// arrive after the selection has moved on are discarded, so the display
// always corresponds to the most recent selection even under
// overlapping in-flight requests.
func (c *Controller) startLoadLocked() {
	c.generation++
	gen := c.generation
	ticker := c.ticker

	if ticker == "" {
		c.metrics = MetricsSection{}
		c.guidance = GuidanceSection{}
		return
	}

	c.metrics.Loading = true
	c.metrics.Err = ""
	c.guidance.Loading = true
	c.guidance.Err = ""

	go c.fetchMetrics(gen, ticker)
	go c.fetchGuidance(gen, ticker)
}

func (c *Controller) fetchMetrics(gen uint64, ticker string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	report, err := c.fetcher.FetchMetrics(ctx, ticker)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return // stale response for an abandoned selection
	}
	c.metrics.Loading = false
	if err != nil {
		log.Printf("Error fetching metrics for %s: %v", ticker, err)
		c.metrics.Err = err.Error()
		c.metrics.Report = nil
		return
	}
	c.metrics.Err = ""
	c.metrics.Report = report
}

func (c *Controller) fetchGuidance(gen uint64, ticker string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	report, err := c.fetcher.FetchGuidance(ctx, ticker)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	c.guidance.Loading = false
	if err != nil {
		log.Printf("Error fetching guidance for %s: %v", ticker, err)
		c.guidance.Err = err.Error()
		c.guidance.Report = nil
		return
	}
	c.guidance.Err = ""
	c.guidance.Report = report

	// Fresh data resets the accordion: first theme expanded, rest
	// collapsed.
	c.expanded = make(map[string]bool, len(report.Themes))
	for i, theme := range report.Themes {
		c.expanded[theme.Theme] = i == 0
	}
}

// SelectTab switches the visible section. Unknown tabs are ignored.
func (c *Controller) SelectTab(tab string) {
	switch tab {
	case TabMetrics, TabGuidance, TabChat:
	default:
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = tab
}

// ToggleTheme flips one theme's expand state independently of the
// others.
func (c *Controller) ToggleTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expanded[theme] = !c.expanded[theme]
}

// OpenCitation resolves a citation and opens the document viewer on it.
// If the viewer is already open the payload is replaced in place; there
// is no intermediate closed state and no stacking.
func (c *Controller) OpenCitation(cite models.Citation) {
	ref := c.resolver.Resolve(cite)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewer = models.ViewerState{
		Open:       true,
		PDFURL:     ref.PDFURL,
		PageNumber: ref.PageNumber,
		Quote:      ref.Quote,
		SourceFile: ref.SourceFile,
	}
}

// CloseViewer closes the overlay. Only an explicit close transitions the
// viewer back; selection changes leave it alone.
func (c *Controller) CloseViewer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewer.Open = false
}

// SendChat sends one question to the chat backend. Blank input or an
// in-flight request make it a no-op, so sends are strictly serialized.
// The user's message is appended before the request goes out and is
// never dropped; failures append an error-flagged assistant message.
func (c *Controller) SendChat(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	c.mu.Lock()
	if c.chatBusy || c.ticker == "" {
		c.mu.Unlock()
		return
	}
	c.chatBusy = true
	ticker := c.ticker
	gen := c.chatGen
	c.chat = append(c.chat, models.ChatMessage{Role: "user", Content: text})
	c.mu.Unlock()

	answer, cites, err := c.fetcher.Ask(ctx, ticker, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.chatBusy = false
	if gen != c.chatGen {
		return // conversation was reset while the request was in flight
	}
	if err != nil {
		log.Printf("Error answering question for %s: %v", ticker, err)
		c.chat = append(c.chat, models.ChatMessage{
			Role:    "assistant",
			Content: fmt.Sprintf("Sorry, I ran into an error answering that: %v", err),
			IsError: true,
		})
		return
	}
	c.chat = append(c.chat, models.ChatMessage{Role: "assistant", Content: answer, Citations: cites})
}

// resetChatLocked discards the conversation and seeds the greeting for
// the current ticker. No history survives a company switch.
func (c *Controller) resetChatLocked() {
	c.chatGen++
	subject := "the selected company"
	if c.ticker != "" {
		subject = c.cfg.DisplayName(c.ticker)
	}
	c.chat = []models.ChatMessage{{
		Role: "assistant",
		Content: fmt.Sprintf("Hello! I can answer questions about %s based on their ingested earnings documents. "+
			"Try asking about revenue trends, expansion plans, operational metrics, or management guidance.", subject),
	}}
}

// SetUploadNote records a transient status message for the upload
// control. It is replaced by the next upload attempt.
func (c *Controller) SetUploadNote(note string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploadNote = note
}

// Snapshot is a point-in-time copy of the controller state for
// rendering. Reports are shared pointers but are never mutated after
// they land.
type Snapshot struct {
	Sector   string
	Ticker   string
	Tab      string
	Metrics  MetricsSection
	Guidance GuidanceSection
	Quarters []string
	Expanded map[string]bool
	Chat     []models.ChatMessage
	ChatBusy bool
	Viewer   models.ViewerState
	Note     string
}

// Loading reports whether either section is still in flight.
func (s Snapshot) Loading() bool {
	return s.Metrics.Loading || s.Guidance.Loading
}

// Snapshot returns a consistent copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Sector:   c.sector,
		Ticker:   c.ticker,
		Tab:      c.tab,
		Metrics:  c.metrics,
		Guidance: c.guidance,
		Quarters: c.quartersLocked(),
		Expanded: make(map[string]bool, len(c.expanded)),
		Chat:     append([]models.ChatMessage(nil), c.chat...),
		ChatBusy: c.chatBusy,
		Viewer:   c.viewer,
		Note:     c.uploadNote,
	}
	for k, v := range c.expanded {
		snap.Expanded[k] = v
	}
	return snap
}

// quartersLocked returns the display quarter order: backend-supplied
// when present (metrics wins over guidance), else the configured
// fallback. Newest first throughout.
func (c *Controller) quartersLocked() []string {
	if c.metrics.Report != nil && len(c.metrics.Report.Quarters) > 0 {
		return c.metrics.Report.Quarters
	}
	if c.guidance.Report != nil && len(c.guidance.Report.Quarters) > 0 {
		return c.guidance.Report.Quarters
	}
	return c.cfg.DefaultQuarters
}
