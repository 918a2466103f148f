package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Company is a listed company known to the dashboard. Identity is the
// ticker; the set of companies is static configuration, never mutated at
// runtime.
type Company struct {
	Ticker string `json:"ticker" yaml:"ticker"`
	Name   string `json:"name" yaml:"name"`
	Sector string `json:"sector" yaml:"-"`
}

// Label returns the display name, falling back to the ticker.
func (c Company) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Ticker
}

// Observation is one metric value for one quarter as extracted from a
// source document. Value is set when the backend sent something numeric;
// Text always carries the value as received, for rendering and export.
type Observation struct {
	Value      *decimal.Decimal `json:"value,omitempty"`
	Text       string           `json:"text,omitempty"`
	SourceFile string           `json:"source_file,omitempty"`
	PageNumber int              `json:"page_number,omitempty"`
	Quote      string           `json:"quote,omitempty"`
}

// HasValue reports whether the cell holds anything renderable. Empty
// cells render as a placeholder dash, never blank.
func (o Observation) HasValue() bool {
	return o.Value != nil || strings.TrimSpace(o.Text) != ""
}

// HasCitation reports whether the observation carries a complete
// document reference. Source file and page are both required; either
// alone degrades to "no citation".
func (o Observation) HasCitation() bool {
	return o.SourceFile != "" && o.PageNumber > 0
}

// Citation returns the observation's document reference.
func (o Observation) Citation() Citation {
	return Citation{SourceFile: o.SourceFile, PageNumber: o.PageNumber, Quote: o.Quote}
}

// MetricSeries is one metric row: per-quarter observations keyed by the
// opaque quarter label.
type MetricSeries struct {
	Name      string                 `json:"metric_name"`
	Unit      string                 `json:"unit,omitempty"`
	Currency  string                 `json:"currency,omitempty"`
	ByQuarter map[string]Observation `json:"by_quarter"`
}

// MetricsReport is the decoded metrics-compare response. Quarters, when
// present, is the backend's authoritative display order (newest first).
type MetricsReport struct {
	Quarters []string       `json:"quarters,omitempty"`
	Metrics  []MetricSeries `json:"metrics"`
}

// ConfidenceLevel tags a guidance point with management's strength of
// commitment. Unknown values are preserved and render with the neutral
// badge.
type ConfidenceLevel string

const (
	ConfidenceCommitted ConfidenceLevel = "COMMITTED"
	ConfidenceExpected  ConfidenceLevel = "EXPECTED"
	ConfidencePlanned   ConfidenceLevel = "PLANNED"
	ConfidenceOnTrack   ConfidenceLevel = "ON_TRACK"
	ConfidenceAchieved  ConfidenceLevel = "ACHIEVED"
)

// Known reports whether the level is one of the enumerated values.
func (l ConfidenceLevel) Known() bool {
	switch ConfidenceLevel(strings.ToUpper(string(l))) {
	case ConfidenceCommitted, ConfidenceExpected, ConfidencePlanned, ConfidenceOnTrack, ConfidenceAchieved:
		return true
	}
	return false
}

// GuidancePoint is one forward-looking statement within a quarter.
type GuidancePoint struct {
	Text       string          `json:"guidance_text"`
	TargetDate string          `json:"target_date,omitempty"`
	Confidence ConfidenceLevel `json:"confidence_level,omitempty"`
	SourceFile string          `json:"source_file,omitempty"`
	PageNumber int             `json:"page_number,omitempty"`
	Quote      string          `json:"quote,omitempty"`
}

// HasCitation reports whether the point carries a complete reference.
func (p GuidancePoint) HasCitation() bool {
	return p.SourceFile != "" && p.PageNumber > 0
}

// Citation returns the point's document reference.
func (p GuidancePoint) Citation() Citation {
	return Citation{SourceFile: p.SourceFile, PageNumber: p.PageNumber, Quote: p.Quote}
}

// GuidanceItem groups guidance points for one subtheme across quarters.
// A quarter mapping to an empty slice is the common case and renders as
// an explicit empty marker.
type GuidanceItem struct {
	Subtheme  string                     `json:"subtheme"`
	ByQuarter map[string][]GuidancePoint `json:"by_quarter"`
}

// GuidanceTheme is a thematic group of guidance items. The theme tag set
// is open-ended; unrecognized tags fall back to an OTHER rendering.
type GuidanceTheme struct {
	Theme string         `json:"theme"`
	Items []GuidanceItem `json:"items"`
}

// GuidanceReport is the decoded guidance-compare response.
type GuidanceReport struct {
	Quarters []string        `json:"quarters,omitempty"`
	Themes   []GuidanceTheme `json:"themes"`
}

// Citation is a (document, page, quote) reference substantiating a
// displayed figure or statement, normalized from the heterogeneous field
// names the backends use. Any subset of fields may be absent.
type Citation struct {
	SourceFile string `json:"source_file,omitempty"`
	PageNumber int    `json:"page_number,omitempty"`
	Quote      string `json:"quote,omitempty"`
}

// Complete reports whether the citation can be offered to the user.
func (c Citation) Complete() bool {
	return c.SourceFile != "" && c.PageNumber > 0
}

// ChatMessage is one turn in the document Q&A conversation.
type ChatMessage struct {
	Role      string     `json:"role"` // "user" or "assistant"
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	IsError   bool       `json:"is_error,omitempty"`
}

// ViewerState is the single document-viewer overlay. One instance exists
// per session; opening a citation while open replaces the payload in
// place, and only an explicit close returns it to the closed state.
type ViewerState struct {
	Open       bool   `json:"open"`
	PDFURL     string `json:"pdf_url,omitempty"`
	PageNumber int    `json:"page_number"`
	Quote      string `json:"quote,omitempty"`
	SourceFile string `json:"source_file,omitempty"`
}
