// Package citations normalizes the document references returned by the
// various backend endpoints and resolves them to viewable PDF locations.
// The backends disagree on field names for the same semantic fields, so
// the alias lists live here and nowhere else.
package citations

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mauv0809/earnings-lens/internal/models"
)

// Accepted aliases per logical field, in priority order.
var (
	sourceFileAliases = []string{"source_file", "source", "sourceFile", "source_filename"}
	pageNumberAliases = []string{"page_number", "page", "pageNumber", "guidance_page_number"}
	quoteAliases      = []string{"exact_quote", "quote", "text"}
)

// Normalize maps a raw backend object onto a Citation. Any subset of
// fields may be absent; absent fields stay zero.
func Normalize(raw map[string]any) models.Citation {
	return models.Citation{
		SourceFile: firstString(raw, sourceFileAliases),
		PageNumber: firstInt(raw, pageNumberAliases),
		Quote:      firstString(raw, quoteAliases),
	}
}

// firstString returns the first alias present with a non-empty string
// value.
func firstString(raw map[string]any, aliases []string) string {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// firstInt returns the first alias present with a usable integer value.
// JSON numbers arrive as float64; some backends send pages as strings.
func firstInt(raw map[string]any, aliases []string) int {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			if n > 0 {
				return int(n)
			}
		case int:
			if n > 0 {
				return n
			}
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && parsed > 0 {
				return parsed
			}
		}
	}
	return 0
}

// Ref is a resolved, viewable document reference. PDFURL is empty when
// the source file is unknown or no storage base is configured; the
// viewer then shows its "document not available" fallback.
type Ref struct {
	PDFURL     string
	PageNumber int
	Quote      string
	SourceFile string
}

// Resolver builds document URLs against the configured storage base.
type Resolver struct {
	BaseURL string
}

// Resolve maps a citation to a viewable reference. The page number
// defaults to 1; the filename is percent-encoded defensively.
func (r Resolver) Resolve(c models.Citation) Ref {
	ref := Ref{
		PageNumber: c.PageNumber,
		Quote:      c.Quote,
		SourceFile: c.SourceFile,
	}
	if ref.PageNumber < 1 {
		ref.PageNumber = 1
	}
	if c.SourceFile != "" && r.BaseURL != "" {
		ref.PDFURL = strings.TrimSuffix(r.BaseURL, "/") + "/" + url.PathEscape(c.SourceFile)
	}
	return ref
}
