package dashboard

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mauv0809/earnings-lens/internal/models"
)

// Direction buckets a period-over-period delta for rendering.
type Direction int

const (
	DirectionFlat Direction = iota
	DirectionUp
	DirectionDown
)

// Delta is a rendered period-over-period change.
type Delta struct {
	Label     string // e.g. "+10.0%"
	Direction Direction
}

var hundred = decimal.NewFromInt(100)

// DeltaBetween computes (current-previous)/previous*100 to one decimal
// place. The delta is undefined (ok=false) when either value is missing
// or non-numeric, or when previous is zero.
func DeltaBetween(current, previous *decimal.Decimal) (Delta, bool) {
	if current == nil || previous == nil || previous.IsZero() {
		return Delta{}, false
	}
	pct := current.Sub(*previous).Div(*previous).Mul(hundred)

	d := Delta{Label: pct.StringFixed(1) + "%"}
	switch pct.Sign() {
	case 1:
		d.Label = "+" + d.Label
		d.Direction = DirectionUp
	case -1:
		d.Direction = DirectionDown
	default:
		d.Direction = DirectionFlat
	}
	return d, true
}

// DeltaFor computes the delta of a metric at quarter index i against its
// comparison partner: the immediately older quarter in the display
// sequence (quarters are ordered newest first, so that is index i+1).
// The oldest column has no partner and shows no delta.
func DeltaFor(series models.MetricSeries, quarters []string, i int) (Delta, bool) {
	if i < 0 || i+1 >= len(quarters) {
		return Delta{}, false
	}
	curr := series.ByQuarter[quarters[i]]
	prev := series.ByQuarter[quarters[i+1]]
	return DeltaBetween(curr.Value, prev.Value)
}

// FormatValue renders an observation for display: Indian-system digit
// grouping for numeric values, a rupee prefix for INR-denominated
// metrics, the raw text for non-numeric values, and an em-dash
// placeholder when the cell is empty.
func FormatValue(o models.Observation, currency string) string {
	if !o.HasValue() {
		return "—"
	}
	if o.Value == nil {
		return o.Text
	}
	formatted := formatIndian(*o.Value)
	if strings.EqualFold(currency, "INR") {
		return "₹" + formatted
	}
	return formatted
}

// formatIndian groups integer digits per the Indian numbering
// convention: the last three digits form one group, the rest pair off
// (12,34,567). Fractional digits pass through untouched.
func formatIndian(d decimal.Decimal) string {
	s := d.String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	if len(intPart) > 3 {
		groups := []string{intPart[len(intPart)-3:]}
		rest := intPart[:len(intPart)-3]
		for len(rest) > 2 {
			groups = append([]string{rest[len(rest)-2:]}, groups...)
			rest = rest[:len(rest)-2]
		}
		if rest != "" {
			groups = append([]string{rest}, groups...)
		}
		intPart = strings.Join(groups, ",")
	}

	out := sign + intPart
	if hasFrac {
		out += "." + fracPart
	}
	return out
}

// VisibleMetrics filters out rows whose name matches any of the
// configured block-list substrings, case-insensitively. This is a
// display filter only; the underlying report is never mutated and
// exports see the same filtered view.
func VisibleMetrics(metrics []models.MetricSeries, excluded []string) []models.MetricSeries {
	if len(excluded) == 0 {
		return metrics
	}
	visible := make([]models.MetricSeries, 0, len(metrics))
	for _, m := range metrics {
		if metricExcluded(m.Name, excluded) {
			continue
		}
		visible = append(visible, m)
	}
	return visible
}

func metricExcluded(name string, excluded []string) bool {
	lower := strings.ToLower(name)
	for _, block := range excluded {
		if block == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(block)) {
			return true
		}
	}
	return false
}

// ThemeStyle maps a guidance theme tag to its visual style token.
// Unrecognized tags use the OTHER token, never an error.
func ThemeStyle(theme string) string {
	switch strings.ToUpper(theme) {
	case "EXPANSION", "FINANCIAL", "OPERATIONAL", "CAPEX", "REGULATORY", "DIGITAL":
		return strings.ToLower(theme)
	}
	return "other"
}

// ConfidenceStyle maps a confidence level to its badge style token.
// Unknown levels get the neutral token.
func ConfidenceStyle(level models.ConfidenceLevel) string {
	if level.Known() {
		return strings.ToLower(string(level))
	}
	return "neutral"
}
