package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mauv0809/earnings-lens/internal/citations"
	"github.com/mauv0809/earnings-lens/internal/models"
)

// decodeMetrics converts the metrics-compare wire payload into the
// domain report. Missing arrays decode to empty, absent scalar fields to
// zero values; only outright invalid JSON is an error.
func decodeMetrics(body []byte) (*models.MetricsReport, error) {
	var raw rawMetricsResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid metrics payload: %w", err)
	}

	report := &models.MetricsReport{Quarters: raw.Quarters}
	for _, row := range raw.Metrics {
		name := getString(row, "metric_name", "name")
		if name == "" {
			continue
		}
		series := models.MetricSeries{
			Name:      name,
			Unit:      getString(row, "unit"),
			Currency:  getString(row, "currency"),
			ByQuarter: make(map[string]models.Observation),
		}
		// Everything object-valued besides the scalar columns is a
		// quarter cell keyed by its label.
		for key, v := range row {
			cell, ok := v.(map[string]any)
			if !ok {
				continue
			}
			series.ByQuarter[key] = parseObservation(cell)
		}
		report.Metrics = append(report.Metrics, series)
	}
	return report, nil
}

// parseObservation reads one quarter cell: the value plus its document
// reference.
func parseObservation(cell map[string]any) models.Observation {
	value, text := parseValue(cell["value"])
	cite := citations.Normalize(cell)
	return models.Observation{
		Value:      value,
		Text:       text,
		SourceFile: cite.SourceFile,
		PageNumber: cite.PageNumber,
		Quote:      cite.Quote,
	}
}

// parseValue keeps the value as received for display while extracting a
// decimal when the backend sent something numeric. Grouped strings like
// "12,34,567" parse after the separators are stripped.
func parseValue(v any) (*decimal.Decimal, string) {
	switch val := v.(type) {
	case nil:
		return nil, ""
	case float64:
		d := decimal.NewFromFloat(val)
		return &d, d.String()
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil, ""
		}
		if d, err := decimal.NewFromString(strings.ReplaceAll(trimmed, ",", "")); err == nil {
			return &d, trimmed
		}
		return nil, trimmed
	default:
		return nil, fmt.Sprintf("%v", val)
	}
}

// decodeGuidance converts the guidance-compare wire payload into the
// domain report.
func decodeGuidance(body []byte) (*models.GuidanceReport, error) {
	var raw rawGuidanceResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid guidance payload: %w", err)
	}

	report := &models.GuidanceReport{Quarters: raw.Quarters}
	for _, group := range raw.Themes {
		theme := models.GuidanceTheme{Theme: getString(group, "theme")}
		if theme.Theme == "" {
			continue
		}
		items, _ := group["items"].([]any)
		for _, it := range items {
			row, ok := it.(map[string]any)
			if !ok {
				continue
			}
			item := models.GuidanceItem{
				Subtheme:  getString(row, "subtheme"),
				ByQuarter: make(map[string][]models.GuidancePoint),
			}
			for key, v := range row {
				list, ok := v.([]any)
				if !ok {
					continue
				}
				points := make([]models.GuidancePoint, 0, len(list))
				for _, entry := range list {
					cell, ok := entry.(map[string]any)
					if !ok {
						continue
					}
					points = append(points, parseGuidancePoint(cell))
				}
				item.ByQuarter[key] = points
			}
			theme.Items = append(theme.Items, item)
		}
		report.Themes = append(report.Themes, theme)
	}
	return report, nil
}

func parseGuidancePoint(cell map[string]any) models.GuidancePoint {
	cite := citations.Normalize(cell)
	return models.GuidancePoint{
		Text:       getString(cell, "guidance_text", "text"),
		TargetDate: getString(cell, "target_date"),
		Confidence: models.ConfidenceLevel(strings.ToUpper(getString(cell, "confidence_level"))),
		SourceFile: cite.SourceFile,
		PageNumber: cite.PageNumber,
		Quote:      cite.Quote,
	}
}

// decodeChat reads the chat endpoint's answer. The endpoint returns
// either a single object or a one-element array; in the array case only
// the first element is used. The answer is the first present of several
// field names, falling back to the raw body so an unexpected shape still
// shows something.
func decodeChat(body []byte) (string, []models.Citation, error) {
	trimmed := strings.TrimSpace(string(body))

	var obj map[string]any
	if strings.HasPrefix(trimmed, "[") {
		var list []map[string]any
		if err := json.Unmarshal(body, &list); err != nil {
			return "", nil, fmt.Errorf("invalid chat payload: %w", err)
		}
		if len(list) == 0 {
			return trimmed, nil, nil
		}
		obj = list[0]
	} else {
		if err := json.Unmarshal(body, &obj); err != nil {
			return "", nil, fmt.Errorf("invalid chat payload: %w", err)
		}
	}

	answer := getString(obj, "output", "response", "text", "message")
	if answer == "" {
		answer = trimmed
	}

	var cites []models.Citation
	if rawCites, ok := obj["citations"].([]any); ok {
		for _, entry := range rawCites {
			cell, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			cites = append(cites, citations.Normalize(cell))
		}
	}
	return answer, cites, nil
}

// getString safely extracts the first non-empty string among keys.
func getString(row map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := row[key]; ok && v != nil {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}
