// Package export serializes the rendered dashboard data to CSV for
// download. Exports see exactly what the user sees: metric filtering is
// applied by the caller before serialization.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/mauv0809/earnings-lens/internal/models"
)

// MetricsCSV writes one row per metric and one column per quarter.
// Values are exported as received from the backend; empty cells stay
// empty.
func MetricsCSV(metrics []models.MetricSeries, quarters []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"Metric"}, quarters...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing metrics csv: %w", err)
	}

	for _, m := range metrics {
		row := make([]string, 0, len(quarters)+1)
		row = append(row, m.Name)
		for _, q := range quarters {
			row = append(row, m.ByQuarter[q].Text)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing metrics csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing metrics csv: %w", err)
	}
	return buf.Bytes(), nil
}

// GuidanceCSV flattens the guidance tree to one row per guidance point
// per quarter: (theme, subtheme, quarter, guidance, confidence).
// encoding/csv applies the standard quote-doubling escaping to the
// free-text fields.
func GuidanceCSV(themes []models.GuidanceTheme, quarters []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Theme", "Subtheme", "Quarter", "Guidance", "Confidence"}); err != nil {
		return nil, fmt.Errorf("writing guidance csv: %w", err)
	}

	for _, theme := range themes {
		for _, item := range theme.Items {
			for _, q := range quarters {
				for _, point := range item.ByQuarter[q] {
					row := []string{theme.Theme, item.Subtheme, q, point.Text, string(point.Confidence)}
					if err := w.Write(row); err != nil {
						return nil, fmt.Errorf("writing guidance csv: %w", err)
					}
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing guidance csv: %w", err)
	}
	return buf.Bytes(), nil
}
