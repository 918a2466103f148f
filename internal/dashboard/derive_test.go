package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/earnings-lens/internal/models"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestDeltaBetween(t *testing.T) {
	up, ok := DeltaBetween(dec(110), dec(100))
	require.True(t, ok)
	assert.Equal(t, "+10.0%", up.Label)
	assert.Equal(t, DirectionUp, up.Direction)

	down, ok := DeltaBetween(dec(90), dec(100))
	require.True(t, ok)
	assert.Equal(t, "-10.0%", down.Label)
	assert.Equal(t, DirectionDown, down.Direction)

	flat, ok := DeltaBetween(dec(100), dec(100))
	require.True(t, ok)
	assert.Equal(t, "0.0%", flat.Label)
	assert.Equal(t, DirectionFlat, flat.Direction)
}

func TestDeltaUndefined(t *testing.T) {
	_, ok := DeltaBetween(dec(110), dec(0))
	assert.False(t, ok, "zero previous has no delta")

	_, ok = DeltaBetween(dec(110), nil)
	assert.False(t, ok, "missing previous has no delta")

	_, ok = DeltaBetween(nil, dec(100))
	assert.False(t, ok, "missing current has no delta")
}

func TestDeltaFor(t *testing.T) {
	quarters := []string{"FY26-Q2", "FY26-Q1", "FY25-Q4"}
	series := models.MetricSeries{
		Name: "Revenue",
		ByQuarter: map[string]models.Observation{
			"FY26-Q2": {Value: dec(110)},
			"FY26-Q1": {Value: dec(100)},
			// FY25-Q4 absent
		},
	}

	// Newest column compares against the next-older one.
	d, ok := DeltaFor(series, quarters, 0)
	require.True(t, ok)
	assert.Equal(t, "+10.0%", d.Label)

	// FY26-Q1's partner FY25-Q4 has no value.
	_, ok = DeltaFor(series, quarters, 1)
	assert.False(t, ok)

	// The oldest column has no partner at all.
	_, ok = DeltaFor(series, quarters, 2)
	assert.False(t, ok)
}

func TestFormatValueIndianGrouping(t *testing.T) {
	tests := []struct {
		value    int64
		currency string
		want     string
	}{
		{100, "", "100"},
		{1000, "", "1,000"},
		{123456, "", "1,23,456"},
		{1234567, "", "12,34,567"},
		{1234567, "INR", "₹12,34,567"},
		{-1234567, "", "-12,34,567"},
	}
	for _, tt := range tests {
		obs := models.Observation{Value: dec(tt.value)}
		assert.Equal(t, tt.want, FormatValue(obs, tt.currency))
	}
}

func TestFormatValueFraction(t *testing.T) {
	d, err := decimal.NewFromString("1234567.89")
	require.NoError(t, err)
	assert.Equal(t, "12,34,567.89", FormatValue(models.Observation{Value: &d}, ""))
}

func TestFormatValuePlaceholderAndText(t *testing.T) {
	assert.Equal(t, "—", FormatValue(models.Observation{}, "INR"))
	assert.Equal(t, "78%", FormatValue(models.Observation{Text: "78%"}, "INR"))
}

func TestVisibleMetrics(t *testing.T) {
	metrics := []models.MetricSeries{
		{Name: "Revenue"},
		{Name: "Internal Adjustment"},
		{Name: "EBITDA"},
	}

	visible := VisibleMetrics(metrics, []string{"internal"})
	require.Len(t, visible, 2)
	assert.Equal(t, "Revenue", visible[0].Name)
	assert.Equal(t, "EBITDA", visible[1].Name)

	assert.Len(t, VisibleMetrics(metrics, nil), 3)
}

func TestThemeStyle(t *testing.T) {
	assert.Equal(t, "expansion", ThemeStyle("EXPANSION"))
	assert.Equal(t, "capex", ThemeStyle("CAPEX"))
	assert.Equal(t, "other", ThemeStyle("SOMETHING_NEW"))
	assert.Equal(t, "other", ThemeStyle(""))
}

func TestConfidenceStyle(t *testing.T) {
	assert.Equal(t, "committed", ConfidenceStyle(models.ConfidenceCommitted))
	assert.Equal(t, "on_track", ConfidenceStyle(models.ConfidenceOnTrack))
	assert.Equal(t, "neutral", ConfidenceStyle("MAYBE"))
	assert.Equal(t, "neutral", ConfidenceStyle(""))
}
