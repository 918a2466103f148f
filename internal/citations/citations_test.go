package citations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/earnings-lens/internal/models"
)

func TestNormalizeAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want models.Citation
	}{
		{
			name: "metrics endpoint names",
			raw:  map[string]any{"source_file": "a.pdf", "page_number": float64(3), "exact_quote": "Revenue grew"},
			want: models.Citation{SourceFile: "a.pdf", PageNumber: 3, Quote: "Revenue grew"},
		},
		{
			name: "chat endpoint names",
			raw:  map[string]any{"source": "b.pdf", "page": float64(12), "quote": "EBITDA margin"},
			want: models.Citation{SourceFile: "b.pdf", PageNumber: 12, Quote: "EBITDA margin"},
		},
		{
			name: "guidance endpoint names",
			raw:  map[string]any{"source_filename": "x.pdf", "guidance_page_number": float64(7)},
			want: models.Citation{SourceFile: "x.pdf", PageNumber: 7},
		},
		{
			name: "camel case names",
			raw:  map[string]any{"sourceFile": "c.pdf", "pageNumber": float64(2), "text": "quoted"},
			want: models.Citation{SourceFile: "c.pdf", PageNumber: 2, Quote: "quoted"},
		},
		{
			name: "priority order wins",
			raw:  map[string]any{"source_file": "primary.pdf", "source": "secondary.pdf"},
			want: models.Citation{SourceFile: "primary.pdf"},
		},
		{
			name: "page as string",
			raw:  map[string]any{"source_file": "d.pdf", "page_number": "9"},
			want: models.Citation{SourceFile: "d.pdf", PageNumber: 9},
		},
		{
			name: "empty input",
			raw:  map[string]any{},
			want: models.Citation{},
		},
		{
			name: "nil and blank values skipped",
			raw:  map[string]any{"source_file": nil, "source": "  ", "page_number": float64(0)},
			want: models.Citation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestResolve(t *testing.T) {
	r := Resolver{BaseURL: "https://store.example.com/docs/"}

	ref := r.Resolve(models.Citation{SourceFile: "x.pdf", PageNumber: 7, Quote: "on track"})
	require.Equal(t, "https://store.example.com/docs/x.pdf", ref.PDFURL)
	require.Equal(t, 7, ref.PageNumber)
	require.Equal(t, "on track", ref.Quote)
	require.Equal(t, "x.pdf", ref.SourceFile)
}

func TestResolvePageDefaultsToOne(t *testing.T) {
	r := Resolver{BaseURL: "https://store.example.com/docs"}
	ref := r.Resolve(models.Citation{SourceFile: "x.pdf"})
	assert.Equal(t, 1, ref.PageNumber)
	assert.Equal(t, "https://store.example.com/docs/x.pdf", ref.PDFURL)
}

func TestResolveWithoutSourceFile(t *testing.T) {
	r := Resolver{BaseURL: "https://store.example.com/docs/"}
	ref := r.Resolve(models.Citation{PageNumber: 4})
	assert.Empty(t, ref.PDFURL)
	assert.Equal(t, 4, ref.PageNumber)
}

func TestResolveWithoutBaseURL(t *testing.T) {
	ref := Resolver{}.Resolve(models.Citation{SourceFile: "x.pdf", PageNumber: 2})
	assert.Empty(t, ref.PDFURL)
}

func TestResolveEscapesFilename(t *testing.T) {
	r := Resolver{BaseURL: "https://store.example.com/docs"}
	ref := r.Resolve(models.Citation{SourceFile: "Q2 earnings call.pdf", PageNumber: 1})
	assert.Equal(t, "https://store.example.com/docs/Q2%20earnings%20call.pdf", ref.PDFURL)
}
