package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EL_METRICS_ENDPOINT", "https://hooks.example.com/metrics-compare")
	t.Setenv("EL_GUIDANCE_ENDPOINT", "https://hooks.example.com/guidance-compare")
	t.Setenv("EL_CHAT_ENDPOINT", "https://hooks.example.com/chat")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.UploadRefreshDelay)
	assert.Equal(t, []string{"FY26-Q2", "FY26-Q1", "FY25-Q4", "FY25-Q3"}, cfg.DefaultQuarters)

	require.Len(t, cfg.Sectors, 1)
	assert.Equal(t, "Healthcare", cfg.Sectors[0].Name)
	assert.Equal(t, "MAXHEALTH", cfg.FirstTicker("Healthcare"))
}

func TestFromEnvMissingEndpoints(t *testing.T) {
	t.Setenv("EL_METRICS_ENDPOINT", "https://hooks.example.com/metrics-compare")
	t.Setenv("EL_GUIDANCE_ENDPOINT", "")
	t.Setenv("EL_CHAT_ENDPOINT", "")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EL_LISTEN_ADDR", ":9999")
	t.Setenv("EL_REQUEST_TIMEOUT", "10")
	t.Setenv("EL_UPLOAD_REFRESH_DELAY", "2")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.UploadRefreshDelay)
}

func TestFromEnvBadTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EL_REQUEST_TIMEOUT", "soon")

	_, err := FromEnv()
	require.Error(t, err)
}

const companiesYAML = `
sectors:
  - name: Healthcare
    companies:
      - ticker: MAXHEALTH
        name: Max Healthcare
      - ticker: APOLLO
        name: Apollo Hospitals
  - name: Pharma
    companies:
      - ticker: SUNPHARMA
excluded_metrics:
  - internal
quarters:
  - FY26-Q2
  - FY26-Q1
`

func TestFromEnvCompaniesFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "companies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(companiesYAML), 0o644))
	t.Setenv("EL_COMPANIES_FILE", path)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"Healthcare", "Pharma"}, cfg.SectorNames())
	assert.Equal(t, []string{"internal"}, cfg.ExcludedMetrics)
	assert.Equal(t, []string{"FY26-Q2", "FY26-Q1"}, cfg.DefaultQuarters)

	// Sector is back-filled onto each company.
	companies := cfg.CompaniesIn("Healthcare")
	require.Len(t, companies, 2)
	assert.Equal(t, "Healthcare", companies[0].Sector)

	assert.True(t, cfg.HasTicker("Healthcare", "APOLLO"))
	assert.False(t, cfg.HasTicker("Pharma", "APOLLO"))
	assert.Equal(t, "SUNPHARMA", cfg.FirstTicker("Pharma"))
	assert.Empty(t, cfg.FirstTicker("Unknown"))
	assert.Equal(t, "Max Healthcare", cfg.DisplayName("MAXHEALTH"))
	assert.Equal(t, "SUNPHARMA", cfg.DisplayName("SUNPHARMA"))
	assert.Equal(t, "XYZ", cfg.DisplayName("XYZ"))
}

func TestFromEnvCompaniesFileMissing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EL_COMPANIES_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := FromEnv()
	require.Error(t, err)
}
