package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mauv0809/earnings-lens/internal/models"
)

// Sector groups companies for the selector. List order is authoritative:
// a sector change resets the ticker to the first member.
type Sector struct {
	Name      string           `yaml:"name"`
	Companies []models.Company `yaml:"companies"`
}

// Config captures runtime configuration for the dashboard. It is built
// once at startup and passed in explicitly; nothing reads it through
// package state.
type Config struct {
	ListenAddr string

	MetricsEndpoint  string
	GuidanceEndpoint string
	ChatEndpoint     string
	UploadEndpoint   string
	StorageBaseURL   string

	Sectors         []Sector
	ExcludedMetrics []string
	DefaultQuarters []string // newest first

	RequestTimeout     time.Duration
	UploadRefreshDelay time.Duration
}

// companiesFile is the on-disk shape of EL_COMPANIES_FILE.
type companiesFile struct {
	Sectors         []Sector `yaml:"sectors"`
	ExcludedMetrics []string `yaml:"excluded_metrics"`
	Quarters        []string `yaml:"quarters"`
}

// FromEnv creates a configuration instance sourced from environment
// variables and the optional companies YAML file.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:         getEnv("EL_LISTEN_ADDR", ":8080"),
		MetricsEndpoint:    os.Getenv("EL_METRICS_ENDPOINT"),
		GuidanceEndpoint:   os.Getenv("EL_GUIDANCE_ENDPOINT"),
		ChatEndpoint:       os.Getenv("EL_CHAT_ENDPOINT"),
		UploadEndpoint:     os.Getenv("EL_UPLOAD_ENDPOINT"),
		StorageBaseURL:     os.Getenv("EL_STORAGE_BASE_URL"),
		RequestTimeout:     30 * time.Second,
		UploadRefreshDelay: 5 * time.Second,
	}

	if cfg.MetricsEndpoint == "" || cfg.GuidanceEndpoint == "" || cfg.ChatEndpoint == "" {
		return Config{}, fmt.Errorf("EL_METRICS_ENDPOINT, EL_GUIDANCE_ENDPOINT and EL_CHAT_ENDPOINT are required")
	}

	if v := os.Getenv("EL_REQUEST_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("parse EL_REQUEST_TIMEOUT %q", v)
		}
		cfg.RequestTimeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("EL_UPLOAD_REFRESH_DELAY"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs < 0 {
			return Config{}, fmt.Errorf("parse EL_UPLOAD_REFRESH_DELAY %q", v)
		}
		cfg.UploadRefreshDelay = time.Duration(secs) * time.Second
	}

	if path := os.Getenv("EL_COMPANIES_FILE"); path != "" {
		if err := cfg.loadCompaniesFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) loadCompaniesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read companies file: %w", err)
	}
	var f companiesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse companies file: %w", err)
	}
	c.Sectors = f.Sectors
	c.ExcludedMetrics = f.ExcludedMetrics
	c.DefaultQuarters = f.Quarters
	for i := range c.Sectors {
		for j := range c.Sectors[i].Companies {
			c.Sectors[i].Companies[j].Sector = c.Sectors[i].Name
		}
	}
	return nil
}

// applyDefaults fills the company universe and quarter fallback when the
// companies file is absent or partial.
func (c *Config) applyDefaults() {
	if len(c.Sectors) == 0 {
		c.Sectors = []Sector{{
			Name: "Healthcare",
			Companies: []models.Company{
				{Ticker: "MAXHEALTH", Name: "Max Healthcare", Sector: "Healthcare"},
			},
		}}
	}
	if len(c.DefaultQuarters) == 0 {
		c.DefaultQuarters = []string{"FY26-Q2", "FY26-Q1", "FY25-Q4", "FY25-Q3"}
	}
}

// SectorNames returns sector names in configured order.
func (c *Config) SectorNames() []string {
	names := make([]string, 0, len(c.Sectors))
	for _, s := range c.Sectors {
		names = append(names, s.Name)
	}
	return names
}

// HasSector reports whether the sector is configured.
func (c *Config) HasSector(name string) bool {
	for _, s := range c.Sectors {
		if s.Name == name {
			return true
		}
	}
	return false
}

// CompaniesIn returns the configured companies of a sector, in order.
// Unknown sectors return nil.
func (c *Config) CompaniesIn(sector string) []models.Company {
	for _, s := range c.Sectors {
		if s.Name == sector {
			return s.Companies
		}
	}
	return nil
}

// FirstTicker returns the first ticker of a sector, or "" when the
// sector is unknown or empty.
func (c *Config) FirstTicker(sector string) string {
	companies := c.CompaniesIn(sector)
	if len(companies) == 0 {
		return ""
	}
	return companies[0].Ticker
}

// HasTicker reports whether the ticker belongs to the sector's list.
func (c *Config) HasTicker(sector, ticker string) bool {
	for _, company := range c.CompaniesIn(sector) {
		if company.Ticker == ticker {
			return true
		}
	}
	return false
}

// DisplayName returns the configured display name for a ticker, or the
// ticker itself.
func (c *Config) DisplayName(ticker string) string {
	for _, s := range c.Sectors {
		for _, company := range s.Companies {
			if company.Ticker == ticker {
				return company.Label()
			}
		}
	}
	return ticker
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
