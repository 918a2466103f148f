// Package gateway is the client for the remote analysis backends: the
// metrics-compare, guidance-compare and chat webhooks plus the document
// ingestion endpoint. The gateway owns all document intelligence; this
// service only presents it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/mauv0809/earnings-lens/internal/config"
	"github.com/mauv0809/earnings-lens/internal/models"
)

const defaultTimeout = 30 * time.Second

// Client talks to the remote data gateway. Failed calls are reported to
// the caller and surfaced as section-scoped errors; there is no
// automatic retry, a manual refresh re-issues the fetch.
type Client struct {
	metricsURL  string
	guidanceURL string
	chatURL     string
	uploadURL   string
	httpClient  *http.Client
}

// New creates a gateway client from the runtime configuration.
func New(cfg config.Config) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		metricsURL:  cfg.MetricsEndpoint,
		guidanceURL: cfg.GuidanceEndpoint,
		chatURL:     cfg.ChatEndpoint,
		uploadURL:   cfg.UploadEndpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchMetrics fetches extracted quarterly metrics for a ticker.
func (c *Client) FetchMetrics(ctx context.Context, ticker string) (*models.MetricsReport, error) {
	body, err := c.postJSON(ctx, c.metricsURL, compareRequest{Ticker: ticker})
	if err != nil {
		return nil, fmt.Errorf("fetching metrics: %w", err)
	}
	report, err := decodeMetrics(body)
	if err != nil {
		return nil, fmt.Errorf("parsing metrics: %w", err)
	}
	return report, nil
}

// FetchGuidance fetches forward-looking guidance for a ticker.
func (c *Client) FetchGuidance(ctx context.Context, ticker string) (*models.GuidanceReport, error) {
	body, err := c.postJSON(ctx, c.guidanceURL, compareRequest{Ticker: ticker})
	if err != nil {
		return nil, fmt.Errorf("fetching guidance: %w", err)
	}
	report, err := decodeGuidance(body)
	if err != nil {
		return nil, fmt.Errorf("parsing guidance: %w", err)
	}
	return report, nil
}

// Ask sends one question to the chat endpoint and returns the answer
// with its normalized citations.
func (c *Client) Ask(ctx context.Context, ticker, question string) (string, []models.Citation, error) {
	body, err := c.postJSON(ctx, c.chatURL, chatRequest{ChatInput: question, Ticker: ticker})
	if err != nil {
		return "", nil, fmt.Errorf("asking question: %w", err)
	}
	answer, cites, err := decodeChat(body)
	if err != nil {
		return "", nil, fmt.Errorf("parsing answer: %w", err)
	}
	return answer, cites, nil
}

// Upload sends a document to the ingestion endpoint as a multipart form
// POST. Fire-and-forget: any 2xx means accepted, nothing more. The
// backend gives no completion signal for the ingestion itself.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) error {
	if c.uploadURL == "" {
		return fmt.Errorf("no upload endpoint configured")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("reading upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("building upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// postJSON performs one JSON POST and returns the response body. Non-2xx
// responses are errors carrying the status code.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
