package gateway

// compareRequest is the body sent to the metrics and guidance endpoints.
type compareRequest struct {
	Ticker string `json:"ticker"`
}

// chatRequest is the body sent to the chat endpoint.
type chatRequest struct {
	ChatInput string `json:"chatInput"`
	Ticker    string `json:"ticker"`
}

// rawMetricsResponse is the wire shape of the metrics-compare response.
// Each metric object carries metric_name/unit/currency plus one
// object-valued key per quarter label, so the rows decode as loose maps.
type rawMetricsResponse struct {
	Quarters []string         `json:"quarters"`
	Metrics  []map[string]any `json:"metrics"`
}

// rawGuidanceResponse is the wire shape of the guidance-compare
// response. Items are keyed per quarter label like metrics rows.
type rawGuidanceResponse struct {
	Quarters []string         `json:"quarters"`
	Themes   []map[string]any `json:"themes"`
}
