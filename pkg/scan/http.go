package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// HTTPScanner posts the report to a remote scan endpoint
type HTTPScanner struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewHTTPScanner creates a scanner that allows one call per minInterval
func NewHTTPScanner(endpoint, apiKey string, timeout, minInterval time.Duration) *HTTPScanner {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &HTTPScanner{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(limit, 1),
	}
}

func (s *HTTPScanner) Name() string {
	return fmt.Sprintf("http (%s)", s.endpoint)
}

type scanRequest struct {
	Report *models.Report `json:"report"`
}

type scanResponse struct {
	Violations map[string][]string `json:"violations"`
}

func (s *HTTPScanner) Scan(ctx context.Context, r *models.Report) (Results, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("scan rate limit: %w", err)
	}

	buf, err := json.Marshal(scanRequest{Report: r})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("scan API error: %s (%s)", resp.Status, string(body))
	}

	var parsed scanResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse scan response: %w", err)
	}
	if parsed.Violations == nil {
		return Results{}, nil
	}
	return Results(parsed.Violations), nil
}
