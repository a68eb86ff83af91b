package templates

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// HTTPStore talks to a remote template service
type HTTPStore struct {
	endpoint string
	client   *http.Client
}

// NewHTTPStore creates a store for endpoint. A nil client gets a 10s timeout.
func NewHTTPStore(endpoint string, client *http.Client) *HTTPStore {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPStore{endpoint: endpoint, client: client}
}

func (s *HTTPStore) Save(ctx context.Context, t models.Template) (Ack, error) {
	t = Normalize(t)
	if err := validate(t); err != nil {
		return Ack{}, err
	}

	buf, err := json.Marshal(t)
	if err != nil {
		return Ack{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(buf))
	if err != nil {
		return Ack{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var ack Ack
	if err := s.do(req, &ack); err != nil {
		return Ack{}, err
	}
	return ack, nil
}

func (s *HTTPStore) List(ctx context.Context, category models.Kind) ([]models.Template, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid template endpoint: %w", err)
	}
	if category != "" {
		q := u.Query()
		q.Set("category", string(category))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Templates []models.Template `json:"templates"`
	}
	if err := s.do(req, &out); err != nil {
		return nil, err
	}
	if out.Templates == nil {
		return []models.Template{}, nil
	}
	return out.Templates, nil
}

func (s *HTTPStore) do(req *http.Request, into any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("template API error: %s (%s)", resp.Status, string(body))
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("failed to parse template response: %w", err)
	}
	return nil
}
