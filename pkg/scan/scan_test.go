package scan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

func testReport() *models.Report {
	return &models.Report{
		ReportDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Accounts: []models.Account{
			{Key: "acct-1", CreditorName: "Bank", Status: "Charge-off", Balance: "500", DateOpened: "2019-01-01"},
		},
	}
}

func TestHTTPScanner_Scan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var payload struct {
			Report models.Report `json:"report"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "acct-1", payload.Report.Accounts[0].Key)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"violations":{"acct-1":["Metro 2 Violation: incorrect balance"]}}`))
	}))
	defer server.Close()

	s := NewHTTPScanner(server.URL, "secret", time.Second, 0)
	results, err := s.Scan(context.Background(), testReport())
	require.NoError(t, err)
	assert.Equal(t, Results{"acct-1": {"Metro 2 Violation: incorrect balance"}}, results)
	assert.Equal(t, 1, results.Count())
}

func TestHTTPScanner_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	s := NewHTTPScanner(server.URL, "", time.Second, 0)
	_, err := s.Scan(context.Background(), testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTPScanner_RateLimitHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	s := NewHTTPScanner(server.URL, "", time.Second, time.Hour)
	results, err := s.Scan(context.Background(), testReport())
	require.NoError(t, err)
	assert.Empty(t, results)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = s.Scan(ctx, testReport())
	assert.Error(t, err, "second call within the interval must wait")
}

type failingScanner struct{}

func (failingScanner) Name() string { return "failing" }
func (failingScanner) Scan(context.Context, *models.Report) (Results, error) {
	return nil, errors.New("backend down")
}

func TestRun_FailureMeansNoViolations(t *testing.T) {
	out := Run(context.Background(), failingScanner{}, testReport())
	assert.Error(t, out.Err)
	assert.NotNil(t, out.Results)
	assert.Equal(t, 0, out.Results.Count())
}

func TestRuleScanner(t *testing.T) {
	out := Run(context.Background(), RuleScanner{}, testReport())
	require.NoError(t, out.Err)
	assert.Equal(t, []string{"Metro 2 Violation: charged-off account reports a non-zero balance"}, out.Results["acct-1"])
}

func TestNew(t *testing.T) {
	s, err := New(models.ScanSettings{Provider: "rules"})
	require.NoError(t, err)
	assert.Equal(t, "rules", s.Name())

	_, err = New(models.ScanSettings{Provider: "http"})
	assert.Error(t, err)

	t.Setenv("SCAN_TEST_KEY", "k")
	s, err = New(models.ScanSettings{Provider: "http", Endpoint: "http://localhost", APIKeyEnv: "SCAN_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "k", s.(*HTTPScanner).apiKey)

	_, err = New(models.ScanSettings{Provider: "magic"})
	assert.Error(t, err)
}
