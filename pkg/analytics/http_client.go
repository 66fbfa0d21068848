package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
	"github.com/goliatone/go-chartview/pkg/metrics"
	"github.com/goliatone/go-chartview/pkg/tabular"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient reads dataset snapshots from a REST endpoint.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for a live analytics API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchSnapshot implements SnapshotClient via GET /datasets/{name}.
func (c *HTTPClient) FetchSnapshot(ctx context.Context, dataset string) (dashboard.Snapshot, error) {
	var resp snapshotResponse
	if err := c.do(ctx, http.MethodGet, "/datasets/"+url.PathEscape(dataset), &resp); err != nil {
		return dashboard.Snapshot{}, err
	}
	return resp.toSnapshot()
}

// FetchCatalog implements CatalogClient via GET /datasets.
func (c *HTTPClient) FetchCatalog(ctx context.Context) ([]string, error) {
	var resp catalogResponse
	if err := c.do(ctx, http.MethodGet, "/datasets", &resp); err != nil {
		return nil, err
	}
	return resp.Datasets, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", dashboard.ErrUnknownDataset, path)
	}
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("analytics: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("analytics: decode response: %w", err)
	}
	return nil
}

type catalogResponse struct {
	Datasets []string `json:"datasets"`
}

type seriesRow struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

type snapshotResponse struct {
	Series     []seriesRow              `json:"series"`
	Products   []map[string]any         `json:"products"`
	Cards      []metrics.Card           `json:"cards"`
	Goals      []metrics.Goal           `json:"goals"`
	QuickStats []dashboard.QuickStat    `json:"quick_stats"`
	Activity   []dashboard.ActivityItem `json:"activity"`
}

// toSnapshot converts the wire payload. Version and CapturedAt are left for the dataset
// store to assign when the snapshot is applied.
func (r snapshotResponse) toSnapshot() (dashboard.Snapshot, error) {
	out := dashboard.Snapshot{
		Series:     make([]dashboard.SeriesRow, len(r.Series)),
		Products:   make([]tabular.Record, len(r.Products)),
		Cards:      r.Cards,
		Goals:      r.Goals,
		QuickStats: r.QuickStats,
		Activity:   r.Activity,
	}
	for i, row := range r.Series {
		if row.Date == "" {
			return dashboard.Snapshot{}, fmt.Errorf("analytics: series row %d is missing date", i)
		}
		out.Series[i] = dashboard.SeriesRow{Date: row.Date, Values: row.Values}
	}
	for i, rec := range r.Products {
		out.Products[i] = tabular.Record(rec)
	}
	return out, nil
}
