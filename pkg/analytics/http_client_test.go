package analytics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
	"github.com/goliatone/go-chartview/pkg/metrics"
)

const regionalPayload = `{
  "series": [
    {"date": "2024-02-01", "values": {"revenue": 3100}},
    {"date": "2024-02-02", "values": {"revenue": 2800}}
  ],
  "products": [{"store": "Ulm", "revenue": 4300}],
  "cards": [{"kind": "revenue", "label": "Total Revenue", "value": 5900, "change": 1.5}],
  "activity": [{"kind": "sale", "message": "New order", "ago": "2 min ago"}]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("expected auth header, got %s", got)
		}
		switch r.URL.Path {
		case "/datasets":
			_, _ = w.Write([]byte(`{"datasets": ["default", "regional"]}`))
		case "/datasets/regional":
			_, _ = w.Write([]byte(regionalPayload))
		case "/datasets/broken":
			_, _ = w.Write([]byte(`{"series": [{"values": {"revenue": 1}}]}`))
		case "/datasets/down":
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(HTTPConfig{BaseURL: newTestServer(t).URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestHTTPClientFetchSnapshot(t *testing.T) {
	client := newTestClient(t)
	snapshot, err := client.FetchSnapshot(context.Background(), "regional")
	if err != nil {
		t.Fatalf("fetch snapshot: %v", err)
	}
	if len(snapshot.Series) != 2 || snapshot.Series[1].Values["revenue"] != 2800 {
		t.Fatalf("unexpected series %+v", snapshot.Series)
	}
	if snapshot.Products[0]["store"] != "Ulm" {
		t.Fatalf("unexpected products %+v", snapshot.Products)
	}
	if snapshot.Cards[0].Kind != metrics.Revenue || snapshot.Activity[0].Kind != metrics.Sale {
		t.Fatalf("expected kinds to decode, got %+v / %+v", snapshot.Cards, snapshot.Activity)
	}
	if snapshot.Version != "" {
		t.Fatalf("version is assigned by the store, got %q", snapshot.Version)
	}
}

func TestHTTPClientErrors(t *testing.T) {
	client := newTestClient(t)
	if _, err := client.FetchSnapshot(context.Background(), "missing"); !errors.Is(err, dashboard.ErrUnknownDataset) {
		t.Fatalf("expected unknown dataset, got %v", err)
	}
	if _, err := client.FetchSnapshot(context.Background(), "broken"); err == nil {
		t.Fatalf("expected missing date to be rejected")
	}
	if _, err := client.FetchSnapshot(context.Background(), "down"); err == nil {
		t.Fatalf("expected remote error")
	}
	if _, err := NewHTTPClient(HTTPConfig{}); err == nil {
		t.Fatalf("expected base url to be required")
	}
}

func TestHTTPClientFetchCatalog(t *testing.T) {
	names, err := newTestClient(t).FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("fetch catalog: %v", err)
	}
	if len(names) != 2 || names[1] != "regional" {
		t.Fatalf("unexpected catalog %v", names)
	}
}

func TestSnapshotLoaderFeedsDatasetStore(t *testing.T) {
	store := dashboard.NewDatasetStore()
	loader := NewSnapshotLoader(newTestClient(t), nil)
	snapshot, err := store.Refresh(context.Background(), "regional", loader)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if snapshot.Version == "" || snapshot.CapturedAt.IsZero() {
		t.Fatalf("expected store to stamp the snapshot, got %+v", snapshot)
	}
}

func TestSnapshotLoaderFallback(t *testing.T) {
	fallback := dashboard.NewMockLoader(dashboard.DefaultSnapshot(), 0, 1)
	loader := NewSnapshotLoader(newTestClient(t), fallback)

	snapshot, err := loader.LoadSnapshot(context.Background(), "down")
	if err != nil {
		t.Fatalf("expected fallback to serve, got %v", err)
	}
	if len(snapshot.Series) != len(dashboard.DefaultSnapshot().Series) {
		t.Fatalf("expected fallback snapshot")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	if _, err := loader.LoadSnapshot(ctx, "regional"); err == nil {
		t.Fatalf("expected canceled refresh to fail without fallback")
	}
}
