package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// SnapshotClient fetches complete dataset snapshots from an upstream analytics service.
type SnapshotClient interface {
	FetchSnapshot(ctx context.Context, dataset string) (dashboard.Snapshot, error)
}

// CatalogClient lists the datasets an upstream service can serve.
type CatalogClient interface {
	FetchCatalog(ctx context.Context) ([]string, error)
}

// Client is a convenience union for services that implement both calls.
type Client interface {
	SnapshotClient
	CatalogClient
}
