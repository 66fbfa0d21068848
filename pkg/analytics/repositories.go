package analytics

import (
	"context"
	"errors"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// NewSnapshotLoader adapts an analytics client into a dashboard snapshot loader. When
// fallback is set it serves any dataset the remote service fails to deliver, except
// when the caller canceled the refresh.
func NewSnapshotLoader(client SnapshotClient, fallback dashboard.SnapshotLoader) dashboard.SnapshotLoader {
	return &snapshotLoader{client: client, fallback: fallback}
}

type snapshotLoader struct {
	client   SnapshotClient
	fallback dashboard.SnapshotLoader
}

func (l *snapshotLoader) LoadSnapshot(ctx context.Context, dataset string) (dashboard.Snapshot, error) {
	snapshot, err := l.client.FetchSnapshot(ctx, dataset)
	if err == nil || l.fallback == nil || ctx.Err() != nil {
		return snapshot, err
	}
	fallback, ferr := l.fallback.LoadSnapshot(ctx, dataset)
	if ferr != nil {
		return dashboard.Snapshot{}, errors.Join(err, ferr)
	}
	return fallback, nil
}
