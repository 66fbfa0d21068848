package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// SeedDatasetInput loads a YAML fixture into a dataset.
type SeedDatasetInput struct {
	Dataset string `json:"dataset"`
	Path    string `json:"path"`
}

type datasetWriter interface {
	Put(dataset string, snapshot dashboard.Snapshot) dashboard.Snapshot
}

// SeedDatasetCommand replaces a dataset with a fixture and notifies refresh hooks.
type SeedDatasetCommand struct {
	store     datasetWriter
	notifier  refreshNotifier
	telemetry Telemetry
}

// NewSeedDatasetCommand wires dependencies. notifier may be nil.
func NewSeedDatasetCommand(store datasetWriter, notifier refreshNotifier, telemetry Telemetry) *SeedDatasetCommand {
	return &SeedDatasetCommand{
		store:     store,
		notifier:  notifier,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[SeedDatasetInput] = (*SeedDatasetCommand)(nil)

// Execute reads the fixture and stores it.
func (c *SeedDatasetCommand) Execute(ctx context.Context, msg SeedDatasetInput) error {
	if c.store == nil {
		return errors.New("seed command requires dataset store")
	}
	if msg.Path == "" {
		return errors.New("seed command requires fixture path")
	}
	snapshot, err := dashboard.ReadSnapshot(msg.Path)
	if err != nil {
		return err
	}
	dataset := msg.Dataset
	if dataset == "" {
		dataset = dashboard.DefaultDataset
	}
	stored := c.store.Put(dataset, snapshot)
	if c.notifier != nil {
		if err := c.notifier.NotifyWidgetUpdated(ctx, dashboard.WidgetEvent{
			Reason:  "refresh",
			Dataset: dataset,
			Version: stored.Version,
		}); err != nil {
			return err
		}
	}
	c.telemetry.Record(ctx, "dashboard.dataset.seed", map[string]any{
		"dataset": dataset,
		"version": stored.Version,
		"path":    msg.Path,
	})
	return nil
}
