package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/ettle/strcase"
	"golang.org/x/text/language"

	"github.com/goliatone/go-chartview/pkg/tabular"
)

// ErrUnknownColumn is returned when a sort click names a column the table does not show.
var ErrUnknownColumn = errors.New("dashboard: unknown table column")

// PageMove describes a pagination request.
type PageMove struct {
	Action string `json:"action"`
	Page   int    `json:"page,omitempty"`
}

// Page move actions.
const (
	PageNext = "next"
	PagePrev = "prev"
	PageGoTo = "goto"
)

// TableController is implemented by providers that keep interactive table state.
type TableController interface {
	Click(ctx context.Context, meta WidgetContext, column string) (tabular.View, error)
	Navigate(ctx context.Context, meta WidgetContext, move PageMove) (tabular.View, error)
}

// TableProvider renders the product records of a dataset as a sortable, paginated table.
// Sort and page state are kept per viewer in a ViewStateStore.
type TableProvider struct {
	snapshots SnapshotReader
	views     ViewStateStore
}

// NewTableProvider builds a table provider. A nil store falls back to an in-memory one.
func NewTableProvider(snapshots SnapshotReader, views ViewStateStore) *TableProvider {
	if views == nil {
		views = NewInMemoryViewStateStore()
	}
	return &TableProvider{snapshots: snapshots, views: views}
}

type tableConfig struct {
	dataset  string
	title    string
	columns  []string
	pageSize int
	policy   tabular.SortPolicy
	locale   language.Tag
}

func parseTableConfig(cfg map[string]any) (tableConfig, error) {
	s := settings(cfg)
	policy, err := tabular.ParseSortPolicy(s.String("sort_policy", ""))
	if err != nil {
		return tableConfig{}, fmt.Errorf("dashboard: table config: %w", err)
	}
	out := tableConfig{
		dataset:  s.String("dataset", DefaultDataset),
		title:    s.String("title", "Records"),
		columns:  s.Strings("columns"),
		pageSize: s.Int("page_size", tabular.DefaultPageSize),
		policy:   policy,
		locale:   language.English,
	}
	if raw := s.String("locale", ""); raw != "" {
		tag, err := language.Parse(raw)
		if err != nil {
			return tableConfig{}, fmt.Errorf("dashboard: table locale %q: %w", raw, err)
		}
		out.locale = tag
	}
	return out, nil
}

// Fetch renders the current page for the viewer. A stored page that no longer exists
// (the dataset shrank) is clamped and written back.
func (p *TableProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg, snapshot, err := p.load(ctx, meta)
	if err != nil {
		return nil, err
	}
	view, err := p.view(ctx, meta, cfg)
	if err != nil {
		return nil, err
	}
	columns := resolveColumns(cfg.columns, snapshot.Products)
	if view.Sort.Key != "" && !slices.Contains(columns, view.Sort.Key) {
		view.Sort = tabular.SortState{}
	}

	page, clamped := view.Render(snapshot.Products, tabular.WithLocale(cfg.locale))
	if clamped != view && meta.Viewer.UserID != "" {
		if err := p.views.SaveView(ctx, meta.Viewer, meta.Instance.ID, clamped); err != nil {
			return nil, err
		}
	}
	return tablePayload(cfg, columns, clamped, page, snapshot.Version), nil
}

// Click advances the sort state of column and resets the table to the first page.
func (p *TableProvider) Click(ctx context.Context, meta WidgetContext, column string) (tabular.View, error) {
	cfg, snapshot, err := p.load(ctx, meta)
	if err != nil {
		return tabular.View{}, err
	}
	if !slices.Contains(resolveColumns(cfg.columns, snapshot.Products), column) {
		return tabular.View{}, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	view, err := p.view(ctx, meta, cfg)
	if err != nil {
		return tabular.View{}, err
	}
	view = view.Click(column)
	if err := p.views.SaveView(ctx, meta.Viewer, meta.Instance.ID, view); err != nil {
		return tabular.View{}, err
	}
	return view, nil
}

// Navigate moves the table to another page; the stored page is clamped to the data.
func (p *TableProvider) Navigate(ctx context.Context, meta WidgetContext, move PageMove) (tabular.View, error) {
	cfg, snapshot, err := p.load(ctx, meta)
	if err != nil {
		return tabular.View{}, err
	}
	view, err := p.view(ctx, meta, cfg)
	if err != nil {
		return tabular.View{}, err
	}
	switch move.Action {
	case PageNext:
		view = view.Next()
	case PagePrev:
		view = view.Prev()
	case PageGoTo:
		view = view.GoTo(move.Page)
	default:
		return tabular.View{}, fmt.Errorf("dashboard: unsupported page action %q", move.Action)
	}
	_, view = view.Render(snapshot.Products, tabular.WithLocale(cfg.locale))
	if err := p.views.SaveView(ctx, meta.Viewer, meta.Instance.ID, view); err != nil {
		return tabular.View{}, err
	}
	return view, nil
}

func (p *TableProvider) load(ctx context.Context, meta WidgetContext) (tableConfig, Snapshot, error) {
	cfg, err := parseTableConfig(meta.Instance.Configuration)
	if err != nil {
		return tableConfig{}, Snapshot{}, err
	}
	if p.snapshots == nil {
		return tableConfig{}, Snapshot{}, errNoSnapshotReader
	}
	snapshot, err := p.snapshots.Snapshot(ctx, cfg.dataset)
	if err != nil {
		return tableConfig{}, Snapshot{}, err
	}
	return cfg, snapshot, nil
}

func (p *TableProvider) view(ctx context.Context, meta WidgetContext, cfg tableConfig) (tabular.View, error) {
	view, ok, err := p.views.LoadView(ctx, meta.Viewer, meta.Instance.ID)
	if err != nil {
		return tabular.View{}, err
	}
	if !ok {
		return tabular.NewView(cfg.policy, cfg.pageSize), nil
	}
	// configuration wins over stored policy/page size
	view.Policy = cfg.policy
	view.PageSize = cfg.pageSize
	return view, nil
}

// resolveColumns returns the configured columns or, when none are set, the sorted keys
// of the first record.
func resolveColumns(configured []string, records []tabular.Record) []string {
	if len(configured) > 0 {
		return configured
	}
	return RecordColumns(records)
}

// RecordColumns returns the keys of the first record in sorted order.
func RecordColumns(records []tabular.Record) []string {
	if len(records) == 0 {
		return nil
	}
	keys := make([]string, 0, len(records[0]))
	for key := range records[0] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func tablePayload(cfg tableConfig, columns []string, view tabular.View, page tabular.Page, version string) WidgetData {
	headers := make([]map[string]any, len(columns))
	for i, key := range columns {
		header := map[string]any{
			"key":   key,
			"label": strcase.ToCase(key, strcase.TitleCase, ' '),
		}
		if view.Sort.Key == key {
			header["direction"] = view.Sort.Direction.String()
		}
		headers[i] = header
	}
	rows := make([]map[string]any, len(page.Rows))
	for i, rec := range page.Rows {
		cells := make([]any, len(columns))
		for j, key := range columns {
			cells[j] = rec[key]
		}
		rows[i] = map[string]any{"record": rec, "cells": cells}
	}
	return WidgetData{
		"title":       cfg.title,
		"version":     version,
		"columns":     headers,
		"rows":        rows,
		"policy":      view.Policy.String(),
		"sort":        view.Sort,
		"page":        page.ClampedPage,
		"page_size":   view.PageSize,
		"total_pages": page.TotalPages,
		"total_rows":  page.TotalRows,
		"first_row":   page.FirstRow,
		"last_row":    page.LastRow,
		"has_prev":    page.HasPrev(),
		"has_next":    page.HasNext(),
		"showing":     fmt.Sprintf("Showing %d to %d of %d", page.FirstRow, page.LastRow, page.TotalRows),
	}
}
