package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// DefinitionsInput filters the widget catalog by category (empty = all).
type DefinitionsInput struct {
	Category string
}

type definitionLister interface {
	Definitions() []dashboard.WidgetDefinition
	DefinitionsIn(category string) []dashboard.WidgetDefinition
}

// DefinitionsQuery lists the registered widget definitions.
type DefinitionsQuery struct {
	registry definitionLister
}

// NewDefinitionsQuery builds the query.
func NewDefinitionsQuery(registry definitionLister) *DefinitionsQuery {
	return &DefinitionsQuery{registry: registry}
}

var _ gocommand.Querier[DefinitionsInput, []dashboard.WidgetDefinition] = (*DefinitionsQuery)(nil)

// Query returns definitions ordered by code.
func (q *DefinitionsQuery) Query(_ context.Context, input DefinitionsInput) ([]dashboard.WidgetDefinition, error) {
	if input.Category == "" {
		return q.registry.Definitions(), nil
	}
	return q.registry.DefinitionsIn(input.Category), nil
}
