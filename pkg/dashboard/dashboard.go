// Package dashboard is the public entry point of go-chartview: it re-exports the
// runtime assembled by components/dashboard so applications need a single import.
package dashboard

import (
	core "github.com/goliatone/go-chartview/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Runtime bundles the service, registry and dataset store.
type Runtime = core.Runtime

// BootstrapOptions configures Bootstrap.
type BootstrapOptions = core.BootstrapOptions

// ViewerContext identifies the viewer a widget is rendered for.
type ViewerContext = core.ViewerContext

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// Bootstrap assembles a ready-to-serve dashboard.
func Bootstrap(opts BootstrapOptions) (*Runtime, error) {
	return core.Bootstrap(opts)
}
