package commands

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
)

// SaveLayoutPreferencesInput carries a viewer's per-area ordering and hidden widgets.
type SaveLayoutPreferencesInput struct {
	Viewer        dashboard.ViewerContext `json:"viewer"`
	AreaOrder     map[string][]string     `json:"area_order"`
	HiddenWidgets []string                `json:"hidden_widget_ids"`
}

type preferenceService interface {
	SavePreferences(ctx context.Context, viewer dashboard.ViewerContext, prefs dashboard.LayoutPreferences) error
}

// SaveLayoutPreferencesCommand stores layout overrides. Table sort and page state is kept
// separately by the view store, so saving preferences never resets a table.
type SaveLayoutPreferencesCommand struct {
	service   preferenceService
	telemetry Telemetry
}

func NewSaveLayoutPreferencesCommand(service preferenceService, telemetry Telemetry) *SaveLayoutPreferencesCommand {
	return &SaveLayoutPreferencesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveLayoutPreferencesInput] = (*SaveLayoutPreferencesCommand)(nil)

func (c *SaveLayoutPreferencesCommand) Execute(ctx context.Context, msg SaveLayoutPreferencesInput) error {
	if c.service == nil {
		return errors.New("preferences command requires service")
	}
	if msg.Viewer.UserID == "" {
		return errors.New("preferences command requires viewer user id")
	}
	prefs := toPreferences(msg)
	if err := c.service.SavePreferences(ctx, msg.Viewer, prefs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.preferences.save", map[string]any{
		"user_id": msg.Viewer.UserID,
		"areas":   len(prefs.AreaOrder),
		"hidden":  len(prefs.HiddenWidgets),
	})
	return nil
}

func toPreferences(msg SaveLayoutPreferencesInput) dashboard.LayoutPreferences {
	prefs := dashboard.LayoutPreferences{
		AreaOrder:     make(map[string][]string, len(msg.AreaOrder)),
		HiddenWidgets: make(map[string]bool, len(msg.HiddenWidgets)),
	}
	for area, ids := range msg.AreaOrder {
		if area = strings.TrimSpace(area); area != "" {
			prefs.AreaOrder[area] = ids
		}
	}
	for _, id := range msg.HiddenWidgets {
		if id = strings.TrimSpace(id); id != "" {
			prefs.HiddenWidgets[id] = true
		}
	}
	return prefs
}
