package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	router "github.com/goliatone/go-router"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
	"github.com/goliatone/go-chartview/components/dashboard/commands"
	"github.com/goliatone/go-chartview/components/dashboard/httpapi"
	"github.com/goliatone/go-chartview/components/dashboard/queries"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the dashboard controller, API and broadcast hook.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML        string
	Layout      string
	Widgets     string
	WidgetID    string
	Reorder     string
	Sort        string
	Page        string
	Hover       string
	Refresh     string
	Preferences string
	Definitions string
	WebSocket   string
}

// Register mounts dashboard routes (HTML, JSON, table and chart interactions, WebSocket)
// on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	resolver := cfg.ViewerResolver
	if resolver == nil {
		resolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), resolver(ctx), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		payload, err := cfg.Controller.LayoutPayload(ctx.Context(), resolver(ctx))
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, cfg.Controller, resolver, routes)
	}
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, controller *dashboard.Controller, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload dashboard.AddWidgetRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var created dashboard.WidgetInstance
		if err := api.Assign(ctx.Context(), commands.AssignWidgetInput{Request: payload, Output: &created}); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, created)
	}))

	r.Get(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		inst, err := api.Widget(ctx.Context(), queries.WidgetInput{Viewer: resolver(ctx), WidgetID: ctx.Param("id")})
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondWidget(ctx, controller, inst)
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		input := commands.RemoveWidgetInput{WidgetID: id, ActorID: resolver(ctx).UserID}
		if err := api.Remove(ctx.Context(), input); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReorderWidgetsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Reorder(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Sort, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Column string `json:"column"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var out dashboard.WidgetInstance
		input := commands.SortTableInput{Viewer: resolver(ctx), WidgetID: ctx.Param("id"), Column: payload.Column, Output: &out}
		if err := api.Sort(ctx.Context(), input); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondWidget(ctx, controller, out)
	}))

	r.Post(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		var move dashboard.PageMove
		if err := json.Unmarshal(ctx.Body(), &move); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var out dashboard.WidgetInstance
		input := commands.PageTableInput{Viewer: resolver(ctx), WidgetID: ctx.Param("id"), Move: move, Output: &out}
		if err := api.Page(ctx.Context(), input); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return respondWidget(ctx, controller, out)
	}))

	r.Get(routes.Hover, router.WrapHandler(func(ctx router.Context) error {
		x, err := strconv.ParseFloat(ctx.Query("x"), 64)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, errors.New("hover requires numeric x"))
		}
		hover, err := api.Hover(ctx.Context(), queries.ChartHoverInput{Viewer: resolver(ctx), WidgetID: ctx.Param("id"), X: x})
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, hover)
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var snapshot dashboard.Snapshot
		input := commands.RefreshDatasetInput{Dataset: ctx.Param("dataset"), Output: &snapshot}
		if err := api.Refresh(ctx.Context(), input); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"dataset": input.Dataset, "version": snapshot.Version})
	}))

	r.Get(routes.Definitions, router.WrapHandler(func(ctx router.Context) error {
		defs, err := api.Definitions(ctx.Context(), queries.DefinitionsInput{Category: ctx.Query("category")})
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"definitions": defs})
	}))

	r.Post(routes.Preferences, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SaveLayoutPreferencesInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.Preferences(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))
}

// respondWidget returns the widget as JSON, with its rendered fragment under "html" so
// clients can swap it in place.
func respondWidget(ctx router.Context, controller *dashboard.Controller, inst dashboard.WidgetInstance) error {
	payload := map[string]any{"widget": inst}
	if html, err := controller.RenderWidget(inst); err == nil && html != "" {
		payload["html"] = html
	}
	return ctx.JSON(http.StatusOK, payload)
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	return dashboard.PrimaryLanguage(ctx.Header("Accept-Language"))
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	defaults := []struct {
		path     *string
		fallback string
	}{
		{&routes.HTML, "/dashboard"},
		{&routes.Layout, "/dashboard/_layout"},
		{&routes.Widgets, "/dashboard/widgets"},
		{&routes.WidgetID, "/dashboard/widgets/:id"},
		{&routes.Reorder, "/dashboard/widgets/reorder"},
		{&routes.Sort, "/dashboard/widgets/:id/sort"},
		{&routes.Page, "/dashboard/widgets/:id/page"},
		{&routes.Hover, "/dashboard/widgets/:id/hover"},
		{&routes.Refresh, "/dashboard/datasets/:dataset/refresh"},
		{&routes.Preferences, "/dashboard/preferences"},
		{&routes.Definitions, "/dashboard/definitions"},
		{&routes.WebSocket, "/dashboard/ws"},
	}
	for _, d := range defaults {
		if *d.path == "" {
			*d.path = d.fallback
		}
	}
	return routes
}
