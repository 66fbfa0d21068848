package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	dashboard "github.com/goliatone/go-chartview/components/dashboard"
	"github.com/goliatone/go-chartview/components/dashboard/commands"
	"github.com/goliatone/go-chartview/components/dashboard/queries"
)

// ViewerFunc extracts the viewer from an incoming request.
type ViewerFunc func(r *http.Request) dashboard.ViewerContext

// Handlers exposes net/http endpoints backed by an Executor.
type Handlers struct {
	API       Executor
	Viewer    ViewerFunc
	Broadcast *dashboard.BroadcastHook
}

// Routes mounts the handlers on a ServeMux under base (e.g. "/api/dashboard").
func (h *Handlers) Routes(base string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+base+"/layout", h.HandleLayout)
	mux.HandleFunc("POST "+base+"/widgets", h.HandleAssignWidget)
	mux.HandleFunc("POST "+base+"/widgets/reorder", h.HandleReorderWidgets)
	mux.HandleFunc("GET "+base+"/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleWidget(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("DELETE "+base+"/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleRemoveWidget(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST "+base+"/widgets/{id}/sort", func(w http.ResponseWriter, r *http.Request) {
		h.HandleSortTable(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST "+base+"/widgets/{id}/page", func(w http.ResponseWriter, r *http.Request) {
		h.HandlePageTable(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("GET "+base+"/widgets/{id}/hover", func(w http.ResponseWriter, r *http.Request) {
		h.HandleHover(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST "+base+"/datasets/{name}/refresh", func(w http.ResponseWriter, r *http.Request) {
		h.HandleRefreshDataset(w, r, r.PathValue("name"))
	})
	mux.HandleFunc("POST "+base+"/preferences", h.HandleSavePreferences)
	mux.HandleFunc("GET "+base+"/definitions", h.HandleDefinitions)
	if h.Broadcast != nil {
		mux.HandleFunc("GET "+base+"/events", h.Broadcast.ServeSSE)
		mux.HandleFunc("GET "+base+"/ws", h.Broadcast.ServeWebSocket)
	}
	return mux
}

// HandleLayout returns the resolved layout. Repeated ?area= parameters narrow the result.
func (h *Handlers) HandleLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.API.Layout(r.Context(), queries.LayoutInput{
		Viewer: h.viewer(r),
		Areas:  r.URL.Query()["area"],
	})
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (h *Handlers) HandleAssignWidget(w http.ResponseWriter, r *http.Request) {
	var payload dashboard.AddWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var created dashboard.WidgetInstance
	if err := h.API.Assign(r.Context(), commands.AssignWidgetInput{Request: payload, Output: &created}); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	input := commands.RemoveWidgetInput{WidgetID: widgetID, ActorID: h.viewer(r).UserID}
	if err := h.API.Remove(r.Context(), input); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderWidgetsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.API.Reorder(r.Context(), payload); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

func (h *Handlers) HandleWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	inst, err := h.API.Widget(r.Context(), queries.WidgetInput{Viewer: h.viewer(r), WidgetID: widgetID})
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

type sortPayload struct {
	Column string `json:"column"`
}

func (h *Handlers) HandleSortTable(w http.ResponseWriter, r *http.Request, widgetID string) {
	var payload sortPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var out dashboard.WidgetInstance
	input := commands.SortTableInput{Viewer: h.viewer(r), WidgetID: widgetID, Column: payload.Column, Output: &out}
	if err := h.API.Sort(r.Context(), input); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) HandlePageTable(w http.ResponseWriter, r *http.Request, widgetID string) {
	var move dashboard.PageMove
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var out dashboard.WidgetInstance
	input := commands.PageTableInput{Viewer: h.viewer(r), WidgetID: widgetID, Move: move, Output: &out}
	if err := h.API.Page(r.Context(), input); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) HandleHover(w http.ResponseWriter, r *http.Request, widgetID string) {
	x, err := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("hover requires numeric x"))
		return
	}
	hover, err := h.API.Hover(r.Context(), queries.ChartHoverInput{Viewer: h.viewer(r), WidgetID: widgetID, X: x})
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, hover)
}

func (h *Handlers) HandleRefreshDataset(w http.ResponseWriter, r *http.Request, dataset string) {
	var snapshot dashboard.Snapshot
	if err := h.API.Refresh(r.Context(), commands.RefreshDatasetInput{Dataset: dataset, Output: &snapshot}); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"dataset": dataset, "version": snapshot.Version})
}

func (h *Handlers) HandleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveLayoutPreferencesInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	payload.Viewer = h.viewer(r)
	if err := h.API.Preferences(r.Context(), payload); err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handlers) HandleDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.API.Definitions(r.Context(), queries.DefinitionsInput{Category: r.URL.Query().Get("category")})
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"definitions": defs})
}

func (h *Handlers) viewer(r *http.Request) dashboard.ViewerContext {
	if h.Viewer != nil {
		return h.Viewer(r)
	}
	return HeaderViewer(r)
}

// HeaderViewer reads the viewer from X-User-ID and Accept-Language.
func HeaderViewer(r *http.Request) dashboard.ViewerContext {
	return dashboard.ViewerContext{
		UserID: r.Header.Get("X-User-ID"),
		Locale: dashboard.PrimaryLanguage(r.Header.Get("Accept-Language")),
	}
}

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case dashboard.IsNotFound(err):
		return http.StatusNotFound
	case dashboard.IsInvalidRequest(err):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrStaleSnapshot):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
