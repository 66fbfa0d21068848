package dashboard

// applyOrderOverride moves the listed widgets to the front in the given order; the rest
// keep their relative order.
func applyOrderOverride(widgets []WidgetInstance, order []string) []WidgetInstance {
	if len(order) == 0 {
		return widgets
	}
	index := make(map[string]WidgetInstance, len(widgets))
	for _, w := range widgets {
		index[w.ID] = w
	}
	result := make([]WidgetInstance, 0, len(widgets))
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if w, ok := index[id]; ok {
			if _, dup := seen[id]; dup {
				continue
			}
			result = append(result, w)
			seen[id] = struct{}{}
		}
	}
	for _, w := range widgets {
		if _, ok := seen[w.ID]; !ok {
			result = append(result, w)
		}
	}
	return result
}

func applyHiddenFilter(widgets []WidgetInstance, hidden map[string]bool) []WidgetInstance {
	if len(hidden) == 0 {
		return widgets
	}
	out := make([]WidgetInstance, 0, len(widgets))
	for _, w := range widgets {
		if !hidden[w.ID] {
			out = append(out, w)
		}
	}
	return out
}

// copyInstance returns w with its own configuration and metadata maps.
func copyInstance(w WidgetInstance) WidgetInstance {
	w.Configuration = cloneConfig(w.Configuration)
	if w.Metadata != nil {
		meta := make(map[string]any, len(w.Metadata))
		for k, v := range w.Metadata {
			meta[k] = v
		}
		w.Metadata = meta
	}
	return w
}

func instanceDataset(w WidgetInstance) string {
	return settings(w.Configuration).String("dataset", DefaultDataset)
}
