package dashboard

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// settings reads widget configuration. Values may come from Go literals, YAML or JSON,
// so numbers arrive as int, float64 or json.Number and lists as []any.
type settings map[string]any

func (s settings) String(key, fallback string) string {
	if v, ok := s[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func (s settings) Strings(key string) []string {
	switch list := s[key].(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if v, ok := item.(string); ok {
				out = append(out, v)
			}
		}
		return out
	}
	return nil
}

func (s settings) Float(key string, fallback float64) float64 {
	if f, ok := numeric(s[key]); ok {
		return f
	}
	return fallback
}

// Int truncates fractional values; page sizes and limits are whole numbers in practice.
func (s settings) Int(key string, fallback int) int {
	if f, ok := numeric(s[key]); ok {
		return int(f)
	}
	return fallback
}

// Bool reports the configured flag, or fallback when key is absent.
func (s settings) Bool(key string, fallback bool) bool {
	raw, ok := s[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
	f, ok := numeric(raw)
	return ok && f != 0
}

func numeric(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

var metricCaser = cases.Title(language.Und)

// metricTitle turns a metric key such as "active_users" into "Active Users".
func metricTitle(metric string) string {
	return metricCaser.String(strings.ReplaceAll(metric, "_", " "))
}
