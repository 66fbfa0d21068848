package dashboard

import (
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// Theme is a read-only presentation value resolved once per render and handed to
// providers through WidgetContext. Geometry and table code never sees it.
type Theme struct {
	name   string
	dark   bool
	tokens map[string]string
}

// ThemeResolver selects the theme for a viewer.
type ThemeResolver func(ViewerContext) Theme

// NewTheme copies tokens into a new immutable theme.
func NewTheme(name string, dark bool, tokens map[string]string) Theme {
	copied := make(map[string]string, len(tokens))
	for key, value := range tokens {
		copied[key] = value
	}
	return Theme{name: name, dark: dark, tokens: copied}
}

// LightTheme is the default palette.
func LightTheme() Theme {
	return NewTheme("light", false, map[string]string{
		"background": "#ffffff",
		"foreground": "#111827",
		"muted":      "#6b7280",
		"grid":       "#e5e7eb",
		"accent":     "#3b82f6",
	})
}

// DarkTheme mirrors LightTheme for dark mode.
func DarkTheme() Theme {
	return NewTheme("dark", true, map[string]string{
		"background": "#1f2937",
		"foreground": "#f9fafb",
		"muted":      "#9ca3af",
		"grid":       "#374151",
		"accent":     "#60a5fa",
	})
}

// Name returns the theme name.
func (t Theme) Name() string {
	if t.name == "" {
		return "light"
	}
	return t.name
}

// Dark reports whether the theme is a dark variant.
func (t Theme) Dark() bool {
	return t.dark
}

// Token returns a design token or fallback when missing.
func (t Theme) Token(key, fallback string) string {
	if value, ok := t.tokens[key]; ok && value != "" {
		return value
	}
	return fallback
}

// Tokens returns a copy of all tokens.
func (t Theme) Tokens() map[string]string {
	out := make(map[string]string, len(t.tokens))
	for key, value := range t.tokens {
		out[key] = value
	}
	return out
}

// ChartTheme maps the palette onto a go-echarts theme.
func (t Theme) ChartTheme() string {
	if t.dark {
		return types.ThemeChalk
	}
	return types.ThemeWesteros
}

// CSSVariablesInline renders tokens as CSS custom properties, sorted by name.
func (t Theme) CSSVariablesInline() string {
	if len(t.tokens) == 0 {
		return ""
	}
	keys := make([]string, 0, len(t.tokens))
	for key := range t.tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := t.tokens[key]
		name := normalizeCSSVariable(key)
		if name == "" || value == "" {
			continue
		}
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

func (t Theme) payload() map[string]any {
	return map[string]any{
		"name":    t.Name(),
		"dark":    t.dark,
		"css":     t.CSSVariablesInline(),
		"tokens":  t.Tokens(),
		"echarts": t.ChartTheme(),
	}
}
