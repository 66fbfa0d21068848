package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator checks a widget configuration against its definition.
type ConfigValidator interface {
	Validate(def WidgetDefinition, config map[string]any) error
}

// JSONSchemaValidator validates configurations with jsonschema. Compiled schemas are
// cached per definition code and schema content, so overriding a definition with a new
// schema compiles it again.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{compiled: map[string]*jsonschema.Schema{}}
}

// Validate is a no-op for definitions without a schema.
func (v *JSONSchemaValidator) Validate(def WidgetDefinition, config map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.schema(def)
	if err != nil {
		return err
	}
	doc, err := asJSONDocument(config)
	if err != nil {
		return fmt.Errorf("dashboard: configuration for %s: %w", def.Code, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("dashboard: configuration for %s failed validation: %w", def.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schema(def WidgetDefinition) (*jsonschema.Schema, error) {
	key := def.Code + "@" + configHash(def.Schema)
	v.mu.RLock()
	cached := v.compiled[key]
	v.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	raw, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: encode schema %s: %w", def.Code, err)
	}
	url := def.Code + ".schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("dashboard: add schema %s: %w", def.Code, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", def.Code, err)
	}

	v.mu.Lock()
	v.compiled[key] = schema
	v.mu.Unlock()
	return schema, nil
}

// asJSONDocument re-decodes config so Go ints and []string look like decoded JSON.
func asJSONDocument(config map[string]any) (any, error) {
	doc := map[string]any{}
	if len(config) == 0 {
		return doc, nil
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ApplySchemaDefaults copies config and fills in top-level properties whose schema
// declares a default. Explicit values always win.
func ApplySchemaDefaults(def WidgetDefinition, config map[string]any) map[string]any {
	out := cloneConfig(config)
	if out == nil {
		out = make(map[string]any)
	}
	properties, _ := def.Schema["properties"].(map[string]any)
	for name, raw := range properties {
		property, _ := raw.(map[string]any)
		value, hasDefault := property["default"]
		if _, set := out[name]; hasDefault && !set {
			out[name] = value
		}
	}
	return out
}
