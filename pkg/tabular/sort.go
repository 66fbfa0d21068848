package tabular

import (
	"cmp"
	"encoding/json"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Record is an opaque table row. The engine reads it and never mutates it.
type Record map[string]any

// Direction is the sort direction of a column.
type Direction int

const (
	None Direction = iota
	Asc
	Desc
)

func (d Direction) String() string {
	switch d {
	case Asc:
		return "asc"
	case Desc:
		return "desc"
	default:
		return ""
	}
}

// ParseDirection converts "asc"/"desc" into a Direction; anything else is None.
func ParseDirection(value string) Direction {
	switch value {
	case "asc", "ASC", "Asc":
		return Asc
	case "desc", "DESC", "Desc":
		return Desc
	default:
		return None
	}
}

// MarshalText encodes the direction as "asc", "desc" or "".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes the textual form produced by MarshalText.
func (d *Direction) UnmarshalText(text []byte) error {
	*d = ParseDirection(string(text))
	return nil
}

// SortState is the active sort column and direction. The zero value is unsorted.
type SortState struct {
	Key       string    `json:"key,omitempty" yaml:"key,omitempty"`
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Unsorted reports whether the state falls back to input order.
func (s SortState) Unsorted() bool {
	return s.Key == "" || s.Direction == None
}

// SortOption customizes SortRecords.
type SortOption func(*sortConfig)

type sortConfig struct {
	locale language.Tag
}

// WithLocale sets the collation used for string columns (default English).
func WithLocale(tag language.Tag) SortOption {
	return func(cfg *sortConfig) {
		cfg.locale = tag
	}
}

// SortRecords returns a new, stably sorted slice. Numeric values compare numerically,
// strings use locale-aware collation, and Desc reverses the comparator so equal keys
// keep their input order in both directions. Rows missing the key sort last in either
// direction. An unsorted state returns a copy of the input in its original order.
func SortRecords(records []Record, state SortState, opts ...SortOption) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	if state.Unsorted() || len(out) < 2 {
		return out
	}

	cfg := sortConfig{locale: language.English}
	for _, opt := range opts {
		opt(&cfg)
	}
	collator := collate.New(cfg.locale)

	slices.SortStableFunc(out, func(a, b Record) int {
		av, bv := a[state.Key], b[state.Key]
		switch {
		case av == nil && bv == nil:
			return 0
		case av == nil:
			return 1
		case bv == nil:
			return -1
		}
		c := compareValues(collator, av, bv)
		if state.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

type valueKind int

const (
	kindNumber valueKind = iota
	kindString
	kindTime
	kindOther
)

func kindOf(v any) valueKind {
	if _, ok := numeric(v); ok {
		return kindNumber
	}
	switch v.(type) {
	case string:
		return kindString
	case time.Time:
		return kindTime
	default:
		return kindOther
	}
}

// compareValues orders two non-nil cell values: numbers, then strings, then times,
// then anything else. Within a kind, NaN sorts before other numbers and unsupported
// values compare equal.
func compareValues(collator *collate.Collator, a, b any) int {
	ak, bk := kindOf(a), kindOf(b)
	if ak != bk {
		return cmp.Compare(ak, bk)
	}
	switch ak {
	case kindNumber:
		af, _ := numeric(a)
		bf, _ := numeric(b)
		return cmp.Compare(af, bf)
	case kindString:
		return collator.CompareString(a.(string), b.(string))
	case kindTime:
		return a.(time.Time).Compare(b.(time.Time))
	default:
		return 0
	}
}

func numeric(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
