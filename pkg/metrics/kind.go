package metrics

import (
	"fmt"
	"strings"
)

// Kind is the tagged variant attached to a metric or activity entry at ingestion time.
// Presentation details are derived from it, never from display text.
type Kind int

const (
	Unknown Kind = iota
	Revenue
	Users
	Orders
	Conversion
	Sale
	Alert
	Success
)

// Descriptor is the fixed presentation of a Kind.
type Descriptor struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var descriptors = map[Kind]Descriptor{
	Unknown:    {Icon: "circle", Color: "gray"},
	Revenue:    {Icon: "dollar-sign", Color: "green"},
	Users:      {Icon: "users", Color: "blue"},
	Orders:     {Icon: "shopping-cart", Color: "purple"},
	Conversion: {Icon: "trending-up", Color: "orange"},
	Sale:       {Icon: "shopping-bag", Color: "emerald"},
	Alert:      {Icon: "alert-circle", Color: "red"},
	Success:    {Icon: "check-circle", Color: "green"},
}

var kindNames = map[Kind]string{
	Unknown:    "unknown",
	Revenue:    "revenue",
	Users:      "users",
	Orders:     "orders",
	Conversion: "conversion",
	Sale:       "sale",
	Alert:      "alert",
	Success:    "success",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Descriptor returns the icon/color pair for k.
func (k Kind) Descriptor() Descriptor {
	if d, ok := descriptors[k]; ok {
		return d
	}
	return descriptors[Unknown]
}

// ParseKind maps an ingestion identifier ("revenue", "user", "order", ...) to a Kind.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "revenue":
		return Revenue, nil
	case "users", "user":
		return Users, nil
	case "orders", "order":
		return Orders, nil
	case "conversion", "conversion_rate":
		return Conversion, nil
	case "sale", "sales":
		return Sale, nil
	case "alert":
		return Alert, nil
	case "success":
		return Success, nil
	default:
		return Unknown, fmt.Errorf("metrics: unknown kind %q", value)
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name; unknown names are rejected.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
