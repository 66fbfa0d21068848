package scale

import "fmt"

// Mapper precomputes the geometry of one series inside a viewport. Coordinates are
// absolute: the plot area offset (padding) is already applied.
type Mapper struct {
	series   []Point
	viewport Viewport
	domain   Domain
	coords   []Coord
}

// Option customizes a Mapper.
type Option func(*mapperConfig)

type mapperConfig struct {
	domainPadding float64
	domain        *Domain
}

// WithDomainPadding widens the domain by ratio*(max-min) on both ends so extremes do
// not touch the plot edges.
func WithDomainPadding(ratio float64) Option {
	return func(cfg *mapperConfig) {
		if ratio > 0 {
			cfg.domainPadding = ratio
		}
	}
}

// WithDomain pins the domain instead of deriving it from the series, e.g. to share one
// y-axis between several series.
func WithDomain(d Domain) Option {
	return func(cfg *mapperConfig) {
		cfg.domain = &d
	}
}

// NewMapper builds a Mapper for series. It fails with ErrEmptySeries for an empty series.
func NewMapper(series []Point, viewport Viewport, opts ...Option) (*Mapper, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}
	cfg := mapperConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var domain Domain
	if cfg.domain != nil {
		domain = *cfg.domain
		if domain.Min > domain.Max {
			return nil, fmt.Errorf("scale: invalid domain [%v, %v]", domain.Min, domain.Max)
		}
	} else {
		var err error
		if domain, err = BuildDomain(series); err != nil {
			return nil, err
		}
	}
	if pad := cfg.domainPadding * domain.Span(); pad > 0 {
		domain.Min -= pad
		domain.Max += pad
	}

	origin := viewport.Origin()
	width, height := viewport.PlotWidth(), viewport.PlotHeight()
	coords := make([]Coord, len(series))
	for i, p := range series {
		coords[i] = Coord{
			X: origin.X + XForIndex(i, len(series), width),
			Y: origin.Y + YForValue(p.Y, domain, height),
		}
	}

	return &Mapper{
		series:   series,
		viewport: viewport,
		domain:   domain,
		coords:   coords,
	}, nil
}

// Domain returns the (possibly padded) domain used for mapping.
func (m *Mapper) Domain() Domain {
	return m.domain
}

// Viewport returns the viewport the mapper was built for.
func (m *Mapper) Viewport() Viewport {
	return m.viewport
}

// Coords returns a copy of the precomputed coordinates.
func (m *Mapper) Coords() []Coord {
	out := make([]Coord, len(m.coords))
	copy(out, m.coords)
	return out
}

// Baseline is the y coordinate of the bottom of the plot area.
func (m *Mapper) Baseline() float64 {
	return m.viewport.Origin().Y + m.viewport.PlotHeight()
}

// Line returns the line path through every point.
func (m *Mapper) Line() []PathCommand {
	return BuildLinePath(m.coords)
}

// Area returns the line path closed down to the plot baseline.
func (m *Mapper) Area() []PathCommand {
	return BuildAreaPath(m.Line(), m.Baseline())
}

// YFor maps an arbitrary value (e.g. a tick) to an absolute y coordinate.
func (m *Mapper) YFor(value float64) float64 {
	return m.viewport.Origin().Y + YForValue(value, m.domain, m.viewport.PlotHeight())
}

// Nearest returns the index of the point closest to pointerX.
func (m *Mapper) Nearest(pointerX float64) int {
	return NearestPointIndex(pointerX, m.coords)
}

// Hover describes the point selected by a pointer position.
type Hover struct {
	Index int
	Point Point
	Coord Coord
}

// Tooltip resolves the hovered point for pointerX. Index is -1 when the mapper holds no
// points.
func (m *Mapper) Tooltip(pointerX float64) Hover {
	idx := m.Nearest(pointerX)
	if idx < 0 {
		return Hover{Index: -1}
	}
	return Hover{
		Index: idx,
		Point: m.series[idx],
		Coord: m.coords[idx],
	}
}
