package main

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-chartview/components/dashboard"
	"github.com/goliatone/go-chartview/pkg/scale"
)

type pathCmd struct {
	Values        []float64 `help:"Series values in order (repeat or comma separate)." sep:","`
	File          string    `type:"existingfile" help:"Dataset fixture to read the series from instead of --values."`
	Metric        string    `default:"revenue" help:"Metric plotted when reading --file."`
	Width         float64   `default:"640" help:"Viewport width in pixels."`
	Height        float64   `default:"240" help:"Viewport height in pixels."`
	Padding       float64   `default:"24" help:"Padding applied on every side."`
	DomainPadding float64   `name:"domain-padding" help:"Pad the value domain by this ratio of its span."`
	Area          bool      `help:"Close the path down to the baseline."`
	Hover         *float64  `help:"Also report the point nearest to this pointer x."`
}

func (cmd *pathCmd) Run(rc *runContext) error {
	series, err := cmd.series()
	if err != nil {
		return err
	}
	var opts []scale.Option
	if cmd.DomainPadding > 0 {
		opts = append(opts, scale.WithDomainPadding(cmd.DomainPadding))
	}
	mapper, err := scale.NewMapper(series, scale.Viewport{
		Width:         cmd.Width,
		Height:        cmd.Height,
		PaddingTop:    cmd.Padding,
		PaddingRight:  cmd.Padding,
		PaddingBottom: cmd.Padding,
		PaddingLeft:   cmd.Padding,
	}, opts...)
	if err != nil {
		return fmt.Errorf("chartctl: %w", err)
	}
	path := mapper.Line()
	if cmd.Area {
		path = mapper.Area()
	}
	fmt.Fprintln(rc.out, scale.PathString(path))
	if cmd.Hover != nil {
		hover := mapper.Tooltip(*cmd.Hover)
		fmt.Fprintf(rc.out, "nearest: index=%d x=%v value=%g at (%g, %g)\n",
			hover.Index, hover.Point.X, hover.Point.Y, hover.Coord.X, hover.Coord.Y)
	}
	return nil
}

func (cmd *pathCmd) series() ([]scale.Point, error) {
	if cmd.File == "" {
		if len(cmd.Values) == 0 {
			return nil, errors.New("chartctl: provide --values or --file")
		}
		out := make([]scale.Point, len(cmd.Values))
		for i, v := range cmd.Values {
			out[i] = scale.Point{X: i, Y: v}
		}
		return out, nil
	}
	snapshot, err := dashboard.ReadSnapshot(cmd.File)
	if err != nil {
		return nil, err
	}
	out := make([]scale.Point, 0, len(snapshot.Series))
	for _, row := range snapshot.Series {
		if v, ok := row.Values[cmd.Metric]; ok {
			out = append(out, scale.Point{X: row.Date, Y: v})
		}
	}
	return out, nil
}
