package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	Path     pathCmd     `cmd:"" help:"Map a numeric series onto a viewport and print the SVG path."`
	Table    tableCmd    `cmd:"" help:"Sort and paginate the product table of a dataset fixture."`
	Validate validateCmd `cmd:"" help:"Verify manifests: datasets load and layout widgets satisfy their schemas."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a widget definition to a manifest and generate a provider stub."`
}

// runContext is bound into every command's Run method.
type runContext struct {
	ctx context.Context
	out io.Writer
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Name("chartctl"),
		kong.Description("Chart geometry and table view utility for go-chartview datasets."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&runContext{ctx: context.Background(), out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
