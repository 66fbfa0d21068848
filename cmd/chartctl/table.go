package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"

	"github.com/goliatone/go-chartview/components/dashboard"
	"github.com/goliatone/go-chartview/pkg/tabular"
)

type tableCmd struct {
	File     string   `arg:"" type:"existingfile" help:"Dataset fixture (YAML)."`
	Sort     string   `help:"Column to sort by."`
	Dir      string   `default:"asc" enum:"asc,desc" help:"Sort direction."`
	Page     int      `default:"1" help:"Page to show; out of range pages are clamped."`
	PageSize int      `name:"page-size" default:"5" help:"Rows per page."`
	Locale   string   `default:"en" help:"BCP 47 locale used to collate text columns."`
	Columns  []string `sep:"," help:"Columns to print (defaults to every key of the first row)."`
}

func (cmd *tableCmd) Run(rc *runContext) error {
	snapshot, err := dashboard.ReadSnapshot(cmd.File)
	if err != nil {
		return err
	}
	tag, err := language.Parse(cmd.Locale)
	if err != nil {
		return fmt.Errorf("chartctl: locale %q: %w", cmd.Locale, err)
	}
	state := tabular.SortState{}
	if cmd.Sort != "" {
		state = tabular.SortState{Key: cmd.Sort, Direction: tabular.ParseDirection(cmd.Dir)}
	}
	sorted := tabular.SortRecords(snapshot.Products, state, tabular.WithLocale(tag))
	page := tabular.Paginate(sorted, cmd.Page, cmd.PageSize)

	columns := cmd.Columns
	if len(columns) == 0 {
		columns = dashboard.RecordColumns(snapshot.Products)
	}
	tw := tabwriter.NewWriter(rc.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(columns, "\t")))
	for _, row := range page.Rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := row[col]; ok {
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(rc.out, "Showing %d to %d of %d (page %d of %d)\n",
		page.FirstRow, page.LastRow, page.TotalRows, page.ClampedPage, page.TotalPages)
	return nil
}
