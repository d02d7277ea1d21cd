// Package report renders a standalone HTML summary of an extraction
// run using go-echarts: per-column distribution statistics for a quick
// sanity check before the table is handed to the training pipeline.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/verdant-data/canopy.report/internal/features"
)

// Render writes the HTML report for a table to w.
func Render(w io.Writer, title string, table *features.Table) error {
	names := table.ColumnNames()
	means := make([]opts.BarData, 0, len(names))
	stds := make([]opts.BarData, 0, len(names))
	ranges := make([]opts.BarData, 0, len(names))
	for _, col := range table.Columns() {
		means = append(means, opts.BarData{Value: stat.Mean(col.Values, nil)})
		stds = append(stds, opts.BarData{Value: stat.PopStdDev(col.Values, nil)})
		ranges = append(ranges, opts.BarData{Value: floats.Max(col.Values) - floats.Min(col.Values)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d columns x %d pixels", table.NumColumns(), table.NumRows()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("mean", means).
		AddSeries("std", stds).
		AddSeries("range", ranges)

	page := components.NewPage()
	page.AddCharts(bar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteFile renders the report to an HTML file, creating parent
// directories as needed.
func WriteFile(path, title string, table *features.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := Render(f, title, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
