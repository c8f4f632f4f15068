package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	flag "github.com/spf13/pflag"

	corecfg "github.com/aevon-lab/tsfeatures/internal/core/config"
	"github.com/aevon-lab/tsfeatures/internal/core/fourier"
	"github.com/aevon-lab/tsfeatures/internal/core/frame"
	"github.com/aevon-lab/tsfeatures/internal/core/summary"
)

type csvFlags struct {
	input      *string
	output     *string
	dateColumn *string
	periods    *string
	maxOrder   *int
	engine     *string
	groupBy    *[]string
	recipe     *string
	dateLayout *string
	preview    *int
	summary    *bool
}

func bindCSVFlags(fl *flag.FlagSet) csvFlags {
	return csvFlags{
		input:      fl.StringP("input", "i", "-", "CSV file to augment, - for stdin"),
		output:     fl.StringP("output", "o", "-", "Where to write the augmented CSV, - for stdout"),
		dateColumn: fl.String("date-column", "date", "Timestamp column"),
		periods:    fl.String("periods", "", `Periods: "7", "1:3" or "7,30,365"`),
		maxOrder:   fl.Int("max-order", 0, "Highest harmonic per period (default from config)"),
		engine:     fl.String("engine", "", "Engine: rows or vectorized (default from config)"),
		groupBy:    fl.StringSlice("group-by", nil, "Group key columns"),
		recipe:     fl.String("recipe", "", "Apply a named recipe; explicit flags override its fields"),
		dateLayout: fl.String("date-layout", "", "Go time layout of the date column (default from config)"),
		preview:    fl.Int("preview", 0, "Print the first N augmented rows to stderr"),
		summary:    fl.Bool("summary", false, "Print the time summary of the date column to stderr"),
	}
}

// csvJob is a fully resolved one-shot augmentation.
type csvJob struct {
	opts    fourier.Options
	groupBy []string
	layout  string
	preview int
	summary bool
}

func runCSV(fl *flag.FlagSet, f csvFlags, cfg *corecfg.Config, aug *fourier.Augmenter) error {
	job, err := resolveCSVJob(fl, f, cfg)
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if *f.input != "-" {
		file, err := os.Open(*f.input)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	// Nothing touches the output until the whole table is augmented.
	var buf bytes.Buffer
	if err := augmentCSV(in, &buf, os.Stderr, job, aug); err != nil {
		return err
	}
	if *f.output == "-" {
		_, err := buf.WriteTo(os.Stdout)
		return err
	}
	return replaceFile(*f.output, buf.Bytes())
}

// replaceFile writes data to a temp file next to path and renames it over
// path, so readers see either the old file or the complete new one.
func replaceFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	return os.Rename(tmp.Name(), path)
}

func resolveCSVJob(fl *flag.FlagSet, f csvFlags, cfg *corecfg.Config) (csvJob, error) {
	job := csvJob{
		opts: fourier.Options{
			DateColumn: *f.dateColumn,
			MaxOrder:   cfg.Fourier.DefaultMaxOrder,
			Engine:     cfg.Fourier.DefaultEngine,
		},
		layout:  cfg.Fourier.DateLayout,
		preview: *f.preview,
		summary: *f.summary,
	}

	if *f.recipe != "" {
		rec, err := cfg.RecipeLoading.Repository.Get(context.Background(), *f.recipe)
		if err != nil {
			return csvJob{}, fmt.Errorf("recipe %q: %w", *f.recipe, err)
		}
		job.opts.DateColumn = rec.DateColumn
		job.opts.Periods = rec.Periods
		if rec.MaxOrder > 0 {
			job.opts.MaxOrder = rec.MaxOrder
		}
		if rec.Engine != "" {
			job.opts.Engine = rec.Engine
		}
		job.groupBy = rec.GroupBy
	}

	if fl.Changed("date-column") {
		job.opts.DateColumn = *f.dateColumn
	}
	if fl.Changed("periods") {
		spec, err := fourier.ParsePeriodSpec(*f.periods)
		if err != nil {
			return csvJob{}, err
		}
		job.opts.Periods = spec
	}
	if fl.Changed("max-order") {
		job.opts.MaxOrder = *f.maxOrder
	}
	if fl.Changed("engine") {
		job.opts.Engine = *f.engine
	}
	if fl.Changed("group-by") {
		job.groupBy = *f.groupBy
	}
	if fl.Changed("date-layout") {
		job.layout = *f.dateLayout
	}
	return job, nil
}

// augmentCSV reads a table from in, augments it and writes it to out.
// Previews and summaries go to diag.
func augmentCSV(in io.Reader, out, diag io.Writer, job csvJob, aug *fourier.Augmenter) error {
	csvOpts := frame.CSVOptions{
		TimeColumns: []string{job.opts.DateColumn},
		TimeLayout:  job.layout,
	}
	tbl, err := frame.ReadCSV(in, csvOpts)
	if err != nil {
		return err
	}

	if job.summary {
		s, err := summary.Summarize(tbl, job.opts.DateColumn)
		if err != nil {
			return err
		}
		renderSummary(diag, job.opts.DateColumn, s)
	}

	var data frame.Data = tbl
	groups := 0
	if len(job.groupBy) > 0 {
		grouped, err := frame.GroupBy(tbl, job.groupBy...)
		if err != nil {
			return err
		}
		data, groups = grouped, grouped.NumGroups()
	}

	start := time.Now()
	augmented, err := aug.Augment(data, job.opts)
	if err != nil {
		return err
	}
	slog.Info("[CSV] Augmented table",
		"rows", augmented.NumRows(),
		"columns", augmented.NumCols(),
		"groups", groups,
		"duration", time.Since(start))

	if job.preview > 0 {
		fmt.Fprintln(diag, frame.Render(augmented, job.preview, job.layout))
	}
	return frame.WriteCSV(out, augmented, csvOpts)
}

func renderSummary(w io.Writer, dateColumn string, s summary.Summary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("summary of " + dateColumn)
	tw.AppendHeader(table.Row{"statistic", "value"})
	tw.AppendRows([]table.Row{
		{"rows", s.Rows},
		{"nulls", s.Nulls},
		{"start", s.Start.Format(time.RFC3339)},
		{"end", s.End.Format(time.RFC3339)},
		{"diff min", s.DiffMin},
		{"diff q25", s.DiffQ25},
		{"diff median", s.DiffMedian},
		{"diff mean", s.DiffMean},
		{"diff q75", s.DiffQ75},
		{"diff max", s.DiffMax},
	})
	tw.Render()
}
