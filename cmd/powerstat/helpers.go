package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/krkonrad/Calculation-data/internal/config"
	"github.com/krkonrad/Calculation-data/internal/dataset"
	"github.com/krkonrad/Calculation-data/internal/normalize"
	"github.com/krkonrad/Calculation-data/internal/source"
	"github.com/schollz/progressbar/v3"
)

// openDataset opens the configured data file. Nothing is read until the dataset
// is first queried.
func openDataset(cfg *config.Config, opts ...normalize.Option) (*dataset.Dataset, error) {
	if err := cfg.RequireDataFile(); err != nil {
		return nil, err
	}

	src, err := source.Open(cfg.DataFile, cfg.SourceOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.DataFile, err)
	}

	slog.Debug("Opened data file", "path", cfg.DataFile, "reference_date", cfg.ReferenceDate.Format(config.DateLayout))
	return dataset.New(src, cfg.ReferenceDate, opts...), nil
}

// newProgress returns a normalize option that advances a spinner on w, and a
// function that finishes it. The row count is not known before the file is read.
func newProgress(w io.Writer) (normalize.Option, func()) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("[cyan][bold]Normalizing households...[reset]"),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	advance := normalize.WithProgress(func(n int) {
		if err := bar.Add(n); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	})
	finish := func() {
		if err := bar.Finish(); err != nil {
			slog.Warn("Failed to finish progress bar", "error", err)
		}
	}
	return advance, finish
}

// loadDataset opens the configured data file and reads it right away, showing a
// spinner on progressOut while rows are normalized when showProgress is set.
func loadDataset(ctx context.Context, cfg *config.Config, showProgress bool, progressOut io.Writer) (*dataset.Dataset, error) {
	var opts []normalize.Option
	finish := func() {}
	if showProgress {
		var advance normalize.Option
		advance, finish = newProgress(progressOut)
		opts = append(opts, advance)
	}

	ds, err := openDataset(cfg, opts...)
	if err != nil {
		return nil, err
	}
	_, err = ds.Records(ctx)
	finish()
	if err != nil {
		return nil, err
	}
	return ds, nil
}
