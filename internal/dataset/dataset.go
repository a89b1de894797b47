// Package dataset loads and normalizes a row source once and shares the result.
package dataset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/krkonrad/Calculation-data/internal/aggregate"
	"github.com/krkonrad/Calculation-data/internal/common"
	"github.com/krkonrad/Calculation-data/internal/model"
	"github.com/krkonrad/Calculation-data/internal/normalize"
	"github.com/krkonrad/Calculation-data/internal/source"
)

// Dataset is the normalized record set of one source. Records are loaded on first
// use; afterwards they are read-only and safe for concurrent queries.
type Dataset struct {
	refDate time.Time
	source  source.Reader
	err     error
	records []model.Record
	opts    []normalize.Option
	once    sync.Once
}

// New creates a dataset over src with ages computed relative to refDate.
func New(src source.Reader, refDate time.Time, opts ...normalize.Option) *Dataset {
	return &Dataset{
		source:  src,
		refDate: refDate,
		opts:    opts,
	}
}

// FromRecords wraps already normalized records.
func FromRecords(records []model.Record) *Dataset {
	d := &Dataset{records: records}
	d.once.Do(func() {})
	return d
}

// Records loads the dataset if needed and returns it. A failed load is not retried.
func (d *Dataset) Records(ctx context.Context) ([]model.Record, error) {
	d.once.Do(func() {
		rows, err := d.source.Read(ctx)
		if err != nil {
			d.err = fmt.Errorf("failed to load rows: %w", err)
			common.LogError(err, "Failed to load dataset", common.Fields{
				"reference_date": d.refDate.Format(time.DateOnly),
			})
			return
		}
		d.records = normalize.Normalize(rows, d.refDate, d.opts...)
		common.LogInfo("Loaded dataset", common.Fields{
			"rows":           len(rows),
			"records":        len(d.records),
			"dropped":        len(rows) - len(d.records),
			"reference_date": d.refDate.Format(time.DateOnly),
		})
	})
	return d.records, d.err
}

// Locations returns the location catalog of the dataset.
func (d *Dataset) Locations(ctx context.Context) ([]model.LocationKey, error) {
	records, err := d.Records(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.Locations(records), nil
}

// Summary aggregates the dataset for key. The boolean is false when key selects no records.
func (d *Dataset) Summary(ctx context.Context, key model.LocationKey) (model.Summary, bool, error) {
	records, err := d.Records(ctx)
	if err != nil {
		return model.Summary{}, false, err
	}
	s, ok := aggregate.Aggregate(records, key)
	return s, ok, nil
}

// Lookup resolves a location name given on a command line or URL. Only the empty
// name selects the whole population; any other name is a concrete location, even
// one spelled like the whole-population label.
func Lookup(name string) model.LocationKey {
	if name == "" {
		return model.WholePopulation
	}
	return model.Location(name)
}
