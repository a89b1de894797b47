// Package normalize turns raw source rows into validated records. Rows that cannot
// produce a complete record are dropped; nothing is reported back to the caller
// except their absence.
package normalize

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/krkonrad/Calculation-data/internal/model"
	"github.com/krkonrad/Calculation-data/internal/pesel"
)

// DropReason says why a row did not become a record.
type DropReason string

// Drop reasons.
const (
	DropInvalidCode       DropReason = "invalid_code"
	DropInvalidPower      DropReason = "invalid_power"
	DropInvalidHouseSize  DropReason = "invalid_house_size"
	DropBirthAfterRefDate DropReason = "birth_after_reference_date"
)

// DropReasons lists every reason, for metric pre-registration.
var DropReasons = []DropReason{
	DropInvalidCode,
	DropInvalidPower,
	DropInvalidHouseSize,
	DropBirthAfterRefDate,
}

const daysPerYear = 365

var (
	errMissing     = errors.New("missing value")
	errNotPositive = errors.New("value must be positive")
)

// Option configures a Normalize run.
type Option func(*options)

type options struct {
	onDrop     func(model.RawRow, DropReason)
	onProgress func(int)
}

// WithDropObserver registers a callback invoked once per dropped row.
func WithDropObserver(fn func(model.RawRow, DropReason)) Option {
	return func(o *options) {
		o.onDrop = fn
	}
}

// WithProgress registers a callback invoked with 1 after each processed row.
func WithProgress(fn func(int)) Option {
	return func(o *options) {
		o.onProgress = fn
	}
}

// Normalize converts rows into records relative to ref, preserving input order.
func Normalize(rows []model.RawRow, ref time.Time, opts ...Option) []model.Record {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		rec, reason, err := normalizeRow(row, ref)
		if err != nil {
			slog.Debug("dropped row",
				"line", row.Line,
				"reason", string(reason),
				"error", err)
			if o.onDrop != nil {
				o.onDrop(row, reason)
			}
		} else {
			records = append(records, rec)
		}
		if o.onProgress != nil {
			o.onProgress(1)
		}
	}

	slog.Debug("normalized rows",
		"rows", len(rows),
		"records", len(records),
		"dropped", len(rows)-len(records))

	return records
}

func normalizeRow(row model.RawRow, ref time.Time) (model.Record, DropReason, error) {
	id, err := pesel.Decode(row.IdentityCode)
	if err != nil {
		return model.Record{}, DropInvalidCode, err
	}

	power, err := ParseAmount(row.PowerConsumption)
	if err != nil {
		return model.Record{}, DropInvalidPower, fmt.Errorf("power consumption: %w", err)
	}

	area, err := ParseAmount(row.HouseSize)
	if err != nil {
		return model.Record{}, DropInvalidHouseSize, fmt.Errorf("house size: %w", err)
	}

	age, ok := Age(id.BirthDate, ref)
	if !ok {
		return model.Record{}, DropBirthAfterRefDate,
			fmt.Errorf("birth date %s is after %s", id.BirthDate.Format("2006-01-02"), ref.Format("2006-01-02"))
	}

	return model.Record{
		Sex:                 id.Sex,
		BirthDate:           id.BirthDate,
		Age:                 age,
		Location:            row.Location,
		FirstName:           row.FirstName,
		PowerConsumptionKWh: power,
		HouseAreaM2:         area,
		ConsumptionPerM2:    power / area,
	}, "", nil
}

// ParseAmount parses a positive, finite number. Surrounding whitespace is ignored;
// separators other than a decimal point make the value unparseable.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errMissing
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", errMissing, raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %v", errNotPositive, v)
	}
	return v, nil
}

// Age returns the whole years between birth and ref as elapsed days divided by 365.
// Leap days are not corrected for. It returns false when birth is after ref.
func Age(birth, ref time.Time) (int, bool) {
	days := civilDay(ref) - civilDay(birth)
	if days < 0 {
		return 0, false
	}
	return int(days / daysPerYear), true
}

// civilDay numbers calendar days, ignoring time of day and zone offset.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
