// Package source reads raw household rows from CSV files and SQLite databases.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/krkonrad/Calculation-data/internal/model"
)

// Source errors.
var (
	ErrMissingColumn     = errors.New("missing required column")
	ErrUnsupportedFormat = errors.New("unsupported data file format")
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
)

// Reader yields every row of a source in source order.
type Reader interface {
	Read(ctx context.Context) ([]model.RawRow, error)
}

// Columns names the source columns that feed each RawRow field.
type Columns struct {
	IdentityCode string
	Power        string
	HouseSize    string
	Location     string
	FirstName    string
}

// DefaultColumns returns the column names of the household survey export.
func DefaultColumns() Columns {
	return Columns{
		IdentityCode: "PESEL",
		Power:        "Power Consumption (kWh)",
		HouseSize:    "House Size (m2)",
		Location:     "Lokalizacja",
		FirstName:    "First Name",
	}
}

// names returns the columns in RawRow field order.
func (c Columns) names() []string {
	return []string{c.IdentityCode, c.Location, c.FirstName, c.Power, c.HouseSize}
}

// Validate checks that every column is named.
func (c Columns) Validate() error {
	labels := []string{"identity_code", "location", "first_name", "power", "house_size"}
	for i, name := range c.names() {
		if err := validateString(name, labels[i]); err != nil {
			return err
		}
	}
	return nil
}

// rowFrom builds a RawRow from values given in Columns.names order.
func rowFrom(values []string, line int) model.RawRow {
	return model.RawRow{
		IdentityCode:     values[0],
		Location:         values[1],
		FirstName:        values[2],
		PowerConsumption: values[3],
		HouseSize:        values[4],
		Line:             line,
	}
}

// Options selects how Open reads a data file.
type Options struct {
	Columns Columns
	Table   string // SQLite only
}

// Open returns a Reader for path, chosen by file extension.
func Open(path string, opts Options) (Reader, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return NewCSVReader(path, opts.Columns)
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteReader(path, opts.Table, opts.Columns)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}
