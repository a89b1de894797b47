package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/krkonrad/Calculation-data/internal/model"
)

const utf8BOM = "\ufeff"

// CSVReader reads rows from a CSV file with a header line.
type CSVReader struct {
	path    string
	columns Columns
}

// NewCSVReader creates a reader for the CSV file at path.
func NewCSVReader(path string, columns Columns) (*CSVReader, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	if err := columns.Validate(); err != nil {
		return nil, err
	}
	return &CSVReader{path: path, columns: columns}, nil
}

// Read implements Reader.
func (r *CSVReader) Read(ctx context.Context) ([]model.RawRow, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	rows, err := ParseCSV(ctx, f, r.columns)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	slog.Info("Read data file", "path", r.path, "rows", len(rows))
	return rows, nil
}

// ParseCSV reads every data line of a CSV stream. Lines shorter than the header
// are padded with empty fields so they can be rejected during normalization.
func ParseCSV(ctx context.Context, in io.Reader, columns Columns) ([]model.RawRow, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file has no header", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := headerIndex(header, columns)
	if err != nil {
		return nil, err
	}

	var rows []model.RawRow
	values := make([]string, len(index))
	for {
		if len(rows)%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		line, _ := cr.FieldPos(0)
		for i, col := range index {
			values[i] = ""
			if col < len(record) {
				values[i] = record[col]
			}
		}
		rows = append(rows, rowFrom(values, line))
	}

	return rows, nil
}

func headerIndex(header []string, columns Columns) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		positions[strings.TrimSpace(h)] = i
	}

	names := columns.names()
	index := make([]int, len(names))
	var missing []string
	for i, name := range names {
		pos, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		index[i] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}
