package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/krkonrad/Calculation-data/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// DefaultTable is the table read when none is configured.
const DefaultTable = "households"

// SQLiteReader reads rows from a table in a SQLite database file.
type SQLiteReader struct {
	dbPath  string
	table   string
	columns Columns
}

// NewSQLiteReader creates a reader for table in the database at dbPath.
func NewSQLiteReader(dbPath, table string, columns Columns) (*SQLiteReader, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if err := columns.Validate(); err != nil {
		return nil, err
	}
	if table == "" {
		table = DefaultTable
	}
	if _, err := quoteIdent(table); err != nil {
		return nil, err
	}
	for _, name := range columns.names() {
		if _, err := quoteIdent(name); err != nil {
			return nil, err
		}
	}

	return &SQLiteReader{dbPath: dbPath, table: table, columns: columns}, nil
}

// Read implements Reader.
func (r *SQLiteReader) Read(ctx context.Context) ([]model.RawRow, error) {
	if _, err := os.Stat(r.dbPath); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+r.dbPath+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	rows, err := r.query(ctx, db)
	if err != nil {
		return nil, err
	}

	slog.Info("Read data table", "path", r.dbPath, "table", r.table, "rows", len(rows))
	return rows, nil
}

func (r *SQLiteReader) query(ctx context.Context, db *sql.DB) ([]model.RawRow, error) {
	names := r.columns.names()
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i], _ = quoteIdent(name)
	}
	table, _ := quoteIdent(r.table)

	// #nosec G202 -- identifiers are validated and quoted by quoteIdent.
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), table)

	result, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer result.Close()

	var rows []model.RawRow
	scanned := make([]sql.NullString, len(names))
	dest := make([]any, len(names))
	for i := range scanned {
		dest[i] = &scanned[i]
	}
	values := make([]string, len(names))

	for result.Next() {
		if err := result.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range scanned {
			values[i] = v.String
		}
		rows = append(rows, rowFrom(values, len(rows)+1))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return rows, nil
}

// quoteIdent double-quotes a table or column name. Names containing quotes or
// control characters are rejected instead of escaped.
func quoteIdent(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	}
	for _, r := range name {
		if r == '"' || r < 0x20 || r == 0x7f {
			return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return `"` + name + `"`, nil
}
