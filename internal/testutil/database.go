// Package testutil provides fixtures shared by the package tests: identity codes,
// raw rows, normalized records and SQLite data files.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/krkonrad/Calculation-data/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const householdSchema = `CREATE TABLE households (
	"PESEL" TEXT,
	"Lokalizacja" TEXT,
	"First Name" TEXT,
	"Power Consumption (kWh)" REAL,
	"House Size (m2)" REAL
)`

// TestDBOptions configures SetupHouseholdDBWithOptions.
type TestDBOptions struct {
	// CustomSetup runs after the household rows are inserted.
	CustomSetup func(context.Context, *sql.DB) error
	Rows        []model.RawRow
	// Nulls inserts one extra row whose numeric columns are NULL.
	Nulls bool
}

// SetupHouseholdDB writes rows into a fresh SQLite file and returns its path.
//
// Example:
//
//	path := testutil.SetupHouseholdDB(t, testutil.NewRowBuilder().
//		Person("85021512349", "Kraków", "Anna", 300, 60).
//		Rows())
func SetupHouseholdDB(t *testing.T, rows []model.RawRow) string {
	t.Helper()
	return SetupHouseholdDBWithOptions(t, TestDBOptions{Rows: rows})
}

// SetupHouseholdDBWithOptions creates a household database with custom options.
func SetupHouseholdDBWithOptions(t *testing.T, opts TestDBOptions) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "households.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, householdSchema); err != nil {
		t.Fatalf("failed to create households table: %v", err)
	}

	if err := insertRows(ctx, db, opts.Rows); err != nil {
		t.Fatalf("failed to seed households: %v", err)
	}

	if opts.Nulls {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO households ("PESEL", "Lokalizacja", "First Name") VALUES (?, ?, ?)`,
			"85021512349", "Kraków", "Null"); err != nil {
			t.Fatalf("failed to insert NULL row: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, db); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return path
}

func insertRows(ctx context.Context, db *sql.DB, rows []model.RawRow) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO households
		("PESEL", "Lokalizacja", "First Name", "Power Consumption (kWh)", "House Size (m2)")
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.IdentityCode, r.Location, r.FirstName, r.PowerConsumption, r.HouseSize); err != nil {
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}

	return tx.Commit()
}
