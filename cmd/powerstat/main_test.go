package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/krkonrad/Calculation-data/internal/common"
	"github.com/krkonrad/Calculation-data/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const householdsCSV = `PESEL,Lokalizacja,First Name,Power Consumption (kWh),House Size (m2)
85021512349,Kraków,Anna,300,60
02221512359,Gdańsk,Jan,400,50
bad,Gdańsk,Ewa,1,1
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "households.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the CLI with a clean global viper and an empty home directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "powerstat dev\n", out)
}

func TestDecode(t *testing.T) {
	out, err := execute(t, "decode", "--reference-date", "2024-06-01", "85021512349", "02221512359")
	require.NoError(t, err)

	assert.Contains(t, out, "85021512349  female  born 1985-02-15  age 39 (21-40)")
	assert.Contains(t, out, "02221512359  male    born 2002-02-15  age 22 (21-40)")
}

func TestDecode_Failures(t *testing.T) {
	out, err := execute(t, "decode", "--reference-date", "2024-06-01", "85021512349", "85133112349")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 identity codes could not be decoded")
	assert.Contains(t, out, "85133112349")
}

func TestDecode_BornAfterReferenceDate(t *testing.T) {
	out, err := execute(t, "decode", "--reference-date", "2000-01-01", "02221512359")
	require.NoError(t, err)
	assert.Contains(t, out, "born after the reference date")
}

func TestLocations(t *testing.T) {
	out, err := execute(t, "locations", "-f", writeCSV(t, householdsCSV))
	require.NoError(t, err)

	assert.Contains(t, out, "1. Kraków")
	assert.Contains(t, out, "2. Gdańsk")
	assert.Contains(t, out, "3. Cała Polska")
}

func TestReport(t *testing.T) {
	path := writeCSV(t, householdsCSV)

	tests := []struct {
		name     string
		contains []string
		args     []string
	}{
		{
			name:     "whole population by default",
			args:     []string{"report", "-f", path, "--reference-date", "2024-06-01"},
			contains: []string{"Cała Polska", "2 households", "Anna", "50.0%"},
		},
		{
			name:     "single location",
			args:     []string{"report", "-f", path, "--reference-date", "2024-06-01", "--location", "Gdańsk"},
			contains: []string{"Gdańsk", "1 households", "Jan", "100.0%", "400.00"},
		},
		{
			name:     "unknown location",
			args:     []string{"report", "-f", path, "--location", "Sopot"},
			contains: []string{"no data for location Sopot"},
		},
		{
			name:     "every location",
			args:     []string{"report", "-f", path, "--all"},
			contains: []string{"Kraków", "Gdańsk", "Cała Polska"},
		},
		{
			name:     "with progress",
			args:     []string{"report", "-f", path, "--progress"},
			contains: []string{"Cała Polska"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestReport_SQLite(t *testing.T) {
	path := testutil.SetupHouseholdDB(t, testutil.NewRowBuilder().
		Person("85021512349", "Kraków", "Anna", 300, 60).
		Person("02221512359", "Gdańsk", "Jan", 400, 50).
		Rows())

	out, err := execute(t, "report", "-f", path, "--location", "Kraków")
	require.NoError(t, err)
	assert.Contains(t, out, "1 households")
	assert.Contains(t, out, "Anna")
}

func TestReport_Errors(t *testing.T) {
	t.Run("no data file", func(t *testing.T) {
		_, err := execute(t, "report")
		assert.ErrorIs(t, err, common.ErrNoDataSource)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := execute(t, "report", "-f", writeCSV(t, "PESEL,Lokalizacja\n85021512349,Kraków\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "First Name")
	})

	t.Run("conflicting flags", func(t *testing.T) {
		_, err := execute(t, "report", "-f", writeCSV(t, householdsCSV), "--all", "--location", "Kraków")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("bad reference date", func(t *testing.T) {
		_, err := execute(t, "report", "-f", writeCSV(t, householdsCSV), "--reference-date", "yesterday")
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := execute(t, "version", "--log-level", "loud")
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}

func TestConfigFile(t *testing.T) {
	data := writeCSV(t, "Identity,City,Name,kWh,m2\n85021512349,Kraków,Anna,300,60\n")
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
data:
  file: `+data+`
columns:
  identity_code: Identity
  location: City
  first_name: Name
  power: kWh
  house_size: m2
report:
  all_label: Everyone
`), 0o600))

	out, err := execute(t, "--config", cfgPath, "locations")
	require.NoError(t, err)
	assert.Contains(t, out, "Kraków")
	assert.Contains(t, out, "Everyone")
}

func TestListenBanner(t *testing.T) {
	tests := []struct {
		name string
		addr string
		tls  bool
		want string
	}{
		{name: "port only", addr: ":8080", want: "http://localhost:8080/metrics"},
		{name: "host and port over TLS", addr: "127.0.0.1:8443", tls: true, want: "https://127.0.0.1:8443/metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, listenBanner(tt.addr, tt.tls), tt.want)
		})
	}
}
