package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/krkonrad/Calculation-data/internal/common"
	"github.com/krkonrad/Calculation-data/internal/model"
	"github.com/krkonrad/Calculation-data/internal/sheets"
	"github.com/krkonrad/Calculation-data/internal/source"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 1, 15, 30, 0, 0, time.Local)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New(), now)
	require.NoError(t, err)

	assert.Equal(t, source.DefaultColumns(), cfg.Columns)
	assert.Equal(t, source.DefaultTable, cfg.Table)
	assert.Equal(t, model.DefaultWholePopulationLabel, cfg.WholeLabel)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), cfg.ReferenceDate)
	assert.Empty(t, cfg.DataFile)
}

func TestLoadFrom_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  file: /data/households.csv
  table: readings
columns:
  identity_code: Identity
  location: City
report:
  reference_date: "2020-02-29"
  all_label: Poland
server:
  addr: 127.0.0.1:9000
`), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := LoadFrom(v, now)
	require.NoError(t, err)

	assert.Equal(t, "/data/households.csv", cfg.DataFile)
	assert.Equal(t, "readings", cfg.Table)
	assert.Equal(t, "Identity", cfg.Columns.IdentityCode)
	assert.Equal(t, "City", cfg.Columns.Location)
	assert.Equal(t, source.DefaultColumns().Power, cfg.Columns.Power)
	assert.Equal(t, "Poland", cfg.WholeLabel)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddr)
	assert.Equal(t, time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC), cfg.ReferenceDate)

	opts := cfg.SourceOptions()
	assert.Equal(t, "readings", opts.Table)
	assert.Equal(t, cfg.Columns, opts.Columns)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad reference date", key: "report.reference_date", val: "01.06.2024"},
		{name: "impossible reference date", key: "report.reference_date", val: "2023-02-29"},
		{name: "empty column name", key: "columns.power", val: " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)

			_, err := LoadFrom(v, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestRequireDataFile(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireDataFile()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoDataSource)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)

	cfg.DataFile = "households.csv"
	assert.NoError(t, cfg.RequireDataFile())
}

func TestParseReferenceDate(t *testing.T) {
	tests := []struct {
		want    time.Time
		name    string
		value   string
		wantErr bool
	}{
		{name: "empty uses today", value: "", want: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{name: "explicit", value: "1999-12-31", want: time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{name: "wrong layout", value: "31/12/1999", wantErr: true},
		{name: "garbage", value: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReferenceDate(tt.value, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("POWERSTAT_TEST_DIR", "/srv/data")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/households.csv", want: filepath.Join(home, "households.csv")},
		{input: "$POWERSTAT_TEST_DIR/h.db", want: "/srv/data/h.db"},
		{input: "/abs/path.csv", want: "/abs/path.csv"},
		{input: "~/.config/powerstat/certs", want: filepath.Join(home, ".config", "powerstat", "certs")},
		{input: "~other/h.csv", want: "~other/h.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestLoadSheetsConfigFrom(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}

	t.Run("viper values", func(t *testing.T) {
		v := viper.New()
		v.Set("sheets.service_account_path", "/keys/sa.json")
		v.Set("sheets.spreadsheet_id", "sheet-1")
		v.Set("sheets.sheet_title", "Energia")
		v.Set("sheets.precision", 1)

		cfg, err := LoadSheetsConfigFrom(v)
		require.NoError(t, err)
		assert.Equal(t, int32(1), cfg.Precision)
		assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "sheet-1", cfg.SpreadsheetID)
		assert.Equal(t, "Energia", cfg.SheetTitle)
		assert.Equal(t, sheets.DefaultSpreadsheetName, cfg.SpreadsheetName)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "id")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "token")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Household Report 2024")

		cfg, err := LoadSheetsConfigFrom(viper.New())
		require.NoError(t, err)
		assert.Equal(t, "id", cfg.ClientID)
		assert.Equal(t, int32(3), cfg.Precision)
		assert.Equal(t, "Household Report 2024", cfg.SpreadsheetName)
	})

	t.Run("no credentials", func(t *testing.T) {
		_, err := LoadSheetsConfigFrom(viper.New())
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})
}
