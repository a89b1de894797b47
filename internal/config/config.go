package config

import (
	"fmt"
	"time"

	"github.com/krkonrad/Calculation-data/internal/common"
	"github.com/krkonrad/Calculation-data/internal/model"
	"github.com/krkonrad/Calculation-data/internal/source"
	"github.com/spf13/viper"
)

// DateLayout is the layout of dates accepted in flags and config files.
const DateLayout = "2006-01-02"

// Config is the typed view of the settings every command shares.
type Config struct {
	ReferenceDate time.Time
	Columns       source.Columns
	DataFile      string
	Table         string
	WholeLabel    string
	ServerAddr    string
	LogLevel      string
	LogFormat     string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	cols := source.DefaultColumns()
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("data.table", source.DefaultTable)
	v.SetDefault("columns.identity_code", cols.IdentityCode)
	v.SetDefault("columns.power", cols.Power)
	v.SetDefault("columns.house_size", cols.HouseSize)
	v.SetDefault("columns.location", cols.Location)
	v.SetDefault("columns.first_name", cols.FirstName)
	v.SetDefault("report.all_label", model.DefaultWholePopulationLabel)
	v.SetDefault("server.addr", ":8080")
}

// Load builds a Config from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper(), time.Now())
}

// LoadFrom builds a Config from v. now supplies the reference date when none is configured.
func LoadFrom(v *viper.Viper, now time.Time) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DataFile: ExpandPath(v.GetString("data.file")),
		Table:    v.GetString("data.table"),
		Columns: source.Columns{
			IdentityCode: v.GetString("columns.identity_code"),
			Power:        v.GetString("columns.power"),
			HouseSize:    v.GetString("columns.house_size"),
			Location:     v.GetString("columns.location"),
			FirstName:    v.GetString("columns.first_name"),
		},
		WholeLabel: v.GetString("report.all_label"),
		ServerAddr: v.GetString("server.addr"),
		LogLevel:   v.GetString("logging.level"),
		LogFormat:  v.GetString("logging.format"),
	}

	ref, err := ParseReferenceDate(v.GetString("report.reference_date"), now)
	if err != nil {
		return nil, err
	}
	cfg.ReferenceDate = ref

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that do not depend on the command being run.
func (c *Config) Validate() error {
	if err := c.Columns.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	if c.WholeLabel == "" {
		return fmt.Errorf("%w: report.all_label must not be empty", common.ErrInvalidConfig)
	}
	return nil
}

// RequireDataFile returns an error when no data file has been configured.
func (c *Config) RequireDataFile() error {
	if c.DataFile == "" {
		return common.NewUserError("pass --file or set data.file in the config", common.ErrNoDataSource)
	}
	return nil
}

// SourceOptions returns the options for opening the data file.
func (c *Config) SourceOptions() source.Options {
	return source.Options{Columns: c.Columns, Table: c.Table}
}

// ParseReferenceDate parses a YYYY-MM-DD date. An empty value means the calendar
// date of now.
func ParseReferenceDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid reference date %q: %v", common.ErrInvalidConfig, value, err)
	}
	return t, nil
}
