package config

import (
	"fmt"
	"os"

	"github.com/krkonrad/Calculation-data/internal/common"
	"github.com/krkonrad/Calculation-data/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or POWERSTAT_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	return LoadSheetsConfigFrom(viper.GetViper())
}

// LoadSheetsConfigFrom is LoadSheetsConfig reading from v.
func LoadSheetsConfigFrom(v *viper.Viper) (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	// Load from Viper first
	if val := v.GetString("sheets.service_account_path"); val != "" {
		config.ServiceAccountPath = ExpandPath(val)
	}
	if val := v.GetString("sheets.client_id"); val != "" {
		config.ClientID = val
	}
	if val := v.GetString("sheets.client_secret"); val != "" {
		config.ClientSecret = val
	}
	if val := v.GetString("sheets.refresh_token"); val != "" {
		config.RefreshToken = val
	}
	if val := v.GetString("sheets.spreadsheet_id"); val != "" {
		config.SpreadsheetID = val
	}
	if val := v.GetString("sheets.spreadsheet_name"); val != "" {
		config.SpreadsheetName = val
	}
	if val := v.GetString("sheets.sheet_title"); val != "" {
		config.SheetTitle = val
	}
	if v.IsSet("sheets.precision") {
		config.Precision = v.GetInt32("sheets.precision")
	}

	// Override with direct environment variables if not set
	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = ExpandPath(v)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if config.SpreadsheetName == "" || config.SpreadsheetName == sheets.DefaultSpreadsheetName {
		if v := os.Getenv("GOOGLE_SHEETS_SPREADSHEET_NAME"); v != "" {
			config.SpreadsheetName = v
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: sheets: %v", common.ErrMissingConfig, err)
	}

	return &config, nil
}
