package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `PESEL,First Name,Lokalizacja,Power Consumption (kWh),House Size (m2),Extra
85021512349,Anna,Kraków,300,60,x
02221512349,Jan,Kraków,400,50,y
"00000000000","Maria, Ewa",Gdańsk,,45,z
12345678901,Piotr,Poznań
`

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(context.Background(), strings.NewReader(sampleCSV), DefaultColumns())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "85021512349", rows[0].IdentityCode)
	assert.Equal(t, "Anna", rows[0].FirstName)
	assert.Equal(t, "Kraków", rows[0].Location)
	assert.Equal(t, "300", rows[0].PowerConsumption)
	assert.Equal(t, "60", rows[0].HouseSize)
	assert.Equal(t, 2, rows[0].Line)

	assert.Equal(t, "02221512349", rows[1].IdentityCode, "leading zeros must survive")

	assert.Equal(t, "Maria, Ewa", rows[2].FirstName)
	assert.Empty(t, rows[2].PowerConsumption)

	assert.Equal(t, "Piotr", rows[3].FirstName)
	assert.Empty(t, rows[3].PowerConsumption, "short rows are padded")
	assert.Empty(t, rows[3].HouseSize)
	assert.Equal(t, 5, rows[3].Line)
}

func TestParseCSV_BOMAndSpacedHeader(t *testing.T) {
	in := "\ufeffPESEL , Lokalizacja,First Name,Power Consumption (kWh),House Size (m2)\n85021512349,X,Anna,300,60\n"
	rows, err := ParseCSV(context.Background(), strings.NewReader(in), DefaultColumns())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "85021512349", rows[0].IdentityCode)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	in := "PESEL,Lokalizacja\n85021512349,X\n"
	_, err := ParseCSV(context.Background(), strings.NewReader(in), DefaultColumns())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "First Name")
	assert.Contains(t, err.Error(), "House Size (m2)")
}

func TestParseCSV_EmptyInput(t *testing.T) {
	_, err := ParseCSV(context.Background(), strings.NewReader(""), DefaultColumns())
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseCSV_CustomColumns(t *testing.T) {
	cols := Columns{IdentityCode: "id", Power: "kwh", HouseSize: "m2", Location: "city", FirstName: "name"}
	in := "name,id,city,m2,kwh\nAnna,85021512349,X,60,300\n"
	rows, err := ParseCSV(context.Background(), strings.NewReader(in), cols)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "300", rows[0].PowerConsumption)
	assert.Equal(t, "60", rows[0].HouseSize)
}

func TestParseCSV_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseCSV(ctx, strings.NewReader(sampleCSV), DefaultColumns())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVReader_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poland_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	r, err := NewCSVReader(path, DefaultColumns())
	require.NoError(t, err)

	rows, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	missing, err := NewCSVReader(filepath.Join(t.TempDir(), "nope.csv"), DefaultColumns())
	require.NoError(t, err)
	_, err = missing.Read(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
		want    any
	}{
		{name: "csv", path: "data.csv", want: &CSVReader{}},
		{name: "upper-case csv", path: "DATA.CSV", want: &CSVReader{}},
		{name: "sqlite", path: "data.sqlite", want: &SQLiteReader{}},
		{name: "db", path: "data.db", want: &SQLiteReader{}},
		{name: "xlsx", path: "data.xlsx", wantErr: ErrUnsupportedFormat},
		{name: "empty", path: "", wantErr: ErrEmptyString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Open(tt.path, Options{Columns: DefaultColumns()})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, r)
		})
	}
}

func TestColumns_Validate(t *testing.T) {
	cols := DefaultColumns()
	require.NoError(t, cols.Validate())

	cols.Location = " "
	err := cols.Validate()
	assert.ErrorIs(t, err, ErrEmptyString)
	assert.Contains(t, err.Error(), "location")
}
