package testutil

import (
	"fmt"
	"strconv"
	"time"

	"github.com/krkonrad/Calculation-data/internal/model"
)

// Code builds an 11-digit identity code for the given birth date fields and sex digit.
// The encoded month must already carry the century offset.
func Code(yy, encodedMonth, day, sexDigit int) string {
	return fmt.Sprintf("%02d%02d%02d000%d0", yy, encodedMonth, day, sexDigit)
}

// RowBuilder assembles raw rows with a fluent API.
//
// Example:
//
//	rows := testutil.NewRowBuilder().
//		Person("85021512349", "Kraków", "Anna", 300, 60).
//		Raw("garbage", "Kraków", "Jan", "x", "y").
//		Rows()
type RowBuilder struct {
	rows []model.RawRow
}

// NewRowBuilder creates an empty builder.
func NewRowBuilder() *RowBuilder {
	return &RowBuilder{}
}

// Person appends a row with numeric power and area.
func (b *RowBuilder) Person(code, location, name string, powerKWh, areaM2 float64) *RowBuilder {
	return b.Raw(code, location, name,
		strconv.FormatFloat(powerKWh, 'f', -1, 64),
		strconv.FormatFloat(areaM2, 'f', -1, 64))
}

// Raw appends a row with every field given verbatim.
func (b *RowBuilder) Raw(code, location, name, power, area string) *RowBuilder {
	b.rows = append(b.rows, model.RawRow{
		IdentityCode:     code,
		Location:         location,
		FirstName:        name,
		PowerConsumption: power,
		HouseSize:        area,
		Line:             len(b.rows) + 2,
	})
	return b
}

// Rows returns the built rows.
func (b *RowBuilder) Rows() []model.RawRow {
	return b.rows
}

// Record builds a normalized record directly, bypassing the decoder.
func Record(sex model.Sex, age int, location, name string, powerKWh, areaM2 float64) model.Record {
	return model.Record{
		Sex:                 sex,
		BirthDate:           time.Date(2000-age, time.January, 1, 0, 0, 0, 0, time.UTC),
		Age:                 age,
		Location:            location,
		FirstName:           name,
		PowerConsumptionKWh: powerKWh,
		HouseAreaM2:         areaM2,
		ConsumptionPerM2:    powerKWh / areaM2,
	}
}

// Population returns a small mixed dataset spread over three locations.
func Population() []model.Record {
	return []model.Record{
		Record(model.Female, 15, "Kraków", "Anna", 300, 60),
		Record(model.Male, 35, "Kraków", "Jan", 400, 50),
		Record(model.Female, 35, "Gdańsk", "Anna", 250, 100),
		Record(model.Male, 55, "Gdańsk", "Piotr", 500, 80),
		Record(model.Female, 72, "Kraków", "Maria", 200, 40),
		Record(model.Male, 88, "Poznań", "Jan", 150, 75),
		Record(model.Female, 103, "Poznań", "Zofia", 120, 30),
		Record(model.Male, 20, "Gdańsk", "Kacper", 350, 70),
		Record(model.Female, 41, "Kraków", "Anna", 310, 62),
	}
}
