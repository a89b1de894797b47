package model

import "time"

// RawRow is one untyped source line as handed over by a row source.
// Numeric columns stay as text until normalization.
type RawRow struct {
	IdentityCode     string
	Location         string
	FirstName        string
	PowerConsumption string
	HouseSize        string
	Line             int // 1-based position in the source, 0 if unknown
}

// Record is a fully validated household record. A Record only exists when every field
// could be derived from its RawRow.
type Record struct {
	BirthDate           time.Time
	Location            string
	FirstName           string
	PowerConsumptionKWh float64
	HouseAreaM2         float64
	ConsumptionPerM2    float64
	Age                 int
	Sex                 Sex
}

// AgeBand returns the band of the record's age.
func (r Record) AgeBand() (AgeBand, bool) {
	return BinAge(r.Age)
}
