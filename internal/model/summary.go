package model

// BandSex identifies one cell of the band-by-sex view.
type BandSex struct {
	Band AgeBand
	Sex  Sex
}

// NameCount is a first name together with how often it occurs.
type NameCount struct {
	Name  string
	Count int
}

// Summary is the result of one aggregation run over a location.
type Summary struct {
	// ByBandAndSex holds the mean consumption per m² for each populated cell.
	// Cells without records are absent, never zero.
	ByBandAndSex map[BandSex]float64
	MeanBySex    map[Sex]float64
	Location     LocationKey
	TopNames     []NameCount
	Records      int
}

// Cell returns the mean consumption per m² of a cell and whether the cell has data.
func (s Summary) Cell(band AgeBand, sex Sex) (float64, bool) {
	v, ok := s.ByBandAndSex[BandSex{Band: band, Sex: sex}]
	return v, ok
}

// TotalNameCount sums the counts of the top names.
func (s Summary) TotalNameCount() int {
	total := 0
	for _, n := range s.TopNames {
		total += n.Count
	}
	return total
}
