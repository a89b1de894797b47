package aggregate

import (
	"testing"

	"github.com/krkonrad/Calculation-data/internal/model"
	"github.com/krkonrad/Calculation-data/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocations(t *testing.T) {
	keys := Locations(testutil.Population())

	require.Len(t, keys, 4)
	assert.Equal(t, model.Location("Kraków"), keys[0])
	assert.Equal(t, model.Location("Gdańsk"), keys[1])
	assert.Equal(t, model.Location("Poznań"), keys[2])
	assert.True(t, keys[3].IsWholePopulation())
}

func TestLocations_EmptyDataset(t *testing.T) {
	keys := Locations(nil)
	assert.Equal(t, []model.LocationKey{model.WholePopulation}, keys)
}

func TestAggregate_WholePopulation(t *testing.T) {
	s, ok := Aggregate(testutil.Population(), model.WholePopulation)
	require.True(t, ok)

	assert.Equal(t, 9, s.Records)
	assert.True(t, s.Location.IsWholePopulation())

	cells := map[model.BandSex]float64{
		{Band: model.AgeBand0To20, Sex: model.Female}:   5,
		{Band: model.AgeBand0To20, Sex: model.Male}:     5,
		{Band: model.AgeBand21To40, Sex: model.Male}:    8,
		{Band: model.AgeBand21To40, Sex: model.Female}:  2.5,
		{Band: model.AgeBand41To60, Sex: model.Male}:    6.25,
		{Band: model.AgeBand41To60, Sex: model.Female}:  5,
		{Band: model.AgeBand61To80, Sex: model.Female}:  5,
		{Band: model.AgeBand81To100, Sex: model.Male}:   2,
		{Band: model.AgeBand101Plus, Sex: model.Female}: 4,
	}
	require.Len(t, s.ByBandAndSex, len(cells))
	for k, want := range cells {
		got, ok := s.Cell(k.Band, k.Sex)
		require.True(t, ok, "%s/%s", k.Band, k.Sex)
		assert.InDelta(t, want, got, 1e-12, "%s/%s", k.Band, k.Sex)
	}

	assert.Equal(t, []model.NameCount{
		{Name: "Anna", Count: 3},
		{Name: "Jan", Count: 2},
		{Name: "Piotr", Count: 1},
		{Name: "Maria", Count: 1},
		{Name: "Zofia", Count: 1},
	}, s.TopNames)

	assert.InDelta(t, 236.0, s.MeanBySex[model.Female], 1e-12)
	assert.InDelta(t, 350.0, s.MeanBySex[model.Male], 1e-12)
}

func TestAggregate_SingleLocation(t *testing.T) {
	s, ok := Aggregate(testutil.Population(), model.Location("Kraków"))
	require.True(t, ok)

	assert.Equal(t, 4, s.Records)
	assert.Equal(t, "Kraków", s.Location.Name())

	_, ok = s.Cell(model.AgeBand81To100, model.Male)
	assert.False(t, ok, "cells without records must be absent")
	_, ok = s.Cell(model.AgeBand21To40, model.Female)
	assert.False(t, ok)

	v, ok := s.Cell(model.AgeBand21To40, model.Male)
	require.True(t, ok)
	assert.InDelta(t, 8.0, v, 1e-12)

	assert.Equal(t, []model.NameCount{
		{Name: "Anna", Count: 2},
		{Name: "Jan", Count: 1},
		{Name: "Maria", Count: 1},
	}, s.TopNames)

	assert.InDelta(t, 270.0, s.MeanBySex[model.Female], 1e-12)
	assert.InDelta(t, 400.0, s.MeanBySex[model.Male], 1e-12)
}

func TestAggregate_EmptyResult(t *testing.T) {
	tests := []struct {
		name    string
		records []model.Record
		key     model.LocationKey
	}{
		{name: "unknown location", records: testutil.Population(), key: model.Location("Wrocław")},
		{name: "sentinel label is not a location", records: testutil.Population(), key: model.Location(model.DefaultWholePopulationLabel)},
		{name: "no records at all", records: nil, key: model.WholePopulation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				s, ok := Aggregate(tt.records, tt.key)
				assert.False(t, ok)
				assert.Zero(t, s.Records)
			})
		})
	}
}

func TestAggregate_WholePopulationIsRecordLevelUnion(t *testing.T) {
	records := testutil.Population()

	var union []model.Record
	for _, key := range Locations(records) {
		if key.IsWholePopulation() {
			continue
		}
		union = append(union, Filter(records, key)...)
	}
	require.Len(t, union, len(records))

	whole, ok := Aggregate(records, model.WholePopulation)
	require.True(t, ok)
	recombined, ok := Aggregate(union, model.WholePopulation)
	require.True(t, ok)

	assert.Equal(t, whole.Records, recombined.Records)
	require.Len(t, recombined.ByBandAndSex, len(whole.ByBandAndSex))
	for k, v := range whole.ByBandAndSex {
		assert.InDelta(t, v, recombined.ByBandAndSex[k], 1e-9)
	}
	for k, v := range whole.MeanBySex {
		assert.InDelta(t, v, recombined.MeanBySex[k], 1e-9)
	}
	assert.Equal(t, nameCounts(whole.TopNames)["Anna"], nameCounts(recombined.TopNames)["Anna"])
	assert.Equal(t, nameCounts(whole.TopNames)["Jan"], nameCounts(recombined.TopNames)["Jan"])

	// Averaging the per-location means would weight Kraków's single male like
	// Gdańsk's two; the union must not do that.
	krakow, _ := Aggregate(records, model.Location("Kraków"))
	gdansk, _ := Aggregate(records, model.Location("Gdańsk"))
	poznan, _ := Aggregate(records, model.Location("Poznań"))
	meanOfMeans := (krakow.MeanBySex[model.Male] + gdansk.MeanBySex[model.Male] + poznan.MeanBySex[model.Male]) / 3
	assert.NotEqual(t, meanOfMeans, whole.MeanBySex[model.Male])
}

func TestAggregate_TopNamesTieBreakIsFirstSeen(t *testing.T) {
	var records []model.Record
	for _, name := range []string{"Ewa", "Olga", "Adam", "Olga", "Bartek", "Cezary", "Dorota", "Adam", "Ewa"} {
		records = append(records, testutil.Record(model.Female, 30, "X", name, 100, 10))
	}

	for i := 0; i < 10; i++ {
		s, ok := Aggregate(records, model.WholePopulation)
		require.True(t, ok)
		assert.Equal(t, []model.NameCount{
			{Name: "Ewa", Count: 2},
			{Name: "Olga", Count: 2},
			{Name: "Adam", Count: 2},
			{Name: "Bartek", Count: 1},
			{Name: "Cezary", Count: 1},
		}, s.TopNames)
	}
}

func TestAggregate_UnbinnedRecordsOnlyLeaveTheBandView(t *testing.T) {
	records := []model.Record{
		testutil.Record(model.Male, 30, "X", "Jan", 100, 10),
		{Sex: model.Male, Age: -3, Location: "X", FirstName: "Jan", PowerConsumptionKWh: 300, HouseAreaM2: 10, ConsumptionPerM2: 30},
	}

	s, ok := Aggregate(records, model.WholePopulation)
	require.True(t, ok)

	v, ok := s.Cell(model.AgeBand21To40, model.Male)
	require.True(t, ok)
	assert.InDelta(t, 10.0, v, 1e-12)
	assert.Len(t, s.ByBandAndSex, 1)
	assert.InDelta(t, 200.0, s.MeanBySex[model.Male], 1e-12)
	assert.Equal(t, []model.NameCount{{Name: "Jan", Count: 2}}, s.TopNames)
}

func TestAll(t *testing.T) {
	summaries := All(testutil.Population())
	require.Len(t, summaries, 4)
	assert.Equal(t, "Kraków", summaries[0].Location.Name())
	assert.True(t, summaries[3].Location.IsWholePopulation())
	assert.Empty(t, All(nil))
}

func nameCounts(names []model.NameCount) map[string]int {
	out := make(map[string]int, len(names))
	for _, n := range names {
		out[n.Name] = n.Count
	}
	return out
}
