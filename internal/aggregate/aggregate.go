// Package aggregate groups normalized records into per-location summaries.
package aggregate

import (
	"sort"

	"github.com/krkonrad/Calculation-data/internal/model"
)

// TopNamesLimit is the number of first names kept in a summary.
const TopNamesLimit = 5

// Locations lists the distinct record locations in order of first appearance,
// followed by the whole-population key.
func Locations(records []model.Record) []model.LocationKey {
	seen := make(map[string]bool)
	keys := make([]model.LocationKey, 0)
	for _, r := range records {
		if seen[r.Location] {
			continue
		}
		seen[r.Location] = true
		keys = append(keys, model.Location(r.Location))
	}
	return append(keys, model.WholePopulation)
}

// Filter returns the records that belong to key.
func Filter(records []model.Record, key model.LocationKey) []model.Record {
	if key.IsWholePopulation() {
		return records
	}
	filtered := make([]model.Record, 0)
	for _, r := range records {
		if key.Matches(r.Location) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Aggregate summarizes the records selected by key. It returns false when no record
// matches; that is an expected outcome, not a failure.
func Aggregate(records []model.Record, key model.LocationKey) (model.Summary, bool) {
	data := Filter(records, key)
	if len(data) == 0 {
		return model.Summary{}, false
	}

	return model.Summary{
		Location:     key,
		Records:      len(data),
		ByBandAndSex: meanPerAreaByBandAndSex(data),
		TopNames:     topNames(data, TopNamesLimit),
		MeanBySex:    meanPowerBySex(data),
	}, true
}

// All aggregates every catalog entry in catalog order, skipping empty results.
func All(records []model.Record) []model.Summary {
	keys := Locations(records)
	summaries := make([]model.Summary, 0, len(keys))
	for _, key := range keys {
		if s, ok := Aggregate(records, key); ok {
			summaries = append(summaries, s)
		}
	}
	return summaries
}

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m mean) value() float64 {
	return m.sum / float64(m.count)
}

func meanPerAreaByBandAndSex(data []model.Record) map[model.BandSex]float64 {
	acc := make(map[model.BandSex]*mean)
	for _, r := range data {
		band, ok := r.AgeBand()
		if !ok {
			continue
		}
		k := model.BandSex{Band: band, Sex: r.Sex}
		if acc[k] == nil {
			acc[k] = &mean{}
		}
		acc[k].add(r.ConsumptionPerM2)
	}

	out := make(map[model.BandSex]float64, len(acc))
	for k, m := range acc {
		out[k] = m.value()
	}
	return out
}

func meanPowerBySex(data []model.Record) map[model.Sex]float64 {
	acc := make(map[model.Sex]*mean)
	for _, r := range data {
		if acc[r.Sex] == nil {
			acc[r.Sex] = &mean{}
		}
		acc[r.Sex].add(r.PowerConsumptionKWh)
	}

	out := make(map[model.Sex]float64, len(acc))
	for k, m := range acc {
		out[k] = m.value()
	}
	return out
}

// topNames counts first names and keeps the limit most frequent. Equal counts keep
// the order in which the names were first seen.
func topNames(data []model.Record, limit int) []model.NameCount {
	index := make(map[string]int)
	counts := make([]model.NameCount, 0)
	for _, r := range data {
		i, ok := index[r.FirstName]
		if !ok {
			i = len(counts)
			index[r.FirstName] = i
			counts = append(counts, model.NameCount{Name: r.FirstName})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
