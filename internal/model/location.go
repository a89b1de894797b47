package model

// DefaultWholePopulationLabel is shown for the whole-population entry unless configured otherwise.
const DefaultWholePopulationLabel = "Cała Polska"

// LocationKey selects the records an aggregation runs over: either one concrete
// location or the whole population. The whole-population key never compares equal
// to a concrete key, even one whose name matches its label.
type LocationKey struct {
	name  string
	whole bool
}

// WholePopulation matches every record.
var WholePopulation = LocationKey{whole: true}

// Location returns the key for a concrete location name.
func Location(name string) LocationKey {
	return LocationKey{name: name}
}

// Name returns the concrete location name, or "" for the whole population.
func (k LocationKey) Name() string {
	return k.name
}

// IsWholePopulation reports whether k is the whole-population sentinel.
func (k LocationKey) IsWholePopulation() bool {
	return k.whole
}

// Matches reports whether a record located at loc belongs to k.
func (k LocationKey) Matches(loc string) bool {
	return k.whole || k.name == loc
}

// Label returns a display label, using wholeLabel for the sentinel.
func (k LocationKey) Label(wholeLabel string) string {
	if k.whole {
		if wholeLabel == "" {
			return DefaultWholePopulationLabel
		}
		return wholeLabel
	}
	return k.name
}

// String implements fmt.Stringer.
func (k LocationKey) String() string {
	return k.Label(DefaultWholePopulationLabel)
}
