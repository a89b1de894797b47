package model

// AgeBand is one of the fixed age intervals used for grouping.
type AgeBand string

// Age bands in ascending order.
const (
	AgeBand0To20   AgeBand = "0-20"
	AgeBand21To40  AgeBand = "21-40"
	AgeBand41To60  AgeBand = "41-60"
	AgeBand61To80  AgeBand = "61-80"
	AgeBand81To100 AgeBand = "81-100"
	AgeBand101Plus AgeBand = "101+"
)

// AgeBands lists every band in ascending order.
var AgeBands = []AgeBand{
	AgeBand0To20,
	AgeBand21To40,
	AgeBand41To60,
	AgeBand61To80,
	AgeBand81To100,
	AgeBand101Plus,
}

// upper bounds are inclusive; the last band is open-ended.
var ageBandUpper = []int{20, 40, 60, 80, 100}

// BinAge maps an age in whole years to its band. Negative ages are unbinned.
func BinAge(age int) (AgeBand, bool) {
	if age < 0 {
		return "", false
	}
	for i, upper := range ageBandUpper {
		if age <= upper {
			return AgeBands[i], true
		}
	}
	return AgeBand101Plus, true
}

// Midpoint returns the x-axis position used when charting the band.
func (b AgeBand) Midpoint() float64 {
	switch b {
	case AgeBand0To20:
		return 10
	case AgeBand21To40:
		return 30.5
	case AgeBand41To60:
		return 50.5
	case AgeBand61To80:
		return 70.5
	case AgeBand81To100:
		return 90.5
	case AgeBand101Plus:
		return 106
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (b AgeBand) String() string {
	return string(b)
}
