// Package pesel decodes the birth date and sex embedded in an 11-digit PESEL
// identity code. The check digit is not validated.
package pesel

import (
	"errors"
	"fmt"
	"time"

	"github.com/krkonrad/Calculation-data/internal/model"
)

// Length is the number of digits in an identity code.
const Length = 11

// Decode failures.
var (
	ErrInvalidFormat = errors.New("identity code must be exactly 11 digits")
	ErrInvalidMonth  = errors.New("encoded month outside every century range")
	ErrInvalidDate   = errors.New("decoded birth date is not a calendar date")
)

// DecodeError carries the code that failed to decode.
type DecodeError struct {
	Err  error
	Code string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Code, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Identity is what an identity code says about its holder.
type Identity struct {
	BirthDate time.Time // midnight UTC
	Sex       model.Sex
}

// centuryRange maps a band of encoded months to a century.
type centuryRange struct {
	low, high int
	base      int
	offset    int
}

var centuries = []centuryRange{
	{low: 1, high: 12, base: 1900, offset: 0},
	{low: 21, high: 32, base: 2000, offset: 20},
	{low: 41, high: 52, base: 2100, offset: 40},
	{low: 61, high: 72, base: 2200, offset: 60},
	{low: 81, high: 92, base: 1800, offset: 80},
}

// Decode extracts the birth date and sex from code.
func Decode(code string) (Identity, error) {
	if len(code) != Length {
		return Identity{}, &DecodeError{Code: code, Err: ErrInvalidFormat}
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return Identity{}, &DecodeError{Code: code, Err: ErrInvalidFormat}
		}
	}

	yy := twoDigits(code, 0)
	encodedMonth := twoDigits(code, 2)
	day := twoDigits(code, 4)

	century, ok := centuryFor(encodedMonth)
	if !ok {
		return Identity{}, &DecodeError{Code: code, Err: ErrInvalidMonth}
	}
	year := century.base + yy
	month := encodedMonth - century.offset

	birth, ok := calendarDate(year, month, day)
	if !ok {
		return Identity{}, &DecodeError{Code: code, Err: ErrInvalidDate}
	}

	sex := model.Female
	if int(code[9]-'0')%2 == 1 {
		sex = model.Male
	}

	return Identity{BirthDate: birth, Sex: sex}, nil
}

// Century returns the century base for an encoded month, or false if the month
// falls outside every range.
func Century(encodedMonth int) (int, bool) {
	c, ok := centuryFor(encodedMonth)
	return c.base, ok
}

func centuryFor(encodedMonth int) (centuryRange, bool) {
	for _, c := range centuries {
		if encodedMonth >= c.low && encodedMonth <= c.high {
			return c, true
		}
	}
	return centuryRange{}, false
}

func twoDigits(code string, at int) int {
	return int(code[at]-'0')*10 + int(code[at+1]-'0')
}

// calendarDate builds the date only if time.Date would not normalize it.
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
