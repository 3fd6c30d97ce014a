// Package bounded provides the 0..100 integer type used for every
// percentage-like attribute of the simulation.
//
// Percent arithmetic is fault-raising throughout the model: Add and Sub fail
// with ErrOutOfRange when the result would leave 0..100.
package bounded

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a Percent operation would leave 0..100.
var ErrOutOfRange = errors.New("percent out of range")

// Percent is an integer in 0..100.
type Percent uint8

const (
	// Min is the lowest valid Percent.
	Min Percent = 0
	// Max is the highest valid Percent.
	Max Percent = 100
)

// New returns v as a Percent, or ErrOutOfRange if v is outside 0..100.
func New(v int) (Percent, error) {
	if v < int(Min) || v > int(Max) {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, v)
	}
	return Percent(v), nil
}

// MustNew is New for constants and seeds known to be valid. Panics otherwise.
func MustNew(v int) Percent {
	p, err := New(v)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid reports whether p is within 0..100. Only a raw conversion such as
// Percent(200) can produce an invalid value.
func (p Percent) Valid() bool {
	return p <= Max
}

// Int returns p as an int for arithmetic.
func (p Percent) Int() int {
	return int(p)
}

// Fraction returns p/100.
func (p Percent) Fraction() float64 {
	return float64(p) / 100
}

// Add returns p+d, or ErrOutOfRange if the sum exceeds 100.
func (p Percent) Add(d uint) (Percent, error) {
	if d > uint(Max) || uint(p)+d > uint(Max) {
		return p, fmt.Errorf("%w: %d + %d", ErrOutOfRange, p, d)
	}
	return p + Percent(d), nil
}

// Sub returns p-d, or ErrOutOfRange if d exceeds p.
func (p Percent) Sub(d uint) (Percent, error) {
	if d > uint(p) {
		return p, fmt.Errorf("%w: %d - %d", ErrOutOfRange, p, d)
	}
	return p - Percent(d), nil
}

// String formats p as "42%".
func (p Percent) String() string {
	return fmt.Sprintf("%d%%", uint8(p))
}
