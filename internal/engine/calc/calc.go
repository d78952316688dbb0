// Package calc implements a calculator subject with reversible arithmetic
// commands. The commands satisfy the history Command contract, showing the
// history engine is independent of any particular subject type: undo here
// works by restoring the recorded previous value rather than by applying a
// structural inverse.
package calc

import "errors"

// ErrDivideByZero indicates a division by zero.
var ErrDivideByZero = errors.New("cannot divide by zero")

// Calculator holds a single running value.
type Calculator struct {
	value float64
}

// New creates a calculator with value zero.
func New() *Calculator {
	return &Calculator{}
}

// Value returns the current value.
func (c *Calculator) Value() float64 {
	return c.value
}

// SetValue overwrites the current value.
func (c *Calculator) SetValue(v float64) {
	c.value = v
}

// Add adds n to the current value and returns the result.
func (c *Calculator) Add(n float64) float64 {
	c.value += n
	return c.value
}

// Subtract subtracts n from the current value and returns the result.
func (c *Calculator) Subtract(n float64) float64 {
	c.value -= n
	return c.value
}

// Multiply multiplies the current value by n and returns the result.
func (c *Calculator) Multiply(n float64) float64 {
	c.value *= n
	return c.value
}

// Divide divides the current value by n and returns the result. Fails with
// ErrDivideByZero when n is zero; the value is unchanged on failure.
func (c *Calculator) Divide(n float64) (float64, error) {
	if n == 0 {
		return c.value, ErrDivideByZero
	}
	c.value /= n
	return c.value, nil
}
