// Package core holds the domain types shared by every layer: categories,
// money amounts, expenses, budgets and interpretation results.
package core

import (
	"fmt"
	"math"
)

// Money stores an amount in centavos to keep arithmetic exact.
type Money struct {
	Cents int64
}

// MoneyFromFloat converts a decimal amount (as delivered by the language
// model or a JSON body) to centavos with half-up rounding.
func MoneyFromFloat(v float64) Money {
	return Money{Cents: int64(math.Round(v * 100))}
}

// Float returns the decimal value for wire formats that store plain numbers.
// Use cents for calculations to avoid floating-point drift.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// Format renders the amount with two decimal places and a dot separator,
// matching the chat messages ("90.00").
func (m Money) Format() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// IsZero reports whether no amount was inferred.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Validate rejects non-positive amounts.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
