// Package models defines the core journal domain types: option legs, the
// position taxonomy, and trade records.
package models

import (
	"fmt"
	"time"
)

// OptionRight represents the right of an option contract.
type OptionRight string

const (
	// RightCall represents a call option contract
	RightCall OptionRight = "call"
	// RightPut represents a put option contract
	RightPut OptionRight = "put"
)

// Valid returns true if the OptionRight is one of the defined constants
func (r OptionRight) Valid() bool {
	return r == RightCall || r == RightPut
}

// Letter returns the one-letter display form ("C" or "P").
// Unknown rights render as "?" so malformed mid-edit legs still format.
func (r OptionRight) Letter() string {
	switch r {
	case RightCall:
		return "C"
	case RightPut:
		return "P"
	default:
		return "?"
	}
}

// Opposite returns the other right. Invalid rights are returned unchanged.
func (r OptionRight) Opposite() OptionRight {
	switch r {
	case RightCall:
		return RightPut
	case RightPut:
		return RightCall
	default:
		return r
	}
}

// Direction represents whether a structure was opened long or short.
type Direction string

const (
	// DirectionLong is a debit-style position (canonical ratios as written)
	DirectionLong Direction = "long"
	// DirectionShort is a credit-style position (canonical ratios negated)
	DirectionShort Direction = "short"
)

// Valid returns true if the Direction is one of the defined constants
func (d Direction) Valid() bool {
	return d == DirectionLong || d == DirectionShort
}

// Label returns the capitalized display form.
func (d Direction) Label() string {
	if d == DirectionShort {
		return "Short"
	}
	return "Long"
}

// Leg is one option contract position. Quantity sign encodes long (positive)
// vs short (negative); magnitude encodes the contract ratio. A Leg with
// Quantity == 0 carries no structure.
type Leg struct {
	Expiration time.Time   `json:"expiration"`
	Right      OptionRight `json:"right"`
	Strike     float64     `json:"strike"`
	Quantity   int         `json:"quantity"`
}

// Validate checks the field-level rules the editor must satisfy before a save.
func (l Leg) Validate() error {
	if l.Strike <= 0 {
		return fmt.Errorf("leg strike must be positive (got %.2f)", l.Strike)
	}
	if l.Expiration.IsZero() {
		return fmt.Errorf("leg expiration is required")
	}
	if !l.Right.Valid() {
		return fmt.Errorf("leg right must be %q or %q (got %q)", RightCall, RightPut, l.Right)
	}
	if l.Quantity == 0 {
		return fmt.Errorf("leg quantity must be nonzero")
	}
	return nil
}

// SameExpiration reports whether both legs expire on the same calendar day.
func (l Leg) SameExpiration(other Leg) bool {
	a := l.Expiration.UTC().Truncate(24 * time.Hour)
	b := other.Expiration.UTC().Truncate(24 * time.Hour)
	return a.Equal(b)
}
