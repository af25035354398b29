package models

import (
	"fmt"
	"strings"
	"time"
)

// maxTradeLegs bounds one logical structure; anything larger is split by the
// editor into separate trades.
const maxTradeLegs = 4

// Trade is one journal entry: the raw legs as entered plus bookkeeping
// metadata. The legs are persisted unchanged on save; classification is
// always re-derived from them.
type Trade struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Legs      []Leg     `json:"legs"`
	Notes     string    `json:"notes,omitempty"`
	OpenedAt  time.Time `json:"opened_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTrade creates a trade with creation timestamps set.
func NewTrade(id, symbol string, legs []Leg) *Trade {
	now := time.Now().UTC()
	return &Trade{
		ID:        id,
		Symbol:    symbol,
		Legs:      legs,
		OpenedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate enforces the field-level rules that must hold before a trade may
// be saved. The classification engine itself stays total and does not
// enforce these; this is the editor-side gate.
func (t *Trade) Validate() error {
	if strings.TrimSpace(t.Symbol) == "" {
		return fmt.Errorf("trade symbol is required")
	}
	if len(t.Legs) == 0 {
		return fmt.Errorf("trade must have at least one leg")
	}
	if len(t.Legs) > maxTradeLegs {
		return fmt.Errorf("trade must have at most %d legs (got %d)", maxTradeLegs, len(t.Legs))
	}
	for i, leg := range t.Legs {
		if err := leg.Validate(); err != nil {
			return fmt.Errorf("leg %d: %w", i+1, err)
		}
	}
	return nil
}
