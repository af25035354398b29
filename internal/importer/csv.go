// Package importer reads broker-statement CSV exports into journal trades.
package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/optforge/legbook/internal/models"
	"github.com/optforge/legbook/internal/util"
)

// expirationLayout is the date format broker statements use for expirations.
const expirationLayout = "2006-01-02"

// row is one leg line of a statement export. Legs sharing a group value
// belong to the same logical structure.
type row struct {
	Group      string  `csv:"group"`
	Symbol     string  `csv:"symbol"`
	Strike     float64 `csv:"strike"`
	Expiration string  `csv:"expiration"`
	Right      string  `csv:"right"`
	Quantity   int     `csv:"quantity"`
}

// SkippedGroup records a leg group that could not be imported and why.
type SkippedGroup struct {
	Group  string
	Reason string
}

// Result is the outcome of one import run. Valid groups become trades;
// invalid ones are reported, not dropped silently.
type Result struct {
	Trades  []models.Trade
	Skipped []SkippedGroup
}

// Importer converts statement CSVs into trades.
type Importer struct {
	defaultSymbol string
	strikeTick    float64
}

// New creates an importer. defaultSymbol fills rows without a symbol;
// strikeTick is the increment strikes are rounded to.
func New(defaultSymbol string, strikeTick float64) *Importer {
	return &Importer{defaultSymbol: defaultSymbol, strikeTick: strikeTick}
}

// Read parses the CSV and groups its rows into trades. A malformed file is
// an error; a malformed group is a skip.
func (imp *Importer) Read(r io.Reader) (*Result, error) {
	var rows []*row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing statement csv: %w", err)
	}

	// Group rows preserving first-seen order.
	groups := make(map[string][]*row)
	var order []string
	for _, rec := range rows {
		key := strings.TrimSpace(rec.Group)
		if key == "" {
			key = "ungrouped"
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rec)
	}

	result := &Result{}
	for _, key := range order {
		trade, err := imp.buildTrade(groups[key])
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedGroup{Group: key, Reason: err.Error()})
			continue
		}
		result.Trades = append(result.Trades, *trade)
	}
	return result, nil
}

func (imp *Importer) buildTrade(rows []*row) (*models.Trade, error) {
	symbol := imp.defaultSymbol
	legs := make([]models.Leg, 0, len(rows))

	for i, rec := range rows {
		if s := strings.TrimSpace(rec.Symbol); s != "" {
			symbol = strings.ToUpper(s)
		}

		right, err := parseRight(rec.Right)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		expiration, err := time.Parse(expirationLayout, strings.TrimSpace(rec.Expiration))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing expiration %q: %w", i+1, rec.Expiration, err)
		}

		legs = append(legs, models.Leg{
			Strike:     util.RoundToTick(rec.Strike, imp.strikeTick),
			Expiration: expiration,
			Right:      right,
			Quantity:   rec.Quantity,
		})
	}

	trade := models.NewTrade(uuid.New().String(), symbol, legs)
	if err := trade.Validate(); err != nil {
		return nil, err
	}
	return trade, nil
}

// parseRight accepts the long and one-letter spellings brokers use.
func parseRight(raw string) (models.OptionRight, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "call", "c":
		return models.RightCall, nil
	case "put", "p":
		return models.RightPut, nil
	default:
		return "", fmt.Errorf("unknown right %q", raw)
	}
}
