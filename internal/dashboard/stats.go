package dashboard

import (
	"github.com/optforge/legbook/internal/engine"
	"github.com/optforge/legbook/internal/models"
)

// Statistics summarizes the structural makeup of the journal. There is no
// P&L here: the journal records structures, not fills.
type Statistics struct {
	TotalTrades    int            `json:"total_trades"`
	LongTrades     int            `json:"long_trades"`
	ShortTrades    int            `json:"short_trades"`
	SymmetricPct   float64        `json:"symmetric_pct"`
	CountsByType   map[string]int `json:"counts_by_type"`
	CountsBySymbol map[string]int `json:"counts_by_symbol"`
}

func (s *Server) calculateStatistics() Statistics {
	stats := Statistics{
		CountsByType:   make(map[string]int),
		CountsBySymbol: make(map[string]int),
	}

	symmetric := 0
	for _, trade := range s.storage.GetTrades() {
		c := engine.Classify(trade.Legs)

		stats.TotalTrades++
		stats.CountsByType[string(c.Type)]++
		stats.CountsBySymbol[trade.Symbol]++
		if c.Direction == models.DirectionShort {
			stats.ShortTrades++
		} else {
			stats.LongTrades++
		}
		if c.IsSymmetric {
			symmetric++
		}
	}

	if stats.TotalTrades > 0 {
		stats.SymmetricPct = float64(symmetric) / float64(stats.TotalTrades) * 100
	}

	return stats
}
