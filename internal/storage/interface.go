package storage

import (
	"github.com/optforge/legbook/internal/models"
)

// Interface defines the contract for journal trade persistence.
//
// Implementations must be safe for concurrent use - callers can assume all
// methods are goroutine-safe and can safely call them from multiple
// goroutines. The provided JSONStorage implementation uses sync.RWMutex to
// serialize access.
//
// Trades are stored exactly as handed over: legs are never reconstructed or
// merged on the way in, so the journal stays the source of truth for what
// was actually entered.
type Interface interface {
	// Trade management
	GetTrades() []models.Trade
	GetTradeByID(id string) (models.Trade, bool)
	SaveTrade(trade models.Trade) error
	DeleteTrade(id string) error

	// Data persistence
	Save() error
	Load() error
}

// NewStorage creates a new storage implementation (currently JSON-based)
// In the future, this can be extended to support different storage backends
func NewStorage(filepath string) (Interface, error) {
	return NewJSONStorage(filepath)
}

// Ensure JSONStorage implements Interface
var _ Interface = (*JSONStorage)(nil)
