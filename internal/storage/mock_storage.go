package storage

import (
	"fmt"

	"github.com/optforge/legbook/internal/models"
)

// MockStorage implements Interface for testing
type MockStorage struct {
	saveError     error
	loadError     error
	trades        []models.Trade
	saveCallCount int
	loadCallCount int
}

// NewMockStorage creates a new mock storage for testing
func NewMockStorage() *MockStorage {
	return &MockStorage{trades: make([]models.Trade, 0)}
}

// SetSaveError makes every subsequent save fail with err.
func (m *MockStorage) SetSaveError(err error) {
	m.saveError = err
}

// SetLoadError makes every subsequent load fail with err.
func (m *MockStorage) SetLoadError(err error) {
	m.loadError = err
}

// SaveCallCount returns how many times Save or SaveTrade was invoked.
func (m *MockStorage) SaveCallCount() int {
	return m.saveCallCount
}

// GetTrades returns the stored trades.
func (m *MockStorage) GetTrades() []models.Trade {
	trades := make([]models.Trade, len(m.trades))
	copy(trades, m.trades)
	return trades
}

// GetTradeByID returns the trade with the given ID, if present.
func (m *MockStorage) GetTradeByID(id string) (models.Trade, bool) {
	for _, trade := range m.trades {
		if trade.ID == id {
			return trade, true
		}
	}
	return models.Trade{}, false
}

// SaveTrade inserts or replaces a trade.
func (m *MockStorage) SaveTrade(trade models.Trade) error {
	m.saveCallCount++
	if m.saveError != nil {
		return m.saveError
	}
	if err := trade.Validate(); err != nil {
		return fmt.Errorf("invalid trade: %w", err)
	}
	for i, existing := range m.trades {
		if existing.ID == trade.ID {
			m.trades[i] = trade
			return nil
		}
	}
	m.trades = append(m.trades, trade)
	return nil
}

// DeleteTrade removes a trade by ID.
func (m *MockStorage) DeleteTrade(id string) error {
	for i, trade := range m.trades {
		if trade.ID == id {
			m.trades = append(m.trades[:i], m.trades[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("deleting trade %s: %w", id, ErrTradeNotFound)
}

// Save records the call and returns the configured error, if any.
func (m *MockStorage) Save() error {
	m.saveCallCount++
	return m.saveError
}

// Load records the call and returns the configured error, if any.
func (m *MockStorage) Load() error {
	m.loadCallCount++
	return m.loadError
}

// Ensure MockStorage implements Interface
var _ Interface = (*MockStorage)(nil)
