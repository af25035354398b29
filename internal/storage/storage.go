// Package storage persists journal trades to a JSON file on disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/optforge/legbook/internal/models"
)

// JSONStorage is a file-backed trade store. Writes go to a temp file first
// and are renamed into place so a crash mid-save never corrupts the journal.
type JSONStorage struct {
	mu       sync.RWMutex
	filepath string
	data     *storageData
}

type storageData struct {
	Trades      []models.Trade `json:"trades"`
	LastUpdated time.Time      `json:"last_updated"`
}

// NewJSONStorage creates a store at the given path, loading existing data if
// the file is present.
func NewJSONStorage(filepath string) (*JSONStorage, error) {
	s := &JSONStorage{
		filepath: filepath,
		data:     &storageData{Trades: make([]models.Trade, 0)},
	}

	if _, err := os.Stat(filepath); err == nil {
		if err := s.Load(); err != nil {
			return nil, fmt.Errorf("loading storage: %w", err)
		}
	}

	return s, nil
}

// Load reads the journal file from disk, replacing in-memory state.
func (s *JSONStorage) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filepath)
	if err != nil {
		return err
	}

	loaded := &storageData{}
	if err := json.Unmarshal(data, loaded); err != nil {
		return err
	}
	if loaded.Trades == nil {
		loaded.Trades = make([]models.Trade, 0)
	}
	s.data = loaded

	return nil
}

// Save writes the journal to disk atomically.
func (s *JSONStorage) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *JSONStorage) saveLocked() error {
	s.data.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	// Write to temp file first, then rename into place.
	tmpFile := s.filepath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpFile, s.filepath)
}

// GetTrades returns a copy of all journal trades.
func (s *JSONStorage) GetTrades() []models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := make([]models.Trade, len(s.data.Trades))
	copy(trades, s.data.Trades)
	return trades
}

// GetTradeByID returns the trade with the given ID, if present.
func (s *JSONStorage) GetTradeByID(id string) (models.Trade, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, trade := range s.data.Trades {
		if trade.ID == id {
			return trade, true
		}
	}
	return models.Trade{}, false
}

// SaveTrade inserts or replaces the trade and persists the journal. The
// legs are stored as given; classification stays a derived view.
func (s *JSONStorage) SaveTrade(trade models.Trade) error {
	if err := trade.Validate(); err != nil {
		return fmt.Errorf("invalid trade: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trade.UpdatedAt = time.Now().UTC()
	replaced := false
	for i, existing := range s.data.Trades {
		if existing.ID == trade.ID {
			trade.CreatedAt = existing.CreatedAt
			s.data.Trades[i] = trade
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.Trades = append(s.data.Trades, trade)
	}

	return s.saveLocked()
}

// DeleteTrade removes the trade with the given ID and persists the journal.
func (s *JSONStorage) DeleteTrade(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, trade := range s.data.Trades {
		if trade.ID == id {
			s.data.Trades = append(s.data.Trades[:i], s.data.Trades[i+1:]...)
			return s.saveLocked()
		}
	}
	return fmt.Errorf("deleting trade %s: %w", id, ErrTradeNotFound)
}
