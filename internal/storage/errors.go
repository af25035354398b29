package storage

import "errors"

// ErrTradeNotFound is returned when no trade exists for the requested ID
var ErrTradeNotFound = errors.New("trade not found")
