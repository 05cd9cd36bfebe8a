package core

import "errors"

// Common errors.
var (
	ErrNotFound       = errors.New("record not found")
	ErrNotWatchable   = errors.New("source does not support watching")
	ErrSourceRequired = errors.New("no record source available")
)
