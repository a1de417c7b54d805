package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrBackpressure  = errors.New("valuation queue is full")
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")
	ErrEmptyBatch    = errors.New("batch is empty")
)
