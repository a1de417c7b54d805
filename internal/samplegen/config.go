// Package samplegen generates deterministic synthetic athlete seasons,
// values them through a running service (or an in-process engine) and
// verifies the returned valuations.
package samplegen

import (
	"time"

	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/valuation"
)

// Config holds configuration for a sample run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumAthletes int           // Number of athletes to generate
	BatchSize   int           // Requests per POST /valuations/batch
	Workers     int           // Concurrent batch posters
	Seed        int64         // Generator seed; equal seeds give equal requests
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Optional JSON dump of generated requests
	Floors      Floors        // Bounds every valuation must respect

	// Offline values batches with an in-process engine instead of the
	// service. ReferencePath optionally overrides its built-in tables.
	Offline       bool
	ReferencePath string
}

// Floors are the lower bounds checked on every returned valuation.
type Floors struct {
	PlayerValue float64
	NIL         float64
}

// BatchItem is one entry of a batch response.
type BatchItem struct {
	Index     int              `json:"index"`
	AthleteID string           `json:"athlete_id"`
	Valuation *model.Valuation `json:"valuation,omitempty"`
	Error     *ErrorBody       `json:"error,omitempty"`
}

// ErrorBody is the API error shape.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchResponse is the body of POST /valuations/batch.
type BatchResponse struct {
	Results   []BatchItem `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

type batchRequest struct {
	Requests []valuation.Request `json:"requests"`
}

// Stats holds run statistics.
type Stats struct {
	Generated    int
	Batches      int
	Succeeded    int
	Failed       int
	Violations   []string
	ErrorsByCode map[string]int
	TopAthlete   string
	TopValue     string
	StartTime    time.Time
	Duration     time.Duration
}
