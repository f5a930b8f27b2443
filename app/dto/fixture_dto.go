package dto

import "time"

// Fixture loading strategies
const (
	FixtureStrategySeed   = "seed"
	FixtureStrategyRandom = "random"
)

// LoadRandomFixturesRequest asks for a generated dataset of the given scale
type LoadRandomFixturesRequest struct {
	Records *int   `query:"records" json:"records,omitempty" validate:"omitempty,gte=1,lte=10000"`
	Seed    uint64 `query:"seed" json:"seed"`
}

// LoadReport describes a finished reload
type LoadReport struct {
	RunID          string         `json:"run_id"`
	Strategy       string         `json:"strategy"`
	Counts         map[string]int `json:"counts"`
	Total          int            `json:"total"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
	FinishedAt     time.Time      `json:"finished_at"`
}
