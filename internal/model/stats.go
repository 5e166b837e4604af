package model

import "time"

// DayLayout is the calendar-day format used in statistics.
const DayLayout = "2006-01-02"

// CoilStats is the aggregate report over a StatsWindow.
// Durations are in seconds and are nil when no coil in the window has DeletedAt.
type CoilStats struct {
	TotalAdded   int64    `json:"total_added" yaml:"total_added"`
	TotalRemoved int64    `json:"total_removed" yaml:"total_removed"`
	AvgLength    float64  `json:"avg_length" yaml:"avg_length"`
	AvgWeight    float64  `json:"avg_weight" yaml:"avg_weight"`
	MaxLength    float64  `json:"max_length" yaml:"max_length"`
	MinLength    float64  `json:"min_length" yaml:"min_length"`
	MaxWeight    float64  `json:"max_weight" yaml:"max_weight"`
	MinWeight    float64  `json:"min_weight" yaml:"min_weight"`
	TotalWeight  float64  `json:"total_weight" yaml:"total_weight"`
	MaxDuration  *float64 `json:"max_duration" yaml:"max_duration"`
	MinDuration  *float64 `json:"min_duration" yaml:"min_duration"`
	MaxCountDay  string   `json:"max_count_day" yaml:"max_count_day"`
	MinCountDay  string   `json:"min_count_day" yaml:"min_count_day"`
	MaxWeightDay string   `json:"max_weight_day" yaml:"max_weight_day"`
	MinWeightDay string   `json:"min_weight_day" yaml:"min_weight_day"`
}

// DayTotal is the per-calendar-day aggregate of coils created that day.
type DayTotal struct {
	Day    time.Time
	Count  int64
	Weight float64
}

// DayExtrema names the days holding each per-day extremum.
type DayExtrema struct {
	MaxCountDay  string
	MinCountDay  string
	MaxWeightDay string
	MinWeightDay string
}
