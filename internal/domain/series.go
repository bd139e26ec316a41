package domain

import "time"

// DatedValue is a single observation in a daily series. A nil Value means
// "no observation" for that date, which is not the same thing as zero.
type DatedValue struct {
	Date  time.Time
	Value *float64
}

// PriceHistory is the canonical shape handed over by the price collaborator.
// Dates and Closes are the same length; the collaborator truncates mismatches
// before handoff.
type PriceHistory struct {
	Dates  []string  `json:"dates"`
	Closes []float64 `json:"closes"`
}

func (p PriceHistory) Len() int {
	if len(p.Dates) < len(p.Closes) {
		return len(p.Dates)
	}
	return len(p.Closes)
}

// BacktestRow records what a model predicted for a past date. Some rows carry
// their own realized actual, since backtest history and price history refresh
// independently and may have different retention windows.
type BacktestRow struct {
	Date   string             `json:"date"`
	Actual *float64           `json:"actual"`
	Pred   map[string]float64 `json:"pred"`
}

// ModelForecast is one model's forward predictions, ordered by increasing
// horizon offset (+1d, +2d, ...).
type ModelForecast struct {
	Model       string    `json:"model"`
	Predictions []float64 `json:"predictions"`
	Confidence  []float64 `json:"confidence,omitempty"`
}

type RowKind string

const (
	RowKindPast   RowKind = "past"
	RowKindFuture RowKind = "future"
)

// MergedRow is one date in the aligned chart table. Date is a canonical
// YYYY-MM-DD string, except for future rows whose calendar date could not be
// computed, which carry a relative label like "+3d" instead.
//
// Future rows always have a nil Actual. Past rows have a nil Actual only when
// no source supplied a value for that date.
type MergedRow struct {
	Date     string              `json:"date"`
	Actual   *float64            `json:"actual"`
	PerModel map[string]*float64 `json:"perModel"`
	Kind     RowKind             `json:"kind"`
}

// Quote is the current-price snapshot shown in the dashboard header.
type Quote struct {
	Ticker       string  `json:"ticker"`
	LastClose    float64 `json:"last_close"`
	CurrentPrice float64 `json:"current_price"`
	ChangePct    float64 `json:"change_pct"`
}

// EarningsInfo is the next scheduled earnings date for a ticker. A nil
// NextEarningsDate with Available false means the calendar has no upcoming
// entry, or the provider could not be reached.
type EarningsInfo struct {
	Ticker           string  `json:"ticker"`
	NextEarningsDate *string `json:"nextEarningsDate"`
	Available        bool    `json:"available"`
}

// YearStats summarizes the trailing 52-week range of a symbol.
type YearStats struct {
	High     float64 `json:"high_52w"`
	Low      float64 `json:"low_52w"`
	Mean     float64 `json:"mean_52w"`
	Position float64 `json:"position_52w"` // 0 at the low, 100 at the high
}

func Float64Pointer(f float64) *float64 {
	return &f
}
