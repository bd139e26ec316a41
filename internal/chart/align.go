// Package chart implements the time-series alignment and viewport engine
// behind the price charts: merging actuals, backtests and forecasts into one
// dated table, pan/zoom over that table, pixel projection, frame tweening,
// and stale-response arbitration.
package chart

import (
	"fmt"
	"math"
	"sort"

	"stockpulse/internal/calendar"
	"stockpulse/internal/domain"
)

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Merge aligns three independently fetched sources into one date-ordered
// table: realized closes, per-model backtest predictions for past dates, and
// per-model forward forecasts anchored to business days after the last known
// close.
//
// The result is past rows followed by future rows, strictly ascending by
// date, with no duplicates. Future rows never carry an actual. Missing
// observations stay nil; they are never interpolated or coerced to zero.
// If the actual source is empty there is nothing to anchor to, so the result
// is empty rather than an error.
func Merge(
	actual domain.PriceHistory,
	backtest []domain.BacktestRow,
	forecasts []domain.ModelForecast,
	pastWindowSize int,
	horizonLength int,
) []domain.MergedRow {
	actualByDate := map[string]float64{}
	for i := 0; i < actual.Len(); i++ {
		d := normalizeDate(actual.Dates[i])
		if d == "" || !isFinite(actual.Closes[i]) {
			continue
		}
		actualByDate[d] = actual.Closes[i]
	}
	if len(actualByDate) == 0 || pastWindowSize <= 0 {
		return nil
	}

	actualDates := make([]string, 0, len(actualByDate))
	for d := range actualByDate {
		actualDates = append(actualDates, d)
	}
	sort.Strings(actualDates)
	lastActualDate := actualDates[len(actualDates)-1]

	btActualByDate := map[string]float64{}
	btPredByDate := map[string]map[string]float64{}
	for _, row := range backtest {
		d := normalizeDate(row.Date)
		if d == "" {
			continue
		}
		if row.Actual != nil && isFinite(*row.Actual) {
			btActualByDate[d] = *row.Actual
		}
		for model, pred := range row.Pred {
			if !isFinite(pred) {
				continue
			}
			if btPredByDate[d] == nil {
				btPredByDate[d] = map[string]float64{}
			}
			btPredByDate[d][model] = pred
		}
	}

	// The past partition is anchored on dates that have a realized close.
	// When price history is shorter than the requested window, backtest
	// dates fill the gap, but never past the last known close - future
	// dates must not leak into the past partition.
	baseDates := actualDates
	if len(baseDates) < pastWindowSize {
		seen := map[string]bool{}
		for _, d := range baseDates {
			seen[d] = true
		}
		for d := range btPredByDate {
			if !seen[d] && d <= lastActualDate {
				baseDates = append(baseDates, d)
				seen[d] = true
			}
		}
		sort.Strings(baseDates)
	}
	if len(baseDates) > pastWindowSize {
		baseDates = baseDates[len(baseDates)-pastWindowSize:]
	}

	models := selectedModels(forecasts, btPredByDate)

	rows := make([]domain.MergedRow, 0, len(baseDates)+horizonLength)
	for _, d := range baseDates {
		row := domain.MergedRow{
			Date:     d,
			PerModel: map[string]*float64{},
			Kind:     domain.RowKindPast,
		}
		if v, ok := actualByDate[d]; ok {
			row.Actual = domain.Float64Pointer(v)
		} else if v, ok := btActualByDate[d]; ok {
			row.Actual = domain.Float64Pointer(v)
		}
		for _, model := range models {
			if v, ok := btPredByDate[d][model]; ok {
				row.PerModel[model] = domain.Float64Pointer(v)
			} else {
				row.PerModel[model] = nil
			}
		}
		rows = append(rows, row)
	}

	predsByModel := map[string][]float64{}
	for _, f := range forecasts {
		predsByModel[f.Model] = f.Predictions
	}

	anchor := baseDates[len(baseDates)-1]
	for i := 1; i <= horizonLength; i++ {
		date, err := calendar.AddBusinessDaysISO(anchor, i)
		if err != nil {
			// An unparseable anchor must not abort the merge; fall back
			// to a relative horizon label for this row.
			date = fmt.Sprintf("+%dd", i)
		}
		row := domain.MergedRow{
			Date:     date,
			PerModel: map[string]*float64{},
			Kind:     domain.RowKindFuture,
		}
		for _, model := range models {
			preds := predsByModel[model]
			if i-1 < len(preds) && isFinite(preds[i-1]) {
				row.PerModel[model] = domain.Float64Pointer(preds[i-1])
			} else {
				row.PerModel[model] = nil
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// selectedModels preserves forecast order, then appends backtest-only models
// (a model can have history but no forward predictions yet) alphabetically.
func selectedModels(forecasts []domain.ModelForecast, btPredByDate map[string]map[string]float64) []string {
	models := []string{}
	seen := map[string]bool{}
	for _, f := range forecasts {
		if f.Model == "" || seen[f.Model] {
			continue
		}
		models = append(models, f.Model)
		seen[f.Model] = true
	}
	rest := []string{}
	for _, preds := range btPredByDate {
		for model := range preds {
			if !seen[model] {
				rest = append(rest, model)
				seen[model] = true
			}
		}
	}
	sort.Strings(rest)
	return append(models, rest...)
}

func normalizeDate(s string) string {
	if len(s) > 10 {
		s = s[:10]
	}
	if len(s) != 10 {
		return ""
	}
	return s
}
