package chart

import (
	"errors"

	"stockpulse/internal/domain"
)

// ErrEmptyDomain is returned when an operation needs at least one merged row
// and there are none. The rendering surface shows its explicit empty state
// instead of crashing.
var ErrEmptyDomain = errors.New("chart: empty domain")

// Engine is the surface the hosting UI talks to. It owns the merged row
// table and the viewport, applies snapshots under token discipline, and
// projects the visible slice into pixels. Single-writer: the owning
// component applies snapshots and drives navigation; renderers only read.
type Engine struct {
	arbiter    Arbiter
	controller *Controller
	tweener    *Tweener
	rows       []domain.MergedRow
}

func NewEngine(scheduler FrameScheduler) *Engine {
	return &Engine{
		controller: NewController(0),
		tweener:    NewTweener(scheduler, DefaultTweenDuration),
	}
}

// Begin mints the token for a new fetch cycle (a ticker switch, a model
// selection change).
func (e *Engine) Begin() Token {
	return e.arbiter.Issue()
}

// ApplySnapshot merges a completed fetch cycle into the visible table,
// unless a newer cycle has been started since the token was minted, in
// which case it reports false and changes nothing. The viewport survives
// refreshes of the same length and resets when the domain length changes.
func (e *Engine) ApplySnapshot(
	token Token,
	actual domain.PriceHistory,
	backtest []domain.BacktestRow,
	forecasts []domain.ModelForecast,
	pastWindowSize int,
	horizonLength int,
) bool {
	if !e.arbiter.ShouldApply(token) {
		return false
	}
	e.rows = Merge(actual, backtest, forecasts, pastWindowSize, horizonLength)
	e.controller.DomainChanged(len(e.rows))
	return true
}

// Rows returns the current merged table.
func (e *Engine) Rows() []domain.MergedRow {
	return e.rows
}

// Viewport exposes the pan/zoom state machine.
func (e *Engine) Viewport() *Controller {
	return e.controller
}

// Tweener exposes the frame interpolator.
func (e *Engine) Tweener() *Tweener {
	return e.tweener
}

// ProjectActual projects the realized-close line over the current window.
func (e *Engine) ProjectActual(dims domain.Dims) ([]domain.Point, error) {
	if len(e.rows) == 0 {
		return nil, ErrEmptyDomain
	}
	return ProjectToPixels(ActualValues(e.rows), e.controller.Window(), dims), nil
}

// ProjectModel projects one model's backtest-plus-forecast line over the
// current window.
func (e *Engine) ProjectModel(model string, dims domain.Dims) ([]domain.Point, error) {
	if len(e.rows) == 0 {
		return nil, ErrEmptyDomain
	}
	return ProjectToPixels(ModelValues(e.rows, model), e.controller.Window(), dims), nil
}
