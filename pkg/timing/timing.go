// Package timing measures elapsed wall-clock time around code blocks,
// function calls, and explicit start/stop pairs. It supports three patterns:
// functional (Start / Stop / Measure), wrapping (Wrap / Wrapper), and scoped
// (defer timer.Scope()()).
package timing

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
)

// Unit is the scale in which a measured duration is reported.
type Unit string

const (
	Nanoseconds  Unit = "nanoseconds"
	Microseconds Unit = "microseconds"
	Milliseconds Unit = "milliseconds"
	Seconds      Unit = "seconds"
)

// Result is an elapsed duration scaled to a Unit.
type Result = float64

// Callback receives the elapsed value whenever a timer stops.
type Callback func(Result)

var (
	// ErrNotRunning is returned by Stop, Current, and Restart when the
	// timer has no active start.
	ErrNotRunning = errors.New("the timer is not running")

	// ErrNoResult is returned by Get before any result has been recorded.
	ErrNoResult = errors.New("no result available")
)

// scale converts a raw duration to this unit. The unit must have been
// checked already.
func (u Unit) scale(d time.Duration) Result {
	switch u {
	case Nanoseconds:
		return Result(d.Nanoseconds())
	case Microseconds:
		return Result(d.Nanoseconds()) / 1e3
	case Milliseconds:
		return Result(d.Nanoseconds()) / 1e6
	default:
		return d.Seconds()
	}
}

// Timer measures the elapsed time between a start and a stop event and
// reports it in the configured Unit, optionally through a Callback.
//
// A Timer is not safe for concurrent use. Goroutines timing independent work
// should each hold their own instance.
type Timer struct {
	clock    clock.Clock
	unit     Unit
	callback Callback

	start      time.Time
	running    bool
	runUnit    *Unit
	runCb      *Callback
	result     time.Duration
	resultUnit Unit
	hasResult  bool
}

// New returns a new Timer. By default it reports in Seconds with no
// callback; use WithUnit and WithCallback to change that. An unrecognized
// unit is a configuration error, reported here rather than at stop time.
func New(opts ...Option) (*Timer, error) {
	o := gather(opts)
	t := &Timer{clock: clock.New(), unit: Seconds}
	if o.clock != nil {
		t.clock = o.clock
	}
	if o.unit != nil {
		t.unit = *o.unit
	}
	if o.callback != nil {
		t.callback = *o.callback
	}
	if err := checkUnit(t.unit); err != nil {
		return nil, err
	}
	return t, nil
}

// Start captures the current instant and marks the timer running. Starting a
// running timer discards the previous start point. A unit or callback given
// here applies to this run only and is dropped at the matching stop.
func (t *Timer) Start(opts ...Option) {
	o := gather(opts)
	t.start = t.clock.Now()
	t.running = true
	t.runUnit = o.unit
	t.runCb = o.callback
}

// Stop stops the timer, records the elapsed time, and returns it scaled to
// the effective unit (per-call option, else the Start override, else the
// configured unit). The effective callback (per-call option, else the
// configured one) is invoked with the returned value.
//
// Returns ErrNotRunning if there is no active start. If a per-call unit is
// unrecognized, the timer still stops and the result is recorded in the
// configured unit, but no callback fires and a configuration error is
// returned.
func (t *Timer) Stop(opts ...Option) (Result, error) {
	o := gather(opts)
	if !t.running {
		return 0, fmt.Errorf("stop: %w", ErrNotRunning)
	}
	elapsed := t.clock.Now().Sub(t.start)
	runUnit, runCb := t.runUnit, t.runCb
	t.running = false
	t.runUnit = nil
	t.runCb = nil
	return t.record(elapsed, o, runUnit, runCb)
}

// Current records and reports the currently elapsed time without stopping
// the timer. Unit and callback resolution matches Stop. Returns
// ErrNotRunning if there is no active start.
func (t *Timer) Current(opts ...Option) (Result, error) {
	o := gather(opts)
	if !t.running {
		return 0, fmt.Errorf("current: %w", ErrNotRunning)
	}
	elapsed := t.clock.Now().Sub(t.start)
	return t.record(elapsed, o, t.runUnit, t.runCb)
}

// Restart stops the timer and immediately starts it again, returning the
// finished run's result. Returns ErrNotRunning if there is no active start,
// in which case the timer stays stopped.
func (t *Timer) Restart(opts ...Option) (Result, error) {
	ret, err := t.Stop(opts...)
	if err != nil {
		return 0, err
	}
	t.Start()
	return ret, nil
}

// Get returns the most recent result. It is expressed in whatever unit was
// in effect when it was recorded, unless overridden per call with WithUnit.
// Returns ErrNoResult if no stop has completed yet.
func (t *Timer) Get(opts ...Option) (Result, error) {
	o := gather(opts)
	if !t.hasResult {
		return 0, fmt.Errorf("get: %w", ErrNoResult)
	}
	unit := t.resultUnit
	if o.unit != nil {
		unit = *o.unit
	}
	if err := checkUnit(unit); err != nil {
		return 0, err
	}
	return unit.scale(t.result), nil
}

// Running reports whether a start has occurred without a matching stop.
func (t *Timer) Running() bool {
	return t.running
}

// Scope starts the timer and returns the matching stop func, meant for
// defer:
//
//	defer timer.Scope()()
//
// The stop runs on every exit path, so the result is recorded and the
// callback fires even when the scoped code panics. Options given here apply
// to this run only, like Start's.
func (t *Timer) Scope(opts ...Option) func() {
	t.Start(opts...)
	return func() { t.Stop() }
}

// Measure times fn with this timer. The timer is stopped on every exit
// path: if fn panics, the result is still recorded and the callback still
// fires before the panic propagates. For funcs with return values, see the
// package-level Measure.
func (t *Timer) Measure(fn func(), opts ...Option) {
	defer t.Scope(opts...)()
	fn()
}

// record stores a raw elapsed duration, scales it to the effective unit,
// and fires the effective callback.
func (t *Timer) record(elapsed time.Duration, o options, runUnit *Unit, runCb *Callback) (Result, error) {
	t.result = elapsed
	t.hasResult = true

	unit := t.unit
	if runUnit != nil {
		unit = *runUnit
	}
	if o.unit != nil {
		unit = *o.unit
	}
	if err := checkUnit(unit); err != nil {
		t.resultUnit = t.unit
		return 0, err
	}
	t.resultUnit = unit
	val := unit.scale(elapsed)

	cb := t.callback
	if runCb != nil {
		cb = *runCb
	}
	if o.callback != nil {
		cb = *o.callback
	}
	if cb != nil {
		cb(val)
	}
	return val, nil
}
