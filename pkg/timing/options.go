package timing

import (
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/go-playground/validator/v10"
)

// Option configures a Timer. The same options are accepted by New and, as
// per-call overrides, by Start, Stop, Current, Restart, Get, and the
// measure/wrap helpers. A per-call option wins over the Start override,
// which wins over the constructor configuration.
type Option func(*options)

type options struct {
	unit     *Unit
	callback *Callback
	clock    clock.Clock
}

func gather(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithUnit sets the unit durations are reported in.
func WithUnit(u Unit) Option {
	return func(o *options) { o.unit = &u }
}

// WithCallback sets the callback invoked with the elapsed value on stop.
func WithCallback(cb Callback) Option {
	return func(o *options) { o.callback = &cb }
}

// NoCallback suppresses the configured callback for this call.
func NoCallback() Option {
	return func(o *options) {
		var cb Callback
		o.callback = &cb
	}
}

// WithClock replaces the wall clock, which tests use to make elapsed times
// deterministic.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

var validate = validator.New()

type unitSpec struct {
	Unit Unit `validate:"oneof=nanoseconds microseconds milliseconds seconds"`
}

// ConfigErrorPrefix marks configuration errors, such as an unrecognized
// unit.
const ConfigErrorPrefix = "timing config error: "

// IsConfigError returns true if the error is a configuration error.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if len(msg) < len(ConfigErrorPrefix) {
		return false
	}
	return msg[:len(ConfigErrorPrefix)] == ConfigErrorPrefix
}

func checkUnit(u Unit) error {
	if err := validate.Struct(unitSpec{Unit: u}); err != nil {
		return fmt.Errorf(ConfigErrorPrefix+"unsupported unit %q: %w", string(u), err)
	}
	return nil
}

// ParseUnit converts a unit name into a Unit, returning a configuration
// error for unrecognized names.
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if err := checkUnit(u); err != nil {
		return "", err
	}
	return u, nil
}

// UnitFromEnv reads a unit name from the environment. It falls back to the
// given Unit when the variable is unset or holds an unrecognized value.
func UnitFromEnv(key string, fallback Unit) Unit {
	s, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	u, err := ParseUnit(s)
	if err != nil {
		fmt.Printf("error parsing %s, defaulting to %s. error: %s", key, fallback, err)
		return fallback
	}
	return u
}
