package timing

// Measure times fn with t and passes fn's return value and error through
// unchanged. The timer is stopped on every exit path: a panicking fn still
// gets its result recorded and its callback fired before the panic
// propagates. A func with a different signature is measured by closing over
// its arguments.
func Measure[T any](t *Timer, fn func() (T, error), opts ...Option) (T, error) {
	if o := gather(opts); o.unit != nil {
		if err := checkUnit(*o.unit); err != nil {
			var zero T
			return zero, err
		}
	}
	defer t.Scope(opts...)()
	return fn()
}

// Wrap returns a callable that measures fn with t on each invocation,
// returning exactly what fn returns.
func Wrap[T any](t *Timer, fn func() (T, error), opts ...Option) func() (T, error) {
	return func() (T, error) {
		return Measure(t, fn, opts...)
	}
}

// Wrapper returns a wrapping func, for when the options are known before
// the func to wrap is. Wrapper(t, opts...)(fn) behaves exactly like
// Wrap(t, fn, opts...).
func Wrapper[T any](t *Timer, opts ...Option) func(func() (T, error)) func() (T, error) {
	return func(fn func() (T, error)) func() (T, error) {
		return Wrap(t, fn, opts...)
	}
}

// prevtimer is the most recent Timer constructed by a convenience func.
// Last-writer-wins with no synchronization: callers mixing convenience
// calls across goroutines should construct their own Timers instead.
var prevtimer *Timer

// PrevTimer returns the last Timer constructed by Start, MeasureNew,
// WrapNew, or WrapperNew, so a fire-and-forget measurement without a
// callback can still be read back afterward.
func PrevTimer() *Timer {
	return prevtimer
}

// Start constructs a new Timer, starts it, and returns it.
func Start(opts ...Option) (*Timer, error) {
	t, err := New(opts...)
	if err != nil {
		return nil, err
	}
	prevtimer = t
	t.Start()
	return t, nil
}

// MeasureNew constructs a new Timer and measures fn with it.
func MeasureNew[T any](fn func() (T, error), opts ...Option) (T, error) {
	t, err := New(opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	prevtimer = t
	return Measure(t, fn)
}

// WrapNew constructs a new Timer and returns fn wrapped with it.
func WrapNew[T any](fn func() (T, error), opts ...Option) (func() (T, error), error) {
	t, err := New(opts...)
	if err != nil {
		return nil, err
	}
	prevtimer = t
	return Wrap(t, fn), nil
}

// WrapperNew constructs a new Timer and returns its wrapping func, the
// WrapNew equivalent of Wrapper.
func WrapperNew[T any](opts ...Option) (func(func() (T, error)) func() (T, error), error) {
	t, err := New(opts...)
	if err != nil {
		return nil, err
	}
	prevtimer = t
	return Wrapper[T](t), nil
}
