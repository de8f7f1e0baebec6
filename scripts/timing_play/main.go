package main

import (
	"fmt"
	"time"

	"github.com/ruzickbelle/timering/pkg/durlog"
	"github.com/ruzickbelle/timering/pkg/timing"
)

var logger = durlog.New("[timing_play]")

func main() {
	// functional
	timer, _ := timing.Start()
	time.Sleep(100 * time.Millisecond)
	elapsed, _ := timer.Stop()
	fmt.Println("start/stop:", elapsed)

	// scoped, reporting through the logger
	unit := timing.UnitFromEnv("TIMERING_UNIT", timing.Milliseconds)
	scoped, _ := timing.New(
		timing.WithUnit(unit),
		timing.WithCallback(durlog.Callback(logger, "scoped block finished", unit)),
	)
	func() {
		defer scoped.Scope()()
		time.Sleep(100 * time.Millisecond)
	}()

	// wrapped
	fetch := timing.Wrap(scoped, func() (string, error) {
		time.Sleep(50 * time.Millisecond)
		return "payload", nil
	})
	for i := 0; i < 3; i++ {
		out, _ := fetch()
		fmt.Println("wrapped:", out)
	}

	// fire-and-forget, read back through PrevTimer
	timing.MeasureNew(func() (struct{}, error) {
		time.Sleep(25 * time.Millisecond)
		return struct{}{}, nil
	})
	last, _ := timing.PrevTimer().Get()
	fmt.Println("prev timer:", last)
}
