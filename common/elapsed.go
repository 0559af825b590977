package common

import (
	"fmt"
	"time"
)

type Duration time.Duration

func (it Duration) Truncate(granularity time.Duration) Duration {
	return Duration(time.Duration(it).Truncate(granularity))
}

func (it Duration) Milliseconds() int64 {
	return time.Duration(it).Milliseconds()
}

func (it Duration) String() string {
	return time.Duration(it).Truncate(time.Millisecond).String()
}

type stopwatch struct {
	message string
	started time.Time
}

func Stopwatch(form string, details ...interface{}) *stopwatch {
	message := fmt.Sprintf(form, details...)
	return &stopwatch{
		message: message,
		started: time.Now(),
	}
}

func (it *stopwatch) String() string {
	return fmt.Sprintf("%v", it.Elapsed())
}

func (it *stopwatch) Elapsed() Duration {
	return Duration(time.Since(it.started))
}

func (it *stopwatch) Report() Duration {
	elapsed := it.Elapsed()
	Log("%s %s", it.message, elapsed)
	return elapsed
}
