package quiz

import "time"

type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d and returns a handle that cancels it.
type AfterFunc func(d time.Duration, f func()) Timer

func timeAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
