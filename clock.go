package steamlogin

import "time"

// Clock abstracts wall time and timer creation for the polling loop. The
// default implementation delegates to the time package; tests substitute a
// manual clock so timeout and interval behavior runs without real sleeps.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending callback armed through [Clock.AfterFunc]. Stop reports
// whether the callback was prevented from firing.
type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
