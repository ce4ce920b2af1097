package planfile

import (
	"os"
	"time"
)

// Clock supplies the current date so commands and tests can agree on
// what "today" means.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock, unless PLAN_MOCK_TIME is set to a
// date, which pins time for end to end tests.
type SystemClock struct{}

func (SystemClock) Today() time.Time {
	if mock := os.Getenv("PLAN_MOCK_TIME"); mock != "" {
		if t, err := time.Parse(DateLayout, mock); err == nil {
			return t
		}
	}
	return time.Now()
}

// FixedClock always reports the same date.
type FixedClock struct {
	Date time.Time
}

func (c FixedClock) Today() time.Time {
	return c.Date
}
