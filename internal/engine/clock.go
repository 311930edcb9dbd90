package engine

import (
	"time"

	"github.com/buildtall-systems/stockroom/internal/db"
)

// Clock supplies the current civil date. Injected so tests can pin time.
type Clock interface {
	Today() db.Date
}

// SystemClock reads the wall clock in the server's local zone.
type SystemClock struct{}

func (SystemClock) Today() db.Date {
	return db.DateOf(time.Now())
}

// FixedClock always returns the same date.
type FixedClock struct {
	Date db.Date
}

func (c FixedClock) Today() db.Date {
	return c.Date
}
