package utils

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewBookingID returns BK + YYYYMMDD + a random 4 digit suffix. It is not
// unique on its own; callers check for collisions.
func NewBookingID(t time.Time) string {
	return fmt.Sprintf("BK%s%04d", t.Format("20060102"), rand.IntN(10000))
}
