package holiday

import (
	"context"
	"time"
)

// Service answers whether a calendar date is a public holiday. Lookups
// must fail closed: any transport or upstream failure reads as "no
// holiday", never as an error to the caller.
type Service interface {
	FindHoliday(ctx context.Context, date time.Time) (name string, found bool)
}
