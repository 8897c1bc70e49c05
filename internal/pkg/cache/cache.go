package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
)

const calendarKeyPrefix = "roster:calendar:"

// CalendarKey names the cache entry of a month, e.g. roster:calendar:2025-03.
func CalendarKey(year int, month time.Month) string {
	return fmt.Sprintf("%s%04d-%02d", calendarKeyPrefix, year, int(month))
}

// NoopCalendarCache is used when Redis is not configured.
type NoopCalendarCache struct{}

var _ roster.CalendarCache = NoopCalendarCache{}

func (NoopCalendarCache) Get(_ context.Context, _ int, _ time.Month) (roster.CalendarResponse, bool, error) {
	return roster.CalendarResponse{}, false, nil
}

func (NoopCalendarCache) Set(_ context.Context, _ roster.CalendarResponse) error {
	return nil
}

func (NoopCalendarCache) Invalidate(_ context.Context, _ time.Time) error {
	return nil
}

func (NoopCalendarCache) InvalidateAll(_ context.Context) error {
	return nil
}
