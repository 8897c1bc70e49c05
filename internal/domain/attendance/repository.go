package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, r Record) (Record, error)
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (Record, error)
	// UpdateCheckIn stamps a check-in on a record created by a status mark.
	UpdateCheckIn(ctx context.Context, id string, checkIn time.Time, status Status) error
	UpdateCheckOut(ctx context.Context, id string, checkOut time.Time) error
	// UpsertStatus inserts r or, when a record exists for (staff, date), overwrites its status.
	UpsertStatus(ctx context.Context, r Record) (Record, error)
	StatusByDate(ctx context.Context, date time.Time) (StatusMap, error)
	// StatusByRange returns every day with at least one record, keyed by DateKey.
	StatusByRange(ctx context.Context, from, to time.Time) (map[string]StatusMap, error)
	// ListByRange returns records ordered by staff id then date.
	ListByRange(ctx context.Context, from, to time.Time) ([]Record, error)
	ListByStaffRange(ctx context.Context, staffID string, from, to time.Time) ([]Record, error)
	History(ctx context.Context, filter HistoryFilter) ([]Record, int64, error)
	MaxID(ctx context.Context) (string, error)
}
