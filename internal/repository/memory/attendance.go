package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
)

type attendanceRepository struct{ *Store }

func (s *Store) Attendance() attendance.AttendanceRepository { return attendanceRepository{s} }

func (r attendanceRepository) find(staffID string, date time.Time) (attendance.Record, bool) {
	for _, rec := range r.attendance {
		if rec.StaffID == staffID && rec.Date.Equal(date) {
			return rec, true
		}
	}
	return attendance.Record{}, false
}

func (r attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.find(rec.StaffID, rec.Date); exists {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	r.attendance[rec.ID] = rec
	return rec, nil
}

func (r attendanceRepository) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.find(staffID, date)
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r attendanceRepository) update(id string, fn func(*attendance.Record)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.attendance[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	fn(&rec)
	r.attendance[id] = rec
	return nil
}

func (r attendanceRepository) UpdateCheckIn(ctx context.Context, id string, checkIn time.Time, status attendance.Status) error {
	return r.update(id, func(rec *attendance.Record) {
		rec.CheckIn = &checkIn
		rec.Status = status
	})
}

func (r attendanceRepository) UpdateCheckOut(ctx context.Context, id string, checkOut time.Time) error {
	return r.update(id, func(rec *attendance.Record) { rec.CheckOut = &checkOut })
}

func (r attendanceRepository) UpsertStatus(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.find(rec.StaffID, rec.Date); ok {
		existing.Status = rec.Status
		r.attendance[existing.ID] = existing
		return existing, nil
	}
	r.attendance[rec.ID] = rec
	return rec, nil
}

func (r attendanceRepository) StatusByDate(ctx context.Context, date time.Time) (attendance.StatusMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	day := make(attendance.StatusMap)
	for _, rec := range r.attendance {
		if rec.Date.Equal(date) {
			day[rec.StaffID] = rec.Status
		}
	}
	return day, nil
}

func (r attendanceRepository) StatusByRange(ctx context.Context, from, to time.Time) (map[string]attendance.StatusMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	days := make(map[string]attendance.StatusMap)
	for _, rec := range r.attendance {
		if !inRange(rec.Date, from, to) {
			continue
		}
		key := attendance.DateKey(rec.Date)
		if days[key] == nil {
			days[key] = make(attendance.StatusMap)
		}
		days[key][rec.StaffID] = rec.Status
	}
	return days, nil
}

func (r attendanceRepository) filter(keep func(attendance.Record) bool) []attendance.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []attendance.Record
	for _, rec := range r.attendance {
		if keep(rec) {
			rec.StaffName = r.staffName(rec.StaffID)
			result = append(result, rec)
		}
	}
	slices.SortFunc(result, func(a, b attendance.Record) int {
		if c := strings.Compare(a.StaffID, b.StaffID); c != 0 {
			return c
		}
		return a.Date.Compare(b.Date)
	})
	return result
}

func (r attendanceRepository) ListByRange(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	return r.filter(func(rec attendance.Record) bool { return inRange(rec.Date, from, to) }), nil
}

func (r attendanceRepository) ListByStaffRange(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Record, error) {
	return r.filter(func(rec attendance.Record) bool {
		return rec.StaffID == staffID && inRange(rec.Date, from, to)
	}), nil
}

func (r attendanceRepository) History(ctx context.Context, f attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	matched := r.filter(func(rec attendance.Record) bool {
		return rec.StaffID == f.StaffID &&
			(f.Status == "" || string(rec.Status) == f.Status) &&
			(f.Date == nil || rec.Date.Equal(*f.Date))
	})
	slices.SortStableFunc(matched, func(a, b attendance.Record) int {
		return b.Date.Compare(a.Date)
	})

	total := int64(len(matched))
	start := min((f.Page-1)*f.PageSize, len(matched))
	end := min(start+f.PageSize, len(matched))
	return matched[start:end], total, nil
}

func (r attendanceRepository) MaxID(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maxID(r.attendance, "ATT"), nil
}
