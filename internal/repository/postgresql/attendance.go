package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT ar.id, ar.staff_id, ar.date, ar.check_in, ar.check_out, ar.status, ar.created_at, s.name
	FROM attendance_records ar
	INNER JOIN staff s ON s.id = ar.staff_id
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.StaffID,
		&rec.Date,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.Status,
		&rec.CreatedAt,
		&rec.StaffName,
	)
	return rec, err
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var result []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)
	err := q.QueryRow(ctx, `
		INSERT INTO attendance_records (id, staff_id, date, check_in, check_out, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rec.ID, rec.StaffID, rec.Date, rec.CheckIn, rec.CheckOut, rec.Status).Scan(&rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "attendance_records_staff_date_key") {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return rec, nil
}

// GetByStaffAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)
	rec, err := scanRecord(q.QueryRow(ctx, attendanceSelect+` WHERE ar.staff_id = $1 AND ar.date = $2`, staffID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

func (a *attendanceRepository) update(ctx context.Context, query string, args ...interface{}) error {
	q := GetQuerier(ctx, a.db)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// UpdateCheckIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCheckIn(ctx context.Context, id string, checkIn time.Time, status attendance.Status) error {
	return a.update(ctx, `UPDATE attendance_records SET check_in = $2, status = $3 WHERE id = $1`, id, checkIn, status)
}

// UpdateCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCheckOut(ctx context.Context, id string, checkOut time.Time) error {
	return a.update(ctx, `UPDATE attendance_records SET check_out = $2 WHERE id = $1`, id, checkOut)
}

// UpsertStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertStatus(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)
	err := q.QueryRow(ctx, `
		INSERT INTO attendance_records (id, staff_id, date, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (staff_id, date) DO UPDATE SET status = EXCLUDED.status
		RETURNING id, check_in, check_out, created_at
	`, rec.ID, rec.StaffID, rec.Date, rec.Status).Scan(&rec.ID, &rec.CheckIn, &rec.CheckOut, &rec.CreatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance status: %w", err)
	}
	return rec, nil
}

// StatusByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) StatusByDate(ctx context.Context, date time.Time) (attendance.StatusMap, error) {
	q := GetQuerier(ctx, a.db)
	rows, err := q.Query(ctx, `SELECT staff_id, status FROM attendance_records WHERE date = $1`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	day := make(attendance.StatusMap)
	for rows.Next() {
		var (
			staffID string
			status  attendance.Status
		)
		if err := rows.Scan(&staffID, &status); err != nil {
			return nil, err
		}
		day[staffID] = status
	}
	return day, rows.Err()
}

// StatusByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) StatusByRange(ctx context.Context, from, to time.Time) (map[string]attendance.StatusMap, error) {
	q := GetQuerier(ctx, a.db)
	rows, err := q.Query(ctx, `
		SELECT date, staff_id, status
		FROM attendance_records
		WHERE date BETWEEN $1 AND $2
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make(map[string]attendance.StatusMap)
	for rows.Next() {
		var (
			date    time.Time
			staffID string
			status  attendance.Status
		)
		if err := rows.Scan(&date, &staffID, &status); err != nil {
			return nil, err
		}
		key := attendance.DateKey(date)
		if days[key] == nil {
			days[key] = make(attendance.StatusMap)
		}
		days[key][staffID] = status
	}
	return days, rows.Err()
}

// ListByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByRange(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	return a.list(ctx, attendanceSelect+`
		WHERE ar.date BETWEEN $1 AND $2
		ORDER BY ar.staff_id, ar.date
	`, from, to)
}

// ListByStaffRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByStaffRange(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Record, error) {
	return a.list(ctx, attendanceSelect+`
		WHERE ar.staff_id = $1 AND ar.date BETWEEN $2 AND $3
		ORDER BY ar.date
	`, staffID, from, to)
}

// History implements attendance.AttendanceRepository.
func (a *attendanceRepository) History(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	whereClauses := []string{"ar.staff_id = $1"}
	args := []interface{}{filter.StaffID}
	argIdx := 2

	if filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Date != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.date = $%d", argIdx))
		args = append(args, *filter.Date)
		argIdx++
	}
	where := " WHERE " + strings.Join(whereClauses, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_records ar`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := attendanceSelect + where + fmt.Sprintf(" ORDER BY ar.date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.PageSize, offset)

	records, err := a.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// MaxID implements attendance.AttendanceRepository.
func (a *attendanceRepository) MaxID(ctx context.Context) (string, error) {
	return maxID(ctx, a.db, "attendance_records", "ATT")
}
