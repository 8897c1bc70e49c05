package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dayScheduleRepositoryImpl struct {
	db *database.DB
}

func NewDayScheduleRepository(db *database.DB) roster.DayScheduleRepository {
	return &dayScheduleRepositoryImpl{db: db}
}

const dayScheduleSelect = `
	SELECT ds.id, ds.schedule_date, ds.template_id, ds.applied_by, ds.applied_at,
	       ds.has_unavailable_staff, ds.is_acknowledged, rt.name
	FROM day_schedules ds
	INNER JOIN roster_templates rt ON rt.id = ds.template_id
`

func scanDaySchedule(row pgx.Row) (roster.DaySchedule, error) {
	var ds roster.DaySchedule
	err := row.Scan(
		&ds.ID,
		&ds.ScheduleDate,
		&ds.TemplateID,
		&ds.AppliedBy,
		&ds.AppliedAt,
		&ds.HasUnavailableStaff,
		&ds.IsAcknowledged,
		&ds.TemplateName,
	)
	return ds, err
}

// Create implements roster.DayScheduleRepository.
func (r *dayScheduleRepositoryImpl) Create(ctx context.Context, ds roster.DaySchedule) (roster.DaySchedule, error) {
	q := GetQuerier(ctx, r.db)
	err := q.QueryRow(ctx, `
		INSERT INTO day_schedules (schedule_date, template_id, applied_by, applied_at, has_unavailable_staff, is_acknowledged)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, ds.ScheduleDate, ds.TemplateID, ds.AppliedBy, ds.AppliedAt, ds.HasUnavailableStaff, ds.IsAcknowledged).Scan(&ds.ID)
	if err != nil {
		if isUniqueViolation(err, "day_schedules_date_key") {
			return roster.DaySchedule{}, roster.ErrDateAlreadyScheduled
		}
		return roster.DaySchedule{}, fmt.Errorf("failed to create day schedule: %w", err)
	}
	return ds, nil
}

// GetByDate implements roster.DayScheduleRepository.
func (r *dayScheduleRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (roster.DaySchedule, error) {
	q := GetQuerier(ctx, r.db)
	ds, err := scanDaySchedule(q.QueryRow(ctx, dayScheduleSelect+` WHERE ds.schedule_date = $1`, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return roster.DaySchedule{}, roster.ErrScheduleNotFound
	}
	return ds, err
}

// ListByRange implements roster.DayScheduleRepository.
func (r *dayScheduleRepositoryImpl) ListByRange(ctx context.Context, from, to time.Time) ([]roster.DaySchedule, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, dayScheduleSelect+`
		WHERE ds.schedule_date BETWEEN $1 AND $2
		ORDER BY ds.schedule_date
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []roster.DaySchedule
	for rows.Next() {
		ds, err := scanDaySchedule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ds)
	}
	return result, rows.Err()
}

// ExistsByTemplateID implements roster.DayScheduleRepository.
func (r *dayScheduleRepositoryImpl) ExistsByTemplateID(ctx context.Context, templateID string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM day_schedules WHERE template_id = $1)`, templateID).Scan(&exists)
	return exists, err
}

func (r *dayScheduleRepositoryImpl) exec(ctx context.Context, query string, args ...interface{}) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrScheduleNotFound
	}
	return nil
}

// SetUnavailable implements roster.DayScheduleRepository.
func (r *dayScheduleRepositoryImpl) SetUnavailable(ctx context.Context, date time.Time, hasUnavailable bool) error {
	return r.exec(ctx, `UPDATE day_schedules SET has_unavailable_staff = $2 WHERE schedule_date = $1`, date, hasUnavailable)
}

// Acknowledge implements roster.DayScheduleRepository.
func (r *dayScheduleRepositoryImpl) Acknowledge(ctx context.Context, date time.Time) error {
	return r.exec(ctx, `UPDATE day_schedules SET is_acknowledged = TRUE WHERE schedule_date = $1`, date)
}

// DeleteByDate implements roster.DayScheduleRepository.
func (r *dayScheduleRepositoryImpl) DeleteByDate(ctx context.Context, date time.Time) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM day_schedules WHERE schedule_date = $1`, date)
	return err
}
