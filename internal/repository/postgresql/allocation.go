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

type allocationRepositoryImpl struct {
	db *database.DB
}

func NewAllocationRepository(db *database.DB) roster.AllocationRepository {
	return &allocationRepositoryImpl{db: db}
}

const allocationSelect = `
	SELECT a.id, a.template_id, a.staff_id, a.task_name, a.assigned_date, a.status,
	       a.start_time, a.completion_date, a.notes, s.name
	FROM allocations a
	INNER JOIN staff s ON s.id = a.staff_id
`

const allocationInsert = `
	INSERT INTO allocations (id, template_id, staff_id, task_name, assigned_date, status, start_time, completion_date, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

func scanAllocation(row pgx.Row) (roster.Allocation, error) {
	var a roster.Allocation
	err := row.Scan(
		&a.ID,
		&a.TemplateID,
		&a.StaffID,
		&a.TaskName,
		&a.AssignedDate,
		&a.Status,
		&a.StartTime,
		&a.CompletionDate,
		&a.Notes,
		&a.StaffName,
	)
	return a, err
}

func allocationArgs(a roster.Allocation) []interface{} {
	return []interface{}{a.ID, a.TemplateID, a.StaffID, a.TaskName, a.AssignedDate, a.Status, a.StartTime, a.CompletionDate, a.Notes}
}

func mapAllocationConflict(err error) error {
	switch {
	case isUniqueViolation(err, "allocations_pkey"):
		return roster.ErrAllocationIDTaken
	case isUniqueViolation(err, "allocations_staff_date_key"):
		return roster.ErrStaffAlreadyAllocated
	}
	return fmt.Errorf("failed to save allocation: %w", err)
}

func (r *allocationRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]roster.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, allocationSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []roster.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *allocationRepositoryImpl) get(ctx context.Context, where string, args ...interface{}) (roster.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	a, err := scanAllocation(q.QueryRow(ctx, allocationSelect+where, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return roster.Allocation{}, roster.ErrAllocationNotFound
	}
	return a, err
}

// Create implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) Create(ctx context.Context, a roster.Allocation) (roster.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	if _, err := q.Exec(ctx, allocationInsert, allocationArgs(a)...); err != nil {
		return roster.Allocation{}, mapAllocationConflict(err)
	}
	return a, nil
}

// CreateBatch implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) CreateBatch(ctx context.Context, allocations []roster.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)
	batch := &pgx.Batch{}
	for _, a := range allocations {
		batch.Queue(allocationInsert, allocationArgs(a)...)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for range allocations {
		if _, err := br.Exec(); err != nil {
			return mapAllocationConflict(err)
		}
	}
	return br.Close()
}

// GetByID implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) GetByID(ctx context.Context, id string) (roster.Allocation, error) {
	return r.get(ctx, `WHERE a.id = $1`, id)
}

// GetByIDAndStaff implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) GetByIDAndStaff(ctx context.Context, id, staffID string) (roster.Allocation, error) {
	return r.get(ctx, `WHERE a.id = $1 AND a.staff_id = $2`, id, staffID)
}

// GetByStaffAndDate implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (roster.Allocation, error) {
	return r.get(ctx, `WHERE a.staff_id = $1 AND a.assigned_date = $2`, staffID, date)
}

// ListByDate implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]roster.Allocation, error) {
	return r.list(ctx, `WHERE a.assigned_date = $1 ORDER BY a.id`, date)
}

// ListByRange implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) ListByRange(ctx context.Context, from, to time.Time) ([]roster.Allocation, error) {
	return r.list(ctx, `WHERE a.assigned_date BETWEEN $1 AND $2 ORDER BY a.assigned_date, a.id`, from, to)
}

// ListByStaffRange implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) ListByStaffRange(ctx context.Context, staffID string, from, to time.Time) ([]roster.Allocation, error) {
	return r.list(ctx, `
		WHERE a.staff_id = $1 AND a.assigned_date BETWEEN $2 AND $3
		ORDER BY a.assigned_date
	`, staffID, from, to)
}

// ListTeammates implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) ListTeammates(ctx context.Context, date time.Time, taskName, excludeStaffID string) ([]roster.Allocation, error) {
	return r.list(ctx, `
		WHERE a.assigned_date = $1 AND a.task_name = $2 AND a.staff_id <> $3
		ORDER BY s.name
	`, date, taskName, excludeStaffID)
}

// Update implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) Update(ctx context.Context, a roster.Allocation) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE allocations
		SET staff_id = $2, task_name = $3, status = $4, start_time = $5, completion_date = $6, notes = $7
		WHERE id = $1
	`, a.ID, a.StaffID, a.TaskName, a.Status, a.StartTime, a.CompletionDate, a.Notes)
	if err != nil {
		return mapAllocationConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrAllocationNotFound
	}
	return nil
}

// Delete implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM allocations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrAllocationNotFound
	}
	return nil
}

// DeleteByDate implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) DeleteByDate(ctx context.Context, date time.Time) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM allocations WHERE assigned_date = $1`, date)
	return err
}

// MaxID implements roster.AllocationRepository.
func (r *allocationRepositoryImpl) MaxID(ctx context.Context) (string, error) {
	return maxID(ctx, r.db, "allocations", "ALC")
}
