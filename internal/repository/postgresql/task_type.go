package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/grocerymart/backoffice-go/internal/domain/tasktype"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type taskTypeRepositoryImpl struct {
	db *database.DB
}

func NewTaskTypeRepository(db *database.DB) tasktype.TaskTypeRepository {
	return &taskTypeRepositoryImpl{db: db}
}

// List implements tasktype.TaskTypeRepository.
func (r *taskTypeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]tasktype.TaskType, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, name, description, is_active, created_at
		FROM task_types
		WHERE NOT $1 OR is_active
		ORDER BY name
	`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []tasktype.TaskType
	for rows.Next() {
		var t tasktype.TaskType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// GetByID implements tasktype.TaskTypeRepository.
func (r *taskTypeRepositoryImpl) GetByID(ctx context.Context, id int64) (tasktype.TaskType, error) {
	q := GetQuerier(ctx, r.db)
	var t tasktype.TaskType
	err := q.QueryRow(ctx, `
		SELECT id, name, description, is_active, created_at
		FROM task_types
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Description, &t.IsActive, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return tasktype.TaskType{}, tasktype.ErrTaskTypeNotFound
	}
	return t, err
}

// ActiveNames implements tasktype.TaskTypeRepository.
func (r *taskTypeRepositoryImpl) ActiveNames(ctx context.Context) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT name FROM task_types WHERE is_active`)
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	active := make(map[string]bool, len(names))
	for _, n := range names {
		active[n] = true
	}
	return active, nil
}

// ExistsByName implements tasktype.TaskTypeRepository.
func (r *taskTypeRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM task_types WHERE lower(name) = lower($1))`, name).Scan(&exists)
	return exists, err
}

// Create implements tasktype.TaskTypeRepository.
func (r *taskTypeRepositoryImpl) Create(ctx context.Context, t tasktype.TaskType) (tasktype.TaskType, error) {
	q := GetQuerier(ctx, r.db)
	err := q.QueryRow(ctx, `
		INSERT INTO task_types (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, t.Name, t.Description, t.IsActive).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "task_types_name_key") {
			return tasktype.TaskType{}, tasktype.ErrTaskTypeNameExists
		}
		return tasktype.TaskType{}, fmt.Errorf("failed to create task type: %w", err)
	}
	return t, nil
}

// SetActive implements tasktype.TaskTypeRepository.
func (r *taskTypeRepositoryImpl) SetActive(ctx context.Context, id int64, active bool) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `UPDATE task_types SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return tasktype.ErrTaskTypeNotFound
	}
	return nil
}
