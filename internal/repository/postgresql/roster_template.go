package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type templateRepositoryImpl struct {
	db *database.DB
}

func NewTemplateRepository(db *database.DB) roster.TemplateRepository {
	return &templateRepositoryImpl{db: db}
}

// insertAllocations batches the allocation rows and fills in their serial ids.
func (r *templateRepositoryImpl) insertAllocations(ctx context.Context, q database.Querier, templateID string, allocations []roster.TemplateAllocation) error {
	if len(allocations) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range allocations {
		batch.Queue(`
			INSERT INTO template_allocations (template_id, staff_id, task_name, sort_order)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, templateID, a.StaffID, a.TaskName, a.SortOrder)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for i := range allocations {
		if err := br.QueryRow().Scan(&allocations[i].ID); err != nil {
			return fmt.Errorf("failed to insert template allocation: %w", err)
		}
		allocations[i].TemplateID = templateID
	}
	return br.Close()
}

// Create implements roster.TemplateRepository.
func (r *templateRepositoryImpl) Create(ctx context.Context, t roster.RosterTemplate) (roster.RosterTemplate, error) {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO roster_templates (id, name, manager_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, t.ID, t.Name, t.ManagerID, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "roster_templates_name_key") {
			return roster.RosterTemplate{}, roster.ErrTemplateNameExists
		}
		return roster.RosterTemplate{}, fmt.Errorf("failed to create template: %w", err)
	}

	if err := r.insertAllocations(ctx, q, t.ID, t.Allocations); err != nil {
		return roster.RosterTemplate{}, err
	}
	return t, nil
}

// UpdateName implements roster.TemplateRepository.
func (r *templateRepositoryImpl) UpdateName(ctx context.Context, id, name string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `UPDATE roster_templates SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if isUniqueViolation(err, "roster_templates_name_key") {
			return roster.ErrTemplateNameExists
		}
		return fmt.Errorf("failed to update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrTemplateNotFound
	}
	return nil
}

// ReplaceAllocations implements roster.TemplateRepository.
func (r *templateRepositoryImpl) ReplaceAllocations(ctx context.Context, templateID string, allocations []roster.TemplateAllocation) error {
	q := GetQuerier(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM template_allocations WHERE template_id = $1`, templateID); err != nil {
		return fmt.Errorf("failed to clear template allocations: %w", err)
	}
	return r.insertAllocations(ctx, q, templateID, allocations)
}

// Delete implements roster.TemplateRepository.
func (r *templateRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM roster_templates WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return roster.ErrTemplateInUse
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrTemplateNotFound
	}
	return nil
}

// allocationsOf loads template allocations with staff names, ordered by template then sort order.
func (r *templateRepositoryImpl) allocationsOf(ctx context.Context, templateIDs []string) (map[string][]roster.TemplateAllocation, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT ta.id, ta.template_id, ta.staff_id, ta.task_name, ta.sort_order, s.name
		FROM template_allocations ta
		INNER JOIN staff s ON s.id = ta.staff_id
		WHERE ta.template_id = ANY($1)
		ORDER BY ta.template_id, ta.sort_order
	`, templateIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]roster.TemplateAllocation, len(templateIDs))
	for rows.Next() {
		var a roster.TemplateAllocation
		if err := rows.Scan(&a.ID, &a.TemplateID, &a.StaffID, &a.TaskName, &a.SortOrder, &a.StaffName); err != nil {
			return nil, err
		}
		result[a.TemplateID] = append(result[a.TemplateID], a)
	}
	return result, rows.Err()
}

// GetByID implements roster.TemplateRepository.
func (r *templateRepositoryImpl) GetByID(ctx context.Context, id string) (roster.RosterTemplate, error) {
	q := GetQuerier(ctx, r.db)
	var t roster.RosterTemplate
	err := q.QueryRow(ctx, `
		SELECT id, name, manager_id, created_at
		FROM roster_templates
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.ManagerID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.RosterTemplate{}, roster.ErrTemplateNotFound
		}
		return roster.RosterTemplate{}, err
	}

	allocations, err := r.allocationsOf(ctx, []string{t.ID})
	if err != nil {
		return roster.RosterTemplate{}, err
	}
	t.Allocations = allocations[t.ID]
	return t, nil
}

// List implements roster.TemplateRepository.
func (r *templateRepositoryImpl) List(ctx context.Context) ([]roster.RosterTemplate, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, name, manager_id, created_at
		FROM roster_templates
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		templates []roster.RosterTemplate
		ids       []string
	)
	for rows.Next() {
		var t roster.RosterTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.ManagerID, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return templates, nil
	}

	allocations, err := r.allocationsOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		templates[i].Allocations = allocations[templates[i].ID]
	}
	return templates, nil
}

// ExistsByName implements roster.TemplateRepository.
func (r *templateRepositoryImpl) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM roster_templates WHERE lower(name) = lower($1) AND id <> $2)
	`, name, excludeID).Scan(&exists)
	return exists, err
}

// MaxID implements roster.TemplateRepository.
func (r *templateRepositoryImpl) MaxID(ctx context.Context) (string, error) {
	return maxID(ctx, r.db, "roster_templates", "RST")
}
