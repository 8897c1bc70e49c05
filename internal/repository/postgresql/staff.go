package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

const staffColumns = `id, name, email, phone_num, password_hash, role, authorization_level,
	COALESCE(salary, 0), manager_id, created_at, updated_at`

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.PhoneNum,
		&s.PasswordHash,
		&s.Role,
		&s.AuthorizationLevel,
		&s.Salary,
		&s.ManagerID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// GetByID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)
	s, err := scanStaff(q.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, err
}

// GetByEmail implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByEmail(ctx context.Context, email string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)
	s, err := scanStaff(q.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE lower(email) = lower($1)`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, err
}

// GetByIDs implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByIDs(ctx context.Context, ids []string) (map[string]staff.Staff, error) {
	found := make(map[string]staff.Staff, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		found[s.ID] = s
	}
	return found, rows.Err()
}

// List implements staff.StaffRepository.
func (r *staffRepositoryImpl) List(ctx context.Context, role *staff.Role) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		WHERE ($1::varchar IS NULL OR role = $1)
		ORDER BY name, id
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []staff.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Create implements staff.StaffRepository.
func (r *staffRepositoryImpl) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO staff (id, name, email, phone_num, password_hash, role, authorization_level, salary, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + staffColumns
	created, err := scanStaff(q.QueryRow(ctx, query,
		s.ID, s.Name, s.Email, s.PhoneNum, s.PasswordHash, s.Role, s.AuthorizationLevel, s.Salary, s.ManagerID,
	))
	if err != nil {
		if isUniqueViolation(err, "staff_email_key") {
			return staff.Staff{}, staff.ErrEmailExists
		}
		return staff.Staff{}, fmt.Errorf("failed to create staff: %w", err)
	}
	return created, nil
}

// MaxID implements staff.StaffRepository.
func (r *staffRepositoryImpl) MaxID(ctx context.Context) (string, error) {
	return maxID(ctx, r.db, "staff", "S")
}
