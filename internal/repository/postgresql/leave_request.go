package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/grocerymart/backoffice-go/internal/domain/leave"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.staff_id, lr.leave_date, lr.type, lr.reason, lr.attachment_path,
	       lr.status, lr.approved_by, lr.approved_at, lr.submitted_at, s.name
	FROM leave_requests lr
	INNER JOIN staff s ON s.id = lr.staff_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := row.Scan(
		&req.ID,
		&req.StaffID,
		&req.LeaveDate,
		&req.Type,
		&req.Reason,
		&req.AttachmentPath,
		&req.Status,
		&req.ApprovedBy,
		&req.ApprovedAt,
		&req.SubmittedAt,
		&req.StaffName,
	)
	return req, err
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var result []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO leave_requests (id, staff_id, leave_date, type, reason, attachment_path, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, req.ID, req.StaffID, req.LeaveDate, req.Type, req.Reason, req.AttachmentPath, req.Status, req.SubmittedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	req, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// ListByStaff implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByStaff(ctx context.Context, staffID string, limit int) ([]leave.LeaveRequest, error) {
	return r.list(ctx, leaveRequestSelect+`
		WHERE lr.staff_id = $1
		ORDER BY lr.submitted_at DESC
		LIMIT $2
	`, staffID, limit)
}

// ListForApproval implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListForApproval(ctx context.Context, limit int) ([]leave.LeaveRequest, error) {
	return r.list(ctx, leaveRequestSelect+`
		ORDER BY (lr.status = 'PENDING') DESC, lr.submitted_at DESC
		LIMIT $1
	`, limit)
}

// Decide implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_at = $4
		WHERE id = $1 AND status = 'PENDING'
	`, req.ID, req.Status, req.ApprovedBy, req.ApprovedAt)
	if err != nil {
		return fmt.Errorf("failed to decide leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveAlreadyProcessed
	}
	return nil
}

// MaxID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) MaxID(ctx context.Context) (string, error) {
	return maxID(ctx, r.db, "leave_requests", "LR")
}
