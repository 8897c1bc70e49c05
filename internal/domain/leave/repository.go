package leave

import "context"

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByStaff(ctx context.Context, staffID string, limit int) ([]LeaveRequest, error)
	// ListForApproval orders pending requests first, then newest submissions.
	ListForApproval(ctx context.Context, limit int) ([]LeaveRequest, error)
	// Decide records the decision only while the request is still pending.
	Decide(ctx context.Context, req LeaveRequest) error
	MaxID(ctx context.Context) (string, error)
}
