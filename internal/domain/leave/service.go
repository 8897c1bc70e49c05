package leave

import (
	"context"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
)

type LeaveService interface {
	Apply(ctx context.Context, caller staff.Member, req ApplyLeaveRequest, attachment *Attachment) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, caller staff.Member) ([]LeaveRequestResponse, error)
	ListForApproval(ctx context.Context, caller staff.Manager) ([]LeaveRequestResponse, error)
	Approve(ctx context.Context, caller staff.Manager, id string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, caller staff.Manager, id string) (LeaveRequestResponse, error)
}
