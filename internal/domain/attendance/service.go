package attendance

import (
	"context"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, caller staff.Member, req CheckRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, caller staff.Member, req CheckRequest) (CheckOutResponse, error)
	History(ctx context.Context, caller staff.Member, filter HistoryFilter) (HistoryResponse, error)
	MarkStatus(ctx context.Context, caller staff.Manager, req MarkStatusRequest) (AttendanceResponse, error)
}
