package staff

import "context"

type StaffService interface {
	List(ctx context.Context, caller Manager) ([]StaffResponse, error)
	Get(ctx context.Context, id string) (StaffResponse, error)
	Me(ctx context.Context, caller Caller) (StaffResponse, error)
	Register(ctx context.Context, caller Manager, req RegisterStaffRequest) (StaffResponse, error)
}
