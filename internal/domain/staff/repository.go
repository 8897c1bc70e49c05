package staff

import (
	"context"
)

type StaffRepository interface {
	GetByID(ctx context.Context, id string) (Staff, error)
	GetByEmail(ctx context.Context, email string) (Staff, error)
	// GetByIDs returns the records found, keyed by id. Missing ids are simply absent.
	GetByIDs(ctx context.Context, ids []string) (map[string]Staff, error)
	List(ctx context.Context, role *Role) ([]Staff, error)
	Create(ctx context.Context, s Staff) (Staff, error)
	MaxID(ctx context.Context) (string, error)
}
