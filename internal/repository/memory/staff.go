package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
)

type staffRepository struct{ *Store }

func (s *Store) Staff() staff.StaffRepository { return staffRepository{s} }

func (r staffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.staff[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return m, nil
}

func (r staffRepository) GetByEmail(ctx context.Context, email string) (staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.staff {
		if strings.EqualFold(m.Email, email) {
			return m, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func (r staffRepository) GetByIDs(ctx context.Context, ids []string) (map[string]staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := make(map[string]staff.Staff, len(ids))
	for _, id := range ids {
		if m, ok := r.staff[id]; ok {
			found[id] = m
		}
	}
	return found, nil
}

func (r staffRepository) List(ctx context.Context, role *staff.Role) ([]staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []staff.Staff
	for _, m := range r.staff {
		if role == nil || m.Role == *role {
			result = append(result, m)
		}
	}
	slices.SortFunc(result, func(a, b staff.Staff) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

func (r staffRepository) Create(ctx context.Context, m staff.Staff) (staff.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.staff {
		if strings.EqualFold(existing.Email, m.Email) {
			return staff.Staff{}, staff.ErrEmailExists
		}
	}
	r.staff[m.ID] = m
	return m, nil
}

func (r staffRepository) MaxID(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maxID(r.staff, "S"), nil
}
