package memory

import (
	"context"
	"slices"

	"github.com/grocerymart/backoffice-go/internal/domain/leave"
)

type leaveRequestRepository struct{ *Store }

func (s *Store) LeaveRequests() leave.LeaveRequestRepository { return leaveRequestRepository{s} }

func (r leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.StaffName = nil
	r.leaveRequests[req.ID] = req
	return req, nil
}

func (r leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.leaveRequests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	req.StaffName = r.staffName(req.StaffID)
	return req, nil
}

func (r leaveRequestRepository) list(keep func(leave.LeaveRequest) bool, cmp func(a, b leave.LeaveRequest) int, limit int) []leave.LeaveRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []leave.LeaveRequest
	for _, req := range r.leaveRequests {
		if keep(req) {
			req.StaffName = r.staffName(req.StaffID)
			result = append(result, req)
		}
	}
	slices.SortFunc(result, cmp)
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

func newestFirst(a, b leave.LeaveRequest) int {
	return b.SubmittedAt.Compare(a.SubmittedAt)
}

func (r leaveRequestRepository) ListByStaff(ctx context.Context, staffID string, limit int) ([]leave.LeaveRequest, error) {
	return r.list(func(req leave.LeaveRequest) bool { return req.StaffID == staffID }, newestFirst, limit), nil
}

func (r leaveRequestRepository) ListForApproval(ctx context.Context, limit int) ([]leave.LeaveRequest, error) {
	pendingFirst := func(a, b leave.LeaveRequest) int {
		ap, bp := a.Status == leave.StatusPending, b.Status == leave.StatusPending
		switch {
		case ap && !bp:
			return -1
		case !ap && bp:
			return 1
		}
		return newestFirst(a, b)
	}
	return r.list(func(leave.LeaveRequest) bool { return true }, pendingFirst, limit), nil
}

func (r leaveRequestRepository) Decide(ctx context.Context, req leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.leaveRequests[req.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if existing.Status != leave.StatusPending {
		return leave.ErrLeaveAlreadyProcessed
	}
	existing.Status = req.Status
	existing.ApprovedBy = req.ApprovedBy
	existing.ApprovedAt = req.ApprovedAt
	r.leaveRequests[req.ID] = existing
	return nil
}

func (r leaveRequestRepository) MaxID(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maxID(r.leaveRequests, "LR"), nil
}
