package leave

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/leave"
	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/grocerymart/backoffice-go/internal/pkg/idgen"
	"github.com/grocerymart/backoffice-go/internal/pkg/storage"
)

const attachmentDir = "leave"

type LeaveServiceImpl struct {
	tx      database.Transactor
	clock   clock.Clock
	storage storage.FileStorage
	leave.LeaveRequestRepository
	attendance attendance.AttendanceRepository
	cache      roster.CalendarCache
}

func NewLeaveService(
	tx database.Transactor,
	clk clock.Clock,
	fileStorage storage.FileStorage,
	leaveRequestRepository leave.LeaveRequestRepository,
	attendanceRepository attendance.AttendanceRepository,
	cache roster.CalendarCache,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		clock:                  clk,
		storage:                fileStorage,
		LeaveRequestRepository: leaveRequestRepository,
		attendance:             attendanceRepository,
		cache:                  cache,
	}
}

func (s *LeaveServiceImpl) toResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	var url *string
	if r.AttachmentPath != nil {
		u := s.storage.URL(*r.AttachmentPath)
		url = &u
	}
	return leave.NewLeaveRequestResponse(r, url)
}

func (s *LeaveServiceImpl) toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, s.toResponse(r))
	}
	return responses
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, caller staff.Member, req leave.ApplyLeaveRequest, attachment *leave.Attachment) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(clock.Today(s.clock), attachment); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	leaveDate, err := clock.ParseDate(req.LeaveDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var attachmentPath *string
	if attachment != nil {
		key := path.Join(attachmentDir, uuid.New().String()+leave.AllowedAttachmentTypes[attachment.ContentType])
		stored, err := s.storage.Save(ctx, key, bytes.NewReader(attachment.Content), attachment.ContentType)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to store attachment: %w", err)
		}
		attachmentPath = &stored
	}

	var created leave.LeaveRequest
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		maxID, err := s.LeaveRequestRepository.MaxID(txCtx)
		if err != nil {
			return fmt.Errorf("failed to read leave request id sequence: %w", err)
		}
		created, err = s.LeaveRequestRepository.Create(txCtx, leave.LeaveRequest{
			ID:             idgen.LeaveRequest.NextID(maxID),
			StaffID:        caller.ID,
			LeaveDate:      leaveDate,
			Type:           leave.LeaveType(req.Type),
			Reason:         req.Reason,
			AttachmentPath: attachmentPath,
			Status:         leave.StatusPending,
			SubmittedAt:    s.clock.Now(),
		})
		return err
	})
	if err != nil {
		if attachmentPath != nil {
			if delErr := s.storage.Delete(ctx, *attachmentPath); delErr != nil {
				slog.Warn("failed to remove orphaned attachment", "path", *attachmentPath, "error", delErr)
			}
		}
		return leave.LeaveRequestResponse{}, err
	}

	created.StaffName = &caller.Name
	return s.toResponse(created), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, caller staff.Member) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListByStaff(ctx, caller.ID, leave.MyRequestsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return s.toResponses(requests), nil
}

// ListForApproval implements leave.LeaveService.
func (s *LeaveServiceImpl) ListForApproval(ctx context.Context, caller staff.Manager) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListForApproval(ctx, leave.ApprovalLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return s.toResponses(requests), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, caller staff.Manager, id string) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, caller, id, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, caller staff.Manager, id string) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, caller, id, leave.StatusRejected)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, caller staff.Manager, id string, status leave.RequestStatus) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := s.clock.Now()
	request.Status = status
	request.ApprovedBy = &caller.ID
	request.ApprovedAt = &now

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.LeaveRequestRepository.Decide(txCtx, request); err != nil {
			return err
		}
		if status != leave.StatusApproved {
			return nil
		}
		return s.recordLeave(txCtx, request.StaffID, request.LeaveDate, now)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if status == leave.StatusApproved {
		if err := s.cache.Invalidate(ctx, request.LeaveDate); err != nil {
			slog.Warn("failed to invalidate calendar cache", "date", attendance.DateKey(request.LeaveDate), "error", err)
		}
	}

	slog.Info("leave request decided", "leave_request_id", request.ID, "status", status, "manager_id", caller.ID)
	return s.toResponse(request), nil
}

// recordLeave marks the day as LEAVE unless attendance already exists for it.
func (s *LeaveServiceImpl) recordLeave(ctx context.Context, staffID string, date time.Time, now time.Time) error {
	_, err := s.attendance.GetByStaffAndDate(ctx, staffID, date)
	if err == nil {
		return nil
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return fmt.Errorf("failed to get attendance: %w", err)
	}

	maxID, err := s.attendance.MaxID(ctx)
	if err != nil {
		return fmt.Errorf("failed to read attendance id sequence: %w", err)
	}
	_, err = s.attendance.UpsertStatus(ctx, attendance.Record{
		ID:        idgen.Attendance.NextID(maxID),
		StaffID:   staffID,
		Date:      date,
		Status:    attendance.StatusLeave,
		CreatedAt: now,
	})
	return err
}
