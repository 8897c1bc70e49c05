package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/idgen"
	"golang.org/x/crypto/bcrypt"
)

type StaffServiceImpl struct {
	staff.StaffRepository
}

func NewStaffService(staffRepository staff.StaffRepository) staff.StaffService {
	return &StaffServiceImpl{
		StaffRepository: staffRepository,
	}
}

// List implements staff.StaffService.
func (s *StaffServiceImpl) List(ctx context.Context, caller staff.Manager) ([]staff.StaffResponse, error) {
	members, err := s.StaffRepository.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	responses := make([]staff.StaffResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, staff.NewStaffResponse(m))
	}
	return responses, nil
}

// Get implements staff.StaffService.
func (s *StaffServiceImpl) Get(ctx context.Context, id string) (staff.StaffResponse, error) {
	member, err := s.StaffRepository.GetByID(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.NewStaffResponse(member), nil
}

// Me implements staff.StaffService.
func (s *StaffServiceImpl) Me(ctx context.Context, caller staff.Caller) (staff.StaffResponse, error) {
	return s.Get(ctx, caller.CallerID())
}

// Register implements staff.StaffService.
func (s *StaffServiceImpl) Register(ctx context.Context, caller staff.Manager, req staff.RegisterStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.StaffRepository.GetByEmail(ctx, email); err == nil {
		return staff.StaffResponse{}, staff.ErrEmailExists
	} else if !errors.Is(err, staff.ErrStaffNotFound) {
		return staff.StaffResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	maxID, err := s.StaffRepository.MaxID(ctx)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to read staff id sequence: %w", err)
	}

	managerID := caller.ID
	created, err := s.StaffRepository.Create(ctx, staff.Staff{
		ID:                 idgen.Staff.NextID(maxID),
		Name:               strings.TrimSpace(req.Name),
		Email:              email,
		PhoneNum:           req.PhoneNum,
		PasswordHash:       string(hash),
		Role:               staff.Role(req.Role),
		AuthorizationLevel: req.AuthorizationLevel,
		Salary:             req.Salary,
		ManagerID:          &managerID,
	})
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.NewStaffResponse(created), nil
}
