package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/auth"
	"github.com/grocerymart/backoffice-go/internal/domain/leave"
	"github.com/grocerymart/backoffice-go/internal/domain/payroll"
	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/domain/tasktype"
	"github.com/grocerymart/backoffice-go/internal/pkg/storage"
	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, staff.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, staff.ErrManagerAccessRequired),
		errors.Is(err, staff.ErrStaffAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, staff.ErrUnknownRole):
		Forbidden(w, "Unknown role")

	// Task catalog errors
	case errors.Is(err, tasktype.ErrTaskTypeNotFound):
		NotFound(w, "Task type not found")
	case errors.Is(err, tasktype.ErrTaskTypeNameExists):
		Conflict(w, err.Error())

	// Roster domain errors
	case errors.Is(err, roster.ErrTemplateNotFound),
		errors.Is(err, roster.ErrScheduleNotFound),
		errors.Is(err, roster.ErrAllocationNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, roster.ErrTemplateNameExists),
		errors.Is(err, roster.ErrTemplateInUse),
		errors.Is(err, roster.ErrDateAlreadyScheduled),
		errors.Is(err, roster.ErrStaffAlreadyAllocated),
		errors.Is(err, roster.ErrAllocationIDTaken):
		Conflict(w, err.Error())
	case errors.Is(err, roster.ErrPastDate),
		errors.Is(err, roster.ErrInvalidTransition),
		errors.Is(err, roster.ErrAlreadyCompleted):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrStatusLockedByCheckIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrCheckInTooEarly),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrPayRunConflict):
		Conflict(w, err.Error())

	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, "Invalid file path", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
