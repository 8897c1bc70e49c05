package attendance

import (
	"strings"
	"time"

	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
)

// CheckRequest carries optional date/time overrides; both default to the store clock.
type CheckRequest struct {
	Date *string `json:"date"`
	Time *string `json:"time"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil && *r.Date != "" {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.Time != nil && *r.Time != "" && !validator.IsValidTime(*r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:mm format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkStatusRequest struct {
	StaffID string `json:"staff_id"`
	Date    string `json:"date"`
	Status  string `json:"status"`
}

func (r *MarkStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	if !validator.IsInSlice(r.Status, StatusValues) || r.Status == string(StatusAttend) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: ABSENT, LATE, LEAVE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	StaffID  string
	Status   string
	Date     *time.Time
	Page     int
	PageSize int
}

const DefaultPageSize = 20

// Normalize applies the history defaults: page 1, 20 rows, ALL meaning no status filter.
func (f *HistoryFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = DefaultPageSize
	}
	f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
	if f.Status == "ALL" {
		f.Status = ""
	}
}

type AttendanceResponse struct {
	ID       string  `json:"id"`
	StaffID  string  `json:"staff_id"`
	Date     string  `json:"date"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Status   Status  `json:"status"`
}

type CheckOutResponse struct {
	AttendanceResponse
	PreviousCheckOut *string `json:"previous_check_out,omitempty"`
}

type HistoryResponse struct {
	Records    []AttendanceResponse `json:"records"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04")
	return &s
}

func NewAttendanceResponse(r Record) AttendanceResponse {
	return AttendanceResponse{
		ID:       r.ID,
		StaffID:  r.StaffID,
		Date:     DateKey(r.Date),
		CheckIn:  formatClock(r.CheckIn),
		CheckOut: formatClock(r.CheckOut),
		Status:   r.Status,
	}
}
