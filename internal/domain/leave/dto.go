package leave

import (
	"strings"
	"time"

	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
)

const (
	MaxAttachmentSize = 2 << 20
	MyRequestsLimit   = 50
	ApprovalLimit     = 200
)

var AllowedAttachmentTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"application/pdf": ".pdf",
}

type ApplyLeaveRequest struct {
	LeaveDate string  `json:"leave_date"`
	Type      string  `json:"type"`
	Reason    *string `json:"reason"`
}

// Validate checks the request against today's date and the optional attachment.
func (r *ApplyLeaveRequest) Validate(today time.Time, attachment *Attachment) error {
	var errs validator.ValidationErrors

	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	if !validator.IsInSlice(r.Type, LeaveTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be ADVANCE or MC",
		})
	}

	leaveDate, ok := validator.IsValidDate(r.LeaveDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_date",
			Message: "leave_date must be in YYYY-MM-DD format",
		})
	} else if LeaveType(r.Type) == LeaveTypeAdvance && !leaveDate.After(today) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_date",
			Message: "advance leave must be submitted before the leave date",
		})
	}

	if LeaveType(r.Type) == LeaveTypeMC && attachment == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "attachment",
			Message: "medical leave requires an attachment (image or PDF)",
		})
	}
	if attachment != nil {
		if _, allowed := AllowedAttachmentTypes[attachment.ContentType]; !allowed || attachment.Size <= 0 || attachment.Size > MaxAttachmentSize {
			errs = append(errs, validator.ValidationError{
				Field:   "attachment",
				Message: "only PNG, JPG, JPEG, or PDF up to 2MB are allowed",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID            string        `json:"id"`
	StaffID       string        `json:"staff_id"`
	StaffName     *string       `json:"staff_name,omitempty"`
	LeaveDate     string        `json:"leave_date"`
	Type          LeaveType     `json:"type"`
	Reason        *string       `json:"reason,omitempty"`
	AttachmentURL *string       `json:"attachment_url,omitempty"`
	Status        RequestStatus `json:"status"`
	ApprovedBy    *string       `json:"approved_by,omitempty"`
	ApprovedAt    *string       `json:"approved_at,omitempty"`
	SubmittedAt   string        `json:"submitted_at"`
}

func NewLeaveRequestResponse(r LeaveRequest, attachmentURL *string) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            r.ID,
		StaffID:       r.StaffID,
		StaffName:     r.StaffName,
		LeaveDate:     r.LeaveDate.Format("2006-01-02"),
		Type:          r.Type,
		Reason:        r.Reason,
		AttachmentURL: attachmentURL,
		Status:        r.Status,
		ApprovedBy:    r.ApprovedBy,
		SubmittedAt:   r.SubmittedAt.Format("2006-01-02 15:04"),
	}
	if r.ApprovedAt != nil {
		approvedAt := r.ApprovedAt.Format("2006-01-02 15:04")
		resp.ApprovedAt = &approvedAt
	}
	return resp
}
