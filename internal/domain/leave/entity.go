package leave

import (
	"time"
)

type LeaveType string

const (
	LeaveTypeAdvance LeaveType = "ADVANCE" // Planned leave, submitted before the day
	LeaveTypeMC      LeaveType = "MC"      // Medical leave, needs a supporting document
)

var LeaveTypeValues = []string{string(LeaveTypeAdvance), string(LeaveTypeMC)}

type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
)

type LeaveRequest struct {
	ID             string
	StaffID        string
	LeaveDate      time.Time
	Type           LeaveType
	Reason         *string
	AttachmentPath *string
	Status         RequestStatus
	ApprovedBy     *string
	ApprovedAt     *time.Time
	SubmittedAt    time.Time

	// DTO / Join
	StaffName *string
}

// Attachment is an uploaded supporting document.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}
