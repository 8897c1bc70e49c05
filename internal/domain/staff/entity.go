package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleManager Role = "MANAGER" // Runs rosters, payroll and approvals
	RoleStaff   Role = "STAFF"   // Store floor staff
)

var RoleValues = []string{string(RoleManager), string(RoleStaff)}

type Staff struct {
	ID                 string
	Name               string
	Email              string
	PhoneNum           string
	PasswordHash       string
	Role               Role
	AuthorizationLevel *string
	Salary             decimal.Decimal
	ManagerID          *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsManager checks if the record belongs to a manager
func (s *Staff) IsManager() bool {
	return s.Role == RoleManager
}

// Caller is the resolved identity behind a request: either a Manager or a Member.
type Caller interface {
	CallerID() string
	CallerName() string
	isCaller()
}

// Manager is a caller holding the manager role.
type Manager struct {
	ID   string
	Name string
}

func (m Manager) CallerID() string   { return m.ID }
func (m Manager) CallerName() string { return m.Name }
func (Manager) isCaller()            {}

// Member is a staff caller acting on their own allocations and attendance.
type Member struct {
	ID   string
	Name string
}

func (m Member) CallerID() string   { return m.ID }
func (m Member) CallerName() string { return m.Name }
func (Member) isCaller()            {}

// NewCaller narrows a role claim into the matching variant.
func NewCaller(id, name string, role Role) (Caller, error) {
	switch role {
	case RoleManager:
		return Manager{ID: id, Name: name}, nil
	case RoleStaff:
		return Member{ID: id, Name: name}, nil
	default:
		return nil, ErrUnknownRole
	}
}
