// Package memory keeps every repository in process memory. It backs the
// service tests and enforces the same uniqueness rules as the schema.
package memory

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/leave"
	"github.com/grocerymart/backoffice-go/internal/domain/payroll"
	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/domain/tasktype"
)

type txKey struct{}

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	staff          map[string]staff.Staff
	taskTypes      map[int64]tasktype.TaskType
	templates      map[string]roster.RosterTemplate
	schedules      map[string]roster.DaySchedule
	allocations    map[string]roster.Allocation
	attendance     map[string]attendance.Record
	leaveRequests  map[string]leave.LeaveRequest
	expenses       map[string]payroll.Expense
	nextTaskTypeID int64
	nextTplAllocID int64
	nextScheduleID int64
}

func NewStore() *Store {
	return &Store{
		staff:         make(map[string]staff.Staff),
		taskTypes:     make(map[int64]tasktype.TaskType),
		templates:     make(map[string]roster.RosterTemplate),
		schedules:     make(map[string]roster.DaySchedule),
		allocations:   make(map[string]roster.Allocation),
		attendance:    make(map[string]attendance.Record),
		leaveRequests: make(map[string]leave.LeaveRequest),
		expenses:      make(map[string]payroll.Expense),
	}
}

type snapshot struct {
	staff          map[string]staff.Staff
	taskTypes      map[int64]tasktype.TaskType
	templates      map[string]roster.RosterTemplate
	schedules      map[string]roster.DaySchedule
	allocations    map[string]roster.Allocation
	attendance     map[string]attendance.Record
	leaveRequests  map[string]leave.LeaveRequest
	expenses       map[string]payroll.Expense
	nextTaskTypeID int64
	nextTplAllocID int64
	nextScheduleID int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		staff:          maps.Clone(s.staff),
		taskTypes:      maps.Clone(s.taskTypes),
		templates:      maps.Clone(s.templates),
		schedules:      maps.Clone(s.schedules),
		allocations:    maps.Clone(s.allocations),
		attendance:     maps.Clone(s.attendance),
		leaveRequests:  maps.Clone(s.leaveRequests),
		expenses:       maps.Clone(s.expenses),
		nextTaskTypeID: s.nextTaskTypeID,
		nextTplAllocID: s.nextTplAllocID,
		nextScheduleID: s.nextScheduleID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff = snap.staff
	s.taskTypes = snap.taskTypes
	s.templates = snap.templates
	s.schedules = snap.schedules
	s.allocations = snap.allocations
	s.attendance = snap.attendance
	s.leaveRequests = snap.leaveRequests
	s.expenses = snap.expenses
	s.nextTaskTypeID = snap.nextTaskTypeID
	s.nextTplAllocID = snap.nextTplAllocID
	s.nextScheduleID = snap.nextScheduleID
}

// WithinTx serializes units of work and rolls the store back when fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// maxID mirrors ORDER BY length(id) DESC, id DESC.
func maxID[V any](m map[string]V, prefix string) string {
	best := ""
	for id := range m {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if len(id) > len(best) || (len(id) == len(best) && id > best) {
			best = id
		}
	}
	return best
}

func (s *Store) staffName(id string) *string {
	m, ok := s.staff[id]
	if !ok {
		return nil
	}
	name := m.Name
	return &name
}
