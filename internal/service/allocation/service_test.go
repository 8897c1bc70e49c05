package allocation

import (
	"context"
	"testing"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow = time.Date(2026, time.March, 12, 10, 30, 0, 0, time.UTC)
	workDay = time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
	aina    = staff.Member{ID: "S002", Name: "Aina"}
)

func newTestAllocationService(t *testing.T) (roster.AllocationService, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	for _, m := range []staff.Staff{
		{ID: "S002", Name: "Aina", Email: "aina@grocery.test", Role: staff.RoleStaff},
		{ID: "S003", Name: "Ben", Email: "ben@grocery.test", Role: staff.RoleStaff},
		{ID: "S004", Name: "Chen", Email: "chen@grocery.test", Role: staff.RoleStaff},
	} {
		_, err := store.Staff().Create(ctx, m)
		require.NoError(t, err)
	}

	allocations := []roster.Allocation{
		{ID: "ALC0000001", StaffID: "S002", TaskName: "Cashier", AssignedDate: workDay, Status: roster.AllocationPending},
		{ID: "ALC0000002", StaffID: "S003", TaskName: "Cashier", AssignedDate: workDay, Status: roster.AllocationPending},
		{ID: "ALC0000003", StaffID: "S004", TaskName: "Restock", AssignedDate: workDay, Status: roster.AllocationPending},
		{ID: "ALC0000004", StaffID: "S002", TaskName: "Restock", AssignedDate: workDay.AddDate(0, 0, 3), Status: roster.AllocationPending},
	}
	require.NoError(t, store.Allocations().CreateBatch(ctx, allocations))

	_, err := store.Attendance().UpsertStatus(ctx, attendance.Record{
		ID: "ATT00001", StaffID: "S003", Date: workDay, Status: attendance.StatusLate,
	})
	require.NoError(t, err)

	return NewAllocationService(clock.Fixed(testNow), store.Allocations(), store.Attendance()), store
}

func TestAllocationService_MySchedule(t *testing.T) {
	svc, _ := newTestAllocationService(t)

	schedule, err := svc.MySchedule(context.Background(), aina, 2026, time.March)
	require.NoError(t, err)

	assert.Equal(t, "S002", schedule.StaffID)
	var assigned []string
	for _, d := range schedule.Days {
		if d.HasAssignment {
			assigned = append(assigned, d.Date)
			require.NotNil(t, d.TaskName)
		}
	}
	assert.Equal(t, []string{"2026-03-12", "2026-03-15"}, assigned)
}

func TestAllocationService_MyDayTask(t *testing.T) {
	svc, _ := newTestAllocationService(t)
	ctx := context.Background()

	task, err := svc.MyDayTask(ctx, aina, workDay)
	require.NoError(t, err)

	assert.Equal(t, "ALC0000001", task.AllocationID)
	assert.Equal(t, "Cashier", task.TaskName)
	require.Len(t, task.Teammates, 1)
	assert.Equal(t, "S003", task.Teammates[0].StaffID)
	assert.Equal(t, attendance.StatusLate, task.Teammates[0].AttendanceStatus)

	_, err = svc.MyDayTask(ctx, aina, workDay.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, roster.ErrAllocationNotFound)
}

func TestAllocationService_StartThenComplete(t *testing.T) {
	svc, store := newTestAllocationService(t)
	ctx := context.Background()

	started, err := svc.StartTask(ctx, aina, "ALC0000001")
	require.NoError(t, err)
	assert.Equal(t, roster.AllocationInProgress, started.Status)
	require.NotNil(t, started.StartTime)
	assert.Equal(t, "2026-03-12 10:30", *started.StartTime)

	_, err = svc.StartTask(ctx, aina, "ALC0000001")
	assert.ErrorIs(t, err, roster.ErrInvalidTransition)

	completed, err := svc.CompleteTask(ctx, aina, "ALC0000001", roster.CompleteTaskRequest{Notes: "till balanced"})
	require.NoError(t, err)
	assert.Equal(t, roster.AllocationCompleted, completed.Status)
	require.NotNil(t, completed.Notes)
	assert.Equal(t, "till balanced", *completed.Notes)

	_, err = svc.CompleteTask(ctx, aina, "ALC0000001", roster.CompleteTaskRequest{})
	assert.ErrorIs(t, err, roster.ErrAlreadyCompleted)

	stored, err := store.Allocations().GetByID(ctx, "ALC0000001")
	require.NoError(t, err)
	assert.Equal(t, roster.AllocationCompleted, stored.Status)
}

func TestAllocationService_CompleteWithoutStart(t *testing.T) {
	svc, _ := newTestAllocationService(t)

	completed, err := svc.CompleteTask(context.Background(), aina, "ALC0000004", roster.CompleteTaskRequest{Notes: "   "})
	require.NoError(t, err)

	assert.Equal(t, roster.AllocationCompleted, completed.Status)
	assert.Equal(t, completed.StartTime, completed.CompletionDate)
	assert.Nil(t, completed.Notes)
}

func TestAllocationService_OtherStaffTask(t *testing.T) {
	svc, _ := newTestAllocationService(t)

	_, err := svc.StartTask(context.Background(), aina, "ALC0000002")
	assert.ErrorIs(t, err, roster.ErrAllocationNotFound)
}
