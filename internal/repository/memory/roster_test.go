package memory

import (
	"context"
	"testing"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationRepository_InsertConflicts(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	for _, id := range []string{"S002", "S003"} {
		_, err := store.Staff().Create(ctx, staff.Staff{ID: id, Name: id, Email: id + "@grocery.test", Role: staff.RoleStaff})
		require.NoError(t, err)
	}

	repo := store.Allocations()
	day := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, roster.Allocation{ID: "ALC0000010", StaffID: "S002", TaskName: "Cashier", AssignedDate: day, Status: roster.AllocationPending})
	require.NoError(t, err)

	_, err = repo.Create(ctx, roster.Allocation{ID: "ALC0000011", StaffID: "S002", TaskName: "Restock", AssignedDate: day, Status: roster.AllocationPending})
	assert.ErrorIs(t, err, roster.ErrStaffAlreadyAllocated)

	_, err = repo.Create(ctx, roster.Allocation{ID: "ALC0000010", StaffID: "S003", TaskName: "Restock", AssignedDate: day, Status: roster.AllocationPending})
	assert.ErrorIs(t, err, roster.ErrAllocationIDTaken)

	err = repo.CreateBatch(ctx, []roster.Allocation{
		{ID: "ALC0000010", StaffID: "S003", TaskName: "Restock", AssignedDate: day.AddDate(0, 0, 1), Status: roster.AllocationPending},
	})
	assert.ErrorIs(t, err, roster.ErrAllocationIDTaken)

	all, err := repo.ListByDate(ctx, day)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
