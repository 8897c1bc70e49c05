package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRepository_CreateAndGet(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	createStaff(t, db, "S001", "Manager", staff.RoleManager)
	createStaff(t, db, "S002", "Aina", staff.RoleStaff)
	createStaff(t, db, "S003", "Badrul", staff.RoleStaff)

	repo := postgresql.NewTemplateRepository(db)
	_, err := repo.Create(ctx, roster.RosterTemplate{
		ID:        "RST00001",
		Name:      "Weekday",
		ManagerID: "S001",
		CreatedAt: time.Now().UTC(),
		Allocations: []roster.TemplateAllocation{
			{StaffID: "S003", TaskName: "Cashier", SortOrder: 0},
			{StaffID: "S002", TaskName: "Restock", SortOrder: 1},
		},
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "RST00001")
	require.NoError(t, err)
	require.Len(t, got.Allocations, 2)
	assert.Equal(t, "S003", got.Allocations[0].StaffID)
	require.NotNil(t, got.Allocations[1].StaffName)
	assert.Equal(t, "Aina", *got.Allocations[1].StaffName)

	exists, err := repo.ExistsByName(ctx, "WEEKDAY", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "weekday", "RST00001")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTemplateRepository_DeleteInUse(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	createStaff(t, db, "S001", "Manager", staff.RoleManager)

	templates := postgresql.NewTemplateRepository(db)
	_, err := templates.Create(ctx, roster.RosterTemplate{ID: "RST00001", Name: "Weekday", ManagerID: "S001", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	_, err = postgresql.NewDayScheduleRepository(db).Create(ctx, roster.DaySchedule{
		ScheduleDate: date(2030, time.January, 6),
		TemplateID:   "RST00001",
		AppliedBy:    "S001",
		AppliedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, templates.Delete(ctx, "RST00001"), roster.ErrTemplateInUse)
	assert.ErrorIs(t, templates.Delete(ctx, "RST09999"), roster.ErrTemplateNotFound)
}

func TestAllocationRepository_OneAllocationPerStaffDay(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	createStaff(t, db, "S002", "Aina", staff.RoleStaff)
	createStaff(t, db, "S003", "Badrul", staff.RoleStaff)

	repo := postgresql.NewAllocationRepository(db)
	day := date(2030, time.January, 6)
	err := repo.CreateBatch(ctx, []roster.Allocation{
		{ID: "ALC0000010", StaffID: "S002", TaskName: "Cashier", AssignedDate: day, Status: roster.AllocationPending},
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, roster.Allocation{ID: "ALC0000011", StaffID: "S002", TaskName: "Restock", AssignedDate: day, Status: roster.AllocationPending})
	assert.ErrorIs(t, err, roster.ErrStaffAlreadyAllocated)

	_, err = repo.Create(ctx, roster.Allocation{ID: "ALC0000010", StaffID: "S003", TaskName: "Restock", AssignedDate: day, Status: roster.AllocationPending})
	assert.ErrorIs(t, err, roster.ErrAllocationIDTaken)
	assert.NotErrorIs(t, err, roster.ErrStaffAlreadyAllocated)

	got, err := repo.GetByStaffAndDate(ctx, "S002", day)
	require.NoError(t, err)
	assert.Equal(t, "Cashier", got.TaskName)
	assert.Equal(t, day, got.AssignedDate)

	id, err := repo.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ALC0000010", id)
}

func TestDayScheduleRepository_FlagsRequireSchedule(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewDayScheduleRepository(db)

	err := repo.SetUnavailable(context.Background(), date(2030, time.January, 6), true)
	assert.ErrorIs(t, err, roster.ErrScheduleNotFound)
}
