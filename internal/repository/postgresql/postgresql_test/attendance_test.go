package postgresql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/attendance"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_UpsertKeepsExistingID(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	createStaff(t, db, "S002", "Aina", staff.RoleStaff)

	repo := postgresql.NewAttendanceRepository(db)
	day := date(2030, time.January, 6)

	first, err := repo.UpsertStatus(ctx, attendance.Record{ID: "ATT00001", StaffID: "S002", Date: day, Status: attendance.StatusAbsent})
	require.NoError(t, err)
	assert.Equal(t, "ATT00001", first.ID)

	second, err := repo.UpsertStatus(ctx, attendance.Record{ID: "ATT00002", StaffID: "S002", Date: day, Status: attendance.StatusLeave})
	require.NoError(t, err)
	assert.Equal(t, "ATT00001", second.ID)
	assert.Equal(t, attendance.StatusLeave, second.Status)

	statuses, err := repo.StatusByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLeave, statuses.Of("S002"))
	assert.Equal(t, attendance.StatusUnknown, statuses.Of("S404"))
}

func TestAttendanceRepository_HistoryPaginates(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	createStaff(t, db, "S002", "Aina", staff.RoleStaff)

	repo := postgresql.NewAttendanceRepository(db)
	for i, day := range []int{3, 4, 5} {
		_, err := repo.Create(ctx, attendance.Record{
			ID:      fmt.Sprintf("ATT%05d", i+1),
			StaffID: "S002",
			Date:    date(2030, time.January, day),
			Status:  attendance.StatusAttend,
		})
		require.NoError(t, err)
	}

	records, total, err := repo.History(ctx, attendance.HistoryFilter{StaffID: "S002", Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, records, 2)
	assert.Equal(t, date(2030, time.January, 5), records[0].Date)
}
