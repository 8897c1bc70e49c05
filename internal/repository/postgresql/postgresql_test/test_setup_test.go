package postgresql_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/grocerymart/backoffice-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL, applies the schema and
// empties every table. Tests are skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	_, err = db.Exec(ctx, string(schema))
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		TRUNCATE TABLE expenses, leave_requests, attendance_records, allocations,
			day_schedules, template_allocations, roster_templates, task_types, staff CASCADE
	`)
	require.NoError(t, err)

	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func createStaff(t *testing.T, db *database.DB, id, name string, role staff.Role) staff.Staff {
	t.Helper()

	created, err := postgresql.NewStaffRepository(db).Create(context.Background(), staff.Staff{
		ID:           id,
		Name:         name,
		Email:        id + "@grocery.test",
		PasswordHash: "hash",
		Role:         role,
		Salary:       decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return created
}
