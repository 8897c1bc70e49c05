package staff

import (
	"context"
	"testing"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
	"github.com/grocerymart/backoffice-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var manager = staff.Manager{ID: "S001", Name: "Farid"}

func newTestStaffService(t *testing.T) (staff.StaffService, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	_, err := store.Staff().Create(context.Background(), staff.Staff{
		ID:    "S001",
		Name:  "Farid",
		Email: "farid@grocery.test",
		Role:  staff.RoleManager,
	})
	require.NoError(t, err)

	return NewStaffService(store.Staff()), store
}

func validRegistration() staff.RegisterStaffRequest {
	return staff.RegisterStaffRequest{
		Name:     "Aina",
		Email:    "Aina@Grocery.test",
		PhoneNum: "012-3456789",
		Password: "password123",
		Role:     string(staff.RoleStaff),
		Salary:   decimal.RequireFromString("10.00"),
	}
}

func TestStaffService_Register(t *testing.T) {
	svc, store := newTestStaffService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, manager, validRegistration())
	require.NoError(t, err)

	assert.Equal(t, "S002", created.ID)
	assert.Equal(t, "aina@grocery.test", created.Email)
	require.NotNil(t, created.ManagerID)
	assert.Equal(t, "S001", *created.ManagerID)

	stored, err := store.Staff().GetByID(ctx, "S002")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestStaffService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestStaffService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, manager, validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(ctx, manager, validRegistration())
	assert.ErrorIs(t, err, staff.ErrEmailExists)
}

func TestStaffService_Register_Validation(t *testing.T) {
	svc, _ := newTestStaffService(t)

	req := validRegistration()
	req.Role = "OWNER"
	req.PhoneNum = "12345"

	_, err := svc.Register(context.Background(), manager, req)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "role")
	assert.Contains(t, validationErrs.ToMap(), "phone_num")
}

func TestStaffService_Me(t *testing.T) {
	svc, _ := newTestStaffService(t)

	me, err := svc.Me(context.Background(), manager)
	require.NoError(t, err)
	assert.Equal(t, staff.RoleManager, me.Role)

	_, err = svc.Me(context.Background(), staff.Member{ID: "S404"})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}
