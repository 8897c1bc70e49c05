package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/cache"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/pkg/jwt"
	"github.com/grocerymart/backoffice-go/internal/pkg/storage"
	"github.com/grocerymart/backoffice-go/internal/repository/memory"
	allocationService "github.com/grocerymart/backoffice-go/internal/service/allocation"
	attendanceService "github.com/grocerymart/backoffice-go/internal/service/attendance"
	authService "github.com/grocerymart/backoffice-go/internal/service/auth"
	leaveService "github.com/grocerymart/backoffice-go/internal/service/leave"
	payrollService "github.com/grocerymart/backoffice-go/internal/service/payroll"
	rosterService "github.com/grocerymart/backoffice-go/internal/service/roster"
	staffService "github.com/grocerymart/backoffice-go/internal/service/staff"
	taskTypeService "github.com/grocerymart/backoffice-go/internal/service/tasktype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	router     http.Handler
	jwtService jwt.Service
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	clk := clock.Fixed(time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC))

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	for _, m := range []staff.Staff{
		{ID: "S001", Name: "Farid", Email: "farid@grocery.test", PasswordHash: string(hash), Role: staff.RoleManager, Salary: decimal.RequireFromString("20.00")},
		{ID: "S002", Name: "Aina", Email: "aina@grocery.test", PasswordHash: string(hash), Role: staff.RoleStaff, Salary: decimal.RequireFromString("10.00")},
	} {
		_, err := store.Staff().Create(ctx, m)
		require.NoError(t, err)
	}

	files, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	calendarCache := cache.NoopCalendarCache{}
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")

	h := Handlers{
		Auth:     NewAuthHandler(authService.NewAuthService(store.Staff(), jwtService)),
		Staff:    NewStaffHandler(staffService.NewStaffService(store.Staff())),
		TaskType: NewTaskTypeHandler(taskTypeService.NewTaskTypeService(store.TaskTypes())),
		Roster: NewRosterHandler(rosterService.NewRosterService(store, clk, store.Templates(), store.DaySchedules(),
			store.Allocations(), store.Staff(), store.TaskTypes(), store.Attendance(), calendarCache), clk),
		MyTask:     NewMyTaskHandler(allocationService.NewAllocationService(clk, store.Allocations(), store.Attendance()), clk),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(store, clk, store.Attendance(), store.Staff(), calendarCache)),
		Leave:      NewLeaveHandler(leaveService.NewLeaveService(store, clk, files, store.LeaveRequests(), store.Attendance(), calendarCache)),
		Payroll:    NewPayrollHandler(payrollService.NewPayrollService(store, clk, store.Expenses(), store.Staff(), store.Attendance())),
	}

	router := NewRouter(jwtService, RouterConfig{
		Env:            "test",
		LogLevel:       slog.LevelError,
		AllowedOrigins: []string{"http://localhost:3000"},
	}, h)
	return testServer{router: router, jwtService: jwtService}
}

func (s testServer) token(t *testing.T, id, name string, role staff.Role) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken(id, id+"@grocery.test", name, role)
	require.NoError(t, err)
	return token
}

func (s testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var payload map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	}
	return rr, payload
}

func errorCode(t *testing.T, payload map[string]any) string {
	t.Helper()
	detail, ok := payload["error"].(map[string]any)
	require.True(t, ok, "response has no error detail")
	code, _ := detail["code"].(string)
	return code
}

func TestRouter_Login(t *testing.T) {
	srv := newTestServer(t)

	rr, payload := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "aina@grocery.test",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	data := payload["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "STAFF", data["role"])

	rr, payload = srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "aina@grocery.test",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, payload))
}

func TestRouter_LoginTokenAuthenticates(t *testing.T) {
	srv := newTestServer(t)

	_, payload := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "farid@grocery.test",
		"password": "password123",
	})
	token := payload["data"].(map[string]any)["access_token"].(string)

	rr, payload := srv.do(t, http.MethodGet, "/api/v1/staff/me", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "S001", payload["data"].(map[string]any)["id"])
}

func TestRouter_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	rr, _ := srv.do(t, http.MethodGet, "/api/v1/staff/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr, _ = srv.do(t, http.MethodGet, "/api/v1/staff/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_RoleEnforcement(t *testing.T) {
	srv := newTestServer(t)
	managerToken := srv.token(t, "S001", "Farid", staff.RoleManager)
	staffToken := srv.token(t, "S002", "Aina", staff.RoleStaff)

	rr, payload := srv.do(t, http.MethodGet, "/api/v1/roster/calendar?year=2026&month=3", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, payload))

	rr, payload = srv.do(t, http.MethodGet, "/api/v1/roster/calendar?year=2026&month=3", managerToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "March", payload["data"].(map[string]any)["month_name"])

	rr, _ = srv.do(t, http.MethodPost, "/api/v1/attendance/check-in", managerToken, map[string]string{})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, _ = srv.do(t, http.MethodGet, "/api/v1/payroll?year=2026&month=3", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRouter_CheckInFlow(t *testing.T) {
	srv := newTestServer(t)
	staffToken := srv.token(t, "S002", "Aina", staff.RoleStaff)

	rr, payload := srv.do(t, http.MethodPost, "/api/v1/attendance/check-in", staffToken, map[string]string{})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "09:00", payload["data"].(map[string]any)["check_in"])

	rr, payload = srv.do(t, http.MethodPost, "/api/v1/attendance/check-in", staffToken, map[string]string{})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, payload))
}

func TestRouter_ValidationError(t *testing.T) {
	srv := newTestServer(t)
	managerToken := srv.token(t, "S001", "Farid", staff.RoleManager)

	rr, payload := srv.do(t, http.MethodPost, "/api/v1/task-types", managerToken, map[string]string{"name": " "})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, payload))

	rr, _ = srv.do(t, http.MethodPost, "/api/v1/task-types", managerToken, map[string]string{"name": "Cashier"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = srv.do(t, http.MethodGet, "/api/v1/staff/S999", managerToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
