package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/handler/http/middleware"
	"github.com/grocerymart/backoffice-go/internal/handler/http/response"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// decodeJSON reads the request body into dst, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

func managerOf(w http.ResponseWriter, r *http.Request) (staff.Manager, bool) {
	m, ok := middleware.ManagerFromContext(r.Context())
	if !ok {
		response.HandleError(w, staff.ErrManagerAccessRequired)
	}
	return m, ok
}

func memberOf(w http.ResponseWriter, r *http.Request) (staff.Member, bool) {
	m, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		response.HandleError(w, staff.ErrStaffAccessRequired)
	}
	return m, ok
}

// dateParam parses the {date} URL parameter as YYYY-MM-DD.
func dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if !ok {
		response.HandleError(w, validator.Single("date", "date must be in YYYY-MM-DD format"))
		return time.Time{}, false
	}
	return clock.DateOf(date), true
}

// intQuery reads an optional integer query parameter; a missing value yields 0.
func intQuery(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validator.Single(key, key+" must be a number")
	}
	return n, nil
}

// monthQuery reads year and month query parameters, defaulting to the current month.
func monthQuery(w http.ResponseWriter, r *http.Request, clk clock.Clock) (int, time.Month, bool) {
	year, err := intQuery(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return 0, 0, false
	}
	month, err := intQuery(r, "month")
	if err != nil {
		response.HandleError(w, err)
		return 0, 0, false
	}

	now := clk.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, time.Month(month), true
}
