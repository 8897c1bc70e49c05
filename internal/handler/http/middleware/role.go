package middleware

import (
	"net/http"

	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/handler/http/response"
)

// RequireManager requires manager role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ManagerFromContext(r.Context()); !ok {
			response.HandleError(w, staff.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireStaff requires the store floor staff role
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := MemberFromContext(r.Context()); !ok {
			response.HandleError(w, staff.ErrStaffAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
