package middleware

import (
	"context"
	"net/http"

	"github.com/grocerymart/backoffice-go/internal/domain/auth"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type callerKey struct{}

// AuthRequired rejects requests without a verified access token and stores the
// resolved staff.Caller in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			caller, err := callerFromClaims(claims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey{}, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func callerFromClaims(claims map[string]interface{}) (staff.Caller, error) {
	id, _ := claims["user_id"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if id == "" {
		return nil, auth.ErrInvalidToken
	}
	return staff.NewCaller(id, name, staff.Role(role))
}

// CallerFromContext returns the caller stored by AuthRequired.
func CallerFromContext(ctx context.Context) (staff.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(staff.Caller)
	return caller, ok
}

// ManagerFromContext returns the caller when it is a manager.
func ManagerFromContext(ctx context.Context) (staff.Manager, bool) {
	caller, _ := CallerFromContext(ctx)
	m, ok := caller.(staff.Manager)
	return m, ok
}

// MemberFromContext returns the caller when it is a staff member.
func MemberFromContext(ctx context.Context) (staff.Member, bool) {
	caller, _ := CallerFromContext(ctx)
	m, ok := caller.(staff.Member)
	return m, ok
}
