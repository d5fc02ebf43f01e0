package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type employeeIDKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the caller's employee id in the request context. It expects
// jwtauth.Verifier to have run first.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			employeeID, err := jwtService.EmployeeIDFromClaims(claims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithEmployeeID(r.Context(), employeeID)))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithEmployeeID(ctx context.Context, employeeID string) context.Context {
	return context.WithValue(ctx, employeeIDKey{}, employeeID)
}

// EmployeeIDFromContext returns the authenticated caller. It is empty
// outside AuthRequired.
func EmployeeIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(employeeIDKey{}).(string)
	return id
}
