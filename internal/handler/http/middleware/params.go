package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// UUIDParams rejects the request with 400 when any of the named URL params is
// present but not a UUID. Storage would otherwise fail to encode it.
func UUIDParams(names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			invalid := map[string]string{}
			for _, name := range names {
				value := chi.URLParam(r, name)
				if value != "" && !validator.IsValidUUID(value) {
					invalid[name] = name + " must be a valid UUID"
				}
			}
			if len(invalid) > 0 {
				response.BadRequest(w, "Invalid path parameter", invalid)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
