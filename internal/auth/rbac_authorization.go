package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/transport"
)

// RequireRole is the capability check applied at the boundary of role-gated operations.
func RequireRole(p *Principal, role Role) error {
	if p == nil {
		return internal.ErrMissingToken
	}
	if p.Role != role {
		return internal.ErrInsufficientRole
	}
	return nil
}

type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, role Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			ra.Logger.Warn("authorization check failed: user not found in context")
			ra.WriteAppError(w, internal.ErrMissingToken)
			return
		}

		if err := RequireRole(user, role); err != nil {
			ra.Logger.WarnContext(r.Context(), "access denied: insufficient role",
				"user_id", user.ID,
				"required_role", role,
				"user_role", user.Role)
			ra.HandleServiceError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) Middleware(role Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, role)
	}
}

func (ra *RBACAuthorization) RequireManager() func(http.Handler) http.Handler {
	return ra.Middleware(RoleManager)
}
