package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/transport"
	"github.com/frahmantamala/leaveflow/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI, lg *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	user, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToRegisterResponse(user))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	resp, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// AuthMiddleware resolves the bearer token into a Principal on the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromOr(r.Context(), h.Logger)

		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			log.Warn("auth middleware: missing authorization token", "path", r.URL.Path)
			h.WriteAppError(w, internal.ErrMissingToken)
			return
		}

		tokenPrefix := token
		if len(token) > 10 {
			tokenPrefix = token[:10]
		}

		principal, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			log.Warn("token validation failed", "error", err, "token_prefix", tokenPrefix)
			h.HandleServiceError(w, r, err)
			return
		}

		log.Debug("auth middleware: token validated", "user_id", principal.ID, "role", principal.Role)

		ctx := ContextWithUser(r.Context(), principal)
		ctx = logger.WithOr(ctx, h.Logger, "user_id", principal.ID.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
