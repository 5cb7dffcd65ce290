package audit

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/auth"
	"github.com/frahmantamala/leaveflow/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI, lg *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	page, pageSize, appErr := transport.ParsePagination(r, DefaultPage, DefaultPageSize)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	result, err := h.Service.ListAudit(r.Context(), page, pageSize, user)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToListResponse(result))
}
