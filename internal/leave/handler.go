package leave

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/auth"
	"github.com/frahmantamala/leaveflow/internal/transport"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
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

func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto CreateLeaveDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	req, err := h.Service.CreateLeave(r.Context(), dto, user)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(req))
}

func (h *Handler) GetMyLeaves(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	items, err := h.Service.ListOwn(r.Context(), user)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponses(items))
}

// GetAllLeaves lists every request for managers, optionally filtered by status.
func (h *Handler) GetAllLeaves(w http.ResponseWriter, r *http.Request) {
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

	query := ListQuery{Page: page, PageSize: pageSize}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := ParseStatus(raw)
		if !ok {
			h.WriteAppError(w, internal.ErrInvalidStatusFilter)
			return
		}
		query.Status = &status
	}

	result, err := h.Service.ListAll(r.Context(), query, user)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToListResponse(result))
}

func (h *Handler) ReviewLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto ReviewLeaveDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	// the decision is validated before the request is looked up
	if _, err := ParseDecision(dto.Decision); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// an unparseable id can never match a stored request
		h.WriteAppError(w, internal.ErrLeaveNotFound)
		return
	}

	updated, err := h.Service.Review(r.Context(), id, dto, user)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(updated))
}
