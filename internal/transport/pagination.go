package transport

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/core/common/validation"
)

// ParsePagination reads the page and pageSize query parameters.
func ParsePagination(r *http.Request, defaultPage, defaultPageSize int) (int, int, *internal.AppError) {
	page, err := queryInt(r, "page", defaultPage)
	if err != nil {
		return 0, 0, internal.ErrInvalidPagination.WithCause(err)
	}
	pageSize, err := queryInt(r, "pageSize", defaultPageSize)
	if err != nil {
		return 0, 0, internal.ErrInvalidPagination.WithCause(err)
	}
	if appErr := validation.ValidatePagination(page, pageSize); appErr != nil {
		return 0, 0, appErr
	}
	return page, pageSize, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
