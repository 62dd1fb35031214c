package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"hrflow/internal/platform/db"
	"hrflow/internal/requestctx"
	"hrflow/internal/transport/http/api"
)

// FailStore maps a store error onto the response. Unknown errors are logged
// and surface as a generic 500.
func FailStore(w http.ResponseWriter, r *http.Request, err error, entity string) {
	requestID := requestctx.GetRequestID(r.Context())
	switch {
	case errors.Is(err, db.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", entity+" not found", requestID)
	case errors.Is(err, db.ErrDuplicate):
		api.Fail(w, http.StatusConflict, "conflict", entity+" already exists", requestID)
	case errors.Is(err, db.ErrInvalidReference):
		api.Fail(w, http.StatusBadRequest, "invalid_reference", "referenced record does not exist", requestID)
	case errors.Is(err, db.ErrConstraint):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", entity+" values are inconsistent", requestID)
	default:
		slog.Error("storage operation failed",
			"entity", entity,
			"method", r.Method,
			"path", r.URL.Path,
			"requestId", requestID,
			"err", err,
		)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
