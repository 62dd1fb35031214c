package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hrflow/internal/requestctx"
	"hrflow/internal/transport/http/api"
)

// DecodeJSON reads a single JSON object into dst. It writes the failure
// response itself and reports whether the handler may continue.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	requestID := requestctx.GetRequestID(r.Context())
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
		case errors.Is(err, io.EOF):
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body is required", requestID)
		default:
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				FailValidation(w, requestID, []ValidationIssue{{Field: typeErr.Field, Reason: "has the wrong type"}})
				return false
			}
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		}
		return false
	}
	return true
}
