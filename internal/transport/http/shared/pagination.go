package shared

import (
	"net/http"
	"strconv"
)

// QueryLimit reads the optional `limit` parameter. Zero means no limit was
// given; values above maxLimit are capped.
func QueryLimit(v *Validator, r *http.Request, maxLimit int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		v.Add("limit", "must be a positive integer")
		return 0
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
