package shared

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// QueryID reads an optional positive integer filter. Zero means absent.
func QueryID(v *Validator, r *http.Request, name string) int64 {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		v.Add(name, "must be a positive integer")
		return 0
	}
	return id
}

func QueryEnum(v *Validator, r *http.Request, name string, allowed []string) string {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	v.Enum(name, value, allowed)
	return value
}

func QueryBool(v *Validator, r *http.Request, name string) *bool {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		v.Add(name, "must be true or false")
		return nil
	}
	return &parsed
}

func QueryDate(v *Validator, r *http.Request, name string) *time.Time {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		v.Add(name, "must be a valid date in YYYY-MM-DD format")
		return nil
	}
	return &parsed
}

// QueryList accepts repeated parameters and comma separated values.
func QueryList(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// PathID parses a positive integer URL parameter.
func PathID(v *Validator, r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		v.Add(name, "must be a positive integer")
		return 0
	}
	return id
}
