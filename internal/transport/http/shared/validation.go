package shared

import (
	"net/http"
	"slices"
	"sort"
	"strings"
	"time"

	"hrflow/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	for _, issue := range v.issues {
		if issue.Field == field && issue.Reason == reason {
			return
		}
	}
	v.issues = append(v.issues, ValidationIssue{
		Field:  field,
		Reason: reason,
	})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

// Enum checks value against allowed. Empty values are left to Required.
func (v *Validator) Enum(field, value string, allowed []string) {
	if value == "" || slices.Contains(allowed, value) {
		return
	}
	v.Add(field, "must be one of: "+strings.Join(allowed, ", "))
}

func (v *Validator) EnumPtr(field string, value *string, allowed []string) {
	if value == nil {
		return
	}
	if *value == "" {
		v.Add(field, "must not be empty")
		return
	}
	v.Enum(field, *value, allowed)
}

func (v *Validator) Int(field string, n Int) {
	if n.Invalid() {
		v.Add(field, "must be a whole number")
	}
}

func (v *Validator) RequiredInt(field string, n Int) {
	if n.Invalid() {
		v.Add(field, "must be a whole number")
		return
	}
	if !n.Set {
		v.Add(field, "is required")
	}
}

func (v *Validator) IntRange(field string, n Int, min, max int64) {
	v.Int(field, n)
	if n.Set && (n.Value < min || n.Value > max) {
		v.Add(field, "must be between "+itoa(min)+" and "+itoa(max))
	}
}

func (v *Validator) ID(field string, n Int, required bool) {
	if required {
		v.RequiredInt(field, n)
	} else {
		v.Int(field, n)
	}
	if n.Set && n.Value <= 0 {
		v.Add(field, "must be a positive id")
	}
}

func (v *Validator) Date(field string, d Date) {
	if d.Invalid() {
		v.Add(field, "must be a valid date in YYYY-MM-DD or RFC3339 format")
	}
}

func (v *Validator) RequiredDate(field string, d Date) {
	v.Date(field, d)
	if !d.Invalid() && !d.Set {
		v.Add(field, "is required")
	}
}

func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		issues,
		requestID,
	)
}
