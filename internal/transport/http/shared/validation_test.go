package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidatorIssuesSortedAndDeduplicated(t *testing.T) {
	v := NewValidator()
	v.Required("title", " ", "is required")
	v.Required("title", "", "is required")
	v.Enum("status", "archived", []string{"draft", "active"})
	v.Enum("status", "", []string{"draft"})

	issues := v.Issues()
	if len(issues) != 2 {
		t.Fatalf("expected two issues, got %+v", issues)
	}
	if issues[0].Field != "status" || issues[1].Field != "title" {
		t.Fatalf("expected sorted issues, got %+v", issues)
	}
	if !strings.Contains(issues[0].Reason, "draft, active") {
		t.Fatalf("unexpected enum reason %q", issues[0].Reason)
	}
}

func TestValidatorRejectWritesFieldErrors(t *testing.T) {
	v := NewValidator()
	v.Add("email", "must be a valid email address")
	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected reject")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Message string            `json:"message"`
		Errors  []ValidationIssue `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0].Field != "email" {
		t.Fatalf("unexpected errors %+v", body.Errors)
	}

	if NewValidator().Reject(httptest.NewRecorder(), "") {
		t.Fatal("empty validator must not reject")
	}
}

type schemaPayload struct {
	Email  string   `json:"email" validate:"required,email"`
	Name   string   `json:"name" validate:"required,max=5"`
	Role   *string  `json:"role" validate:"omitempty,oneof=admin employee"`
	Skills []string `json:"skills" validate:"dive,required"`
}

func TestStructValidationUsesJSONNames(t *testing.T) {
	role := "owner"
	v := NewValidator()
	v.Struct(schemaPayload{Email: "nope", Name: "Alexander", Role: &role, Skills: []string{"go", ""}})

	got := map[string]string{}
	for _, issue := range v.Issues() {
		got[issue.Field] = issue.Reason
	}
	want := map[string]string{
		"email":     "must be a valid email address",
		"name":      "must be at most 5 characters",
		"role":      "must be one of: admin, employee",
		"skills[1]": "is required",
	}
	for field, reason := range want {
		if got[field] != reason {
			t.Fatalf("field %s: expected %q, got %q (all: %v)", field, reason, got[field], got)
		}
	}

	ok := NewValidator()
	ok.Struct(schemaPayload{Email: "a@b.co", Name: "Ana"})
	if ok.HasIssues() {
		t.Fatalf("unexpected issues %+v", ok.Issues())
	}
}

func TestIntAndDateValidation(t *testing.T) {
	var payload struct {
		Salary   Int  `json:"salary"`
		Rating   Int  `json:"rating"`
		Missing  Int  `json:"missing"`
		Due      Date `json:"due"`
		Deadline Date `json:"deadline"`
	}
	if err := json.Unmarshal([]byte(`{"salary":"abc","rating":"9","due":"31/02/2026","deadline":""}`), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	v := NewValidator()
	v.Int("salary", payload.Salary)
	v.IntRange("rating", payload.Rating, 1, 5)
	v.RequiredInt("missing", payload.Missing)
	v.Date("due", payload.Due)
	v.Date("deadline", payload.Deadline)

	fields := map[string]bool{}
	for _, issue := range v.Issues() {
		fields[issue.Field] = true
	}
	for _, field := range []string{"salary", "rating", "missing", "due"} {
		if !fields[field] {
			t.Fatalf("expected issue for %s, got %+v", field, v.Issues())
		}
	}
	if fields["deadline"] {
		t.Fatal("empty date strings are absent, not invalid")
	}
}
