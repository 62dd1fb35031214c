package recruitinghandler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/domain/activity"
	"hrflow/internal/domain/auth"
	"hrflow/internal/domain/recruiting"
	"hrflow/internal/platform/metrics"
	"hrflow/internal/requestctx"
	"hrflow/internal/testutil/memstore"
)

func newTestRouter(store *memstore.Store, user auth.User) http.Handler {
	h := NewHandler(recruiting.NewService(store, nil), nil, activity.New(store), metrics.New())
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(requestctx.WithUser(req.Context(), user)))
		})
	})
	h.RegisterRoutes(r)
	return r
}

func recruiter() auth.User {
	return auth.User{ID: 7, Email: "rita@example.com", Role: auth.RoleRecruiter, Active: true}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestScoreJobFallsBackAndAudits(t *testing.T) {
	store := memstore.New()
	router := newTestRouter(store, recruiter())
	job, err := recruiting.NewService(store, nil).CreateJob(context.Background(), recruiting.JobInput{Title: "Platform Engineer", Department: "Engineering"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	rec := doJSON(t, router, http.MethodPost, "/jobs/"+strconv.FormatInt(job.ID, 10)+"/score", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var scored recruiting.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &scored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if scored.AIScore == nil || *scored.AIScore != 50 {
		t.Fatalf("expected fallback score 50, got %v", scored.AIScore)
	}

	entries := store.ActivityEntries()
	if len(entries) != 1 || entries[0].Action != "update_job" {
		t.Fatalf("expected one update_job entry, got %+v", entries)
	}
	var meta map[string]any
	if err := json.Unmarshal(entries[0].Metadata, &meta); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}
	if meta["source"] != "fallback" || meta["aiScore"] != float64(50) {
		t.Fatalf("unexpected metadata %v", meta)
	}
	if entries[0].UserID == nil || *entries[0].UserID != 7 {
		t.Fatalf("expected acting user 7, got %v", entries[0].UserID)
	}

	if rec := doJSON(t, router, http.MethodPost, "/jobs/999/score", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected missing job 404, got %d", rec.Code)
	}
}

func TestUpdateJobChecksSalaryAgainstStoredBound(t *testing.T) {
	store := memstore.New()
	router := newTestRouter(store, recruiter())
	low, high := 60000, 80000
	job, err := recruiting.NewService(store, nil).CreateJob(context.Background(), recruiting.JobInput{
		Title: "Data Analyst", Department: "Analytics", SalaryMin: &low, SalaryMax: &high,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	path := "/jobs/" + strconv.FormatInt(job.ID, 10)

	cases := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{name: "min above stored max", body: map[string]any{"salaryMin": 90000}, field: "salaryMin"},
		{name: "max below stored min", body: map[string]any{"salaryMax": 50000}, field: "salaryMax"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPut, path, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if !bytes.Contains(rec.Body.Bytes(), []byte(`"field":"`+tc.field+`"`)) {
				t.Fatalf("expected issue on %s, got %s", tc.field, rec.Body.String())
			}
		})
	}
	if store.Calls("UpdateJob") != 0 {
		t.Fatal("expected no store writes")
	}

	rec := doJSON(t, router, http.MethodPut, path, map[string]any{"salaryMin": 75000})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected consistent update 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(t, router, http.MethodPut, "/jobs/999", map[string]any{"salaryMin": 1}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected missing job 404, got %d", rec.Code)
	}
}

func TestCreateInterviewValidation(t *testing.T) {
	store := memstore.New()
	router := newTestRouter(store, recruiter())

	base := func() map[string]any {
		return map[string]any{
			"applicationId": 1,
			"interviewerId": 7,
			"scheduledAt":   "2026-03-02T10:00:00Z",
			"type":          "video",
		}
	}
	cases := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{name: "zero duration", mutate: func(m map[string]any) { m["duration"] = 0 }, field: "duration"},
		{name: "day long duration", mutate: func(m map[string]any) { m["duration"] = 1441 }, field: "duration"},
		{name: "rating too high", mutate: func(m map[string]any) { m["rating"] = 6 }, field: "rating"},
		{name: "unknown type", mutate: func(m map[string]any) { m["type"] = "carrier-pigeon" }, field: "type"},
		{name: "missing schedule", mutate: func(m map[string]any) { delete(m, "scheduledAt") }, field: "scheduledAt"},
		{name: "bad schedule", mutate: func(m map[string]any) { m["scheduledAt"] = "next tuesday" }, field: "scheduledAt"},
		{name: "bad meeting link", mutate: func(m map[string]any) { m["meetingLink"] = "not a url" }, field: "meetingLink"},
		{name: "missing application", mutate: func(m map[string]any) { delete(m, "applicationId") }, field: "applicationId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := base()
			tc.mutate(body)
			rec := doJSON(t, router, http.MethodPost, "/interviews", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var payload struct {
				Errors []struct {
					Field string `json:"field"`
				} `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			found := false
			for _, issue := range payload.Errors {
				if issue.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected issue on %s, got %s", tc.field, rec.Body.String())
			}
		})
	}
	if store.Calls("CreateInterview") != 0 {
		t.Fatal("expected no store writes")
	}
}

func TestListCandidatesBySkills(t *testing.T) {
	store := memstore.New()
	router := newTestRouter(store, recruiter())
	svc := recruiting.NewService(store, nil)
	ctx := context.Background()
	for _, in := range []recruiting.CandidateInput{
		{FirstName: "Go", LastName: "Only", Email: "go@example.com", Skills: []string{"Go"}},
		{FirstName: "Go", LastName: "Sql", Email: "gosql@example.com", Skills: []string{"Go", "SQL", "Docker"}},
	} {
		if _, err := svc.CreateCandidate(ctx, in); err != nil {
			t.Fatalf("create candidate: %v", err)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/candidates?skills=Go,SQL", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out []recruiting.Candidate
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Email != "gosql@example.com" {
		t.Fatalf("expected only the candidate with both skills, got %+v", out)
	}

	if rec := doJSON(t, router, http.MethodGet, "/candidates?status=ghosted", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected invalid status 400, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/candidates?unknown=1", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected unknown params ignored, got %d", rec.Code)
	}
}

func TestTemplateWritesNeedTemplatePermission(t *testing.T) {
	store := memstore.New()
	body := map[string]any{"title": "Support Agent", "department": "Customer Success", "skills": []string{"Empathy"}}

	manager := newTestRouter(store, auth.User{ID: 3, Role: auth.RoleManager, Active: true})
	if rec := doJSON(t, manager, http.MethodPost, "/job-templates", body); rec.Code != http.StatusForbidden {
		t.Fatalf("expected manager 403, got %d", rec.Code)
	}
	if store.Calls("CreateJobTemplate") != 0 {
		t.Fatal("expected no store writes for forbidden request")
	}

	router := newTestRouter(store, recruiter())
	rec := doJSON(t, router, http.MethodPost, "/job-templates", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var tmpl recruiting.JobTemplate
	if err := json.Unmarshal(rec.Body.Bytes(), &tmpl); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tmpl.CreatedBy == nil || *tmpl.CreatedBy != 7 {
		t.Fatalf("expected createdBy 7, got %v", tmpl.CreatedBy)
	}

	blank := map[string]any{"title": "Support Agent", "department": "CS", "skills": []string{"Empathy", "  "}}
	if rec := doJSON(t, router, http.MethodPost, "/job-templates", blank); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected blank skill 400, got %d", rec.Code)
	}
}

func TestParseResumeRequiresFile(t *testing.T) {
	store := memstore.New()
	router := newTestRouter(store, recruiter())

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("note", "no file here"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/candidates/parse-resume", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/candidates/parse-resume", map[string]string{"resume": "inline"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected non-multipart 400, got %d", rec.Code)
	}
}
