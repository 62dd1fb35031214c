package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"

	"hrflow/internal/domain/activity"
	"hrflow/internal/domain/auth"
	"hrflow/internal/domain/dashboard"
	"hrflow/internal/domain/onboarding"
	"hrflow/internal/domain/performance"
	"hrflow/internal/domain/recruiting"
	"hrflow/internal/platform/ai"
	"hrflow/internal/platform/config"
	"hrflow/internal/platform/metrics"
	"hrflow/internal/testutil/memstore"
)

const testCookie = "hrflow_session"

type countingModel struct {
	mu    sync.Mutex
	reply string
	calls int
}

func (m *countingModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *countingModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *countingModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type testEnv struct {
	t       *testing.T
	store   *memstore.Store
	model   *countingModel
	handler http.Handler
	pingErr error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{t: t, store: memstore.New(), model: &countingModel{reply: `{"score": 78}`}}
	cfg := config.Config{
		SessionCookieName:  testCookie,
		AllowSelfSignup:    true,
		MaxBodyBytes:       1 << 20,
		MaxUploadBytes:     10 << 20,
		RateLimitPerMinute: 600,
		MetricsEnabled:     true,
	}
	aiSvc := ai.NewWithModel(env.model, time.Second)
	env.handler = NewRouter(Deps{
		Config:      cfg,
		Auth:        auth.NewService(env.store, "test-secret", time.Hour),
		Activity:    activity.New(env.store),
		Recruiting:  recruiting.NewService(env.store, aiSvc),
		Onboarding:  onboarding.NewService(env.store),
		Performance: performance.NewService(env.store),
		Dashboard:   dashboard.NewService(env.store),
		AI:          aiSvc,
		Metrics:     metrics.New(),
		Ping:        func(context.Context) error { return env.pingErr },
	})
	return env
}

func (e *testEnv) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie && c.Value != "" {
			return c
		}
	}
	t.Fatalf("expected session cookie, headers %v", rec.Header())
	return nil
}

func (e *testEnv) signup(email, role string) (*http.Cookie, int64) {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/api/auth/signup", map[string]any{
		"email":    email,
		"password": "correct-horse",
		"name":     "Test " + role,
		"role":     role,
	}, nil)
	if rec.Code != http.StatusCreated {
		e.t.Fatalf("signup %s: expected 201, got %d: %s", email, rec.Code, rec.Body.String())
	}
	var user auth.User
	decode(e.t, rec, &user)
	return sessionCookie(e.t, rec), user.ID
}

// admin creates an admin directly in the store, since signup cannot grant it.
func (e *testEnv) admin() (*http.Cookie, int64) {
	e.t.Helper()
	hash, err := auth.HashPassword("admin-password")
	if err != nil {
		e.t.Fatalf("hash: %v", err)
	}
	user, err := e.store.CreateUser(context.Background(), auth.NewUser{
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "Admin",
		Role:         auth.RoleAdmin,
	})
	if err != nil {
		e.t.Fatalf("create admin: %v", err)
	}
	rec := e.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "admin-password"}, nil)
	if rec.Code != http.StatusOK {
		e.t.Fatalf("admin login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	return sessionCookie(e.t, rec), user.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func entriesFor(store *memstore.Store, action string) []activity.Log {
	var out []activity.Log
	for _, entry := range store.ActivityEntries() {
		if entry.Action == action {
			out = append(out, entry)
		}
	}
	return out
}

func TestHealthAndReadiness(t *testing.T) {
	env := newTestEnv(t)
	if rec := env.do(http.MethodGet, "/healthz", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/readyz", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected readyz 200, got %d", rec.Code)
	}
	env.pingErr = errors.New("connection refused")
	if rec := env.do(http.MethodGet, "/readyz", nil, nil); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected readyz 503, got %d", rec.Code)
	}
	rec := env.do(http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "requestsTotal") {
		t.Fatalf("unexpected metrics response %d %s", rec.Code, rec.Body.String())
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)
	paths := []string{"/api/jobs", "/api/candidates", "/api/dashboard/stats", "/api/activity-logs", "/api/auth/me"}
	for _, path := range paths {
		rec := env.do(http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != `{"message":"Unauthorized"}` {
			t.Fatalf("%s: unexpected body %s", path, rec.Body.String())
		}
	}

	rec := env.do(http.MethodGet, "/api/jobs", nil, &http.Cookie{Name: testCookie, Value: "forged"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected forged cookie to be rejected, got %d", rec.Code)
	}
	if env.store.Calls("ListJobs") != 0 {
		t.Fatal("expected store untouched without a session")
	}
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/nope", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("expected json content type, got %q", rec.Header().Get("Content-Type"))
	}
}

func TestSignupLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	cookie, userID := env.signup("Ada@Example.com", "recruiter")

	rec := env.do(http.MethodGet, "/api/auth/me", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected me 200, got %d", rec.Code)
	}
	var me auth.User
	decode(t, rec, &me)
	if me.ID != userID || me.Email != "ada@example.com" || me.Role != auth.RoleRecruiter {
		t.Fatalf("unexpected me %+v", me)
	}

	created := entriesFor(env.store, "create_user")
	if len(created) != 1 || created[0].EntityID == nil || *created[0].EntityID != userID {
		t.Fatalf("expected one create_user entry for %d, got %+v", userID, created)
	}

	dup := env.do(http.MethodPost, "/api/auth/signup", map[string]any{
		"email": "ada@example.com", "password": "another-pass", "name": "Ada",
	}, nil)
	if dup.Code != http.StatusConflict {
		t.Fatalf("expected duplicate signup 409, got %d", dup.Code)
	}

	for i := 0; i < 2; i++ {
		bad := env.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "wrong-password"}, nil)
		if bad.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, bad.Code)
		}
	}
	unknown := env.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ghost@example.com", "password": "wrong-password"}, nil)
	if unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected unknown email 401, got %d", unknown.Code)
	}

	login := env.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ADA@example.com", "password": "correct-horse"}, nil)
	if login.Code != http.StatusOK {
		t.Fatalf("expected login 200, got %d: %s", login.Code, login.Body.String())
	}
	fresh := sessionCookie(t, login)

	if rec := env.do(http.MethodPost, "/api/auth/logout", nil, fresh); rec.Code != http.StatusNoContent {
		t.Fatalf("expected logout 204, got %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/api/auth/me", nil, fresh); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected revoked session 401, got %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/api/auth/me", nil, cookie); rec.Code != http.StatusOK {
		t.Fatalf("expected other session to survive logout, got %d", rec.Code)
	}
}

func TestSignupCannotGrantAdmin(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/auth/signup", map[string]any{
		"email": "eve@example.com", "password": "correct-horse", "name": "Eve", "role": "admin",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.store.Calls("CreateUser") != 0 {
		t.Fatal("expected no user created")
	}
}

func TestSignupPasswordLimitCountsBytes(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/auth/signup", map[string]any{
		"email": "zoe@example.com", "password": strings.Repeat("é", 40), "name": "Zoe",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	decode(t, rec, &payload)
	if len(payload.Errors) != 1 || payload.Errors[0].Field != "password" {
		t.Fatalf("expected a password field error, got %s", rec.Body.String())
	}
	if env.store.Calls("CreateUser") != 0 {
		t.Fatal("expected no user created")
	}

	rec = env.do(http.MethodPost, "/api/auth/signup", map[string]any{
		"email": "zoe@example.com", "password": strings.Repeat("é", 36), "name": "Zoe",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 72-byte password accepted, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestJobValidationNeverReachesStore(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signup("rita@example.com", "recruiter")

	cases := []map[string]any{
		{},
		{"title": "  ", "department": "Engineering"},
		{"title": "Engineer", "department": "Engineering", "status": "archived"},
		{"title": "Engineer", "department": "Engineering", "salaryMin": 90000, "salaryMax": 50000},
		{"title": "Engineer", "department": "Engineering", "salaryMin": "lots"},
	}
	for i, body := range cases {
		rec := env.do(http.MethodPost, "/api/jobs", body, cookie)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d: %s", i, rec.Code, rec.Body.String())
		}
		var payload struct {
			Message string `json:"message"`
			Errors  []struct {
				Field string `json:"field"`
			} `json:"errors"`
		}
		decode(t, rec, &payload)
		if payload.Message == "" || len(payload.Errors) == 0 {
			t.Fatalf("case %d: expected message and field errors, got %s", i, rec.Body.String())
		}
	}
	if env.store.Calls("CreateJob") != 0 {
		t.Fatalf("expected no store writes, got %d", env.store.Calls("CreateJob"))
	}
	if len(entriesFor(env.store, "create_job")) != 0 {
		t.Fatal("expected no activity for rejected writes")
	}
}

func TestEmployeeCannotWriteJobs(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signup("emma@example.com", "employee")
	rec := env.do(http.MethodPost, "/api/jobs", map[string]any{"title": "Engineer", "department": "Engineering"}, cookie)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/api/jobs", nil, cookie); rec.Code != http.StatusOK {
		t.Fatalf("expected employee read 200, got %d", rec.Code)
	}
	if env.store.Calls("CreateJob") != 0 {
		t.Fatal("expected no store writes")
	}
}

func TestJobLifecycle(t *testing.T) {
	env := newTestEnv(t)
	cookie, userID := env.signup("rita@example.com", "recruiter")

	rec := env.do(http.MethodPost, "/api/jobs", map[string]any{
		"title":      "Backend Engineer",
		"department": "Engineering",
		"salaryMin":  70000,
		"salaryMax":  90000,
	}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var job recruiting.Job
	decode(t, rec, &job)
	if job.Status != recruiting.JobStatusDraft || job.PostedBy == nil || *job.PostedBy != userID {
		t.Fatalf("unexpected job %+v", job)
	}
	path := "/api/jobs/" + strconv.FormatInt(job.ID, 10)

	var active, drafts []recruiting.Job
	decode(t, env.do(http.MethodGet, "/api/jobs?status=active", nil, cookie), &active)
	if len(active) != 0 {
		t.Fatalf("expected no active jobs, got %d", len(active))
	}
	decode(t, env.do(http.MethodGet, "/api/jobs?status=draft", nil, cookie), &drafts)
	if len(drafts) != 1 || drafts[0].ID != job.ID {
		t.Fatalf("expected the new job in the draft list, got %+v", drafts)
	}

	rec = env.do(http.MethodPut, path, map[string]any{"status": "active"}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected update 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decode(t, env.do(http.MethodGet, "/api/jobs?status=active", nil, cookie), &active)
	if len(active) != 1 || active[0].ID != job.ID || active[0].Title != "Backend Engineer" {
		t.Fatalf("expected updated job in active list, got %+v", active)
	}
	drafts = nil
	decode(t, env.do(http.MethodGet, "/api/jobs?status=draft", nil, cookie), &drafts)
	if len(drafts) != 0 {
		t.Fatalf("expected activated job to leave the draft list, got %+v", drafts)
	}

	if rec := env.do(http.MethodGet, "/api/jobs?status=bogus", nil, cookie); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected invalid filter 400, got %d", rec.Code)
	}

	if rec := env.do(http.MethodDelete, path, nil, cookie); rec.Code != http.StatusNoContent {
		t.Fatalf("expected delete 204, got %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, path, nil, cookie); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
	if rec := env.do(http.MethodDelete, path, nil, cookie); rec.Code != http.StatusNotFound {
		t.Fatalf("expected second delete 404, got %d", rec.Code)
	}

	for _, action := range []string{"create_job", "update_job", "delete_job"} {
		entries := entriesFor(env.store, action)
		if len(entries) != 1 {
			t.Fatalf("expected one %s entry, got %d", action, len(entries))
		}
		entry := entries[0]
		if entry.EntityType != "job" || entry.EntityID == nil || *entry.EntityID != job.ID {
			t.Fatalf("%s: unexpected entity %+v", action, entry)
		}
		if entry.UserID == nil || *entry.UserID != userID {
			t.Fatalf("%s: expected acting user %d, got %v", action, userID, entry.UserID)
		}
		if entry.RequestID == nil || *entry.RequestID == "" {
			t.Fatalf("%s: expected request id", action)
		}
	}
}

func TestApplicationScoresAndAudits(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signup("rita@example.com", "recruiter")

	var job recruiting.Job
	decode(t, env.do(http.MethodPost, "/api/jobs", map[string]any{"title": "Data Analyst", "department": "Finance"}, cookie), &job)
	rec := env.do(http.MethodPost, "/api/candidates", map[string]any{
		"firstName": "Grace",
		"lastName":  "Hopper",
		"email":     "grace@example.com",
		"skills":    []string{"COBOL", "Leadership"},
	}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected candidate 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var candidate recruiting.Candidate
	decode(t, rec, &candidate)

	rec = env.do(http.MethodPost, "/api/applications", map[string]any{"jobId": job.ID, "candidateId": candidate.ID}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected application 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var app recruiting.Application
	decode(t, rec, &app)
	if app.Status != recruiting.ApplicationStatusApplied || app.AIMatchScore == nil || *app.AIMatchScore != 78 {
		t.Fatalf("unexpected application %+v", app)
	}

	entries := entriesFor(env.store, "create_application")
	if len(entries) != 1 || entries[0].Description != "Grace Hopper applied for Data Analyst" {
		t.Fatalf("unexpected application activity %+v", entries)
	}

	missing := env.do(http.MethodPost, "/api/applications", map[string]any{"jobId": 9999, "candidateId": candidate.ID}, cookie)
	if missing.Code != http.StatusBadRequest {
		t.Fatalf("expected dangling reference 400, got %d", missing.Code)
	}
	if len(entriesFor(env.store, "create_application")) != 1 {
		t.Fatal("expected failed create to leave no activity")
	}
}

func resumeUpload(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="resume"; filename="resume.bin"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestParseResumeRejectsUnsupportedUploads(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signup("rita@example.com", "recruiter")

	cases := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{name: "plain text", contentType: "text/plain", data: []byte("Grace Hopper, COBOL")},
		{name: "png", contentType: "image/png", data: []byte("\x89PNG\r\n\x1a\n")},
		{name: "pdf label on text", contentType: "application/pdf", data: []byte("definitely not a pdf")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, formType := resumeUpload(t, tc.contentType, tc.data)
			req := httptest.NewRequest(http.MethodPost, "/api/candidates/parse-resume", body)
			req.Header.Set("Content-Type", formType)
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			env.handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnsupportedMediaType {
				t.Fatalf("expected 415, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
	if env.model.Calls() != 0 {
		t.Fatalf("expected adapter untouched, got %d calls", env.model.Calls())
	}
}

func TestOnboardingCompletionByAssignee(t *testing.T) {
	env := newTestEnv(t)
	adminCookie, adminID := env.admin()
	employeeCookie, employeeID := env.signup("newbie@example.com", "employee")
	otherCookie, _ := env.signup("other@example.com", "employee")

	rec := env.do(http.MethodPost, "/api/onboarding/tasks", map[string]any{
		"employeeId": employeeID,
		"title":      "Sign handbook",
		"category":   "documentation",
		"dueDate":    "2026-11-01",
	}, adminCookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected task 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var task onboarding.Task
	decode(t, rec, &task)
	if task.AssignedBy == nil || *task.AssignedBy != adminID || task.Status != onboarding.StatusPending {
		t.Fatalf("unexpected task %+v", task)
	}
	complete := "/api/onboarding/tasks/" + strconv.FormatInt(task.ID, 10) + "/complete"

	if rec := env.do(http.MethodPost, complete, nil, otherCookie); rec.Code != http.StatusForbidden {
		t.Fatalf("expected other employee 403, got %d", rec.Code)
	}
	rec = env.do(http.MethodPost, complete, nil, employeeCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected assignee completion 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &task)
	if task.Status != onboarding.StatusCompleted || task.CompletedAt == nil {
		t.Fatalf("expected completed task, got %+v", task)
	}
	if n := len(entriesFor(env.store, "complete_onboarding_task")); n != 1 {
		t.Fatalf("expected one completion entry, got %d", n)
	}
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signup("rita@example.com", "recruiter")

	env.do(http.MethodPost, "/api/jobs", map[string]any{"title": "Open Role", "department": "Ops", "status": "active"}, cookie)
	env.do(http.MethodPost, "/api/jobs", map[string]any{"title": "Draft Role", "department": "Ops"}, cookie)
	env.do(http.MethodPost, "/api/candidates", map[string]any{"firstName": "A", "lastName": "One", "email": "a@example.com"}, cookie)
	env.do(http.MethodPost, "/api/candidates", map[string]any{"firstName": "B", "lastName": "Two", "email": "b@example.com", "status": "hired"}, cookie)
	env.do(http.MethodPost, "/api/candidates", map[string]any{"firstName": "C", "lastName": "Three", "email": "c@example.com", "status": "rejected"}, cookie)

	rec := env.do(http.MethodGet, "/api/dashboard/stats", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stats dashboard.Stats
	decode(t, rec, &stats)
	want := dashboard.Stats{OpenPositions: 1, ActiveCandidates: 1, InterviewsToday: 0, NewHires: 1}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func TestStorageFaultsAreGeneric500(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signup("rita@example.com", "recruiter")
	env.store.Fail(errors.New("pq: connection reset by peer"))

	rec := env.do(http.MethodGet, "/api/candidates", nil, cookie)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("expected driver error hidden, got %s", rec.Body.String())
	}
	rec = env.do(http.MethodGet, "/api/dashboard/stats", nil, cookie)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected dashboard 500, got %d", rec.Code)
	}
}

func TestActivityLogListing(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signup("rita@example.com", "recruiter")
	for _, title := range []string{"First", "Second", "Third"} {
		env.do(http.MethodPost, "/api/jobs", map[string]any{"title": title, "department": "Ops"}, cookie)
	}

	rec := env.do(http.MethodGet, "/api/activity-logs?entityType=job&limit=2", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var logs []activity.Log
	decode(t, rec, &logs)
	if len(logs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(logs))
	}
	if !strings.Contains(logs[0].Description, "Third") {
		t.Fatalf("expected newest first, got %q", logs[0].Description)
	}

	if rec := env.do(http.MethodGet, "/api/activity-logs?limit=0", nil, cookie); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected invalid limit 400, got %d", rec.Code)
	}
}
