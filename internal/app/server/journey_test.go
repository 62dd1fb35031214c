package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hrflow/internal/app/server"
	"hrflow/internal/platform/config"
)

func journeyConfig(t *testing.T) config.Config {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return config.Config{
		DatabaseURL:        dbURL,
		Environment:        "test",
		SessionSecret:      "test-secret",
		SessionTTL:         time.Hour,
		SessionCookieName:  "hrflow_session",
		MigrationsDir:      "../../../migrations",
		RunMigrations:      true,
		RunSeed:            true,
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		SeedAdminName:      "Test Admin",
		AllowSelfSignup:    true,
		MaxBodyBytes:       1048576,
		MaxUploadBytes:     10 * 1048576,
		RateLimitPerMinute: 1000,
		AITimeout:          time.Second,
	}
}

type journeyClient struct {
	t      *testing.T
	client *http.Client
	base   string
}

func newJourneyClient(t *testing.T, base string) *journeyClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &journeyClient{t: t, client: &http.Client{Jar: jar}, base: base}
}

func (c *journeyClient) call(method, path string, body any, want int, out any) {
	c.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			c.t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.base+path, &payload)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		var raw bytes.Buffer
		_, _ = raw.ReadFrom(resp.Body)
		c.t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, resp.StatusCode, raw.String())
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}

type idResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func TestRecruitingJourney(t *testing.T) {
	cfg := journeyConfig(t)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	admin := newJourneyClient(t, ts.URL)
	admin.call(http.MethodPost, "/api/auth/login", map[string]string{"email": cfg.SeedAdminEmail, "password": cfg.SeedAdminPassword}, http.StatusOK, nil)

	var templates []map[string]any
	admin.call(http.MethodGet, "/api/job-templates", nil, http.StatusOK, &templates)
	if len(templates) == 0 {
		t.Fatal("expected seeded job templates")
	}

	stamp := time.Now().UnixNano()
	var job idResponse
	admin.call(http.MethodPost, "/api/jobs", map[string]any{
		"title":      fmt.Sprintf("Journey Engineer %d", stamp),
		"department": "Engineering",
		"salaryMin":  60000,
		"salaryMax":  80000,
	}, http.StatusCreated, &job)
	if job.Status != "draft" {
		t.Fatalf("expected draft job, got %q", job.Status)
	}
	admin.call(http.MethodPut, fmt.Sprintf("/api/jobs/%d", job.ID), map[string]any{"status": "active"}, http.StatusOK, nil)

	var candidate idResponse
	admin.call(http.MethodPost, "/api/candidates", map[string]any{
		"firstName": "Journey",
		"lastName":  "Candidate",
		"email":     fmt.Sprintf("candidate-%d@example.com", stamp),
		"skills":    []string{"Go", "SQL"},
	}, http.StatusCreated, &candidate)

	var application struct {
		ID           int64 `json:"id"`
		AIMatchScore *int  `json:"aiMatchScore"`
	}
	admin.call(http.MethodPost, "/api/applications", map[string]any{"jobId": job.ID, "candidateId": candidate.ID}, http.StatusCreated, &application)
	if application.AIMatchScore == nil || *application.AIMatchScore != 50 {
		t.Fatalf("expected fallback match score 50, got %v", application.AIMatchScore)
	}

	var me idResponse
	admin.call(http.MethodGet, "/api/auth/me", nil, http.StatusOK, &me)

	var interview idResponse
	admin.call(http.MethodPost, "/api/interviews", map[string]any{
		"applicationId": application.ID,
		"interviewerId": me.ID,
		"scheduledAt":   time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		"type":          "video",
	}, http.StatusCreated, &interview)

	var logs []struct {
		Action   string `json:"action"`
		EntityID *int64 `json:"entityId"`
	}
	admin.call(http.MethodGet, "/api/activity-logs?entityType=application&limit=10", nil, http.StatusOK, &logs)
	found := false
	for _, entry := range logs {
		if entry.Action == "create_application" && entry.EntityID != nil && *entry.EntityID == application.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected create_application entry for %d", application.ID)
	}

	admin.call(http.MethodDelete, fmt.Sprintf("/api/candidates/%d", candidate.ID), nil, http.StatusNoContent, nil)
	admin.call(http.MethodGet, fmt.Sprintf("/api/applications/%d", application.ID), nil, http.StatusNotFound, nil)
	admin.call(http.MethodGet, fmt.Sprintf("/api/interviews/%d", interview.ID), nil, http.StatusNotFound, nil)
	admin.call(http.MethodDelete, fmt.Sprintf("/api/jobs/%d", job.ID), nil, http.StatusNoContent, nil)
}

func TestSignupSessionJourney(t *testing.T) {
	cfg := journeyConfig(t)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	email := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	user := newJourneyClient(t, ts.URL)
	user.call(http.MethodPost, "/api/auth/signup", map[string]any{
		"email": email, "password": "Journey123!", "name": "Journey User", "role": "employee",
	}, http.StatusCreated, nil)
	user.call(http.MethodGet, "/api/auth/me", nil, http.StatusOK, nil)
	user.call(http.MethodPost, "/api/jobs", map[string]any{"title": "Nope", "department": "Nope"}, http.StatusForbidden, nil)
	user.call(http.MethodPost, "/api/auth/logout", nil, http.StatusNoContent, nil)
	user.call(http.MethodGet, "/api/auth/me", nil, http.StatusUnauthorized, nil)

	stranger := newJourneyClient(t, ts.URL)
	for i := 0; i < 2; i++ {
		stranger.call(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": "wrong-password"}, http.StatusUnauthorized, nil)
	}
	stranger.call(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": "Journey123!"}, http.StatusOK, nil)

	var stats map[string]int
	stranger.call(http.MethodGet, "/api/dashboard/stats", nil, http.StatusOK, &stats)
	for _, key := range []string{"openPositions", "activeCandidates", "interviewsToday", "newHires"} {
		if _, ok := stats[key]; !ok {
			t.Fatalf("expected %s in dashboard stats", key)
		}
	}
}
