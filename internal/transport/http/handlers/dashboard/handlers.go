package dashboardhandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/domain/auth"
	"hrflow/internal/domain/dashboard"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type Handler struct {
	Service *dashboard.Service
}

func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/stats", h.handleStats)
		r.With(middleware.RequirePermission(auth.PermUsersManage)).Get("/job-runs", h.handleJobRuns)
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		shared.FailStore(w, r, err, "dashboard stats")
		return
	}
	api.Success(w, stats)
}

func (h *Handler) handleJobRuns(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	limit := shared.QueryLimit(v, r, 100)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	runs, err := h.Service.JobRuns(r.Context(), strings.TrimSpace(r.URL.Query().Get("jobType")), limit)
	if err != nil {
		shared.FailStore(w, r, err, "job runs")
		return
	}
	api.Success(w, runs)
}
