package activityhandler

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/domain/activity"
	"hrflow/internal/domain/auth"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type Handler struct {
	Service *activity.Service
}

func NewHandler(service *activity.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/activity-logs", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermUsersManage)).Get("/export", h.handleExport)
	})
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) (activity.Filter, bool) {
	v := shared.NewValidator()
	filter := activity.Filter{
		UserID:     shared.QueryID(v, r, "userId"),
		EntityType: strings.TrimSpace(r.URL.Query().Get("entityType")),
		Limit:      shared.QueryLimit(v, r, activity.MaxLimit),
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return activity.Filter{}, false
	}
	return filter, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}
	logs, err := h.Service.List(r.Context(), filter)
	if err != nil {
		shared.FailStore(w, r, err, "activity logs")
		return
	}
	api.Success(w, logs)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}
	if filter.Limit == 0 {
		filter.Limit = activity.MaxLimit
	}
	logs, err := h.Service.List(r.Context(), filter)
	if err != nil {
		shared.FailStore(w, r, err, "activity logs")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=activity-logs.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "user_id", "action", "entity_type", "entity_id", "description", "request_id", "created_at"}); err != nil {
		slog.Warn("activity export header failed", "err", err)
	}
	for _, entry := range logs {
		row := []string{
			strconv.FormatInt(entry.ID, 10),
			optionalID(entry.UserID),
			entry.Action,
			entry.EntityType,
			optionalID(entry.EntityID),
			entry.Description,
			optionalText(entry.RequestID),
			entry.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			slog.Warn("activity export row failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("activity export flush failed", "err", err)
	}
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func optionalText(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
