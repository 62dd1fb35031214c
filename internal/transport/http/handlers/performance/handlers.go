package performancehandler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/domain/auth"
	"hrflow/internal/domain/performance"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type Handler struct {
	Service  *performance.Service
	Activity shared.ActivityRecorder
}

func NewHandler(service *performance.Service, activity shared.ActivityRecorder) *Handler {
	return &Handler{Service: service, Activity: activity}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	write := middleware.RequirePermission(auth.PermPerformanceWrite)
	r.Route("/performance/reviews", func(r chi.Router) {
		r.Get("/", h.handleListReviews)
		r.Get("/{id}", h.handleGetReview)
		r.Get("/{id}/pdf", h.handleExportReview)
		r.With(write).Post("/", h.handleCreateReview)
		r.With(write).Put("/{id}", h.handleUpdateReview)
		r.With(write).Delete("/{id}", h.handleDeleteReview)
	})
}

type goalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type reviewRequest struct {
	EmployeeID          shared.Int     `json:"employeeId"`
	ReviewerID          shared.Int     `json:"reviewerId"`
	ReviewPeriod        *string        `json:"reviewPeriod"`
	Goals               *[]goalRequest `json:"goals"`
	Achievements        *string        `json:"achievements"`
	AreasForImprovement *string        `json:"areasForImprovement"`
	Feedback            *string        `json:"feedback"`
	Rating              shared.Int     `json:"rating"`
	Status              *string        `json:"status"`
	DueDate             shared.Date    `json:"dueDate"`
}

var goalStatuses = []string{performance.GoalStatusNotStarted, performance.GoalStatusInProgress, performance.GoalStatusCompleted}

func (p reviewRequest) validate(v *shared.Validator, create bool) {
	v.ID("employeeId", p.EmployeeID, create)
	v.ID("reviewerId", p.ReviewerID, create)
	if create {
		v.Required("reviewPeriod", deref(p.ReviewPeriod), "is required")
		v.Enum("status", deref(p.Status), performance.Statuses)
	} else {
		if p.ReviewPeriod != nil && strings.TrimSpace(*p.ReviewPeriod) == "" {
			v.Add("reviewPeriod", "must not be empty")
		}
		v.EnumPtr("status", p.Status, performance.Statuses)
	}
	v.IntRange("rating", p.Rating, performance.MinRating, performance.MaxRating)
	v.Date("dueDate", p.DueDate)
	if p.Goals != nil {
		for i, goal := range *p.Goals {
			field := "goals[" + strconv.Itoa(i) + "]"
			v.Required(field+".title", goal.Title, "is required")
			v.Enum(field+".status", goal.Status, goalStatuses)
		}
	}
}

func (p reviewRequest) goals() *[]performance.Goal {
	if p.Goals == nil {
		return nil
	}
	out := make([]performance.Goal, 0, len(*p.Goals))
	for _, goal := range *p.Goals {
		out = append(out, performance.Goal{
			Title:       strings.TrimSpace(goal.Title),
			Description: strings.TrimSpace(goal.Description),
			Status:      goal.Status,
		})
	}
	return &out
}

func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := performance.ReviewFilter{
		EmployeeID: shared.QueryID(v, r, "employeeId"),
		ReviewerID: shared.QueryID(v, r, "reviewerId"),
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	reviews, err := h.Service.ListReviews(r.Context(), filter)
	if err != nil {
		shared.FailStore(w, r, err, "performance reviews")
		return
	}
	api.Success(w, reviews)
}

func (h *Handler) handleGetReview(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	review, err := h.Service.GetReview(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "performance review")
		return
	}
	api.Success(w, review)
}

func (h *Handler) handleExportReview(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	review, doc, err := h.Service.ExportReview(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "performance review")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=performance-review-%d.pdf", review.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var payload reviewRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	payload.validate(v, true)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	in := performance.ReviewInput{
		EmployeeID:          payload.EmployeeID.Value,
		ReviewerID:          payload.ReviewerID.Value,
		ReviewPeriod:        deref(payload.ReviewPeriod),
		Achievements:        shared.OptionalText(payload.Achievements),
		AreasForImprovement: shared.OptionalText(payload.AreasForImprovement),
		Feedback:            shared.OptionalText(payload.Feedback),
		Rating:              payload.Rating.IntPtr(),
		Status:              deref(payload.Status),
		DueDate:             payload.DueDate.Ptr(),
	}
	if goals := payload.goals(); goals != nil {
		in.Goals = *goals
	}
	review, err := h.Service.CreateReview(r.Context(), in)
	if err != nil {
		shared.FailStore(w, r, err, "performance review")
		return
	}
	description := fmt.Sprintf("Created %s performance review for employee %d", review.ReviewPeriod, review.EmployeeID)
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("create_performance_review", "performance_review", review.ID, description))
	api.Created(w, review)
}

func (h *Handler) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, requestID) {
		return
	}
	var payload reviewRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.validate(v, false)
	if v.Reject(w, requestID) {
		return
	}

	review, err := h.Service.UpdateReview(r.Context(), id, performance.ReviewPatch{
		EmployeeID:          payload.EmployeeID.Ptr(),
		ReviewerID:          payload.ReviewerID.Ptr(),
		ReviewPeriod:        shared.TrimmedPtr(payload.ReviewPeriod),
		Goals:               payload.goals(),
		Achievements:        shared.TrimmedPtr(payload.Achievements),
		AreasForImprovement: shared.TrimmedPtr(payload.AreasForImprovement),
		Feedback:            shared.TrimmedPtr(payload.Feedback),
		Rating:              payload.Rating.IntPtr(),
		Status:              payload.Status,
		DueDate:             payload.DueDate.Ptr(),
	})
	if err != nil {
		shared.FailStore(w, r, err, "performance review")
		return
	}
	description := fmt.Sprintf("Updated %s performance review for employee %d", review.ReviewPeriod, review.EmployeeID)
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("update_performance_review", "performance_review", review.ID, description))
	api.Success(w, review)
}

func (h *Handler) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	if err := h.Service.DeleteReview(r.Context(), id); err != nil {
		shared.FailStore(w, r, err, "performance review")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("delete_performance_review", "performance_review", id, fmt.Sprintf("Deleted performance review %d", id)))
	api.NoContent(w)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
