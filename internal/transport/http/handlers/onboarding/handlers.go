package onboardinghandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/domain/auth"
	"hrflow/internal/domain/onboarding"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type Handler struct {
	Service  *onboarding.Service
	Activity shared.ActivityRecorder
}

func NewHandler(service *onboarding.Service, activity shared.ActivityRecorder) *Handler {
	return &Handler{Service: service, Activity: activity}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	write := middleware.RequirePermission(auth.PermOnboardingWrite)
	r.Route("/onboarding/tasks", func(r chi.Router) {
		r.Get("/", h.handleListTasks)
		r.Get("/{id}", h.handleGetTask)
		r.With(write).Post("/", h.handleCreateTask)
		r.With(write).Put("/{id}", h.handleUpdateTask)
		r.With(write).Delete("/{id}", h.handleDeleteTask)
		r.Post("/{id}/complete", h.handleCompleteTask)
	})
}

type taskRequest struct {
	EmployeeID  shared.Int  `json:"employeeId"`
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	DueDate     shared.Date `json:"dueDate"`
	Status      *string     `json:"status"`
	Priority    *string     `json:"priority"`
}

func (p taskRequest) validate(v *shared.Validator, create bool) {
	v.ID("employeeId", p.EmployeeID, create)
	v.Date("dueDate", p.DueDate)
	if create {
		v.Required("title", deref(p.Title), "is required")
		v.Required("category", deref(p.Category), "is required")
		v.Enum("category", deref(p.Category), onboarding.Categories)
		v.Enum("status", deref(p.Status), onboarding.Statuses)
		v.Enum("priority", deref(p.Priority), onboarding.Priorities)
		return
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		v.Add("title", "must not be empty")
	}
	v.EnumPtr("category", p.Category, onboarding.Categories)
	v.EnumPtr("status", p.Status, onboarding.Statuses)
	v.EnumPtr("priority", p.Priority, onboarding.Priorities)
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := onboarding.TaskFilter{
		EmployeeID: shared.QueryID(v, r, "employeeId"),
		Status:     shared.QueryEnum(v, r, "status", onboarding.Statuses),
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	tasks, err := h.Service.ListTasks(r.Context(), filter)
	if err != nil {
		shared.FailStore(w, r, err, "onboarding tasks")
		return
	}
	api.Success(w, tasks)
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	task, err := h.Service.GetTask(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "onboarding task")
		return
	}
	api.Success(w, task)
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var payload taskRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	payload.validate(v, true)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	in := onboarding.TaskInput{
		EmployeeID:  payload.EmployeeID.Value,
		Title:       deref(payload.Title),
		Description: shared.OptionalText(payload.Description),
		Category:    deref(payload.Category),
		DueDate:     payload.DueDate.Ptr(),
		Status:      deref(payload.Status),
		Priority:    deref(payload.Priority),
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		in.AssignedBy = &user.ID
	}
	task, err := h.Service.CreateTask(r.Context(), in)
	if err != nil {
		shared.FailStore(w, r, err, "onboarding task")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("create_onboarding_task", "onboarding_task", task.ID, "Created onboarding task "+task.Title))
	api.Created(w, task)
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, requestID) {
		return
	}
	var payload taskRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.validate(v, false)
	if v.Reject(w, requestID) {
		return
	}

	task, err := h.Service.UpdateTask(r.Context(), id, onboarding.TaskPatch{
		EmployeeID:  payload.EmployeeID.Ptr(),
		Title:       shared.TrimmedPtr(payload.Title),
		Description: shared.TrimmedPtr(payload.Description),
		Category:    payload.Category,
		DueDate:     payload.DueDate.Ptr(),
		Status:      payload.Status,
		Priority:    payload.Priority,
	})
	if err != nil {
		shared.FailStore(w, r, err, "onboarding task")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("update_onboarding_task", "onboarding_task", task.ID, "Updated onboarding task "+task.Title))
	api.Success(w, task)
}

// handleCompleteTask is open to the assigned employee as well as to users
// holding onboarding.write.
func (h *Handler) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Unauthorized(w)
		return
	}
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, requestID) {
		return
	}
	if !auth.HasPermission(user.Role, auth.PermOnboardingWrite) {
		current, err := h.Service.GetTask(r.Context(), id)
		if err != nil {
			shared.FailStore(w, r, err, "onboarding task")
			return
		}
		if current.EmployeeID != user.ID {
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestID)
			return
		}
	}

	task, err := h.Service.CompleteTask(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "onboarding task")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("complete_onboarding_task", "onboarding_task", task.ID, "Completed onboarding task "+task.Title))
	api.Success(w, task)
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	task, err := h.Service.GetTask(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "onboarding task")
		return
	}
	if err := h.Service.DeleteTask(r.Context(), id); err != nil {
		shared.FailStore(w, r, err, "onboarding task")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("delete_onboarding_task", "onboarding_task", id, "Deleted onboarding task "+task.Title))
	api.NoContent(w)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
