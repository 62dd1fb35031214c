package recruitinghandler

import (
	"fmt"
	"net/http"

	"hrflow/internal/domain/recruiting"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type interviewRequest struct {
	ApplicationID  shared.Int  `json:"applicationId"`
	InterviewerID  shared.Int  `json:"interviewerId"`
	ScheduledAt    shared.Date `json:"scheduledAt"`
	Duration       shared.Int  `json:"duration"`
	Type           *string     `json:"type"`
	Status         *string     `json:"status"`
	Location       *string     `json:"location"`
	MeetingLink    *string     `json:"meetingLink"`
	Rating         shared.Int  `json:"rating"`
	Recommendation *string     `json:"recommendation"`
	Feedback       *string     `json:"feedback"`
	Notes          *string     `json:"notes"`
}

func (p interviewRequest) validate(v *shared.Validator, create bool) {
	if create {
		v.ID("applicationId", p.ApplicationID, true)
		v.ID("interviewerId", p.InterviewerID, true)
		v.RequiredDate("scheduledAt", p.ScheduledAt)
		v.Required("type", deref(p.Type), "is required")
	} else {
		if p.ApplicationID.Set || p.ApplicationID.Invalid() {
			v.Add("applicationId", "cannot be changed")
		}
		v.ID("interviewerId", p.InterviewerID, false)
		v.Date("scheduledAt", p.ScheduledAt)
	}
	v.IntRange("duration", p.Duration, 1, 24*60)
	enum(v, "type", p.Type, recruiting.InterviewTypes, create)
	enum(v, "status", p.Status, recruiting.InterviewStatuses, create)
	v.Var("meetingLink", p.MeetingLink, "url")
	v.IntRange("rating", p.Rating, 1, 5)
	if create {
		v.Enum("recommendation", deref(p.Recommendation), recruiting.Recommendations)
	} else if p.Recommendation != nil && *p.Recommendation != "" {
		v.Enum("recommendation", *p.Recommendation, recruiting.Recommendations)
	}
}

func (h *Handler) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := recruiting.InterviewFilter{
		Date:          shared.QueryDate(v, r, "date"),
		InterviewerID: shared.QueryID(v, r, "interviewerId"),
		Status:        shared.QueryEnum(v, r, "status", recruiting.InterviewStatuses),
		ApplicationID: shared.QueryID(v, r, "applicationId"),
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	interviews, err := h.Service.ListInterviews(r.Context(), filter)
	if err != nil {
		shared.FailStore(w, r, err, "interviews")
		return
	}
	api.Success(w, interviews)
}

func (h *Handler) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	interview, err := h.Service.GetInterview(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "interview")
		return
	}
	api.Success(w, interview)
}

func (h *Handler) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var payload interviewRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	payload.validate(v, true)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	interview, err := h.Service.CreateInterview(r.Context(), recruiting.InterviewInput{
		ApplicationID:   payload.ApplicationID.Value,
		InterviewerID:   payload.InterviewerID.Value,
		ScheduledAt:     payload.ScheduledAt.Time,
		DurationMinutes: int(payload.Duration.Value),
		Type:            deref(payload.Type),
		Status:          deref(payload.Status),
		Location:        shared.OptionalText(payload.Location),
		MeetingLink:     shared.OptionalText(payload.MeetingLink),
		Notes:           shared.OptionalText(payload.Notes),
	})
	if err != nil {
		shared.FailStore(w, r, err, "interview")
		return
	}
	description := fmt.Sprintf("Scheduled %s interview for application %d", interview.Type, interview.ApplicationID)
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("create_interview", "interview", interview.ID, description))
	api.Created(w, interview)
}

func (h *Handler) handleUpdateInterview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, requestID) {
		return
	}
	var payload interviewRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.validate(v, false)
	if v.Reject(w, requestID) {
		return
	}

	interview, err := h.Service.UpdateInterview(r.Context(), id, recruiting.InterviewPatch{
		InterviewerID:   payload.InterviewerID.Ptr(),
		ScheduledAt:     payload.ScheduledAt.Ptr(),
		DurationMinutes: payload.Duration.IntPtr(),
		Type:            payload.Type,
		Status:          payload.Status,
		Location:        shared.TrimmedPtr(payload.Location),
		MeetingLink:     shared.TrimmedPtr(payload.MeetingLink),
		Rating:          payload.Rating.IntPtr(),
		Recommendation:  shared.OptionalText(payload.Recommendation),
		Feedback:        shared.TrimmedPtr(payload.Feedback),
		Notes:           shared.TrimmedPtr(payload.Notes),
	})
	if err != nil {
		shared.FailStore(w, r, err, "interview")
		return
	}
	description := fmt.Sprintf("Updated %s interview for application %d", interview.Type, interview.ApplicationID)
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("update_interview", "interview", interview.ID, description))
	api.Success(w, interview)
}

func (h *Handler) handleDeleteInterview(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	if err := h.Service.DeleteInterview(r.Context(), id); err != nil {
		shared.FailStore(w, r, err, "interview")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("delete_interview", "interview", id, fmt.Sprintf("Deleted interview %d", id)))
	api.NoContent(w)
}
