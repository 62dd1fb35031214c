package recruitinghandler

import (
	"fmt"
	"net/http"

	"hrflow/internal/domain/recruiting"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type applicationRequest struct {
	JobID        shared.Int `json:"jobId"`
	CandidateID  shared.Int `json:"candidateId"`
	Status       *string    `json:"status"`
	CoverLetter  *string    `json:"coverLetter"`
	AIMatchScore shared.Int `json:"aiMatchScore"`
	Notes        *string    `json:"notes"`
}

func (p applicationRequest) validate(v *shared.Validator, create bool) {
	if create {
		v.ID("jobId", p.JobID, true)
		v.ID("candidateId", p.CandidateID, true)
	} else {
		if p.JobID.Set || p.JobID.Invalid() {
			v.Add("jobId", "cannot be changed")
		}
		if p.CandidateID.Set || p.CandidateID.Invalid() {
			v.Add("candidateId", "cannot be changed")
		}
	}
	enum(v, "status", p.Status, recruiting.ApplicationStatuses, create)
	v.IntRange("aiMatchScore", p.AIMatchScore, 0, 100)
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := recruiting.ApplicationFilter{
		JobID:       shared.QueryID(v, r, "jobId"),
		CandidateID: shared.QueryID(v, r, "candidateId"),
		Status:      shared.QueryEnum(v, r, "status", recruiting.ApplicationStatuses),
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	apps, err := h.Service.ListApplications(r.Context(), filter)
	if err != nil {
		shared.FailStore(w, r, err, "applications")
		return
	}
	api.Success(w, apps)
}

func (h *Handler) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	app, err := h.Service.GetApplication(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "application")
		return
	}
	api.Success(w, app)
}

func (h *Handler) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var payload applicationRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	payload.validate(v, true)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	app, job, candidate, err := h.Service.CreateApplication(r.Context(), recruiting.ApplicationInput{
		JobID:        payload.JobID.Value,
		CandidateID:  payload.CandidateID.Value,
		Status:       deref(payload.Status),
		CoverLetter:  shared.OptionalText(payload.CoverLetter),
		AIMatchScore: payload.AIMatchScore.IntPtr(),
		Notes:        shared.OptionalText(payload.Notes),
	})
	if err != nil {
		shared.FailStore(w, r, err, "application")
		return
	}
	description := fmt.Sprintf("%s applied for %s", candidate.FullName(), job.Title)
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("create_application", "application", app.ID, description))
	api.Created(w, app)
}

func (h *Handler) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, requestID) {
		return
	}
	var payload applicationRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.validate(v, false)
	if v.Reject(w, requestID) {
		return
	}

	app, err := h.Service.UpdateApplication(r.Context(), id, recruiting.ApplicationPatch{
		Status:       payload.Status,
		CoverLetter:  shared.TrimmedPtr(payload.CoverLetter),
		AIMatchScore: payload.AIMatchScore.IntPtr(),
		Notes:        shared.TrimmedPtr(payload.Notes),
	})
	if err != nil {
		shared.FailStore(w, r, err, "application")
		return
	}
	description := fmt.Sprintf("Updated application %d (%s)", app.ID, app.Status)
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("update_application", "application", app.ID, description))
	api.Success(w, app)
}

func (h *Handler) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	if err := h.Service.DeleteApplication(r.Context(), id); err != nil {
		shared.FailStore(w, r, err, "application")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("delete_application", "application", id, fmt.Sprintf("Deleted application %d", id)))
	api.NoContent(w)
}
