package recruitinghandler

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"hrflow/internal/domain/recruiting"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type jobRequest struct {
	Title               *string     `json:"title"`
	Description         *string     `json:"description"`
	Requirements        *string     `json:"requirements"`
	Responsibilities    *string     `json:"responsibilities"`
	Department          *string     `json:"department"`
	Location            *string     `json:"location"`
	EmploymentType      *string     `json:"employmentType"`
	WorkLocation        *string     `json:"workLocation"`
	ExperienceLevel     *string     `json:"experienceLevel"`
	SalaryMin           shared.Int  `json:"salaryMin"`
	SalaryMax           shared.Int  `json:"salaryMax"`
	Status              *string     `json:"status"`
	ApplicationDeadline shared.Date `json:"applicationDeadline"`
}

func (p jobRequest) validate(v *shared.Validator, create bool) {
	text(v, "title", p.Title, true, create)
	text(v, "department", p.Department, true, create)
	enum(v, "employmentType", p.EmploymentType, recruiting.EmploymentTypes, create)
	enum(v, "workLocation", p.WorkLocation, recruiting.WorkLocations, create)
	enum(v, "experienceLevel", p.ExperienceLevel, recruiting.ExperienceLevels, create)
	enum(v, "status", p.Status, recruiting.JobStatuses, create)
	v.IntRange("salaryMin", p.SalaryMin, 0, math.MaxInt32)
	v.IntRange("salaryMax", p.SalaryMax, 0, math.MaxInt32)
	if p.SalaryMin.Set && p.SalaryMax.Set && p.SalaryMax.Value < p.SalaryMin.Value {
		v.Add("salaryMax", "must be greater than or equal to salaryMin")
	}
	v.Date("applicationDeadline", p.ApplicationDeadline)
}

func (h *Handler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := recruiting.JobFilter{
		Status:     shared.QueryEnum(v, r, "status", recruiting.JobStatuses),
		Department: strings.TrimSpace(r.URL.Query().Get("department")),
		Limit:      shared.QueryLimit(v, r, maxListLimit),
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	jobs, err := h.Service.ListJobs(r.Context(), filter)
	if err != nil {
		shared.FailStore(w, r, err, "jobs")
		return
	}
	api.Success(w, jobs)
}

func (h *Handler) handleGetJob(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	job, err := h.Service.GetJob(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "job")
		return
	}
	api.Success(w, job)
}

func (h *Handler) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var payload jobRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	payload.validate(v, true)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	in := recruiting.JobInput{
		Title:               deref(payload.Title),
		Description:         deref(payload.Description),
		Requirements:        deref(payload.Requirements),
		Responsibilities:    deref(payload.Responsibilities),
		Department:          deref(payload.Department),
		Location:            deref(payload.Location),
		EmploymentType:      deref(payload.EmploymentType),
		WorkLocation:        deref(payload.WorkLocation),
		ExperienceLevel:     deref(payload.ExperienceLevel),
		SalaryMin:           payload.SalaryMin.IntPtr(),
		SalaryMax:           payload.SalaryMax.IntPtr(),
		Status:              deref(payload.Status),
		ApplicationDeadline: payload.ApplicationDeadline.Ptr(),
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		in.PostedBy = &user.ID
	}
	job, err := h.Service.CreateJob(r.Context(), in)
	if err != nil {
		shared.FailStore(w, r, err, "job")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("create_job", "job", job.ID, "Created job "+job.Title))
	api.Created(w, job)
}

func (h *Handler) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, requestID) {
		return
	}
	var payload jobRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.validate(v, false)
	if v.Reject(w, requestID) {
		return
	}
	if payload.SalaryMin.Set != payload.SalaryMax.Set {
		current, err := h.Service.GetJob(r.Context(), id)
		if err != nil {
			shared.FailStore(w, r, err, "job")
			return
		}
		checkSalaryAgainst(v, payload, current)
		if v.Reject(w, requestID) {
			return
		}
	}

	job, err := h.Service.UpdateJob(r.Context(), id, recruiting.JobPatch{
		Title:               shared.TrimmedPtr(payload.Title),
		Description:         shared.TrimmedPtr(payload.Description),
		Requirements:        shared.TrimmedPtr(payload.Requirements),
		Responsibilities:    shared.TrimmedPtr(payload.Responsibilities),
		Department:          shared.TrimmedPtr(payload.Department),
		Location:            shared.TrimmedPtr(payload.Location),
		EmploymentType:      payload.EmploymentType,
		WorkLocation:        payload.WorkLocation,
		ExperienceLevel:     payload.ExperienceLevel,
		SalaryMin:           payload.SalaryMin.IntPtr(),
		SalaryMax:           payload.SalaryMax.IntPtr(),
		Status:              payload.Status,
		ApplicationDeadline: payload.ApplicationDeadline.Ptr(),
	})
	if err != nil {
		shared.FailStore(w, r, err, "job")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("update_job", "job", job.ID, "Updated job "+job.Title))
	api.Success(w, job)
}

func (h *Handler) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	job, err := h.Service.GetJob(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "job")
		return
	}
	if err := h.Service.DeleteJob(r.Context(), id); err != nil {
		shared.FailStore(w, r, err, "job")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("delete_job", "job", id, "Deleted job "+job.Title))
	api.NoContent(w)
}

// handleScoreJob stores an AI quality score on the posting. A placeholder
// score is stored when the model is unavailable.
func (h *Handler) handleScoreJob(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	job, score, err := h.Service.ScoreJob(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "job")
		return
	}
	h.Metrics.RecordAI(!score.FromModel())

	entry := shared.Entry("update_job", "job", job.ID, fmt.Sprintf("Scored job %s at %d", job.Title, score.Value))
	entry.Metadata = map[string]any{"aiScore": score.Value, "source": string(score.Source)}
	shared.RecordActivity(r.Context(), h.Activity, entry)
	api.Success(w, job)
}

// checkSalaryAgainst validates a patch carrying one salary bound against the
// stored other bound.
func checkSalaryAgainst(v *shared.Validator, p jobRequest, current recruiting.Job) {
	switch {
	case p.SalaryMin.Set && current.SalaryMax != nil:
		if int64(*current.SalaryMax) < p.SalaryMin.Value {
			v.Add("salaryMin", "must be less than or equal to salaryMax")
		}
	case p.SalaryMax.Set && current.SalaryMin != nil:
		if p.SalaryMax.Value < int64(*current.SalaryMin) {
			v.Add("salaryMax", "must be greater than or equal to salaryMin")
		}
	}
}
