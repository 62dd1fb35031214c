package recruitinghandler

import (
	"net/http"
	"strings"

	"hrflow/internal/domain/recruiting"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type templateRequest struct {
	Name             *string   `json:"name"`
	Title            *string   `json:"title"`
	Department       *string   `json:"department"`
	Description      *string   `json:"description"`
	Requirements     *string   `json:"requirements"`
	Responsibilities *string   `json:"responsibilities"`
	EmploymentType   *string   `json:"employmentType"`
	ExperienceLevel  *string   `json:"experienceLevel"`
	Skills           *[]string `json:"skills"`
	Benefits         *[]string `json:"benefits"`
}

func (p *templateRequest) validate(v *shared.Validator, create bool) {
	text(v, "title", p.Title, true, create)
	text(v, "department", p.Department, true, create)
	if !create {
		text(v, "name", p.Name, true, false)
	}
	enum(v, "employmentType", p.EmploymentType, recruiting.EmploymentTypes, create)
	enum(v, "experienceLevel", p.ExperienceLevel, recruiting.ExperienceLevels, create)
	p.Skills = stringList(v, "skills", p.Skills)
	p.Benefits = stringList(v, "benefits", p.Benefits)
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListJobTemplates(r.Context(), recruiting.JobTemplateFilter{
		Department: strings.TrimSpace(r.URL.Query().Get("department")),
	})
	if err != nil {
		shared.FailStore(w, r, err, "job templates")
		return
	}
	api.Success(w, templates)
}

func (h *Handler) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	tmpl, err := h.Service.GetJobTemplate(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "job template")
		return
	}
	api.Success(w, tmpl)
}

func (h *Handler) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var payload templateRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	payload.validate(v, true)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	in := recruiting.JobTemplateInput{
		Name:             deref(payload.Name),
		Title:            deref(payload.Title),
		Department:       deref(payload.Department),
		Description:      deref(payload.Description),
		Requirements:     deref(payload.Requirements),
		Responsibilities: deref(payload.Responsibilities),
		EmploymentType:   deref(payload.EmploymentType),
		ExperienceLevel:  deref(payload.ExperienceLevel),
		Skills:           listOrEmpty(payload.Skills),
		Benefits:         listOrEmpty(payload.Benefits),
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		in.CreatedBy = &user.ID
	}
	tmpl, err := h.Service.CreateJobTemplate(r.Context(), in)
	if err != nil {
		shared.FailStore(w, r, err, "job template")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("create_job_template", "job_template", tmpl.ID, "Created job template "+tmpl.Name))
	api.Created(w, tmpl)
}

func (h *Handler) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, requestID) {
		return
	}
	var payload templateRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.validate(v, false)
	if v.Reject(w, requestID) {
		return
	}

	tmpl, err := h.Service.UpdateJobTemplate(r.Context(), id, recruiting.JobTemplatePatch{
		Name:             shared.TrimmedPtr(payload.Name),
		Title:            shared.TrimmedPtr(payload.Title),
		Department:       shared.TrimmedPtr(payload.Department),
		Description:      shared.TrimmedPtr(payload.Description),
		Requirements:     shared.TrimmedPtr(payload.Requirements),
		Responsibilities: shared.TrimmedPtr(payload.Responsibilities),
		EmploymentType:   payload.EmploymentType,
		ExperienceLevel:  payload.ExperienceLevel,
		Skills:           payload.Skills,
		Benefits:         payload.Benefits,
	})
	if err != nil {
		shared.FailStore(w, r, err, "job template")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("update_job_template", "job_template", tmpl.ID, "Updated job template "+tmpl.Name))
	api.Success(w, tmpl)
}

func (h *Handler) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	tmpl, err := h.Service.GetJobTemplate(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "job template")
		return
	}
	if err := h.Service.DeleteJobTemplate(r.Context(), id); err != nil {
		shared.FailStore(w, r, err, "job template")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("delete_job_template", "job_template", id, "Deleted job template "+tmpl.Name))
	api.NoContent(w)
}
