package recruitinghandler

import (
	"net/http"
	"strings"

	"hrflow/internal/domain/recruiting"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type educationRequest struct {
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	Institution string     `json:"institution"`
	Year        shared.Int `json:"year"`
}

type candidateRequest struct {
	FirstName       *string             `json:"firstName"`
	LastName        *string             `json:"lastName"`
	Email           *string             `json:"email"`
	Phone           *string             `json:"phone"`
	Location        *string             `json:"location"`
	CurrentPosition *string             `json:"currentPosition"`
	CurrentCompany  *string             `json:"currentCompany"`
	Experience      *string             `json:"experience"`
	Skills          *[]string           `json:"skills"`
	Education       *[]educationRequest `json:"education"`
	ResumeURL       *string             `json:"resumeUrl"`
	LinkedInURL     *string             `json:"linkedinUrl"`
	PortfolioURL    *string             `json:"portfolioUrl"`
	Status          *string             `json:"status"`
	Source          *string             `json:"source"`
	Notes           *string             `json:"notes"`
}

func (p *candidateRequest) validate(v *shared.Validator, create bool) {
	text(v, "firstName", p.FirstName, true, create)
	text(v, "lastName", p.LastName, true, create)
	text(v, "email", p.Email, true, create)
	v.Var("email", p.Email, "email")
	v.Var("resumeUrl", p.ResumeURL, "url")
	v.Var("linkedinUrl", p.LinkedInURL, "url")
	v.Var("portfolioUrl", p.PortfolioURL, "url")
	enum(v, "status", p.Status, recruiting.CandidateStatuses, create)
	enum(v, "source", p.Source, recruiting.CandidateSources, create)
	p.Skills = stringList(v, "skills", p.Skills)
	if p.Education != nil {
		for i, e := range *p.Education {
			field := "education[" + itoa(i) + "]"
			if strings.TrimSpace(e.Degree) == "" && strings.TrimSpace(e.Institution) == "" {
				v.Add(field, "requires a degree or an institution")
			}
			v.IntRange(field+".year", e.Year, 1900, 2100)
		}
	}
}

func (p candidateRequest) education() *[]recruiting.Education {
	if p.Education == nil {
		return nil
	}
	out := make([]recruiting.Education, 0, len(*p.Education))
	for _, e := range *p.Education {
		out = append(out, recruiting.Education{
			Degree:      strings.TrimSpace(e.Degree),
			Field:       strings.TrimSpace(e.Field),
			Institution: strings.TrimSpace(e.Institution),
			Year:        e.Year.IntPtr(),
		})
	}
	return &out
}

func (h *Handler) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := recruiting.CandidateFilter{
		Status:     shared.QueryEnum(v, r, "status", recruiting.CandidateStatuses),
		Experience: strings.TrimSpace(r.URL.Query().Get("experience")),
		Skills:     shared.QueryList(r, "skills"),
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	candidates, err := h.Service.ListCandidates(r.Context(), filter)
	if err != nil {
		shared.FailStore(w, r, err, "candidates")
		return
	}
	api.Success(w, candidates)
}

func (h *Handler) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	candidate, err := h.Service.GetCandidate(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "candidate")
		return
	}
	api.Success(w, candidate)
}

func (h *Handler) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var payload candidateRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	payload.validate(v, true)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	in := recruiting.CandidateInput{
		FirstName:       deref(payload.FirstName),
		LastName:        deref(payload.LastName),
		Email:           deref(payload.Email),
		Phone:           shared.OptionalText(payload.Phone),
		Location:        shared.OptionalText(payload.Location),
		CurrentPosition: shared.OptionalText(payload.CurrentPosition),
		CurrentCompany:  shared.OptionalText(payload.CurrentCompany),
		Experience:      shared.OptionalText(payload.Experience),
		Skills:          listOrEmpty(payload.Skills),
		Education:       []recruiting.Education{},
		ResumeURL:       shared.OptionalText(payload.ResumeURL),
		LinkedInURL:     shared.OptionalText(payload.LinkedInURL),
		PortfolioURL:    shared.OptionalText(payload.PortfolioURL),
		Status:          deref(payload.Status),
		Source:          deref(payload.Source),
		Notes:           shared.OptionalText(payload.Notes),
	}
	if education := payload.education(); education != nil {
		in.Education = *education
	}
	candidate, err := h.Service.CreateCandidate(r.Context(), in)
	if err != nil {
		shared.FailStore(w, r, err, "candidate")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("create_candidate", "candidate", candidate.ID, "Added candidate "+candidate.FullName()))
	api.Created(w, candidate)
}

func (h *Handler) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, requestID) {
		return
	}
	var payload candidateRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.validate(v, false)
	if v.Reject(w, requestID) {
		return
	}

	candidate, err := h.Service.UpdateCandidate(r.Context(), id, recruiting.CandidatePatch{
		FirstName:       shared.TrimmedPtr(payload.FirstName),
		LastName:        shared.TrimmedPtr(payload.LastName),
		Email:           payload.Email,
		Phone:           shared.TrimmedPtr(payload.Phone),
		Location:        shared.TrimmedPtr(payload.Location),
		CurrentPosition: shared.TrimmedPtr(payload.CurrentPosition),
		CurrentCompany:  shared.TrimmedPtr(payload.CurrentCompany),
		Experience:      shared.TrimmedPtr(payload.Experience),
		Skills:          payload.Skills,
		Education:       payload.education(),
		ResumeURL:       shared.TrimmedPtr(payload.ResumeURL),
		LinkedInURL:     shared.TrimmedPtr(payload.LinkedInURL),
		PortfolioURL:    shared.TrimmedPtr(payload.PortfolioURL),
		Status:          payload.Status,
		Source:          payload.Source,
		Notes:           shared.TrimmedPtr(payload.Notes),
	})
	if err != nil {
		shared.FailStore(w, r, err, "candidate")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("update_candidate", "candidate", candidate.ID, "Updated candidate "+candidate.FullName()))
	api.Success(w, candidate)
}

func (h *Handler) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	candidate, err := h.Service.GetCandidate(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "candidate")
		return
	}
	if err := h.Service.DeleteCandidate(r.Context(), id); err != nil {
		shared.FailStore(w, r, err, "candidate")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("delete_candidate", "candidate", id, "Deleted candidate "+candidate.FullName()))
	api.NoContent(w)
}
