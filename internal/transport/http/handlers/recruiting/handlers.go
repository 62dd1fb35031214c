package recruitinghandler

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/domain/auth"
	"hrflow/internal/domain/recruiting"
	"hrflow/internal/platform/ai"
	"hrflow/internal/platform/metrics"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

// ResumeParser is the part of the AI adapter the upload endpoint needs.
type ResumeParser interface {
	ParseResume(ctx context.Context, doc ai.ResumeDocument) ai.Result[ai.ResumeFields]
}

type Handler struct {
	Service  *recruiting.Service
	Resumes  ResumeParser
	Activity shared.ActivityRecorder
	Metrics  *metrics.Collector
}

func NewHandler(service *recruiting.Service, resumes ResumeParser, activity shared.ActivityRecorder, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Resumes: resumes, Activity: activity, Metrics: collector}
}

const maxListLimit = 200

func (h *Handler) RegisterRoutes(r chi.Router) {
	write := middleware.RequirePermission(auth.PermRecruitingWrite)
	templates := middleware.RequirePermission(auth.PermTemplatesWrite)

	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.handleListJobs)
		r.Get("/{id}", h.handleGetJob)
		r.With(write).Post("/", h.handleCreateJob)
		r.With(write).Put("/{id}", h.handleUpdateJob)
		r.With(write).Delete("/{id}", h.handleDeleteJob)
		r.With(write).Post("/{id}/score", h.handleScoreJob)
	})
	r.Route("/job-templates", func(r chi.Router) {
		r.Get("/", h.handleListTemplates)
		r.Get("/{id}", h.handleGetTemplate)
		r.With(templates).Post("/", h.handleCreateTemplate)
		r.With(templates).Put("/{id}", h.handleUpdateTemplate)
		r.With(templates).Delete("/{id}", h.handleDeleteTemplate)
	})
	r.Route("/candidates", func(r chi.Router) {
		r.Get("/", h.handleListCandidates)
		r.Get("/{id}", h.handleGetCandidate)
		r.With(write).Post("/", h.handleCreateCandidate)
		r.With(write).Post("/parse-resume", h.handleParseResume)
		r.With(write).Put("/{id}", h.handleUpdateCandidate)
		r.With(write).Delete("/{id}", h.handleDeleteCandidate)
	})
	r.Route("/applications", func(r chi.Router) {
		r.Get("/", h.handleListApplications)
		r.Get("/{id}", h.handleGetApplication)
		r.With(write).Post("/", h.handleCreateApplication)
		r.With(write).Put("/{id}", h.handleUpdateApplication)
		r.With(write).Delete("/{id}", h.handleDeleteApplication)
	})
	r.Route("/interviews", func(r chi.Router) {
		r.Get("/", h.handleListInterviews)
		r.Get("/{id}", h.handleGetInterview)
		r.With(write).Post("/", h.handleCreateInterview)
		r.With(write).Put("/{id}", h.handleUpdateInterview)
		r.With(write).Delete("/{id}", h.handleDeleteInterview)
	})
}

// text validates a free-text field. On create a required field must be
// present and non-blank; on update it may be omitted but not blanked.
func text(v *shared.Validator, field string, value *string, required, create bool) {
	switch {
	case value == nil:
		if required && create {
			v.Add(field, "is required")
		}
	case required && strings.TrimSpace(*value) == "":
		v.Add(field, "must not be empty")
	}
}

// enum treats a blank value as absent on create and as an error on update.
func enum(v *shared.Validator, field string, value *string, allowed []string, create bool) {
	if create {
		v.Enum(field, deref(value), allowed)
		return
	}
	v.EnumPtr(field, value, allowed)
}

// stringList trims every entry and rejects blanks.
func stringList(v *shared.Validator, field string, values *[]string) *[]string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(*values))
	for i, value := range *values {
		value = strings.TrimSpace(value)
		if value == "" {
			v.Add(field+"["+itoa(i)+"]", "must not be empty")
			continue
		}
		out = append(out, value)
	}
	return &out
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func listOrEmpty(values *[]string) []string {
	if values == nil {
		return []string{}
	}
	return *values
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
