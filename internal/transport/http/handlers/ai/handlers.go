package aihandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/domain/auth"
	"hrflow/internal/domain/recruiting"
	"hrflow/internal/platform/ai"
	"hrflow/internal/platform/metrics"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type JobDescriber interface {
	GenerateJobDescription(ctx context.Context, job ai.JobBrief) ai.Result[string]
}

type Handler struct {
	AI      JobDescriber
	Metrics *metrics.Collector
}

func NewHandler(describer JobDescriber, collector *metrics.Collector) *Handler {
	return &Handler{AI: describer, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermRecruitingWrite)).Post("/ai/generate-job-description", h.handleGenerateJobDescription)
}

type jobDescriptionRequest struct {
	Title            string     `json:"title" validate:"required,notblank,max=200"`
	Department       string     `json:"department" validate:"max=200"`
	Location         string     `json:"location" validate:"max=200"`
	EmploymentType   string     `json:"employmentType"`
	WorkLocation     string     `json:"workLocation"`
	ExperienceLevel  string     `json:"experienceLevel"`
	Requirements     string     `json:"requirements"`
	Responsibilities string     `json:"responsibilities"`
	Skills           []string   `json:"skills" validate:"max=50,dive,notblank"`
	SalaryMin        shared.Int `json:"salaryMin"`
	SalaryMax        shared.Int `json:"salaryMax"`
}

type jobDescriptionResponse struct {
	Description string `json:"description"`
	Generated   bool   `json:"generated"`
}

// handleGenerateJobDescription always answers with a description; Generated
// reports whether the model wrote it.
func (h *Handler) handleGenerateJobDescription(w http.ResponseWriter, r *http.Request) {
	var payload jobDescriptionRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	v.Enum("employmentType", payload.EmploymentType, recruiting.EmploymentTypes)
	v.Enum("workLocation", payload.WorkLocation, recruiting.WorkLocations)
	v.Enum("experienceLevel", payload.ExperienceLevel, recruiting.ExperienceLevels)
	v.Int("salaryMin", payload.SalaryMin)
	v.Int("salaryMax", payload.SalaryMax)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	brief := ai.JobBrief{
		Title:            payload.Title,
		Department:       payload.Department,
		Location:         payload.Location,
		EmploymentType:   payload.EmploymentType,
		WorkLocation:     payload.WorkLocation,
		ExperienceLevel:  payload.ExperienceLevel,
		Requirements:     payload.Requirements,
		Responsibilities: payload.Responsibilities,
		Skills:           payload.Skills,
		SalaryMin:        payload.SalaryMin.IntPtr(),
		SalaryMax:        payload.SalaryMax.IntPtr(),
	}
	result := ai.Result[string]{Value: ai.DefaultJobDescription(brief), Source: ai.SourceFallback, Err: ai.ErrDisabled}
	if h.AI != nil {
		result = h.AI.GenerateJobDescription(r.Context(), brief)
	}
	h.Metrics.RecordAI(!result.FromModel())
	api.Success(w, jobDescriptionResponse{Description: result.Value, Generated: result.FromModel()})
}
