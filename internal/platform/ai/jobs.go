package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// GenerateJobDescription falls back to a plain description assembled from
// the brief when the model is unavailable.
func (s *Service) GenerateJobDescription(ctx context.Context, job JobBrief) Result[string] {
	text, err := s.generate(ctx, llms.TextPart(jobDescriptionPrompt(job)))
	if err == nil {
		text = strings.TrimSpace(text)
		if text != "" {
			return modelResult(text)
		}
		err = errors.New("empty job description")
	}
	return fallback("generate_job_description", DefaultJobDescription(job), err)
}

func (s *Service) ScoreJob(ctx context.Context, job JobBrief) Result[int] {
	text, err := s.generate(ctx, llms.TextPart(jobScorePrompt(job)))
	if err != nil {
		return fallback("score_job", FallbackScore, err)
	}
	score, err := parseScore(text)
	if err != nil {
		return fallback("score_job", FallbackScore, err)
	}
	return modelResult(score)
}

func (s *Service) MatchCandidate(ctx context.Context, job JobBrief, candidate CandidateBrief) Result[int] {
	text, err := s.generate(ctx, llms.TextPart(matchPrompt(job, candidate)))
	if err != nil {
		return fallback("match_candidate", FallbackScore, err)
	}
	score, err := parseScore(text)
	if err != nil {
		return fallback("match_candidate", FallbackScore, err)
	}
	return modelResult(score)
}

func DefaultJobDescription(job JobBrief) string {
	var b strings.Builder
	title := strings.TrimSpace(job.Title)
	if title == "" {
		title = "new team member"
	}
	fmt.Fprintf(&b, "We are looking for a %s", title)
	if dept := strings.TrimSpace(job.Department); dept != "" {
		fmt.Fprintf(&b, " to join our %s team", dept)
	}
	b.WriteString(".")
	if loc := strings.TrimSpace(job.Location); loc != "" {
		fmt.Fprintf(&b, " This role is based in %s", loc)
		if job.WorkLocation != "" {
			fmt.Fprintf(&b, " (%s)", humanize(job.WorkLocation))
		}
		b.WriteString(".")
	}
	if job.EmploymentType != "" {
		fmt.Fprintf(&b, " Employment type: %s.", humanize(job.EmploymentType))
	}
	if len(job.Skills) > 0 {
		fmt.Fprintf(&b, " Key skills: %s.", strings.Join(job.Skills, ", "))
	}
	if req := strings.TrimSpace(job.Requirements); req != "" {
		b.WriteString("\n\nRequirements:\n")
		b.WriteString(req)
	}
	if resp := strings.TrimSpace(job.Responsibilities); resp != "" {
		b.WriteString("\n\nResponsibilities:\n")
		b.WriteString(resp)
	}
	return b.String()
}
