package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// ParseResume prefers locally extracted text and sends the raw upload only
// when no text could be extracted.
func (s *Service) ParseResume(ctx context.Context, doc ResumeDocument) Result[ResumeFields] {
	var parts []llms.ContentPart
	switch {
	case strings.TrimSpace(doc.Text) != "":
		parts = []llms.ContentPart{llms.TextPart(resumePrompt(doc.Text))}
	case len(doc.Data) > 0:
		parts = []llms.ContentPart{
			llms.BinaryPart(doc.MIMEType, doc.Data),
			llms.TextPart(resumeInstructions),
		}
	default:
		return fallback("parse_resume", EmptyResumeFields(), errors.New("empty resume"))
	}

	text, err := s.generate(ctx, parts...)
	if err != nil {
		return fallback("parse_resume", EmptyResumeFields(), err)
	}
	fields, err := parseResumeFields(text)
	if err != nil {
		return fallback("parse_resume", EmptyResumeFields(), err)
	}
	return modelResult(fields)
}
