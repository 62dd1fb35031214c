package recruitinghandler

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"hrflow/internal/platform/ai"
	"hrflow/internal/platform/resume"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

const resumeField = "resume"

type parseResumeResponse struct {
	Fields ai.ResumeFields `json:"fields"`
	Parsed bool            `json:"parsed"`
}

// handleParseResume extracts candidate fields from an uploaded resume. The
// declared content type is checked before any of the file is read.
func (h *Handler) handleParseResume(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	reader, err := r.MultipartReader()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "a multipart form with a resume file is required", requestID)
		return
	}

	part, err := nextResumePart(reader)
	if err != nil {
		failUpload(w, requestID, err)
		return
	}
	if part == nil {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: resumeField, Reason: "is required"}})
		return
	}
	defer part.Close()

	mediaType, err := resume.NormalizeContentType(part.Header.Get("Content-Type"))
	if err != nil {
		api.Fail(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error(), requestID)
		return
	}

	data, err := io.ReadAll(io.LimitReader(part, resume.MaxSize+1))
	if err != nil {
		failUpload(w, requestID, err)
		return
	}
	if len(data) > resume.MaxSize {
		failUpload(w, requestID, resume.ErrTooLarge)
		return
	}
	if len(data) == 0 {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: resumeField, Reason: "must not be empty"}})
		return
	}
	if err := resume.Verify(data, mediaType); err != nil {
		api.Fail(w, http.StatusUnsupportedMediaType, "unsupported_media_type", resume.ErrContentMismatch.Error(), requestID)
		return
	}

	doc := ai.ResumeDocument{}
	text, err := resume.ExtractText(data, mediaType)
	if errors.Is(err, resume.ErrTooLarge) {
		failUpload(w, requestID, err)
		return
	}
	if err != nil {
		slog.Warn("resume text extraction failed", "mediaType", mediaType, "requestId", requestID, "err", err)
	}
	if text != "" {
		doc.Text = text
	} else {
		doc.Data = data
		doc.MIMEType = mediaType
	}

	result := ai.Result[ai.ResumeFields]{Value: ai.EmptyResumeFields(), Source: ai.SourceFallback, Err: ai.ErrDisabled}
	if h.Resumes != nil {
		result = h.Resumes.ParseResume(r.Context(), doc)
	}
	h.Metrics.RecordAI(!result.FromModel())
	api.Success(w, parseResumeResponse{Fields: result.Value, Parsed: result.FromModel()})
}

func nextResumePart(reader *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == resumeField && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}

func failUpload(w http.ResponseWriter, requestID string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, resume.ErrTooLarge) {
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", resume.ErrTooLarge.Error(), requestID)
		return
	}
	api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart payload", requestID)
}
