package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"

	"hrflow/internal/platform/config"
)

type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// FallbackScore is reported whenever a score cannot be obtained from the
// model.
const FallbackScore = 50

var ErrDisabled = errors.New("ai integration disabled")

// Result always carries a usable Value. Err is set only when Source is
// SourceFallback.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

func (r Result[T]) FromModel() bool {
	return r.Source == SourceModel
}

func modelResult[T any](value T) Result[T] {
	return Result[T]{Value: value, Source: SourceModel}
}

func fallback[T any](op string, value T, err error) Result[T] {
	if !errors.Is(err, ErrDisabled) {
		slog.Warn("ai call fell back to default", "op", op, "err", err)
	}
	return Result[T]{Value: value, Source: SourceFallback, Err: err}
}

type Service struct {
	Model   llms.Model
	Timeout time.Duration
}

func New(ctx context.Context, cfg config.Config) (*Service, error) {
	svc := &Service{Timeout: cfg.AITimeout}
	if !cfg.AIEnabled {
		return svc, nil
	}
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GeminiAPIKey),
		googleai.WithDefaultModel(cfg.AIModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	svc.Model = model
	return svc, nil
}

func NewWithModel(model llms.Model, timeout time.Duration) *Service {
	return &Service{Model: model, Timeout: timeout}
}

func (s *Service) Enabled() bool {
	return s != nil && s.Model != nil
}

func (s *Service) generate(ctx context.Context, parts ...llms.ContentPart) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	resp, err := s.Model.GenerateContent(ctx, []llms.MessageContent{
		{Role: schema.ChatMessageTypeHuman, Parts: parts},
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", errors.New("empty model response")
	}
	return resp.Choices[0].Content, nil
}
