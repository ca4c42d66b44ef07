package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/llm"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyInput is returned for blank task descriptions.
	ErrEmptyInput = errors.New("no input provided")

	// errCompletionPanic marks a completion client that panicked.
	errCompletionPanic = errors.New("completion client panicked")
)

// PlanResult is a plan together with how it was produced.
type PlanResult struct {
	ID     string
	Plan   *domain.Plan
	Source PlanSource
	// Model is the model that answered, empty for offline plans.
	Model string
}

// PlanService turns free text into a daily plan.
type PlanService interface {
	// CreateDailyPlan builds a plan for text. It fails only with
	// ErrEmptyInput; every other problem degrades to a simpler plan.
	CreateDailyPlan(ctx context.Context, text string) (*PlanResult, error)
}

// Recorder counts produced plans by source.
type Recorder interface {
	RecordPlan(source string)
}

type noopRecorder struct{}

func (noopRecorder) RecordPlan(string) {}

// Option customises a PlanService.
type Option func(*planService)

// WithRecorder reports every produced plan to r.
func WithRecorder(r Recorder) Option {
	return func(s *planService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithHeaderMarkers overrides the markers that open a category when a reply
// is parsed line by line.
func WithHeaderMarkers(markers []string) Option {
	return func(s *planService) {
		s.interpreter = NewInterpreter(markers)
	}
}

// WithKeywordRules overrides the offline classification table. An empty
// table keeps DefaultKeywordRules.
func WithKeywordRules(rules []KeywordRule) Option {
	return func(s *planService) {
		if len(rules) > 0 {
			s.rules = rules
		}
	}
}

type planService struct {
	client      llm.ChatClient
	interpreter *Interpreter
	rules       []KeywordRule
	logger      *zap.Logger
	recorder    Recorder
}

// NewPlanService creates a PlanService. A nil client selects offline
// keyword planning for every call.
func NewPlanService(client llm.ChatClient, logger *zap.Logger, opts ...Option) PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &planService{
		client:      client,
		interpreter: NewInterpreter(nil),
		rules:       DefaultKeywordRules(),
		logger:      logger,
		recorder:    noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *planService) CreateDailyPlan(ctx context.Context, text string) (*PlanResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	id := uuid.NewString()
	log := s.logger.With(zap.String("plan_id", id))

	if s.client == nil {
		log.Debug("no completion provider configured, classifying by keyword")
		return s.offline(id, text), nil
	}

	resp, err := s.complete(ctx, text)
	if err != nil {
		log.Warn("completion failed, classifying by keyword",
			zap.String("provider", string(s.client.Provider())),
			zap.Error(err),
		)
		return s.offline(id, text), nil
	}

	plan, source := s.interpreter.Interpret(resp.Text)
	if source == SourceText {
		log.Info("reply had no usable JSON payload, parsed it line by line",
			zap.Int("tasks", plan.Categories.TaskCount()),
		)
	}
	s.recorder.RecordPlan(string(source))
	log.Debug("plan created",
		zap.String("source", string(source)),
		zap.String("model", resp.Model),
		zap.Int64("latency_ms", resp.LatencyMs),
	)
	return &PlanResult{ID: id, Plan: plan, Source: source, Model: resp.Model}, nil
}

func (s *planService) offline(id, text string) *PlanResult {
	s.recorder.RecordPlan(string(SourceKeyword))
	return &PlanResult{ID: id, Plan: ClassifyWithRules(text, s.rules), Source: SourceKeyword}
}

// complete runs one planning call. There are no retries; any failure,
// including a panic inside the client, is returned as an error.
func (s *planService) complete(ctx context.Context, text string) (resp *llm.ChatResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("%w: %v", errCompletionPanic, r)
		}
	}()

	temperature := planningTemperature
	maxTokens := planningMaxTokens
	resp, err = s.client.Complete(ctx, llm.ChatRequest{
		SystemPrompt: planningSystemPrompt,
		UserPrompt:   BuildPlanningPrompt(text),
		Temperature:  &temperature,
		MaxTokens:    &maxTokens,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return nil, llm.ErrEmptyCompletion
	}
	return resp, nil
}
