// Package learning implements the deterministic tutoring orchestrator:
// intent classification, policy selection, anti-loop recovery, and the turn
// handlers that keep every exchange anchored to the lesson topic.
package learning

import (
	"log/slog"

	"github.com/aprenda/tutor/internal/logging"
	"github.com/aprenda/tutor/pkg/domain"
)

// Engine drives one learning-mode turn at a time. It holds no per-student
// state: everything mutable lives in the SessionState passed in.
type Engine struct {
	logger          *slog.Logger
	meaningFallback string
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger attaches a logger for turn-level debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMeaningFallback overrides the label applied to answers outside the
// closed emotion vocabulary.
func WithMeaningFallback(meaning string) Option {
	return func(e *Engine) { e.meaningFallback = meaning }
}

// New creates a learning engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:          logging.NewNop(),
		meaningFallback: DefaultMeaningFallback,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnStudentMessage processes one student utterance and returns the tutor's
// turn. The override order is the core contract of this orchestrator:
//
//  1. first message: unconditional introduction, classification ignored
//  2. learning mode + off-topic: forced redirect, overriding the policy table
//  3. loop risk: recovery, bypassing the policy engine
//  4. policy dispatch
func (e *Engine) OnStudentMessage(text string, spec *domain.LessonSpec, state *domain.SessionState) string {
	if state.IsFirstMessage {
		e.logger.Debug("first message, emitting introduction", "topic", spec.TopicID)
		return e.IntroMessage(spec, state)
	}

	intent := DetectIntent(text)
	state.LastStudentIntent = string(intent)

	if state.IsLearningMode && intent == domain.IntentOffTopic {
		e.logger.Debug("off-topic utterance, forcing redirect", "topic", spec.TopicID)
		return e.handleOffTopic(spec, state)
	}

	if IsLoopRisk(state) {
		e.logger.Debug("loop risk detected, recovering", "loop_counter", state.Safety.LoopCounter)
		return e.RecoverFromLoop(spec, state)
	}

	action := ChoosePolicyAction(intent, state)
	e.logger.Debug("dispatching turn", "intent", intent, "action", action)

	switch action {
	case domain.ActionAnswerQuestionThenReturn:
		return e.handleQuestion(intent, text, spec, state)
	case domain.ActionDeescalateClarifyRepair:
		return e.handleFrustration(text, spec, state)
	case domain.ActionSetLanguageMode:
		return e.handleSetLanguageMode(text, spec, state)
	case domain.ActionAckAndRedirect:
		return e.handleThanksOrGreeting(spec, state)
	case domain.ActionEvaluateAndFeedback:
		return e.handleStudentAnswer(text, spec, state)
	case domain.ActionOfferOptions:
		return e.handleStopOrChange(spec, state)
	case domain.ActionGentleRedirect:
		return e.handleOffTopic(spec, state)
	default:
		return e.handleOffTopic(spec, state)
	}
}

// ValidateAndFinalize post-processes externally generated text through the
// same line-budget and question-ending invariants the handlers obey. The
// appended question is the lesson's current first practice prompt.
func (e *Engine) ValidateAndFinalize(raw string, spec *domain.LessonSpec) string {
	if spec == nil {
		return raw
	}
	promptPT, promptEN := currentPrompt(spec, 0)
	q := formatBilingual(promptPT, promptEN, "", spec.LanguageMode)
	return FinalizeTurn(raw, q, spec)
}
