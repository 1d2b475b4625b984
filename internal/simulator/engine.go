// Package simulator implements the roleplay orchestrator: a six-stage
// slot-filling state machine that never breaks character, guarded by a
// response validator that rewrites teacher-mode phrasing.
package simulator

import (
	"log/slog"

	"github.com/aprenda/tutor/internal/logging"
	"github.com/aprenda/tutor/pkg/domain"
)

// Engine drives one roleplay turn at a time. Stateless apart from the
// SimulatorState passed in and mutated in place.
type Engine struct {
	logger *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger attaches a logger for turn-level debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates a simulator engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnMessage processes one student utterance. Every return path goes through
// ValidateResponse, handler-authored text included. Stages only ever move
// forward; slot completeness, not intent, gates each transition.
func (e *Engine) OnMessage(text string, state *domain.SimulatorState, theme string) string {
	if theme == "" {
		theme = state.Theme
	}

	intent := DetectIntent(text, state.Stage, &state.Slots)
	state.LastUserIntent = intent
	e.logger.Debug("simulator turn", "intent", intent, "stage", state.Stage.String())

	// Priority overrides before any stage dispatch.
	switch intent {
	case domain.SimIntentAskForTeaching:
		return ValidateResponse(e.handleTeachingRequest(state))
	case domain.SimIntentRudeUnsafe:
		return ValidateResponse(e.handleRudeUnsafe(state))
	case domain.SimIntentThanks:
		return ValidateResponse(e.handleThanks(state, state.Stage))
	case domain.SimIntentConfusion:
		return ValidateResponse(e.handleConfusion(state, state.Stage))
	case domain.SimIntentOffTopic:
		return ValidateResponse(e.handleOffTopic(state))
	}

	switch state.Stage {
	case domain.StageGreeting:
		if intent == domain.SimIntentGreeting {
			if response := e.stageGreeting(state, theme); response != "" {
				return ValidateResponse(response)
			}
		}
		// The conversation is already underway: move into the
		// reservation stage and let it handle the utterance.
		state.Stage = domain.StageReservationDetails
		return ValidateResponse(e.stageReservation(state, intent, text))

	case domain.StageReservationDetails:
		response := e.stageReservation(state, intent, text)
		if state.Slots.Name != "" && state.Slots.Reservation != nil {
			state.Stage = domain.StageIDAndPayment
		}
		return ValidateResponse(response)

	case domain.StageIDAndPayment:
		response := e.stageIDPayment(state, intent, text)
		if state.Slots.IDConfirmed && state.Slots.PaymentMethod != "" {
			state.Stage = domain.StageRoomPreferences
		}
		return ValidateResponse(response)

	case domain.StageRoomPreferences:
		return ValidateResponse(e.stageRoomPreferences(state, intent, text))

	case domain.StageInfoAndClosing:
		if intent == domain.SimIntentRequestSpecial {
			state.Stage = domain.StageOptionalIssues
			return ValidateResponse(e.stageOptionalIssues(state, intent, text))
		}
		return ValidateResponse("Is there anything else I can help you with?")

	case domain.StageOptionalIssues:
		return ValidateResponse(e.stageOptionalIssues(state, intent, text))
	}

	return ValidateResponse("How can I help you today?")
}
