package simulator

import (
	"fmt"

	"github.com/aprenda/tutor/pkg/domain"
)

// Cross-cutting handlers intercepted before any stage dispatch. Ordering:
// safety > teaching-request > thanks > confusion > off-topic > stage logic.

// handleTeachingRequest offers a mode switch without itself slipping into
// teaching. Naming "Learning mode" as an alternative is the one allowed
// meta-level exception; the phrasing stays in character.
func (e *Engine) handleTeachingRequest(state *domain.SimulatorState) string {
	state.Flags.UserRequestedTeaching = true
	return "I can continue helping you here, or if you'd like, we can switch to Learning mode where I'll guide you step by step. Which do you prefer?"
}

// handleRudeUnsafe de-escalates and returns to the top-of-stage question.
func (e *Engine) handleRudeUnsafe(_ *domain.SimulatorState) string {
	return "Let's keep it friendly 😊 So, do you have a reservation?"
}

// handleConfusion re-asks the stage's pending question in simpler terms.
// The right clarification is stage-specific, which is why this is not a
// single generic line.
func (e *Engine) handleConfusion(state *domain.SimulatorState, stage domain.Stage) string {
	state.Flags.UserConfused = true
	switch stage {
	case domain.StageGreeting:
		return "No worries. Are you checking in today?"
	case domain.StageReservationDetails:
		return "Let me help. Do you have a reservation, or would you like to book a room?"
	case domain.StageIDAndPayment:
		return "Could you repeat that, please? I need to see your ID and know how you'd like to pay."
	default:
		return "Sorry, I didn't catch that. Could you say it again?"
	}
}

// handleOffTopic pulls the conversation back into the scenario.
func (e *Engine) handleOffTopic(state *domain.SimulatorState) string {
	if state.Stage == domain.StageGreeting {
		return "Welcome! Are you checking in today?"
	}
	if state.Slots.Name != "" {
		return fmt.Sprintf("Let's focus on your check-in, %s. Do you have a reservation?", state.Slots.Name)
	}
	return "Let's get you checked in. May I have your name, please?"
}

// handleThanks acknowledges and repeats the exact pending question for the
// current stage.
func (e *Engine) handleThanks(state *domain.SimulatorState, stage domain.Stage) string {
	switch stage {
	case domain.StageGreeting:
		return "You're welcome. Are you checking in today?"
	case domain.StageReservationDetails:
		if state.Slots.Name == "" {
			return "You're welcome. May I have your name, please?"
		}
		if state.Slots.Reservation == nil {
			return "You're welcome. Do you have a reservation?"
		}
		return "You're welcome. Could I see your ID, please?"
	default:
		return "You're welcome. Is there anything else I can help you with?"
	}
}
