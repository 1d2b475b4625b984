package simulator

import (
	"fmt"

	"github.com/aprenda/tutor/internal/textutil"
	"github.com/aprenda/tutor/pkg/domain"
)

// Stage handlers. Transitions are data-driven by slot completeness, not by
// intent alone: a stage advances only once every required slot is filled,
// and a partially complete stage asks specifically for whichever slot is
// still missing.

// stageGreeting opens the scenario. Returns "" once the conversation has
// already started, signalling the caller to fall through to stage 2.
func (e *Engine) stageGreeting(state *domain.SimulatorState, theme string) string {
	if state.Flags.ConversationStarted {
		return ""
	}
	state.Flags.ConversationStarted = true
	switch theme {
	case "hotel":
		return "Good evening! Welcome to Sunset Hotel. Are you checking in?"
	case "bank":
		return "Good morning! Welcome to First National Bank. How can I help you today?"
	case "restaurant":
		return "Good evening! Welcome to our restaurant. Do you have a reservation?"
	default:
		return "Hello! How can I help you today?"
	}
}

// stageReservation collects the guest's name and reservation status.
func (e *Engine) stageReservation(state *domain.SimulatorState, intent domain.SimulatorIntent, text string) string {
	switch intent {
	case domain.SimIntentProvideName:
		name := ExtractSlot(text, SlotName)
		if name == "" {
			return "I didn't catch your name. Could you tell me your name, please?"
		}
		state.Slots.Name = name
		return fmt.Sprintf("Thank you, %s. Do you have a reservation?", name)

	case domain.SimIntentProvideReservation:
		switch ExtractSlot(text, SlotReservation) {
		case "yes":
			yes := true
			state.Slots.Reservation = &yes
			if state.Slots.Name != "" {
				return fmt.Sprintf("Perfect — a reservation under %s. Could I see your ID, please?", state.Slots.Name)
			}
			return "Great! May I have your name, please?"
		case "no":
			no := false
			state.Slots.Reservation = &no
			return "No problem. Let me check what rooms we have available. How many nights will you be staying?"
		default:
			return "I'm not sure if you have a reservation. Do you have one, or would you like to book a room?"
		}

	case domain.SimIntentConfusion:
		return "No worries. Are you checking in today? Do you have a reservation?"
	}

	// Ask for whichever required slot is still missing.
	if state.Slots.Name == "" {
		return "May I have your name, please?"
	}
	if state.Slots.Reservation == nil {
		return fmt.Sprintf("Thank you, %s. Do you have a reservation?", state.Slots.Name)
	}
	return "How can I help you today?"
}

// stageIDPayment collects the ID confirmation and payment method.
func (e *Engine) stageIDPayment(state *domain.SimulatorState, intent domain.SimulatorIntent, text string) string {
	switch intent {
	case domain.SimIntentProvideID:
		state.Slots.IDConfirmed = true
		if state.Slots.PaymentMethod != "" {
			state.Stage = domain.StageRoomPreferences
			return "Thank you. Here's your key card. Would you like a room with a beach view or a city view?"
		}
		return "Thank you. How would you like to pay — credit card or cash?"

	case domain.SimIntentProvidePayment:
		payment := ExtractSlot(text, SlotPayment)
		if payment == "" {
			return "How would you like to pay — credit card or cash?"
		}
		state.Slots.PaymentMethod = payment
		if state.Slots.IDConfirmed {
			state.Stage = domain.StageRoomPreferences
			return "Perfect. Here's your key card. Would you like a room with a beach view or a city view?"
		}
		return "Great. May I see your ID, please?"

	case domain.SimIntentConfusion:
		if !state.Slots.IDConfirmed {
			return "Could I see your ID or passport, please?"
		}
		if state.Slots.PaymentMethod == "" {
			return "How would you like to pay — credit card or cash?"
		}
	}

	if !state.Slots.IDConfirmed {
		return "May I see your ID, please?"
	}
	if state.Slots.PaymentMethod == "" {
		return "How would you like to pay — credit card or cash?"
	}
	return "Is there anything else I can help you with?"
}

// stageRoomPreferences collects view and bed choices.
func (e *Engine) stageRoomPreferences(state *domain.SimulatorState, intent domain.SimulatorIntent, text string) string {
	switch intent {
	case domain.SimIntentRequestView:
		view := ExtractSlot(text, SlotView)
		if view == "" {
			return "Would you like a beach view or a city view?"
		}
		state.Slots.Preferences.View = view
		state.Stage = domain.StageInfoAndClosing
		return fmt.Sprintf("Perfect — a %s view room. King bed or two singles?", view)

	case domain.SimIntentAskRoom:
		bed := ExtractSlot(text, SlotBed)
		if bed == "" {
			return "King bed or two singles?"
		}
		state.Slots.Preferences.Bed = bed
		state.Stage = domain.StageInfoAndClosing
		return e.stageInfoClosing(state)

	case domain.SimIntentConfusion:
		return "Would you like a room with a beach view or a city view?"
	}

	if state.Slots.Preferences.View == "" {
		return "Would you like a room with a beach view or a city view?"
	}
	if state.Slots.Preferences.Bed == "" {
		return "King bed or two singles?"
	}
	return "Is there anything else you need?"
}

// stageInfoClosing wraps up the check-in.
func (e *Engine) stageInfoClosing(_ *domain.SimulatorState) string {
	return "Perfect! Checkout is at 11 a.m. Breakfast is from 7 to 10 in the morning. Here is your key card. Room 305. Enjoy your stay!"
}

// stageOptionalIssues handles post-check-in requests.
func (e *Engine) stageOptionalIssues(_ *domain.SimulatorState, intent domain.SimulatorIntent, text string) string {
	if intent == domain.SimIntentRequestSpecial {
		t := textutil.Normalize(text)
		switch {
		case textutil.ContainsAny(t, "late") && textutil.ContainsAny(t, "checkout", "check out"):
			return "I can arrange a late checkout until 2 p.m. Is that okay?"
		case textutil.ContainsAny(t, "breakfast"):
			return "Breakfast is from 7 to 10 a.m. in the restaurant on the first floor."
		case textutil.ContainsAny(t, "wifi", "internet"):
			return "WiFi is free. The password is 'SUNSET2024'. It's on your key card too."
		default:
			return "I'll note that. Is there anything else?"
		}
	}
	return "Is there anything else I can help you with?"
}
