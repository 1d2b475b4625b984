package simulator

import (
	"regexp"

	"github.com/aprenda/tutor/internal/textutil"
	"github.com/aprenda/tutor/pkg/domain"
)

var nameIsPattern = regexp.MustCompile(`\b(name|nome)\b`)

// DetectIntent classifies a roleplay utterance. Safety first: the hostile
// token check short-circuits everything, including teaching requests. The
// slot intents below are stage-gated, so the same phrase can classify
// differently (or fall to off-topic) depending on how far the scenario has
// progressed.
func DetectIntent(text string, stage domain.Stage, _ *domain.Slots) domain.SimulatorIntent {
	if text == "" {
		return domain.SimIntentConfusion
	}
	t := textutil.Normalize(text)

	if textutil.ContainsAny(t, "kill", "die", "hate", "stupid", "idiot", "shut up") {
		return domain.SimIntentRudeUnsafe
	}

	if textutil.ContainsAny(t, "teach", "ensina", "explain", "explica", "how do i say", "como falo") {
		return domain.SimIntentAskForTeaching
	}

	if textutil.ContainsAny(t, "hello", "hi", "hey", "good morning", "good evening", "good afternoon") {
		return domain.SimIntentGreeting
	}
	if textutil.ContainsAny(t, "thank", "thanks", "obrigado", "obrigada") {
		return domain.SimIntentThanks
	}

	if textutil.ContainsAny(t, "what", "huh", "sorry", "repeat", "again", "não entendi") {
		return domain.SimIntentConfusion
	}

	if stage == domain.StageGreeting || stage == domain.StageReservationDetails {
		if textutil.ContainsAny(t, "my name is", "i am", "i m", "meu nome é", "eu sou") {
			return domain.SimIntentProvideName
		}
		if nameIsPattern.MatchString(t) && textutil.ContainsAny(t, "is", "é") {
			return domain.SimIntentProvideName
		}
	}

	if stage == domain.StageReservationDetails {
		if textutil.ContainsAny(t, "reservation", "reserva", "book", "booked", "i have") {
			return domain.SimIntentProvideReservation
		}
		if textutil.ContainsAny(t, "check in", "check out", "stay", "night", "day", "date") {
			return domain.SimIntentProvideDates
		}
	}

	if stage == domain.StageIDAndPayment {
		if textutil.ContainsAny(t, "id", "passport", "document", "here", "passcard", "card") {
			return domain.SimIntentProvideID
		}
		if textutil.ContainsAny(t, "credit", "card", "cash", "pay", "payment", "pagamento") {
			return domain.SimIntentProvidePayment
		}
	}

	if stage == domain.StageRoomPreferences {
		if textutil.ContainsAny(t, "view", "beach", "city", "ocean", "window", "vista") {
			return domain.SimIntentRequestView
		}
		if textutil.ContainsAny(t, "bed", "king", "single", "double", "twin") {
			return domain.SimIntentAskRoom
		}
	}

	if textutil.ContainsAny(t, "checkout", "check out", "leave", "time", "hour", "when") {
		return domain.SimIntentAskCheckoutTime
	}

	if textutil.ContainsAny(t, "late", "early", "wake up", "breakfast", "wifi", "internet") {
		return domain.SimIntentRequestSpecial
	}

	// Past the greeting, anything unmatched should trigger redirection,
	// not a generic catch-all.
	if stage > domain.StageGreeting {
		return domain.SimIntentOffTopic
	}
	return domain.SimIntentCheckIn
}
