package domain

// Stage is one step of the roleplay scenario. Stages only move forward.
type Stage int

const (
	StageGreeting Stage = iota + 1
	StageReservationDetails
	StageIDAndPayment
	StageRoomPreferences
	StageInfoAndClosing
	StageOptionalIssues
)

func (s Stage) String() string {
	switch s {
	case StageGreeting:
		return "greeting"
	case StageReservationDetails:
		return "reservation_details"
	case StageIDAndPayment:
		return "id_and_payment"
	case StageRoomPreferences:
		return "room_preferences"
	case StageInfoAndClosing:
		return "info_and_closing"
	case StageOptionalIssues:
		return "optional_issues"
	default:
		return "unknown"
	}
}

// SimulatorIntent is the classified intent of a roleplay utterance. Several
// of these are only reachable during specific stages.
type SimulatorIntent string

const (
	SimIntentCheckIn            SimulatorIntent = "check_in"
	SimIntentAskRoom            SimulatorIntent = "ask_room"
	SimIntentRequestView        SimulatorIntent = "request_view"
	SimIntentAskCheckoutTime    SimulatorIntent = "ask_checkout_time"
	SimIntentProvideName        SimulatorIntent = "provide_name"
	SimIntentProvideReservation SimulatorIntent = "provide_reservation"
	SimIntentProvideDates       SimulatorIntent = "provide_dates"
	SimIntentProvideID          SimulatorIntent = "provide_id"
	SimIntentProvidePayment     SimulatorIntent = "provide_payment"
	SimIntentRequestSpecial     SimulatorIntent = "request_special"
	SimIntentConfusion          SimulatorIntent = "confusion"
	SimIntentOffTopic           SimulatorIntent = "off_topic"
	SimIntentAskForTeaching     SimulatorIntent = "ask_for_teaching"
	SimIntentRudeUnsafe         SimulatorIntent = "rude_unsafe"
	SimIntentGreeting           SimulatorIntent = "greeting"
	SimIntentThanks             SimulatorIntent = "thanks"
)

// RoomPreferences holds the stage-4 choices.
type RoomPreferences struct {
	View    string `json:"view"`
	Bed     string `json:"bed"`
	Smoking string `json:"smoking"`
}

// Slots is the closed record of values collected during the roleplay.
// Reservation is tri-state: nil means "not asked yet".
type Slots struct {
	Name          string          `json:"name"`
	Reservation   *bool           `json:"reservation"`
	Dates         string          `json:"dates"`
	IDConfirmed   bool            `json:"id_confirmed"`
	PaymentMethod string          `json:"payment_method"`
	Preferences   RoomPreferences `json:"preferences"`
}

// SimulatorFlags records soft signals observed during the conversation.
type SimulatorFlags struct {
	UserConfused          bool `json:"user_confused"`
	UserRequestedTeaching bool `json:"user_requested_teaching"`
	ShowMiniFeedback      bool `json:"show_mini_feedback"`
	ConversationStarted   bool `json:"conversation_started"`
}

// SimulatorState is the mutable per-session record for roleplay mode.
type SimulatorState struct {
	Mode             string          `json:"mode"`
	Theme            string          `json:"theme"`
	Role             string          `json:"role"`
	Stage            Stage           `json:"stage"`
	LanguageMode     LanguageMode    `json:"language_mode"`
	LastUserIntent   SimulatorIntent `json:"last_user_intent"`
	LastRequiredSlot string          `json:"last_required_slot"`
	Slots            Slots           `json:"slots"`
	Flags            SimulatorFlags  `json:"flags"`
}

// NewSimulatorState creates a fresh roleplay session for the given theme.
func NewSimulatorState(theme string) *SimulatorState {
	if theme == "" {
		theme = "hotel"
	}
	return &SimulatorState{
		Mode:             "simulator",
		Theme:            theme,
		Role:             "front_desk",
		Stage:            StageGreeting,
		LanguageMode:     LanguageEN,
		LastRequiredSlot: "name",
	}
}
