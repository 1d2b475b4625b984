package domain

// Phase tracks where the student is inside a lesson.
type Phase string

const (
	PhaseIntro    Phase = "INTRO"
	PhaseTeach    Phase = "TEACH"
	PhasePractice Phase = "PRACTICE"
	PhaseFeedback Phase = "FEEDBACK"
	PhaseReview   Phase = "REVIEW"
)

// Intent is the classified intent of a learning-mode utterance.
type Intent string

const (
	IntentGreetingOrThanks       Intent = "greeting_or_thanks"
	IntentMetaUnderstanding      Intent = "meta_understanding"
	IntentAskBotOpinion          Intent = "ask_bot_opinion"
	IntentAskGrammarHelp         Intent = "ask_grammar_help"
	IntentStudentAnswer          Intent = "student_answer"
	IntentConfusionOrFrustration Intent = "confusion_or_frustration"
	IntentOffTopic               Intent = "off_topic"
	IntentRequestLanguageMode    Intent = "request_language_mode"
	IntentRequestStopOrChange    Intent = "request_stop_or_change"
)

// ActionName is the closed set of policy outcomes. Adding an action means
// adding a constant here and a case to the dispatcher; there is no string
// branching anywhere else.
type ActionName string

const (
	ActionAnswerQuestionThenReturn ActionName = "answer_student_question_then_return_to_lesson"
	ActionDeescalateClarifyRepair  ActionName = "deescalate_clarify_and_repair"
	ActionSetLanguageMode          ActionName = "set_language_mode"
	ActionAckAndRedirect           ActionName = "ack_and_redirect_to_practice"
	ActionEvaluateAndFeedback      ActionName = "evaluate_and_feedback"
	ActionGentleRedirect           ActionName = "gentle_redirect"
	ActionOfferOptions             ActionName = "offer_options"
)

// StudentPref records the student's standing preferences for the session.
type StudentPref struct {
	LanguageMode        LanguageMode `json:"language_mode"`
	WantsCorrections    bool         `json:"wants_corrections"`
	WantsPortugueseHelp bool         `json:"wants_portuguese_help"`
}

// Safety carries the anti-loop counters. RepeatedBotPhrases maps a variant
// key to per-variant usage counts; LastBotIntents keeps the three most
// recent bot intents.
type Safety struct {
	LoopCounter        int                       `json:"loop_counter"`
	RepeatedBotPhrases map[string]map[string]int `json:"repeated_bot_phrase_counter"`
	LastBotIntents     []string                  `json:"last_3_bot_intents"`
}

// SessionState is the mutable per-student record for learning mode.
// The orchestrator mutates it in place on every turn; persistence across
// requests belongs to the hosting layer's keyed store.
type SessionState struct {
	StepIndex         int         `json:"step_index"`
	Phase             Phase       `json:"phase"`
	LastBotQuestion   string      `json:"last_bot_question"`
	LastTarget        string      `json:"last_target"`
	LastStudentIntent string      `json:"last_student_intent"`
	IsLearningMode    bool        `json:"is_learning_mode"`
	IsFirstMessage    bool        `json:"is_first_message"`
	TopicName         string      `json:"topic_name"`
	StudentPref       StudentPref `json:"student_pref"`
	Safety            Safety      `json:"safety"`
}

// NewSessionState creates a fresh learning session at the intro phase.
func NewSessionState() *SessionState {
	return &SessionState{
		Phase:          PhaseIntro,
		IsLearningMode: true,
		IsFirstMessage: true,
		StudentPref: StudentPref{
			LanguageMode:        LanguageBilingual,
			WantsCorrections:    true,
			WantsPortugueseHelp: true,
		},
		Safety: Safety{
			RepeatedBotPhrases: make(map[string]map[string]int),
		},
	}
}
