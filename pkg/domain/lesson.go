package domain

// LanguageMode controls which language the tutor uses when composing a turn.
type LanguageMode string

const (
	LanguagePT        LanguageMode = "pt"
	LanguageEN        LanguageMode = "en"
	LanguageBilingual LanguageMode = "bilingual"
)

// ParseLanguageMode maps a raw string to a LanguageMode, defaulting to bilingual.
func ParseLanguageMode(s string) LanguageMode {
	switch LanguageMode(s) {
	case LanguagePT, LanguageEN, LanguageBilingual:
		return LanguageMode(s)
	default:
		return LanguageBilingual
	}
}

// Example is a sentence pair shown to the student.
type Example struct {
	EN string `json:"en" yaml:"en"`
	PT string `json:"pt" yaml:"pt"`
}

// PracticePrompt is a guided exercise: a Portuguese cue plus the English
// skeleton the student is expected to produce.
type PracticePrompt struct {
	PT           string `json:"pt" yaml:"pt"`
	TargetENHint string `json:"target_en_hint" yaml:"target_en_hint"`
}

// CommonError describes a known mistake pattern for a micro-goal and its fix.
type CommonError struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Fix     string `json:"fix" yaml:"fix"`
	TipPT   string `json:"tip_pt" yaml:"tip_pt"`
}

// MicroGoal is one teachable unit of a lesson. Read-only during a turn.
type MicroGoal struct {
	ID              string           `json:"id" yaml:"id"`
	ExplanationPT   string           `json:"explanation_pt" yaml:"explanation_pt"`
	RulePT          string           `json:"rule_pt" yaml:"rule_pt"`
	Examples        []Example        `json:"examples" yaml:"examples"`
	PracticePrompts []PracticePrompt `json:"practice_prompts" yaml:"practice_prompts"`
	CommonErrors    []CommonError    `json:"common_errors" yaml:"common_errors"`
}

// Constraints bound the shape of every generated turn.
type Constraints struct {
	MaxLinesBeforeQuestion    int    `json:"max_lines_before_question" yaml:"max_lines_before_question"`
	AllowPortugueseCorrection bool   `json:"allow_portuguese_correction" yaml:"allow_portuguese_correction"`
	CorrectionStyle           string `json:"correction_style" yaml:"correction_style"`
	EndTurnMustAskQuestion    bool   `json:"end_turn_must_ask_question" yaml:"end_turn_must_ask_question"`
}

// DefaultConstraints returns the constraint set applied when a topic record
// does not carry its own.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxLinesBeforeQuestion:    4,
		AllowPortugueseCorrection: false,
		CorrectionStyle:           "minimal",
		EndTurnMustAskQuestion:    true,
	}
}

// LessonSpec is the immutable lesson definition for one topic. It is built
// once per request cycle and never mutated by the orchestrator.
type LessonSpec struct {
	TopicID      string       `json:"topic_id" yaml:"topic_id"`
	TitlePT      string       `json:"title_pt" yaml:"title_pt"`
	Level        string       `json:"level" yaml:"level"`
	LanguageMode LanguageMode `json:"language_mode" yaml:"language_mode"`
	MicroGoals   []MicroGoal  `json:"micro_goals" yaml:"micro_goals"`
	Constraints  Constraints  `json:"constraints" yaml:"constraints"`
}

// GoalAt returns the micro-goal for the given step index, guarding against
// out-of-range indexes by falling back to the first goal. Returns nil only
// when the lesson has no goals at all.
func (ls *LessonSpec) GoalAt(stepIndex int) *MicroGoal {
	if len(ls.MicroGoals) == 0 {
		return nil
	}
	if stepIndex >= 0 && stepIndex < len(ls.MicroGoals) {
		return &ls.MicroGoals[stepIndex]
	}
	return &ls.MicroGoals[0]
}

// LastGoalAt behaves like GoalAt but falls back to the last goal instead of
// the first. Answer evaluation treats a step index past the end as "still on
// the final goal".
func (ls *LessonSpec) LastGoalAt(stepIndex int) *MicroGoal {
	if len(ls.MicroGoals) == 0 {
		return nil
	}
	if stepIndex >= 0 && stepIndex < len(ls.MicroGoals) {
		return &ls.MicroGoals[stepIndex]
	}
	return &ls.MicroGoals[len(ls.MicroGoals)-1]
}
