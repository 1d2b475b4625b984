package learning

import (
	"regexp"

	"github.com/aprenda/tutor/internal/textutil"
	"github.com/aprenda/tutor/pkg/domain"
)

// AnswerError is one detected mistake in a student attempt.
type AnswerError struct {
	Type  string
	Fix   string
	TipPT string
}

// Evaluation is the outcome of judging one student answer.
type Evaluation struct {
	Meaning    string
	ProducedEN string
	Errors     []AnswerError
}

// emotionEntries is an ordered vocabulary: English keys map to Portuguese
// meanings, Portuguese keys map to themselves. Order matters because the
// first hit wins.
var emotionEntries = []struct {
	word    string
	meaning string
}{
	{"happy", "feliz"},
	{"tired", "cansado"},
	{"sad", "triste"},
	{"excited", "animado"},
	{"good", "bem"},
	{"bad", "mal"},
	{"feliz", "feliz"},
	{"cansado", "cansado"},
	{"triste", "triste"},
	{"animado", "animado"},
}

// DefaultMeaningFallback labels anything outside the closed emotion
// vocabulary. Known to be coarse; configurable via WithMeaningFallback.
const DefaultMeaningFallback = "algo positivo"

func (e *Engine) inferMeaning(text string) string {
	norm := textutil.Normalize(text)
	for _, entry := range emotionEntries {
		if textutil.HasToken(norm, entry.word) {
			return entry.meaning
		}
	}
	return e.meaningFallback
}

// Attempt patterns run against normalized text, so the contraction "I'm X"
// arrives here as "i m x". First match wins, reconstructed as "I am X".
var attemptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bi\s+am\s+(\w+)`),
	regexp.MustCompile(`\bi\s+m\s+(\w+)`),
	regexp.MustCompile(`\bi\s+(\w+)`),
}

func extractEnglishAttempt(text string) string {
	norm := textutil.Normalize(text)
	for _, p := range attemptPatterns {
		if m := p.FindStringSubmatch(norm); m != nil {
			return "I am " + m[1]
		}
	}
	return ""
}

var missingBePattern = regexp.MustCompile(`\bi\s+(happy|tired|sad|good|bad|excited)\b`)

// EvaluateAnswer judges a student answer against the current micro-goal.
// Only the to_be_i_am goal carries rule-based error detection today; other
// goals go through with an empty error list.
func (e *Engine) EvaluateAnswer(studentText string, goal *domain.MicroGoal) Evaluation {
	ev := Evaluation{
		Meaning:    e.inferMeaning(studentText),
		ProducedEN: extractEnglishAttempt(studentText),
	}

	if goal != nil && goal.ID == "to_be_i_am" {
		norm := textutil.Normalize(studentText)
		if missingBePattern.MatchString(norm) {
			ev.Errors = append(ev.Errors, AnswerError{
				Type:  "missing_be",
				Fix:   "I am " + ev.Meaning,
				TipPT: "Faltou o 'am' depois de 'I'.",
			})
		}
	}
	return ev
}
