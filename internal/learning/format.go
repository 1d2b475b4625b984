package learning

import (
	"strings"

	"github.com/aprenda/tutor/pkg/domain"
)

// outEN wraps English text in the [EN] tags the hosting layer uses to route
// text-to-speech voices.
func outEN(s string) string {
	return "[EN]" + s + "[/EN]"
}

// formatBilingual composes a message from a Portuguese lead, an optional
// English line, and an optional Portuguese follow-up, honoring the session's
// language mode. Empty strings mean "no such part".
func formatBilingual(pt, en, pt2 string, mode domain.LanguageMode) string {
	switch mode {
	case domain.LanguagePT:
		result := pt
		if pt2 != "" {
			result += " " + pt2
		}
		return result
	case domain.LanguageEN:
		if en != "" {
			return en
		}
		return outEN(pt)
	default: // bilingual
		msg := pt
		if en != "" {
			msg += "\n" + outEN(en)
		}
		if pt2 != "" {
			msg += "\n" + pt2
		}
		return msg
	}
}

// FinalizeTurn is the single choke point every handler routes through:
// it truncates the body to the lesson's line budget and unconditionally
// appends the follow-up question when the constraints require one.
func FinalizeTurn(text, question string, spec *domain.LessonSpec) string {
	lines := strings.Split(text, "\n")
	maxLines := spec.Constraints.MaxLinesBeforeQuestion
	if maxLines > 0 && len(lines) > maxLines {
		text = strings.Join(lines[:maxLines], "\n")
	}
	if spec.Constraints.EndTurnMustAskQuestion {
		return text + "\n" + question
	}
	return text
}
