package learning

import "github.com/aprenda/tutor/pkg/domain"

// IsLoopRisk reports whether the session is about to repeat itself: either
// the loop counter crossed the threshold or the "choose_question" phrase has
// already been used.
func IsLoopRisk(state *domain.SessionState) bool {
	if state.Safety.LoopCounter >= 2 {
		return true
	}
	total := 0
	for _, n := range state.Safety.RepeatedBotPhrases["choose_question"] {
		total += n
	}
	return total >= 1
}

// RecoverFromLoop resets the loop counter and returns an apology that jumps
// straight back to the current practice prompt. This is a hard override: it
// bypasses the policy engine entirely for the turn.
func (e *Engine) RecoverFromLoop(spec *domain.LessonSpec, state *domain.SessionState) string {
	state.Safety.LoopCounter = 0
	mode := state.StudentPref.LanguageMode

	base := formatBilingual(
		"Foi mal — vou seguir a conversa com você direitinho agora 😊",
		"",
		"Vamos voltar pro exercício sem botões nem etapas.",
		mode,
	)
	promptPT, promptEN := currentPrompt(spec, state.StepIndex)
	q := formatBilingual(promptPT, promptEN, "", mode)
	return FinalizeTurn(base, q, spec)
}

// currentPrompt returns the practice prompt for the active micro-goal, with
// the generic fallback used whenever the lesson data is missing pieces.
func currentPrompt(spec *domain.LessonSpec, stepIndex int) (pt, en string) {
	goal := spec.GoalAt(stepIndex)
	if goal != nil && len(goal.PracticePrompts) > 0 {
		p := goal.PracticePrompts[0]
		pt, en = p.PT, p.TargetENHint
	}
	if pt == "" {
		pt = "Como você está?"
	}
	if en == "" {
		en = "I am ___."
	}
	return pt, en
}
