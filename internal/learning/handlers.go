package learning

import (
	"fmt"
	"strings"

	"github.com/aprenda/tutor/internal/textutil"
	"github.com/aprenda/tutor/pkg/domain"
)

// All handlers follow the same contract: compose a bilingual body, always
// resume the lesson topic, and route through FinalizeTurn so the turn ends
// with a question. Mutation is limited to the safety counters (pickVariant)
// and, for the language-mode handler, the student preference.

// handleQuestion answers one of the three question intents, then re-displays
// the current micro-goal's example and practice prompt. Answer-then-resume
// is non-negotiable.
func (e *Engine) handleQuestion(intent domain.Intent, _ string, spec *domain.LessonSpec, state *domain.SessionState) string {
	mode := state.StudentPref.LanguageMode
	goal := spec.GoalAt(state.StepIndex)

	switch intent {
	case domain.IntentMetaUnderstanding:
		guess := "Você respondeu de forma educada e eu gostei disso."
		base := formatBilingual(
			fmt.Sprintf("Entendi sim 👍 %s", guess),
			"",
			fmt.Sprintf("E já estamos praticando exatamente isso no tema %s.", spec.TitlePT),
			mode,
		)
		base = appendExample(base, goal, "Quando você diz como está, em inglês fica:", mode)
		q := promptQuestion(goal, mode,
			"Agora tente: como você está hoje?",
			"Now try: How are you today? Say: I am ___.")
		return FinalizeTurn(base, q, spec)

	case domain.IntentAskBotOpinion:
		base := formatBilingual(
			"Boa! Eu também respondo 😊",
			"I am good today. I am a bit tired.",
			fmt.Sprintf("E já estamos praticando exatamente isso no tema %s.", spec.TitlePT),
			mode,
		)
		base = appendExample(base, goal, "Quando você diz como está, em inglês fica:", mode)
		q := promptQuestion(goal, mode,
			"Agora é sua vez: como está hoje?",
			"Now your turn: How are you today? Say: I am ___.")
		return FinalizeTurn(base, q, spec)

	case domain.IntentAskGrammarHelp:
		var base string
		if goal != nil {
			rule := goal.RulePT
			if rule == "" {
				rule = "usamos o verbo 'to be' antes do adjetivo"
			}
			ruleEN := goal.RulePT
			if ruleEN == "" {
				ruleEN = "I am + adjective."
			}
			base = formatBilingual(
				fmt.Sprintf("Claro! A regra aqui é simples: %s.", rule),
				ruleEN,
				"",
				mode,
			)
			for i, ex := range goal.Examples {
				if i >= 2 {
					break
				}
				base += "\n" + formatBilingual("Ex.:", ex.EN, "", mode)
			}
		} else {
			base = formatBilingual(
				"Claro! A regra aqui é simples: usamos o verbo 'to be' antes do adjetivo.",
				"I am + adjective. / You are + adjective.",
				"Ex.: I am happy. / You are tired.",
				mode,
			)
		}
		q := promptQuestion(goal, mode,
			"Agora tente uma: 'Eu estou feliz' em inglês 😊",
			"Now try: 'I am happy.'")
		return FinalizeTurn(base, q, spec)
	}

	// Unreachable via the policy table; kept total.
	return formatBilingual(
		fmt.Sprintf("Entendi sua pergunta! Vamos continuar praticando %s.", spec.TitlePT),
		"I understand! Let's continue practicing.",
		"",
		mode,
	)
}

// handleFrustration de-escalates and repairs, always naming the lesson topic.
func (e *Engine) handleFrustration(studentText string, spec *domain.LessonSpec, state *domain.SessionState) string {
	mode := state.StudentPref.LanguageMode
	norm := textutil.Normalize(studentText)

	goal := spec.GoalAt(0)
	if textutil.ContainsAny(norm, "já sabe", "já tá", "já estamos", "dentro de um tema", "tema") {
		// The student is questioning whether the tutor knows the topic:
		// confirm it and resume.
		base := formatBilingual(
			fmt.Sprintf("Isso mesmo 😊 Estamos no tema %s, e eu vou te guiar passo a passo.", spec.TitlePT),
			"",
			fmt.Sprintf("Vamos continuar praticando %s.", spec.TitlePT),
			mode,
		)
		base = appendExample(base, goal, "Lembra:", mode)
		q := promptQuestion(goal, mode, "Vamos continuar 👇", "Let's continue:")
		return FinalizeTurn(base, q, spec)
	}

	base := formatBilingual(
		fmt.Sprintf("Entendi 🙏 Vamos ajustar isso rapidinho. Estamos no tema %s, e eu vou te guiar passo a passo.", spec.TitlePT),
		"",
		fmt.Sprintf("Vamos continuar praticando %s.", spec.TitlePT),
		mode,
	)
	q := promptQuestion(goal, mode, "Vamos continuar 👇", "Let's continue:")
	return FinalizeTurn(base, q, spec)
}

// handleThanksOrGreeting acknowledges and redirects to practice.
func (e *Engine) handleThanksOrGreeting(spec *domain.LessonSpec, state *domain.SessionState) string {
	mode := state.StudentPref.LanguageMode
	ackPT := pickVariant("ack", []string{"De nada 😊", "Imagina! 😊", "Sempre! 😊"}, state)
	ackEN := pickVariant("ack_en", []string{"You're welcome 😊", "No problem 😊", "Anytime 😊"}, state)

	if state.IsLearningMode {
		goal := spec.GoalAt(state.StepIndex)
		if goal != nil && len(goal.PracticePrompts) > 0 {
			base := formatBilingual(
				fmt.Sprintf("%s Então vamos usar isso no %s.", ackPT, spec.TitlePT),
				"",
				"Quando você quer dizer como está, usamos o verbo to be.",
				mode,
			)
			base = appendExample(base, goal, "Exemplo:", mode)
			p := goal.PracticePrompts[0]
			q := formatBilingual(orDefault(p.PT, "Como você está hoje?"), orDefault(p.TargetENHint, "I am ___."), "", mode)
			return FinalizeTurn(base, q, spec)
		}
	}

	base := formatBilingual(ackPT, ackEN, "", mode)
	q := formatBilingual(
		"Vamos praticar: como você está hoje?",
		"Let's practice: How are you today? Say: I am ___.",
		"", mode,
	)
	return FinalizeTurn(base, q, spec)
}

// handleStudentAnswer evaluates the attempt and gives feedback, branching on
// whether a grammar error was detected.
func (e *Engine) handleStudentAnswer(studentText string, spec *domain.LessonSpec, state *domain.SessionState) string {
	mode := state.StudentPref.LanguageMode
	goal := spec.LastGoalAt(state.StepIndex)
	if goal == nil {
		return formatBilingual(
			fmt.Sprintf("Vamos continuar praticando %s!", spec.TitlePT),
			"Let's continue practicing!",
			"", mode,
		)
	}

	result := e.EvaluateAnswer(studentText, goal)
	confirmPT := fmt.Sprintf("Perfeito, entendi 👍 Você quer dizer que %s.", result.Meaning)

	if len(result.Errors) == 0 {
		praisePT := pickVariant("praise", []string{"Muito bom!", "Excelente!", "Boa!", "Mandou bem!"}, state)
		producedEN := result.ProducedEN
		if producedEN == "" {
			producedEN = "I am " + result.Meaning
		}
		base := formatBilingual(
			praisePT+" "+confirmPT,
			producedEN,
			fmt.Sprintf("E já estamos praticando exatamente isso no tema %s.", spec.TitlePT),
			mode,
		)
		q := promptQuestion(goal, mode,
			"Agora vamos fazer mais uma bem parecida. Como você está?",
			"I am ___.")
		return FinalizeTurn(base, q, spec)
	}

	// Correct only the first detected error, then return to the topic.
	errInfo := result.Errors[0]
	praisePT := pickVariant("praise2", []string{"Muito bom!", "Boa tentativa!", "Tá indo bem!"}, state)
	base := formatBilingual(
		praisePT+" "+confirmPT,
		errInfo.Fix,
		errInfo.TipPT+" Vamos tentar de novo rapidinho 😊",
		mode,
	)
	q := formatBilingual(
		"Agora tente montar a frase comigo 😊",
		"Now try to build the sentence with me:",
		"", mode,
	)
	if len(goal.Examples) > 0 {
		q += "\n" + formatBilingual("Complete:", blankLastWord(goal.Examples[0].EN), "", mode)
	}
	if mode == domain.LanguageBilingual {
		q += "\n" + outEN(errInfo.Fix+".")
	}
	return FinalizeTurn(base, q, spec)
}

// handleOffTopic gently redirects to the topic. In learning mode this path
// is forced even when the classifier came up with something else upstream.
func (e *Engine) handleOffTopic(spec *domain.LessonSpec, state *domain.SessionState) string {
	mode := state.StudentPref.LanguageMode
	base := formatBilingual(
		fmt.Sprintf("Tranquilo 😊 Estamos no tema %s, e eu vou te guiar passo a passo.", spec.TitlePT),
		"",
		fmt.Sprintf("Vamos continuar praticando %s.", spec.TitlePT),
		mode,
	)
	goal := spec.GoalAt(state.StepIndex)
	base = appendExample(base, goal, "Lembra:", mode)
	promptPT, promptEN := currentPrompt(spec, state.StepIndex)
	q := formatBilingual(promptPT, promptEN, "", mode)
	return FinalizeTurn(base, q, spec)
}

// handleSetLanguageMode switches the student's language preference and
// resumes the lesson in the new mode.
func (e *Engine) handleSetLanguageMode(studentText string, spec *domain.LessonSpec, state *domain.SessionState) string {
	norm := textutil.Normalize(studentText)

	newMode := domain.LanguageBilingual
	switch {
	case strings.Contains(norm, "português") || strings.Contains(norm, "portugues"):
		newMode = domain.LanguagePT
	case strings.Contains(norm, "inglês") || strings.Contains(norm, "ingles") || strings.Contains(norm, "english"):
		newMode = domain.LanguageEN
	}
	state.StudentPref.LanguageMode = newMode
	mode := newMode

	var base string
	switch newMode {
	case domain.LanguagePT:
		base = fmt.Sprintf("Fechado! Vou falar só em português e usar inglês só nos exemplos.\n\nVamos continuar com o tema %s.", spec.TitlePT)
	case domain.LanguageEN:
		base = outEN(fmt.Sprintf("Great! We'll use English only (I can keep it simple).\n\nLet's continue with %s.", spec.TitlePT))
	default:
		base = fmt.Sprintf("Perfeito! Vamos em modo bilíngue: explico em PT e praticamos em EN.\n%s\n\nVamos continuar com o tema %s.",
			outEN("Let's practice in English."), spec.TitlePT)
	}

	goal := spec.GoalAt(state.StepIndex)
	base = appendExample(base, goal, "Lembra:", mode)
	promptPT, promptEN := currentPrompt(spec, state.StepIndex)
	q := formatBilingual(promptPT, promptEN, "", mode)
	return FinalizeTurn(base, q, spec)
}

// handleStopOrChange offers the student explicit options.
func (e *Engine) handleStopOrChange(spec *domain.LessonSpec, state *domain.SessionState) string {
	mode := state.StudentPref.LanguageMode
	base := formatBilingual(
		fmt.Sprintf("Sem problema 😊 Estamos no tema %s. O que você prefere agora?", spec.TitlePT),
		"",
		fmt.Sprintf("1) Continuar mais 2 perguntas do tema %s. 2) Trocar de tema. 3) Revisar do zero.", spec.TitlePT),
		mode,
	)
	q := formatBilingual("Responde com 1, 2 ou 3.", "Reply with 1, 2, or 3.", "", mode)
	return FinalizeTurn(base, q, spec)
}

// IntroMessage is the unconditional first-turn opening. It always names the
// chosen topic, shows the first example, and closes with a practice prompt.
func (e *Engine) IntroMessage(spec *domain.LessonSpec, state *domain.SessionState) string {
	mode := state.StudentPref.LanguageMode
	goal := spec.GoalAt(0)

	intro := fmt.Sprintf("Oi 😊\nVocê escolheu Aprendizado – %s.\nHoje vamos usar o %s para falar de como estamos nos sentindo.",
		spec.TitlePT, spec.TitlePT)

	exampleText := ""
	if goal != nil && len(goal.Examples) > 0 {
		ex := goal.Examples[0]
		exampleText = fmt.Sprintf("\n\nPor exemplo:\n%s → %s", outEN(orDefault(ex.EN, "I am happy.")), orDefault(ex.PT, "Eu estou feliz."))
	}

	var question string
	if goal != nil && len(goal.PracticePrompts) > 0 {
		p := goal.PracticePrompts[0]
		question = formatBilingual(orDefault(p.PT, "Como você está hoje?"), orDefault(p.TargetENHint, "I am ___."), "", mode)
	} else {
		question = formatBilingual("Como você está hoje?", "How are you today? Say: I am ___.", "", mode)
	}

	state.IsFirstMessage = false
	state.Phase = domain.PhasePractice

	return intro + exampleText + "\n\nAgora vamos praticar juntos 👇\n" + question
}

// appendExample appends the goal's first example under the given lead-in.
func appendExample(base string, goal *domain.MicroGoal, leadPT string, mode domain.LanguageMode) string {
	if goal == nil || len(goal.Examples) == 0 {
		return base
	}
	return base + "\n" + formatBilingual(leadPT, goal.Examples[0].EN, "", mode)
}

// promptQuestion builds the follow-up question from the goal's first
// practice prompt, falling back to the provided defaults.
func promptQuestion(goal *domain.MicroGoal, mode domain.LanguageMode, fallbackPT, fallbackEN string) string {
	if goal != nil && len(goal.PracticePrompts) > 0 {
		p := goal.PracticePrompts[0]
		return formatBilingual(orDefault(p.PT, fallbackPT), orDefault(p.TargetENHint, "I am ___."), "", mode)
	}
	return formatBilingual(fallbackPT, fallbackEN, "", mode)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// blankLastWord replaces the final word of a sentence with a blank, turning
// an example into a fill-in exercise.
func blankLastWord(sentence string) string {
	fields := strings.Fields(sentence)
	if len(fields) == 0 {
		return sentence
	}
	last := fields[len(fields)-1]
	return strings.Replace(sentence, last, "___", 1)
}
