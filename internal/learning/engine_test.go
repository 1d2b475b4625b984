package learning

import (
	"strings"
	"testing"

	"github.com/aprenda/tutor/pkg/domain"
)

func testSpec() *domain.LessonSpec {
	return &domain.LessonSpec{
		TopicID:      "verb_to_be",
		TitlePT:      "Verbo To Be",
		Level:        "beginner",
		LanguageMode: domain.LanguageBilingual,
		MicroGoals:   []domain.MicroGoal{*toBeIAmGoal()},
		Constraints:  domain.DefaultConstraints(),
	}
}

func TestEngine_FirstMessageAlwaysIntroduces(t *testing.T) {
	e := New()
	spec := testSpec()

	// Whatever the first utterance is, the reply is the introduction.
	for _, text := range []string{"oi", "qual a capital da frança?", ""} {
		state := domain.NewSessionState()
		reply := e.OnStudentMessage(text, spec, state)

		if !strings.Contains(reply, spec.TitlePT) {
			t.Errorf("Intro for %q must name the topic, got %q", text, reply)
		}
		if state.IsFirstMessage {
			t.Error("IsFirstMessage must flip after the intro")
		}
		if state.Phase != domain.PhasePractice {
			t.Errorf("Expected PRACTICE phase, got %q", state.Phase)
		}
	}
}

func TestEngine_SecondTurnIsNotIntro(t *testing.T) {
	e := New()
	spec := testSpec()
	state := domain.NewSessionState()

	first := e.OnStudentMessage("oi", spec, state)
	second := e.OnStudentMessage("oi", spec, state)
	if second == first {
		t.Error("Second greeting must not repeat the introduction")
	}
	if !strings.Contains(first, "Você escolheu Aprendizado") {
		t.Errorf("Intro text missing, got %q", first)
	}
}

// Every post-intro turn must end with the appended question block.
func TestEngine_TurnsEndWithQuestion(t *testing.T) {
	e := New()
	spec := testSpec()

	utterances := []string{
		"thanks", "what do you think?", "você não respondeu",
		"I am happy", "qual a capital da frança?",
		"como fala feliz em inglês?",
	}
	for _, text := range utterances {
		state := domain.NewSessionState()
		state.IsFirstMessage = false
		reply := e.OnStudentMessage(text, spec, state)

		tail := reply
		if len(tail) > 160 {
			tail = tail[len(tail)-160:]
		}
		if !strings.Contains(tail, "?") {
			t.Errorf("Reply to %q does not end with a question: %q", text, reply)
		}
	}
}

func TestEngine_OffTopicForcesRedirect(t *testing.T) {
	e := New()
	spec := testSpec()
	state := domain.NewSessionState()
	state.IsFirstMessage = false

	reply := e.OnStudentMessage("qual a capital da frança?", spec, state)

	if !strings.Contains(reply, spec.TitlePT) {
		t.Errorf("Off-topic redirect must name the topic, got %q", reply)
	}
	if state.LastStudentIntent != string(domain.IntentOffTopic) {
		t.Errorf("Expected off_topic intent recorded, got %q", state.LastStudentIntent)
	}
}

func TestEngine_LoopRecovery(t *testing.T) {
	e := New()
	spec := testSpec()
	state := domain.NewSessionState()
	state.IsFirstMessage = false
	state.Safety.LoopCounter = 2

	reply := e.OnStudentMessage("I am happy", spec, state)

	if !strings.Contains(reply, "Foi mal") {
		t.Errorf("Expected the recovery apology, got %q", reply)
	}
	if state.Safety.LoopCounter != 0 {
		t.Errorf("Loop counter must reset, got %d", state.Safety.LoopCounter)
	}
	if !strings.Contains(reply, "Como você está hoje?") {
		t.Errorf("Recovery must re-ask the current prompt, got %q", reply)
	}

	// The next turn goes back through the normal policy path.
	next := e.OnStudentMessage("I am happy", spec, state)
	if strings.Contains(next, "Foi mal") {
		t.Errorf("Recovery must not repeat once the counter is reset, got %q", next)
	}
}

func TestEngine_LoopRiskFromRepeatedPhrase(t *testing.T) {
	state := domain.NewSessionState()
	state.Safety.RepeatedBotPhrases["choose_question"] = map[string]int{"q1": 1}
	if !IsLoopRisk(state) {
		t.Error("A used choose_question phrase must count as loop risk")
	}
}

func TestEngine_AnswerFeedback(t *testing.T) {
	e := New()
	spec := testSpec()

	t.Run("Correct answer gets praise", func(t *testing.T) {
		state := domain.NewSessionState()
		state.IsFirstMessage = false
		reply := e.OnStudentMessage("I am happy", spec, state)
		if !strings.Contains(reply, "[EN]I am happy[/EN]") {
			t.Errorf("Expected the produced sentence echoed, got %q", reply)
		}
	})

	t.Run("Missing be gets corrected", func(t *testing.T) {
		state := domain.NewSessionState()
		state.IsFirstMessage = false
		reply := e.OnStudentMessage("I happy", spec, state)
		if !strings.Contains(reply, "Faltou o 'am'") {
			t.Errorf("Expected the missing-be tip, got %q", reply)
		}
		if !strings.Contains(reply, "I am ___") {
			t.Errorf("Expected a fill-in exercise, got %q", reply)
		}
	})
}

func TestEngine_LanguageModeSwitch(t *testing.T) {
	e := New()
	spec := testSpec()

	t.Run("Portuguese", func(t *testing.T) {
		state := domain.NewSessionState()
		state.IsFirstMessage = false
		reply := e.OnStudentMessage("pode falar só em português?", spec, state)
		if state.StudentPref.LanguageMode != domain.LanguagePT {
			t.Errorf("Expected pt mode, got %q", state.StudentPref.LanguageMode)
		}
		if !strings.Contains(reply, "só em português") {
			t.Errorf("Expected PT confirmation, got %q", reply)
		}
	})

	t.Run("English", func(t *testing.T) {
		state := domain.NewSessionState()
		state.IsFirstMessage = false
		e.OnStudentMessage("only english please, so ingles", spec, state)
		if state.StudentPref.LanguageMode != domain.LanguageEN {
			t.Errorf("Expected en mode, got %q", state.StudentPref.LanguageMode)
		}
	})
}

func TestEngine_StopOrChangeOffersOptions(t *testing.T) {
	e := New()
	spec := testSpec()
	state := domain.NewSessionState()
	state.IsFirstMessage = false

	reply := e.OnStudentMessage("quero mudar tema", spec, state)
	for _, opt := range []string{"1)", "2)", "3)"} {
		if !strings.Contains(reply, opt) {
			t.Errorf("Expected option %q in %q", opt, reply)
		}
	}
}

func TestEngine_ValidateAndFinalize(t *testing.T) {
	e := New()
	spec := testSpec()

	got := e.ValidateAndFinalize("some model output", spec)
	if !strings.Contains(got, "Como você está hoje?") {
		t.Errorf("Expected the appended practice question, got %q", got)
	}

	if got := e.ValidateAndFinalize("raw", nil); got != "raw" {
		t.Errorf("Nil spec must pass text through, got %q", got)
	}
}
