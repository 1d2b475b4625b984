package learning

import (
	"strings"
	"testing"

	"github.com/aprenda/tutor/pkg/domain"
)

func specWithConstraints(c domain.Constraints) *domain.LessonSpec {
	return &domain.LessonSpec{
		TopicID:      "verb_to_be",
		TitlePT:      "Verbo To Be",
		LanguageMode: domain.LanguageBilingual,
		MicroGoals:   []domain.MicroGoal{*toBeIAmGoal()},
		Constraints:  c,
	}
}

func TestFinalizeTurn_TruncatesAndAppendsQuestion(t *testing.T) {
	spec := specWithConstraints(domain.Constraints{
		MaxLinesBeforeQuestion: 4,
		EndTurnMustAskQuestion: true,
	})

	got := FinalizeTurn("line1\nline2\nline3\nline4\nline5", "What now?", spec)
	want := "line1\nline2\nline3\nline4\nWhat now?"
	if got != want {
		t.Errorf("FinalizeTurn = %q, want %q", got, want)
	}
}

func TestFinalizeTurn_NoQuestionWhenNotRequired(t *testing.T) {
	spec := specWithConstraints(domain.Constraints{
		MaxLinesBeforeQuestion: 4,
		EndTurnMustAskQuestion: false,
	})

	got := FinalizeTurn("body", "What now?", spec)
	if got != "body" {
		t.Errorf("Expected body untouched, got %q", got)
	}
}

func TestFinalizeTurn_ZeroBudgetMeansNoTruncation(t *testing.T) {
	spec := specWithConstraints(domain.Constraints{
		EndTurnMustAskQuestion: true,
	})

	body := "a\nb\nc\nd\ne\nf"
	got := FinalizeTurn(body, "Q?", spec)
	if !strings.HasPrefix(got, body) {
		t.Errorf("Expected no truncation with zero budget, got %q", got)
	}
}

func TestFormatBilingual(t *testing.T) {
	t.Run("Bilingual stacks all parts", func(t *testing.T) {
		got := formatBilingual("Olá", "Hello", "Vamos lá", domain.LanguageBilingual)
		want := "Olá\n[EN]Hello[/EN]\nVamos lá"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("PT drops English", func(t *testing.T) {
		got := formatBilingual("Olá", "Hello", "Vamos lá", domain.LanguagePT)
		if strings.Contains(got, "[EN]") {
			t.Errorf("PT mode must not emit EN tags, got %q", got)
		}
	})

	t.Run("EN prefers English line", func(t *testing.T) {
		got := formatBilingual("Olá", "Hello", "", domain.LanguageEN)
		if got != "Hello" {
			t.Errorf("got %q, want %q", got, "Hello")
		}
	})

	t.Run("EN falls back to tagged Portuguese", func(t *testing.T) {
		got := formatBilingual("Olá", "", "", domain.LanguageEN)
		if got != "[EN]Olá[/EN]" {
			t.Errorf("got %q", got)
		}
	})
}
