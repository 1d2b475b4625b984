package lessonspec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprenda/tutor/pkg/domain"
	"github.com/aprenda/tutor/pkg/lessonspec"
)

func TestBuilder_VerbToBe(t *testing.T) {
	b := lessonspec.NewBuilder()

	spec, err := b.Build(map[string]any{
		"id":    "verb_to_be",
		"title": "Verbo To Be",
	}, "bilingual")
	require.NoError(t, err)

	assert.Equal(t, "verb_to_be", spec.TopicID)
	assert.Equal(t, "Verbo To Be", spec.TitlePT)
	assert.Equal(t, "beginner", spec.Level)
	assert.Equal(t, domain.LanguageBilingual, spec.LanguageMode)

	require.Len(t, spec.MicroGoals, 2)
	assert.Equal(t, "to_be_i_am", spec.MicroGoals[0].ID)
	assert.Equal(t, "to_be_you_are", spec.MicroGoals[1].ID)
	assert.NotEmpty(t, spec.MicroGoals[0].Examples)
	assert.NotEmpty(t, spec.MicroGoals[0].PracticePrompts)
	assert.NotEmpty(t, spec.MicroGoals[0].CommonErrors)

	assert.Equal(t, 4, spec.Constraints.MaxLinesBeforeQuestion)
	assert.True(t, spec.Constraints.EndTurnMustAskQuestion)
}

func TestBuilder_GenericTopic(t *testing.T) {
	b := lessonspec.NewBuilder()

	spec, err := b.Build(map[string]any{
		"id":          "simple_present",
		"title":       "Presente Simples",
		"description": "Simple present: I work, she works.",
	}, "pt")
	require.NoError(t, err)

	require.Len(t, spec.MicroGoals, 1)
	goal := spec.MicroGoals[0]
	assert.Equal(t, "simple_present_basic", goal.ID)
	assert.Contains(t, goal.ExplanationPT, "Presente Simples")
	assert.Equal(t, "Simple present: I work, she works.", goal.RulePT)
	require.Len(t, goal.PracticePrompts, 1)
	assert.Equal(t, domain.LanguagePT, spec.LanguageMode)
}

func TestBuilder_ExplicitMicroGoalsWin(t *testing.T) {
	b := lessonspec.NewBuilder()

	spec, err := b.Build(map[string]any{
		"id":    "custom",
		"title": "Custom",
		"micro_goals": []map[string]any{
			{
				"id":             "custom_goal",
				"explanation_pt": "Explicação",
				"examples": []map[string]any{
					{"en": "Hello.", "pt": "Olá."},
				},
			},
		},
	}, "bilingual")
	require.NoError(t, err)

	require.Len(t, spec.MicroGoals, 1)
	assert.Equal(t, "custom_goal", spec.MicroGoals[0].ID)
	require.Len(t, spec.MicroGoals[0].Examples, 1)
	assert.Equal(t, "Hello.", spec.MicroGoals[0].Examples[0].EN)
}

func TestBuilder_InvalidRecords(t *testing.T) {
	b := lessonspec.NewBuilder()

	_, err := b.Build(map[string]any{"title": "no id"}, "bilingual")
	assert.Error(t, err)

	// Unknown language modes fall back to bilingual rather than failing.
	spec, err := b.Build(map[string]any{"id": "x", "title": "X"}, "klingon")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageBilingual, spec.LanguageMode)
}

func TestCatalog_Embedded(t *testing.T) {
	catalog, err := lessonspec.NewCatalog()
	require.NoError(t, err)

	topics := catalog.Topics()
	require.NotEmpty(t, topics)
	assert.Equal(t, "verb_to_be", topics[0].ID)

	spec, err := catalog.Spec("verb_to_be", "bilingual")
	require.NoError(t, err)
	assert.Len(t, spec.MicroGoals, 2)

	_, err = catalog.Spec("nope", "bilingual")
	assert.ErrorIs(t, err, domain.ErrUnknownTopic)
}
