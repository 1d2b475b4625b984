// Package lessonspec turns raw topic records into the immutable LessonSpec
// consumed by the learning engine. Records arrive as loosely-typed maps
// (from the embedded catalog, a YAML file, or an API payload) and are
// decoded with mapstructure before the spec is assembled.
package lessonspec

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aprenda/tutor/pkg/domain"
	"github.com/aprenda/tutor/pkg/ports"
)

var _ ports.LessonProvider = (*Builder)(nil)

// topicRecord is the wire shape of one catalog entry.
// It uses "mapstructure" tags to match the catalog's YAML/JSON keys.
type topicRecord struct {
	ID          string           `mapstructure:"id"`
	Title       string           `mapstructure:"title"`
	Description string           `mapstructure:"description"`
	Level       string           `mapstructure:"level"`
	MicroGoals  []microGoalDTO   `mapstructure:"micro_goals"`
	Constraints *constraintsDTO  `mapstructure:"constraints"`
}

type microGoalDTO struct {
	ID              string `mapstructure:"id"`
	ExplanationPT   string `mapstructure:"explanation_pt"`
	RulePT          string `mapstructure:"rule_pt"`
	Examples        []struct {
		EN string `mapstructure:"en"`
		PT string `mapstructure:"pt"`
	} `mapstructure:"examples"`
	PracticePrompts []struct {
		PT           string `mapstructure:"pt"`
		TargetENHint string `mapstructure:"target_en_hint"`
	} `mapstructure:"practice_prompts"`
	CommonErrors []struct {
		Pattern string `mapstructure:"pattern"`
		Fix     string `mapstructure:"fix"`
		TipPT   string `mapstructure:"tip_pt"`
	} `mapstructure:"common_errors"`
}

type constraintsDTO struct {
	MaxLinesBeforeQuestion    int    `mapstructure:"max_lines_before_question"`
	AllowPortugueseCorrection bool   `mapstructure:"allow_portuguese_correction"`
	CorrectionStyle           string `mapstructure:"correction_style"`
	EndTurnMustAskQuestion    bool   `mapstructure:"end_turn_must_ask_question"`
}

// Builder converts topic records into lesson specs. It is stateless and
// safe for concurrent use.
type Builder struct{}

// NewBuilder creates a lesson spec builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build decodes a raw topic record and assembles the lesson spec for it.
// Topics without explicit micro-goals get a single generic practice goal;
// the verb "to be" topic carries a curated pair of goals.
func (b *Builder) Build(topicData map[string]any, languageMode string) (*domain.LessonSpec, error) {
	var record topicRecord
	if err := mapstructure.Decode(topicData, &record); err != nil {
		return nil, fmt.Errorf("failed to decode topic record: %w", err)
	}
	if record.ID == "" {
		return nil, fmt.Errorf("topic record missing id")
	}

	spec := &domain.LessonSpec{
		TopicID:      record.ID,
		TitlePT:      record.Title,
		Level:        orDefault(record.Level, "beginner"),
		LanguageMode: domain.ParseLanguageMode(languageMode),
		Constraints:  domain.DefaultConstraints(),
	}
	if record.Constraints != nil {
		spec.Constraints = domain.Constraints{
			MaxLinesBeforeQuestion:    record.Constraints.MaxLinesBeforeQuestion,
			AllowPortugueseCorrection: record.Constraints.AllowPortugueseCorrection,
			CorrectionStyle:           record.Constraints.CorrectionStyle,
			EndTurnMustAskQuestion:    record.Constraints.EndTurnMustAskQuestion,
		}
	}

	switch {
	case len(record.MicroGoals) > 0:
		spec.MicroGoals = convertGoals(record.MicroGoals)
	case record.ID == "verb_to_be":
		spec.MicroGoals = verbToBeGoals()
	default:
		spec.MicroGoals = []domain.MicroGoal{genericGoal(record)}
	}

	return spec, nil
}

func convertGoals(dtos []microGoalDTO) []domain.MicroGoal {
	goals := make([]domain.MicroGoal, 0, len(dtos))
	for _, dto := range dtos {
		goal := domain.MicroGoal{
			ID:            dto.ID,
			ExplanationPT: dto.ExplanationPT,
			RulePT:        dto.RulePT,
		}
		for _, ex := range dto.Examples {
			goal.Examples = append(goal.Examples, domain.Example{EN: ex.EN, PT: ex.PT})
		}
		for _, pp := range dto.PracticePrompts {
			goal.PracticePrompts = append(goal.PracticePrompts, domain.PracticePrompt{
				PT:           pp.PT,
				TargetENHint: pp.TargetENHint,
			})
		}
		for _, ce := range dto.CommonErrors {
			goal.CommonErrors = append(goal.CommonErrors, domain.CommonError{
				Pattern: ce.Pattern,
				Fix:     ce.Fix,
				TipPT:   ce.TipPT,
			})
		}
		goals = append(goals, goal)
	}
	return goals
}

// verbToBeGoals is the curated lesson for the first topic of the beginner
// track: "I am" then "You are".
func verbToBeGoals() []domain.MicroGoal {
	return []domain.MicroGoal{
		{
			ID:            "to_be_i_am",
			ExplanationPT: "Use 'I am' para falar de como VOCÊ está.",
			RulePT:        "I am + adjective.",
			Examples: []domain.Example{
				{EN: "I am happy.", PT: "Eu estou feliz."},
				{EN: "I am tired.", PT: "Eu estou cansado(a)."},
			},
			PracticePrompts: []domain.PracticePrompt{
				{PT: "Como você está hoje?", TargetENHint: "I am ___."},
				{PT: "Diga: 'Estou cansado(a)'.", TargetENHint: "I am tired."},
			},
			CommonErrors: []domain.CommonError{
				{Pattern: "I happy", Fix: "I am happy", TipPT: "Falta o 'am'."},
			},
		},
		{
			ID:            "to_be_you_are",
			ExplanationPT: "Use 'You are' para falar de como OUTRA PESSOA está.",
			RulePT:        "You are + adjective.",
			Examples: []domain.Example{
				{EN: "You are happy.", PT: "Você está feliz."},
				{EN: "You are tired.", PT: "Você está cansado(a)."},
			},
			PracticePrompts: []domain.PracticePrompt{
				{PT: "Como está seu amigo hoje?", TargetENHint: "You are ___."},
			},
			CommonErrors: []domain.CommonError{
				{Pattern: "You happy", Fix: "You are happy", TipPT: "Falta o 'are'."},
			},
		},
	}
}

func genericGoal(record topicRecord) domain.MicroGoal {
	return domain.MicroGoal{
		ID:            record.ID + "_basic",
		ExplanationPT: "Vamos praticar " + record.Title + ".",
		RulePT:        record.Description,
		PracticePrompts: []domain.PracticePrompt{
			{PT: "Vamos praticar " + record.Title + ".", TargetENHint: "Try using it in a sentence."},
		},
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
