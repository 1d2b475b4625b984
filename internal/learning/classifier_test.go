package learning

import (
	"testing"

	"github.com/aprenda/tutor/pkg/domain"
)

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.Intent
	}{
		{"Short greeting", "oi", domain.IntentGreetingOrThanks},
		{"Short thanks", "Thanks so much!", domain.IntentGreetingOrThanks},
		{"Long polite message is not a greeting", "obrigado por me explicar tudo isso hoje", domain.IntentOffTopic},
		{"Meta understanding PT", "você entendeu o que eu falei?", domain.IntentMetaUnderstanding},
		{"Meta understanding EN", "did you understand me?", domain.IntentMetaUnderstanding},
		{"Bot opinion", "what do you think?", domain.IntentAskBotOpinion},
		{"Bot opinion PT", "e você, como está?", domain.IntentAskBotOpinion},
		{"Frustration", "você não respondeu minha pergunta", domain.IntentConfusionOrFrustration},
		{"Frustration normalized contraction", "you didn't answer me", domain.IntentConfusionOrFrustration},
		{"Grammar help", "como fala cansado em inglês?", domain.IntentAskGrammarHelp},
		{"Stop request", "stop", domain.IntentRequestStopOrChange},
		{"Change topic", "quero mudar tema", domain.IntentRequestStopOrChange},
		{"Language mode request", "pode falar só em português?", domain.IntentRequestLanguageMode},
		{"Answer attempt", "I am happy today and excited for class", domain.IntentStudentAnswer},
		{"Answer attempt PT", "eu estou cansado", domain.IntentStudentAnswer},
		{"Answer missing be", "I happy", domain.IntentStudentAnswer},
		{"Off topic", "qual a capital da frança", domain.IntentOffTopic},
		{"Empty", "", domain.IntentOffTopic},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectIntent(tc.text); got != tc.want {
				t.Errorf("DetectIntent(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

// Rule order is a contract: a question-like phrase inside a courtesy message
// must classify as the question, not the courtesy.
func TestDetectIntent_Precedence(t *testing.T) {
	if got := DetectIntent("thanks, e você?"); got != domain.IntentAskBotOpinion {
		t.Errorf("Opinion should win over thanks, got %q", got)
	}
	if got := DetectIntent("hi, português"); got != domain.IntentRequestLanguageMode {
		t.Errorf("Language mode should win over greeting, got %q", got)
	}
}

func TestChoosePolicyAction(t *testing.T) {
	cases := []struct {
		intent domain.Intent
		want   domain.ActionName
	}{
		{domain.IntentAskBotOpinion, domain.ActionAnswerQuestionThenReturn},
		{domain.IntentMetaUnderstanding, domain.ActionAnswerQuestionThenReturn},
		{domain.IntentAskGrammarHelp, domain.ActionAnswerQuestionThenReturn},
		{domain.IntentConfusionOrFrustration, domain.ActionDeescalateClarifyRepair},
		{domain.IntentRequestLanguageMode, domain.ActionSetLanguageMode},
		{domain.IntentGreetingOrThanks, domain.ActionAckAndRedirect},
		{domain.IntentStudentAnswer, domain.ActionEvaluateAndFeedback},
		{domain.IntentOffTopic, domain.ActionGentleRedirect},
		{domain.IntentRequestStopOrChange, domain.ActionOfferOptions},
	}

	state := domain.NewSessionState()
	for _, tc := range cases {
		if got := ChoosePolicyAction(tc.intent, state); got != tc.want {
			t.Errorf("ChoosePolicyAction(%q) = %q, want %q", tc.intent, got, tc.want)
		}
	}
}
