package learning

import (
	"unicode/utf8"

	"github.com/aprenda/tutor/internal/textutil"
	"github.com/aprenda/tutor/pkg/domain"
)

// rule pairs a predicate with the intent it yields. Rules are evaluated in
// declaration order and the first match wins; the order is a contract the
// policy layer depends on, not an implementation detail.
type rule struct {
	intent domain.Intent
	match  func(raw, norm string) bool
}

var intentRules = []rule{
	{domain.IntentRequestLanguageMode, func(_, norm string) bool {
		return textutil.ContainsAny(norm,
			"português", "portugues", "só inglês", "so ingles",
			"bilingue", "bilíngue", "bilingual")
	}},
	{domain.IntentMetaUnderstanding, func(_, norm string) bool {
		return textutil.ContainsAny(norm,
			"você entendeu", "vc entendeu", "entendeu o que eu disse",
			"did you understand", "understand what i said")
	}},
	{domain.IntentAskBotOpinion, func(_, norm string) bool {
		return textutil.ContainsAny(norm,
			"e você", "and you", "what about you", "how about you",
			"or you", "your opinion", "qual sua opinião", "what do you think")
	}},
	{domain.IntentConfusionOrFrustration, func(_, norm string) bool {
		return textutil.ContainsAny(norm,
			"não respondeu", "você não respondeu", "desastre", "errado",
			"não é isso", "confuso", "didn t answer", "wrong", "confused")
	}},
	{domain.IntentGreetingOrThanks, func(raw, norm string) bool {
		return isShortThanksOrGreeting(raw, norm)
	}},
	{domain.IntentAskGrammarHelp, func(_, norm string) bool {
		return textutil.ContainsAny(norm,
			"como fala", "como digo", "qual regra", "por que",
			"when do i use", "grammar", "como usar", "how do i say")
	}},
	{domain.IntentRequestStopOrChange, func(_, norm string) bool {
		return textutil.ContainsAny(norm,
			"trocar", "próxima", "mudar tema", "stop", "change topic",
			"next", "próximo")
	}},
	{domain.IntentStudentAnswer, func(_, norm string) bool {
		return looksLikeAnswerAttempt(norm)
	}},
}

// isShortThanksOrGreeting matches short courtesy utterances. The length
// gate is in runes over the raw text, so "Thanks so much!" still counts.
func isShortThanksOrGreeting(raw, norm string) bool {
	if utf8.RuneCountInString(raw) > 20 {
		return false
	}
	return textutil.ContainsAny(norm,
		"oi", "olá", "hello", "hi", "hey",
		"obrigado", "obrigada", "thanks", "thank you", "valeu",
		"de nada", "you re welcome", "no problem",
		"tchau", "bye", "see you")
}

// looksLikeAnswerAttempt guesses whether the student is answering a practice
// prompt: an English pronoun/be-verb token, a Portuguese self-state phrase,
// or an emotion word in either language.
func looksLikeAnswerAttempt(norm string) bool {
	if textutil.HasToken(norm,
		"i", "am", "is", "are", "you", "he", "she", "it", "we", "they") {
		return true
	}
	if textutil.ContainsAny(norm,
		"eu estou", "me sinto", "estou feliz", "estou cansado", "estou triste") {
		return true
	}
	return textutil.HasToken(norm,
		"happy", "tired", "sad", "excited", "good", "bad",
		"feliz", "cansado", "triste")
}

// DetectIntent classifies a learning-mode utterance. Empty input and
// anything unmatched fall through to off-topic.
func DetectIntent(text string) domain.Intent {
	if text == "" {
		return domain.IntentOffTopic
	}
	norm := textutil.Normalize(text)
	for _, r := range intentRules {
		if r.match(text, norm) {
			return r.intent
		}
	}
	return domain.IntentOffTopic
}
