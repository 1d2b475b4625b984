package learning

import "github.com/aprenda/tutor/pkg/domain"

// ChoosePolicyAction maps an intent to an action. Pure lookup, no session
// mutation. A question from the student always wins: loop-risk
// short-circuiting happens one level above this call, never inside it.
func ChoosePolicyAction(intent domain.Intent, _ *domain.SessionState) domain.ActionName {
	switch intent {
	case domain.IntentAskBotOpinion, domain.IntentMetaUnderstanding, domain.IntentAskGrammarHelp:
		return domain.ActionAnswerQuestionThenReturn
	case domain.IntentConfusionOrFrustration:
		return domain.ActionDeescalateClarifyRepair
	case domain.IntentRequestLanguageMode:
		return domain.ActionSetLanguageMode
	case domain.IntentGreetingOrThanks:
		return domain.ActionAckAndRedirect
	case domain.IntentStudentAnswer:
		return domain.ActionEvaluateAndFeedback
	case domain.IntentOffTopic:
		return domain.ActionGentleRedirect
	case domain.IntentRequestStopOrChange:
		return domain.ActionOfferOptions
	default:
		return domain.ActionGentleRedirect
	}
}
