package learning

import "github.com/aprenda/tutor/pkg/domain"

// pickVariant selects the least-used phrase variant recorded under key and
// increments its counter. Ties resolve to the earliest variant in the list.
func pickVariant(key string, variants []string, state *domain.SessionState) string {
	if len(variants) == 0 {
		return ""
	}
	if state.Safety.RepeatedBotPhrases == nil {
		state.Safety.RepeatedBotPhrases = make(map[string]map[string]int)
	}
	counts, ok := state.Safety.RepeatedBotPhrases[key]
	if !ok {
		counts = make(map[string]int)
		state.Safety.RepeatedBotPhrases[key] = counts
	}

	chosen := variants[0]
	if len(counts) > 0 {
		best := counts[variants[0]]
		for _, v := range variants[1:] {
			if counts[v] < best {
				chosen = v
				best = counts[v]
			}
		}
	}
	counts[chosen]++
	return chosen
}
