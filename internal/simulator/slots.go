package simulator

import (
	"regexp"
	"strings"

	"github.com/aprenda/tutor/internal/textutil"
)

// SlotType names one extractable value in the roleplay scenario.
type SlotType string

const (
	SlotName        SlotType = "name"
	SlotReservation SlotType = "reservation"
	SlotDates       SlotType = "dates"
	SlotPayment     SlotType = "payment"
	SlotView        SlotType = "view"
	SlotBed         SlotType = "bed"
)

// Ordered name patterns; first match wins, like the payment-slot extractors
// this is modeled on.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`my name is (\w+)`),
	regexp.MustCompile(`i am (\w+)`),
	regexp.MustCompile(`i m (\w+)`),
	regexp.MustCompile(`name is (\w+)`),
	regexp.MustCompile(`meu nome é (\p{L}+)`),
	regexp.MustCompile(`eu sou (\p{L}+)`),
}

// ExtractSlot pulls a structured value from free text. It returns "" when no
// pattern matches; callers must treat that as "ask again", never as failure.
func ExtractSlot(text string, slot SlotType) string {
	t := textutil.Normalize(text)

	switch slot {
	case SlotName:
		for _, p := range namePatterns {
			if m := p.FindStringSubmatch(t); m != nil {
				return title(m[1])
			}
		}
		// Fallback: with enough words, assume the last one is the name.
		words := strings.Fields(t)
		if len(words) > 2 {
			return title(words[len(words)-1])
		}
		return ""

	case SlotReservation:
		if textutil.ContainsAny(t, "yes", "sim", "have") {
			return "yes"
		}
		if textutil.ContainsAny(t, "no", "não", "don t") {
			return "no"
		}
		return ""

	case SlotDates:
		// Presence marker only; the duration is not parsed into dates.
		if textutil.ContainsAny(t, "night", "nights", "day", "days", "week", "weeks") {
			return "extracted"
		}
		return ""

	case SlotPayment:
		switch {
		case textutil.ContainsAny(t, "credit", "card"):
			return "credit_card"
		case textutil.ContainsAny(t, "cash", "dinheiro"):
			return "cash"
		case strings.Contains(t, "debit"):
			return "debit_card"
		}
		return ""

	case SlotView:
		switch {
		case textutil.ContainsAny(t, "beach", "ocean", "mar"):
			return "beach"
		case textutil.ContainsAny(t, "city", "cidade"):
			return "city"
		}
		return ""

	case SlotBed:
		switch {
		case strings.Contains(t, "king"):
			return "king"
		case textutil.ContainsAny(t, "single", "twin"):
			return "twin"
		case strings.Contains(t, "double"):
			return "double"
		}
		return ""
	}
	return ""
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
