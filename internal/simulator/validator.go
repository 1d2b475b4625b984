package simulator

import "regexp"

// The validator is defense in depth: it runs on every outgoing string, even
// handler-authored text, because a hard-coded line can still pick up a
// banned phrase during maintenance.

type rewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

// Ordered case-insensitive rewrites. Replacements are themselves free of
// banned substrings, which is what makes validation idempotent.
var rewrites = []rewrite{
	{regexp.MustCompile(`(?i)let'?s practice`), "how can I help you"},
	{regexp.MustCompile(`(?i)vamos praticar`), "how can I help you"},
	{regexp.MustCompile(`(?i)\b\w*(?:teach|ensinar)\w*\b`), "I can help you with that"},
	{regexp.MustCompile(`(?i)what do you think`), "is there anything else"},
	{regexp.MustCompile(`(?i)how about you`), "is there anything else"},
	{regexp.MustCompile(`(?i)o que você acha`), "is there anything else"},
}

// ValidateResponse rewrites any teacher-mode phrasing back into natural
// in-character language. Applied to every response before it leaves the
// simulator; idempotent.
func ValidateResponse(response string) string {
	for _, r := range rewrites {
		response = r.pattern.ReplaceAllString(response, r.replacement)
	}
	return response
}
