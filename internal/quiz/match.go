package quiz

import (
	"encoding/json"
	"strings"
)

// minSubstringLen is the shortest contained string that still counts as a
// substring match. Shorter inputs ("par" against "paris") would accept too
// many accidental hits, so they must match exactly.
const minSubstringLen = 4

// NormalizeAnswers turns the duck-typed answer field (a string or a list of
// strings) into a canonical lowercase, trimmed, non-empty list.
func NormalizeAnswers(raw json.RawMessage) []string {
	var out []string

	appendAnswer := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		appendAnswer(single)
		return out
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	for _, item := range list {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			appendAnswer(s)
			continue
		}
		// Numeric answers appear in some question files; keep them as text.
		var f json.Number
		if err := json.Unmarshal(item, &f); err == nil {
			appendAnswer(f.String())
		}
	}
	return out
}

// MatchChoice reports whether a chosen multiple-choice option matches any
// accepted answer, by exact case-insensitive comparison.
func MatchChoice(choice string, answers []string) bool {
	guess := strings.ToLower(strings.TrimSpace(choice))
	for _, a := range answers {
		if guess == a {
			return true
		}
	}
	return false
}

// MatchFreeText reports whether typed input matches any accepted answer.
// Exact (trimmed, lowercased) equality always matches. Beyond that the
// policy is deliberately lenient to tolerate minor typos: when one string
// contains the other, it is accepted as long as the contained string is not
// trivially short.
func MatchFreeText(input string, answers []string) bool {
	guess := strings.ToLower(strings.TrimSpace(input))
	if guess == "" {
		return false
	}
	for _, a := range answers {
		if a == "" {
			continue
		}
		if guess == a {
			return true
		}
		if len(a) >= minSubstringLen && strings.Contains(guess, a) {
			return true
		}
		if len(guess) >= minSubstringLen && strings.Contains(a, guess) {
			return true
		}
	}
	return false
}
