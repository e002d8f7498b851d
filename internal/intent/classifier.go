// internal/intent/classifier.go
package intent

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Match holds the capture groups of a pattern hit. Groups that did not
// participate in the match are reported as absent.
type Match struct {
	groups  []string
	present []bool
}

func matchPattern(re *regexp.Regexp, s string) (Match, bool) {
	idx := re.FindStringSubmatchIndex(s)
	if idx == nil {
		return Match{}, false
	}
	n := len(idx)/2 - 1
	m := Match{groups: make([]string, n), present: make([]bool, n)}
	for i := 0; i < n; i++ {
		start, end := idx[2*(i+1)], idx[2*(i+1)+1]
		if start >= 0 {
			m.groups[i] = s[start:end]
			m.present[i] = true
		}
	}
	return m, true
}

// Len is the number of capture groups declared by the pattern.
func (m Match) Len() int { return len(m.groups) }

// Group returns capture group i (0-based) and whether it participated.
func (m Match) Group(i int) (string, bool) {
	if i < 0 || i >= len(m.groups) {
		return "", false
	}
	return m.groups[i], m.present[i]
}

// trimmed returns the whitespace-trimmed group, "" when absent.
func (m Match) trimmed(i int) string {
	g, ok := m.Group(i)
	if !ok {
		return ""
	}
	return strings.TrimSpace(g)
}

// Normalize case-folds and trims an utterance. All extraction runs on this form.
func Normalize(utterance string) string {
	// cases.Caser is stateful, so one per call.
	return strings.TrimSpace(cases.Lower(language.Und).String(utterance))
}

// Classify resolves the intent of an utterance: pattern table first, keyword
// scoring second, search as the low-confidence fallback.
func Classify(schema *Schema, utterance string) Classification {
	text := Normalize(utterance)

	var (
		found  bool
		result Classification
	)
	schema.each(func(spec IntentSpec) bool {
		for _, re := range spec.Patterns {
			m, ok := matchPattern(re, text)
			if !ok {
				continue
			}
			result = Classification{
				Intent:          spec.Name,
				Confidence:      ConfidencePattern,
				ExtractedInfo:   extractFromMatch(spec.Name, m, text),
				RawInput:        text,
				DetectionMethod: DetectionPattern,
			}
			found = true
			return false
		}
		return true
	})
	if found {
		return result
	}

	if name, ok := detectByKeywords(schema, text); ok {
		return Classification{
			Intent:          name,
			Confidence:      ConfidenceKeywords,
			ExtractedInfo:   extractByKeywords(name, text),
			RawInput:        text,
			DetectionMethod: DetectionKeywords,
		}
	}

	return Classification{
		Intent:          IntentSearch,
		Confidence:      ConfidenceDefault,
		ExtractedInfo:   Slots{"query": text},
		RawInput:        text,
		DetectionMethod: DetectionDefault,
	}
}

// KeywordScore sums +1 for every keyword found as a substring and +0.5 more
// when that keyword is also a whole whitespace-delimited token.
func KeywordScore(text string, keywords []string) float64 {
	tokens := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		tokens[w] = struct{}{}
	}

	var score float64
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			continue
		}
		score++
		if _, ok := tokens[kw]; ok {
			score += 0.5
		}
	}
	return score
}

func detectByKeywords(schema *Schema, text string) (string, bool) {
	var (
		best      string
		bestScore float64
		seen      bool
	)
	schema.each(func(spec IntentSpec) bool {
		score := KeywordScore(text, spec.Keywords)
		if !seen || score > bestScore {
			best, bestScore, seen = spec.Name, score, true
		}
		return true
	})
	if !seen || bestScore <= 0 {
		return "", false
	}
	return best, true
}
