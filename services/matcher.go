package services

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var (
	// parenSuffixRegexp strips set or rarity qualifiers like " (Rare)".
	parenSuffixRegexp = regexp.MustCompile(`\s*\([^)]*\)`)
	// dashSuffixRegexp strips a trailing dash-delimited qualifier and
	// everything after it.
	dashSuffixRegexp = regexp.MustCompile(`\s*-\s*.*$`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

// substringScore is the minimum similarity granted when the cleaned
// target is contained in the cleaned candidate. Containment is a strong
// signal but an exact sequence match must still be able to win.
const substringScore = 0.8

// Matcher fuzzy-matches requested card names against the corpus of
// previously scraped names.
type Matcher struct {
	Threshold float64
}

// NewMatcher creates a Matcher with the given minimum similarity
// threshold.
func NewMatcher(threshold float64) *Matcher {
	return &Matcher{Threshold: threshold}
}

// CleanCardName normalizes a card name for comparison: parenthesized
// content and trailing dash qualifiers are removed and internal
// whitespace is collapsed.
func CleanCardName(name string) string {
	clean := parenSuffixRegexp.ReplaceAllString(name, "")
	clean = dashSuffixRegexp.ReplaceAllString(clean, "")
	return strings.TrimSpace(whitespaceRegexp.ReplaceAllString(clean, " "))
}

// Match returns the best-matching corpus name and its similarity score,
// or ("", 0) when nothing reaches the threshold. The first candidate to
// reach the running best score wins on exact ties.
func (m *Matcher) Match(target string, corpus []string) (string, float64) {
	targetClean := strings.ToLower(CleanCardName(target))

	bestMatch := ""
	bestScore := 0.0

	for _, candidate := range corpus {
		candidateClean := strings.ToLower(CleanCardName(candidate))

		similarity := matchr.JaroWinkler(targetClean, candidateClean, false)
		if strings.Contains(candidateClean, targetClean) && similarity < substringScore {
			similarity = substringScore
		}

		if similarity > bestScore {
			bestScore = similarity
			bestMatch = candidate
		}
	}

	if bestScore < m.Threshold {
		return "", 0
	}
	return bestMatch, bestScore
}
