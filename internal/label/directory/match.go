package directory

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// MatchOption is a functional option for configuring a [Matcher].
type MatchOption func(*Matcher)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched name to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) MatchOption {
	return func(m *Matcher) {
		m.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic match is found and the matcher falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) MatchOption {
	return func(m *Matcher) {
		m.fuzzyThreshold = threshold
	}
}

// Matcher suggests canonical directory names for typed input. It combines
// Double Metaphone phonetic filtering with Jaro-Winkler ranking, so "jon
// smth" resolves to "John Smith" even across typos.
//
// All methods are safe for concurrent use; the Matcher is read-only after
// construction.
type Matcher struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// NewMatcher returns a new [Matcher] configured with the supplied options.
func NewMatcher(opts ...MatchOption) *Matcher {
	m := &Matcher{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Suggest returns the directory person whose name best matches typed, along
// with the similarity score. ok is false when no candidate clears the
// thresholds, or when typed exactly equals a canonical name already
// (case-insensitive exact hits should go through [Store.Lookup] instead).
func (m *Matcher) Suggest(typed string, people []Person) (match Person, score float64, ok bool) {
	typedLower := strings.ToLower(strings.TrimSpace(typed))
	if typedLower == "" || len(people) == 0 {
		return Person{}, 0, false
	}
	typedTokens := strings.Fields(typedLower)
	typedCodes := codesForTokens(typedTokens)

	type candidate struct {
		person   Person
		score    float64
		phonetic bool
	}

	var best candidate

	for _, p := range people {
		nameLower := strings.ToLower(strings.TrimSpace(p.Name))
		if nameLower == "" || nameLower == typedLower {
			continue
		}
		nameTokens := strings.Fields(nameLower)

		phoneticMatch := codesOverlap(typedCodes, codesForTokens(nameTokens))
		jwScore := bestJWScore(typedTokens, nameTokens, typedLower, nameLower)

		if phoneticMatch {
			if jwScore >= m.phoneticThreshold {
				if !best.phonetic || jwScore > best.score {
					best = candidate{person: p, score: jwScore, phonetic: true}
				}
			}
		} else if !best.phonetic {
			if jwScore >= m.fuzzyThreshold && jwScore > best.score {
				best = candidate{person: p, score: jwScore, phonetic: false}
			}
		}
	}

	if best.person.Name != "" {
		return best.person, best.score, true
	}
	return Person{}, 0, false
}

// codesForTokens returns the union of all Double Metaphone codes for the
// given tokens. Empty codes are excluded.
func codesForTokens(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		p, s := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

// codesOverlap returns true if the two code sets share at least one code.
func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// bestJWScore computes the highest Jaro-Winkler similarity between the typed
// input and a directory name: full strings, space-stripped concatenations,
// and the best pairwise token score.
func bestJWScore(inputTokens, nameTokens []string, inputFull, nameFull string) float64 {
	score := matchr.JaroWinkler(inputFull, nameFull, false)

	if len(inputTokens) > 1 || len(nameTokens) > 1 {
		concat1 := strings.Join(inputTokens, "")
		concat2 := strings.Join(nameTokens, "")
		if s := matchr.JaroWinkler(concat1, concat2, false); s > score {
			score = s
		}
	}

	for _, it := range inputTokens {
		for _, nt := range nameTokens {
			if s := matchr.JaroWinkler(it, nt, false); s > score {
				score = s
			}
		}
	}

	return score
}
