package tokenizer

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

// segmenter wraps the pre-tokenization regex (C3). Patterns are compiled
// once at construction and matched via dlclark/regexp2, which — unlike the
// standard library's RE2-based regexp — supports the negative lookahead
// (`(?!\S)`) and inline case-insensitive group (`(?i:...)`) that the
// cl100k_base pattern requires.
type segmenter struct {
	re *regexp2.Regexp
}

func newSegmenter(pattern string) (*segmenter, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, &RegexError{Pattern: pattern, Err: err}
	}
	return &segmenter{re: re}, nil
}

// pieces performs non-overlapping left-to-right match iteration over text
// and invokes fn with each matched substring, in order. It assumes the
// pattern is total over its input: every byte is covered by some match.
func (s *segmenter) pieces(text string, fn func(piece string)) error {
	m, err := s.re.FindStringMatch(text)
	if err != nil {
		return &RegexError{Pattern: s.re.String(), Err: err}
	}
	for m != nil {
		fn(m.String())
		m, err = s.re.FindNextMatch(m)
		if err != nil {
			return &RegexError{Pattern: s.re.String(), Err: err}
		}
	}
	return nil
}

// specialAlternation is the regex-escaped alternation of a set of
// special-token literals. An empty set compiles to a regex
// that never matches anything.
type specialAlternation struct {
	re *regexp2.Regexp
}

func newSpecialAlternation(literals []string) (*specialAlternation, error) {
	if len(literals) == 0 {
		re, err := regexp2.Compile(`[^\s\S]`, regexp2.None)
		if err != nil {
			return nil, &RegexError{Pattern: "[^\\s\\S]", Err: err}
		}
		return &specialAlternation{re: re}, nil
	}
	pattern := ""
	for i, lit := range literals {
		if i > 0 {
			pattern += "|"
		}
		pattern += regexp.QuoteMeta(lit)
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, &RegexError{Pattern: pattern, Err: err}
	}
	return &specialAlternation{re: re}, nil
}

// find returns the first match of any alternated literal within text
// (start/end are rune offsets into text, matching dlclark/regexp2's
// indexing convention), or ok=false if none occurs.
func (s *specialAlternation) find(text string) (start, end int, match string, ok bool, err error) {
	m, err := s.re.FindStringMatch(text)
	if err != nil {
		return 0, 0, "", false, &RegexError{Pattern: s.re.String(), Err: err}
	}
	if m == nil {
		return 0, 0, "", false, nil
	}
	return m.Index, m.Index + m.Length, m.String(), true, nil
}
