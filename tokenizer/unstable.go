package tokenizer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// completionSet deduplicates candidate token sequences by their rank
// content.
type completionSet struct {
	seen map[string][]Rank
}

func newCompletionSet() *completionSet { return &completionSet{seen: map[string][]Rank{}} }

func (s *completionSet) add(seq []Rank) {
	key := ranksKey(seq)
	if _, ok := s.seen[key]; ok {
		return
	}
	cp := make([]Rank, len(seq))
	copy(cp, seq)
	s.seen[key] = cp
}

func (s *completionSet) list() [][]Rank {
	out := make([][]Rank, 0, len(s.seen))
	for _, seq := range s.seen {
		out = append(out, seq)
	}
	return out
}

func ranksKey(seq []Rank) string {
	var sb strings.Builder
	for _, r := range seq {
		sb.WriteByte(byte(r))
		sb.WriteByte(byte(r >> 8))
		sb.WriteByte(byte(r >> 16))
		sb.WriteByte(byte(r >> 24))
		sb.WriteByte(0)
	}
	return sb.String()
}

// isAllSpace reports whether every byte of tok is a space, tab, or newline.
func isAllSpace(tok []byte) bool {
	for _, b := range tok {
		if b != ' ' && b != '\t' && b != '\n' {
			return false
		}
	}
	return len(tok) > 0
}

// EncodeUnstable implements the unstable-completion search (C5) on top of
// the special-token interleaver (C4).
func (c *core) EncodeUnstable(text string, allowedSpecial map[string]struct{}) ([]Rank, [][]Rank, error) {
	tokens, lastPieceLen, err := c.encode(text, allowedSpecial)
	if err != nil {
		return nil, nil, err
	}
	if lastPieceLen == 0 {
		return tokens, nil, nil
	}

	// Step 2: whitespace extension.
	tokenBytes := func(t Rank) []byte {
		b, _ := c.DecodeSingleTokenBytes(t)
		return b
	}
	if isAllSpace(tokenBytes(tokens[len(tokens)-lastPieceLen])) {
		for lastPieceLen < len(tokens) && isAllSpace(tokenBytes(tokens[len(tokens)-lastPieceLen-1])) {
			lastPieceLen++
		}
	}

	tail := tokens[len(tokens)-lastPieceLen:]
	var unstableBuf []byte
	if err := c.DecodeBytesInto(&unstableBuf, tail); err != nil {
		return nil, nil, err
	}
	unstableBytes := string(unstableBuf)
	tokens = tokens[:len(tokens)-lastPieceLen]

	completions := newCompletionSet()
	if unstableBytes == "" {
		return tokens, nil, nil
	}

	// Step 5: exact prefix search.
	idx := c.merge.sortedIndexOf(unstableBytes)
	for idx < len(c.merge.sorted) && strings.HasPrefix(c.merge.sorted[idx], unstableBytes) {
		completions.add([]Rank{c.merge.encoder[c.merge.sorted[idx]]})
		idx++
	}

	// Step 6: split-and-extend.
	for i := 1; i < len(unstableBytes); i++ {
		prefix := unstableBytes[:i]
		suffix := unstableBytes[i:]

		j := c.merge.sortedIndexOf(suffix)
		for j < len(c.merge.sorted) && strings.HasPrefix(c.merge.sorted[j], suffix) {
			candidate := prefix + c.merge.sorted[j]
			var encoded []Rank
			if utf8.ValidString(candidate) {
				encoded, err = c.EncodeOrdinary(candidate)
				if err != nil {
					return nil, nil, err
				}
			} else {
				encoded = c.EncodeSinglePiece(candidate)
			}

			seq := make([]Rank, 0, len(encoded))
			seqLen := 0
			for _, tok := range encoded {
				seq = append(seq, tok)
				seqLen += len(tokenBytes(tok))
				if seqLen >= len(unstableBytes) {
					break
				}
			}
			completions.add(seq)
			j++
		}
	}

	// Step 7: trailing-whitespace character.
	if len(unstableBytes) > 1 {
		r, size := utf8.DecodeLastRuneInString(unstableBytes)
		if size > 0 && len(unstableBytes)-size > 0 && r != utf8.RuneError && unicode.IsSpace(r) {
			head := unstableBytes[:len(unstableBytes)-size]
			tailPiece := unstableBytes[len(unstableBytes)-size:]
			seq := append([]Rank{}, c.EncodeSinglePiece(head)...)
			seq = append(seq, c.EncodeSinglePiece(tailPiece)...)
			completions.add(seq)
		}
	}

	return tokens, completions.list(), nil
}

// sortedIndexOf is re-exposed at the package level for tests that probe
// the "shortest string less than" binary search independent of EncodeUnstable.
func sortedIndexOf(sorted []string, key string) int {
	return sort.Search(len(sorted), func(i int) bool { return sorted[i] >= key })
}
