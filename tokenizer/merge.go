package tokenizer

import "sort"

// Rank identifies both a token's identity and its merge priority: lower
// ranks merge earlier. Rank zero is a valid token id.
type Rank = uint32

// maxRank is the sentinel "no known pair" value used throughout the
// pair-merge kernel (C2).
const maxRank Rank = ^Rank(0)

// mergeTable is the immutable byte-sequence -> rank mapping (C1). It is
// built once at Encoding construction and never mutated afterward, so it is
// safe to share across concurrent encode/decode calls.
type mergeTable struct {
	encoder map[string]Rank // key: raw token bytes reinterpreted as a string
	decoder map[Rank][]byte // inverse of encoder, keyed by rank
	sorted  []string        // encoder's keys, ascending lexicographic byte order
	maxRank Rank
}

// EncoderPair is one (token bytes, rank) entry as produced by a merge-table
// loader; newMergeTable folds a slice of these into both the encoder and
// decoder maps.
type EncoderPair = [2]any

// newMergeTable builds the merge table from pairs. It fails with
// *ValueError if pairs is empty, and with *ValueError if rank collisions
// make the resulting decoder smaller than the encoder.
func newMergeTable(pairs []EncoderPair) (*mergeTable, error) {
	if len(pairs) == 0 {
		return nil, &ValueError{Msg: "merge_ranks must contain at least one token"}
	}

	enc := make(map[string]Rank, len(pairs))
	dec := make(map[Rank][]byte, len(pairs))
	var maxR Rank
	for _, p := range pairs {
		b, _ := p[0].([]byte)
		r, _ := p[1].(Rank)
		enc[string(b)] = r
		dec[r] = b
		if r > maxR {
			maxR = r
		}
	}
	if len(dec) != len(enc) {
		return nil, &ValueError{Msg: "encoder and decoder have unequal length: merge_ranks contains duplicate rank values"}
	}

	sorted := make([]string, 0, len(enc))
	for k := range enc {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	return &mergeTable{encoder: enc, decoder: dec, sorted: sorted, maxRank: maxR}, nil
}

// rank looks up the rank of a byte span, if known.
func (m *mergeTable) rank(piece string) (Rank, bool) {
	r, ok := m.encoder[piece]
	return r, ok
}

// sortedIndexOf returns the first index in m.sorted whose entry is >= key
// in byte-lexicographic order: the lower bound for a "shortest string
// less than" prefix scan.
func (m *mergeTable) sortedIndexOf(key string) int {
	return sort.Search(len(m.sorted), func(i int) bool { return m.sorted[i] >= key })
}
