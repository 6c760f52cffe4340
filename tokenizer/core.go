package tokenizer

// core assembles the merge table (C1), pair-merge kernel (C2),
// pre-tokenizer (C3), special-token interleaver (C4), unstable-completion
// search (C5) and decoder (C6) into one immutable, concurrency-safe value.
// It is the unexported engine behind the exported Core type below;
// the root façade package never touches these fields directly.
type core struct {
	merge      *mergeTable
	seg        *segmenter
	specialEnc map[string]Rank
	specialDec map[Rank][]byte
	specialAll *specialAlternation
}

// NewCore builds the BPE engine from already-parsed merge ranks, a
// pre-tokenization pattern, and a special-token table. pairs must be
// non-empty; every single byte 0x00..0xFF must already be present as a
// singleton key — this is the loader's responsibility, not core's, and is
// not re-validated here.
func NewCore(pairs []EncoderPair, pattern string, specials map[string]Rank) (*Core, error) {
	merge, err := newMergeTable(pairs)
	if err != nil {
		return nil, err
	}
	seg, err := newSegmenter(pattern)
	if err != nil {
		return nil, err
	}

	specialEnc := make(map[string]Rank, len(specials))
	specialDec := make(map[Rank][]byte, len(specials))
	literals := make([]string, 0, len(specials))
	for lit, r := range specials {
		specialEnc[lit] = r
		specialDec[r] = []byte(lit)
		literals = append(literals, lit)
	}
	specialAll, err := newSpecialAlternation(literals)
	if err != nil {
		return nil, err
	}

	return &core{
		merge:      merge,
		seg:        seg,
		specialEnc: specialEnc,
		specialDec: specialDec,
		specialAll: specialAll,
	}, nil
}

// Core is the public name for the BPE engine; NewCore is its only
// constructor. The alias keeps the exported surface flat while all state
// lives on the unexported core type.
type Core = core

// EncodeOrdinary runs C3+C2 over the whole text with no special-token
// handling.
func (c *core) EncodeOrdinary(text string) ([]Rank, error) {
	var out []Rank
	if _, err := c.encodeSpan(text, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Encode runs the special-token interleaver (C4) over text, emitting the
// rank of any special literal in allowedSpecial as its dedicated token and
// treating every other occurrence as ordinary text. It returns the
// produced ranks and the token count of the final (non-special) piece, for
// use by the unstable-completion search (C5).
func (c *core) Encode(text string, allowedSpecial map[string]struct{}) ([]Rank, int, error) {
	return c.encode(text, allowedSpecial)
}

// EncodeSinglePiece tokenizes a piece that is already known to contain no
// special tokens, bypassing the segmenter entirely. Used internally by the
// unstable-completion search's split-and-extend step.
func (c *core) EncodeSinglePiece(piece string) []Rank {
	if r, ok := c.merge.rank(piece); ok {
		return []Rank{r}
	}
	if len(piece) == 1 {
		return []Rank{c.merge.encoder[piece]}
	}
	toks, release := bytePairEncode(piece, c.merge)
	out := make([]Rank, len(toks))
	copy(out, toks)
	release()
	return out
}

// MaxTokenValue returns the highest rank across the ordinary and special
// vocabularies.
func (c *core) MaxTokenValue() Rank {
	max := c.merge.maxRank
	for r := range c.specialDec {
		if r > max {
			max = r
		}
	}
	return max
}

// SortedTokenBytes returns the encoder's keys in ascending lexicographic
// byte order.
func (c *core) SortedTokenBytes() [][]byte {
	out := make([][]byte, len(c.merge.sorted))
	for i, s := range c.merge.sorted {
		out[i] = []byte(s)
	}
	return out
}

// EncodeSingleToken looks piece up directly in the ordinary encoder, then
// (if piece is valid UTF-8) the special-token encoder. It never invokes
// the pair-merge kernel: a miss here is a genuine KeyError, not an
// instruction to tokenize piece into several ranks.
func (c *core) EncodeSingleToken(piece []byte) (Rank, error) {
	if r, ok := c.merge.rank(string(piece)); ok {
		return r, nil
	}
	if r, ok := c.specialEnc[string(piece)]; ok {
		return r, nil
	}
	return 0, &KeyError{Key: piece}
}
