package tokenizer

// cutRunes returns the substring runes[start:end], clamped to bounds. It is
// how this package keeps regexp2's rune-indexed matches (dlclark/regexp2
// treats its input as a rune sequence, not a byte sequence) consistent with
// the rest of the pipeline, which otherwise works in byte offsets.
func cutRunes(runes []rune, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start > end {
		start = end
	}
	return string(runes[start:end])
}

// encodeSpan runs C3 (segmenter) and C2 (pair-merge kernel) over one
// non-special slice of text, appending ranks to out and returning the
// token count of the final piece in the slice (0 if the slice was empty).
func (c *core) encodeSpan(text string, out *[]Rank) (lastPieceLen int, err error) {
	if text == "" {
		return 0, nil
	}
	n := 0
	err = c.seg.pieces(text, func(piece string) {
		if tok, ok := c.merge.rank(piece); ok {
			*out = append(*out, tok)
			n = 1
			return
		}
		if len(piece) == 1 {
			*out = append(*out, c.merge.encoder[piece])
			n = 1
			return
		}
		toks, release := bytePairEncode(piece, c.merge)
		*out = append(*out, toks...)
		n = len(toks)
		release()
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// encode is the special-token interleaver (C4). allowedSpecial is the
// concrete set of special-token literals the caller currently permits to be
// emitted as their dedicated rank; every other special literal found in the
// text is treated as ordinary text and is skipped over by the scan rather
// than emitted.
//
// The alternation regex is compiled once, at Encoding construction, over
// *every* special token this encoding knows about (not just the currently
// allowed subset), then filtered per call against allowedSpecial. Building
// a fresh alternation per call from only the allowed literals would make
// it impossible to ever advance past a disallowed hit, since such a hit
// would never match in the first place.
func (c *core) encode(text string, allowedSpecial map[string]struct{}) ([]Rank, int, error) {
	var out []Rank
	lastPieceLen := 0

	if len(c.specialEnc) == 0 {
		n, err := c.encodeSpan(text, &out)
		return out, n, err
	}

	runes := []rune(text)
	start := 0
	for {
		startFind := start
		var matchStart, matchEnd int
		var matchLit string
		found := false
		for {
			sub := cutRunes(runes, startFind, len(runes))
			ms, me, lit, ok, err := c.specialAll.find(sub)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				found = false
				break
			}
			absStart := startFind + ms
			absEnd := startFind + me
			if _, allowed := allowedSpecial[lit]; allowed {
				matchStart, matchEnd, matchLit, found = absStart, absEnd, lit, true
				break
			}
			startFind = absStart + 1
			if startFind > len(runes) {
				found = false
				break
			}
		}

		end := len(runes)
		if found {
			end = matchStart
		}

		n, err := c.encodeSpan(cutRunes(runes, start, end), &out)
		if err != nil {
			return nil, 0, err
		}
		if end > start {
			lastPieceLen = n
		}

		if !found {
			break
		}
		rank, ok := c.specialEnc[matchLit]
		if !ok {
			// Unreachable: matchLit came from an alternation built over
			// c.specialEnc's own keys.
			return nil, 0, &KeyError{Key: matchLit}
		}
		out = append(out, rank)
		lastPieceLen = 0
		start = matchEnd
	}

	return out, lastPieceLen, nil
}
