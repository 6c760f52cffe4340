package tokenizer

// baseBytePairs returns the 256 mandatory singleton byte entries plus any
// extra multi-byte merges, ranked in order starting right after the
// singletons. This mirrors the invariant every real merge table upholds:
// every single byte is its own token before any merge exists.
func baseBytePairs(extra ...string) []EncoderPair {
	pairs := make([]EncoderPair, 0, 256+len(extra))
	for b := 0; b < 256; b++ {
		pairs = append(pairs, EncoderPair{[]byte{byte(b)}, Rank(b)})
	}
	for i, s := range extra {
		pairs = append(pairs, EncoderPair{[]byte(s), Rank(256 + i)})
	}
	return pairs
}
