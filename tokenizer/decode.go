package tokenizer

import "unicode/utf8"

// DecodePolicy controls how decode() handles a byte sequence that is not
// valid UTF-8 after token concatenation.
type DecodePolicy int

const (
	// DecodeStrict fails with *ByteDecodeError on any invalid byte.
	DecodeStrict DecodePolicy = iota
	// DecodeReplace substitutes U+FFFD per maximal invalid subpart.
	DecodeReplace
	// DecodeIgnore drops invalid bytes entirely.
	DecodeIgnore
	// DecodeBackslashEscape emits each invalid byte as a literal `\xHH`.
	DecodeBackslashEscape
)

// DecodeBytes concatenates the byte representation of each token in order.
// A token present in neither the ordinary nor the special decoder is a
// *KeyError.
func (c *core) DecodeBytes(tokens []Rank) ([]byte, error) {
	var out []byte
	if err := c.DecodeBytesInto(&out, tokens); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeBytesInto appends onto dst rather than allocating a fresh slice.
func (c *core) DecodeBytesInto(dst *[]byte, tokens []Rank) error {
	buf := *dst
	for _, t := range tokens {
		if b, ok := c.merge.decoder[t]; ok {
			buf = append(buf, b...)
			continue
		}
		if v, ok := c.specialDec[t]; ok {
			buf = append(buf, v...)
			continue
		}
		*dst = buf
		return &KeyError{Key: t}
	}
	*dst = buf
	return nil
}

// DecodeSingleTokenBytes returns the byte representation of a single token.
func (c *core) DecodeSingleTokenBytes(t Rank) ([]byte, error) {
	if b, ok := c.merge.decoder[t]; ok {
		return append([]byte(nil), b...), nil
	}
	if v, ok := c.specialDec[t]; ok {
		return append([]byte(nil), v...), nil
	}
	return nil, &KeyError{Key: t}
}

// Decode decodes tokens to bytes and then interprets them as UTF-8 per
// policy.
func (c *core) Decode(tokens []Rank, policy DecodePolicy) (string, error) {
	b, err := c.DecodeBytes(tokens)
	if err != nil {
		return "", err
	}
	return decodeUTF8(b, policy)
}

func decodeUTF8(b []byte, policy DecodePolicy) (string, error) {
	if policy != DecodeStrict && utf8.Valid(b) {
		return string(b), nil
	}
	switch policy {
	case DecodeStrict:
		if utf8.Valid(b) {
			return string(b), nil
		}
		return "", &ByteDecodeError{Offset: firstInvalidOffset(b)}
	case DecodeReplace:
		var sb []byte
		for len(b) > 0 {
			r, size := decodeRuneMaximalSubpart(b)
			if r == utf8.RuneError {
				sb = append(sb, "�"...)
				b = b[size:]
				continue
			}
			sb = append(sb, b[:size]...)
			b = b[size:]
		}
		return string(sb), nil
	case DecodeIgnore:
		var sb []byte
		for len(b) > 0 {
			r, size := utf8.DecodeRune(b)
			if r == utf8.RuneError && size <= 1 {
				b = b[1:]
				continue
			}
			sb = append(sb, b[:size]...)
			b = b[size:]
		}
		return string(sb), nil
	case DecodeBackslashEscape:
		var sb []byte
		for len(b) > 0 {
			r, size := utf8.DecodeRune(b)
			if r == utf8.RuneError && size <= 1 {
				sb = append(sb, []byte(escapeByte(b[0]))...)
				b = b[1:]
				continue
			}
			sb = append(sb, b[:size]...)
			b = b[size:]
		}
		return string(sb), nil
	default:
		return "", &ValueError{Msg: "unknown decode policy"}
	}
}

func escapeByte(b byte) string {
	const hex = "0123456789abcdef"
	return string([]byte{'\\', 'x', hex[b>>4], hex[b&0xf]})
}

func firstInvalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}

func isUTF8Cont(b byte) bool { return b >= 0x80 && b <= 0xBF }

// decodeRuneMaximalSubpart decodes the rune at the start of b, following
// the Unicode standard's "maximal subpart of an ill-formed subsequence"
// rule (Unicode 15.0 §3.9, table 3-7): on invalid input it reports the
// *longest* run of bytes that is a valid prefix of some well-formed
// sequence's lead-plus-continuation-byte ranges, not just one byte. This
// makes DecodeReplace emit one U+FFFD per ill-formed maximal subpart,
// matching reference decoders (Rust's String::from_utf8_lossy) instead
// of one U+FFFD per invalid byte.
func decodeRuneMaximalSubpart(b []byte) (r rune, size int) {
	if len(b) == 0 {
		return utf8.RuneError, 0
	}
	b0 := b[0]
	switch {
	case b0 < 0x80:
		return rune(b0), 1
	case b0 < 0xC2:
		// Stray continuation byte, or an overlong two-byte lead (C0, C1).
		return utf8.RuneError, 1
	case b0 < 0xE0:
		if len(b) < 2 || !isUTF8Cont(b[1]) {
			return utf8.RuneError, 1
		}
		return utf8.DecodeRune(b[:2])
	case b0 < 0xF0:
		lo, hi := byte(0x80), byte(0xBF)
		switch b0 {
		case 0xE0:
			lo = 0xA0 // excludes overlong encodings
		case 0xED:
			hi = 0x9F // excludes UTF-16 surrogate range
		}
		if len(b) < 2 || b[1] < lo || b[1] > hi {
			return utf8.RuneError, 1
		}
		if len(b) < 3 || !isUTF8Cont(b[2]) {
			return utf8.RuneError, 2
		}
		return utf8.DecodeRune(b[:3])
	case b0 < 0xF5:
		lo, hi := byte(0x80), byte(0xBF)
		switch b0 {
		case 0xF0:
			lo = 0x90 // excludes overlong encodings
		case 0xF4:
			hi = 0x8F // excludes code points beyond U+10FFFF
		}
		if len(b) < 2 || b[1] < lo || b[1] > hi {
			return utf8.RuneError, 1
		}
		if len(b) < 3 || !isUTF8Cont(b[2]) {
			return utf8.RuneError, 2
		}
		if len(b) < 4 || !isUTF8Cont(b[3]) {
			return utf8.RuneError, 3
		}
		return utf8.DecodeRune(b[:4])
	default:
		return utf8.RuneError, 1
	}
}

// DecodeWithOffsets decodes tokens to text and reports, for each token, the
// character index (counting every byte that is not a UTF-8 continuation
// byte, i.e. outside [0x80, 0xC0)) at which its decoded text begins. It
// fails with *ByteDecodeError if the concatenated bytes are not valid UTF-8.
func (c *core) DecodeWithOffsets(tokens []Rank) (string, []int, error) {
	offsets := make([]int, 0, len(tokens))
	var buf []byte
	charCount := 0
	for _, t := range tokens {
		start := len(buf)
		if err := c.DecodeBytesInto(&buf, []Rank{t}); err != nil {
			return "", nil, err
		}
		if start < len(buf) && isContinuationByte(buf[start]) {
			offset := charCount - 1
			if offset < 0 {
				offset = 0
			}
			offsets = append(offsets, offset)
		} else {
			offsets = append(offsets, charCount)
		}
		for i := start; i < len(buf); i++ {
			if !isContinuationByte(buf[i]) {
				charCount++
			}
		}
	}
	if !utf8.Valid(buf) {
		return "", nil, &ByteDecodeError{Offset: firstInvalidOffset(buf)}
	}
	return string(buf), offsets, nil
}

func isContinuationByte(b byte) bool { return b >= 0x80 && b < 0xC0 }
