package tokenizer

import "testing"

func TestDecodePolicies(t *testing.T) {
	invalid := []byte{'a', 0xff, 'b'}
	if _, err := decodeUTF8(invalid, DecodeStrict); err == nil {
		t.Fatalf("DecodeStrict: expected error on invalid UTF-8")
	} else if _, ok := err.(*ByteDecodeError); !ok {
		t.Fatalf("DecodeStrict: expected *ByteDecodeError, got %T", err)
	}

	got, err := decodeUTF8(invalid, DecodeReplace)
	if err != nil {
		t.Fatalf("DecodeReplace: %v", err)
	}
	if got != "a�b" {
		t.Fatalf("DecodeReplace = %q, want %q", got, "a�b")
	}

	got, err = decodeUTF8(invalid, DecodeIgnore)
	if err != nil {
		t.Fatalf("DecodeIgnore: %v", err)
	}
	if got != "ab" {
		t.Fatalf("DecodeIgnore = %q, want %q", got, "ab")
	}

	got, err = decodeUTF8(invalid, DecodeBackslashEscape)
	if err != nil {
		t.Fatalf("DecodeBackslashEscape: %v", err)
	}
	if got != `a\xffb` {
		t.Fatalf("DecodeBackslashEscape = %q, want %q", got, `a\xffb`)
	}
}

func TestDecodeReplaceMaximalSubpart(t *testing.T) {
	// 'a', then an ill-formed sequence that splits into three maximal
	// subparts (F1 80 80 | E1 80 | C2), then 'b'. A naive per-byte decoder
	// would emit six U+FFFD here; the Unicode "maximal subpart of an
	// ill-formed subsequence" rule (§3.9, table 3-7) calls for three.
	invalid := []byte{'a', 0xF1, 0x80, 0x80, 0xE1, 0x80, 0xC2, 'b'}
	got, err := decodeUTF8(invalid, DecodeReplace)
	if err != nil {
		t.Fatalf("DecodeReplace: %v", err)
	}
	want := "a���b"
	if got != want {
		t.Fatalf("DecodeReplace = %q, want %q", got, want)
	}
}

func TestDecodeBytesKeyError(t *testing.T) {
	c := toyCore(t)
	if _, err := c.DecodeBytes([]Rank{999999}); err == nil {
		t.Fatalf("expected KeyError for unknown token")
	} else if _, ok := err.(*KeyError); !ok {
		t.Fatalf("expected *KeyError, got %T", err)
	}
}

func TestDecodeWithOffsets(t *testing.T) {
	c := toyCore(t)
	toks, err := c.EncodeOrdinary("hello world")
	if err != nil {
		t.Fatalf("EncodeOrdinary: %v", err)
	}
	text, offsets, err := c.DecodeWithOffsets(toks)
	if err != nil {
		t.Fatalf("DecodeWithOffsets: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("DecodeWithOffsets text = %q", text)
	}
	if len(offsets) != len(toks) {
		t.Fatalf("len(offsets) = %d, want %d", len(offsets), len(toks))
	}
	if offsets[0] != 0 {
		t.Fatalf("first offset = %d, want 0", offsets[0])
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			t.Fatalf("offsets not monotonic: %v", offsets)
		}
	}
}
