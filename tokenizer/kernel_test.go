package tokenizer

import "testing"

// TestBytePairEncodeTieBreak is the canonical tie-break scenario: merges
// {"ab"->0, "cd"->1}, text "abcd" must yield the rank for "ab" then "cd".
func TestBytePairEncodeTieBreak(t *testing.T) {
	pairs := []EncoderPair{
		{[]byte("a"), Rank(10)},
		{[]byte("b"), Rank(11)},
		{[]byte("c"), Rank(12)},
		{[]byte("d"), Rank(13)},
		{[]byte("ab"), Rank(0)},
		{[]byte("cd"), Rank(1)},
	}
	m, err := newMergeTable(pairs)
	if err != nil {
		t.Fatalf("newMergeTable: %v", err)
	}
	toks, release := bytePairEncode("abcd", m)
	defer release()
	want := []Rank{0, 1}
	if len(toks) != len(want) || toks[0] != want[0] || toks[1] != want[1] {
		t.Fatalf("bytePairEncode(abcd) = %v, want %v", toks, want)
	}
}

func TestBytePairEncodeRepetition(t *testing.T) {
	pairs := []EncoderPair{
		{[]byte("a"), Rank(10)},
		{[]byte("b"), Rank(11)},
		{[]byte("ab"), Rank(0)},
	}
	m, err := newMergeTable(pairs)
	if err != nil {
		t.Fatalf("newMergeTable: %v", err)
	}
	toks, release := bytePairEncode("abab", m)
	defer release()
	want := []Rank{0, 0}
	if len(toks) != len(want) || toks[0] != want[0] || toks[1] != want[1] {
		t.Fatalf("bytePairEncode(abab) = %v, want %v", toks, want)
	}
}

func TestBytePairEncodeLeftmostTie(t *testing.T) {
	// "aaa" with only "aa" merged: leftmost pair wins, leaving one
	// singleton "a" unmerged on the right.
	pairs := []EncoderPair{
		{[]byte("a"), Rank(10)},
		{[]byte("aa"), Rank(0)},
	}
	m, err := newMergeTable(pairs)
	if err != nil {
		t.Fatalf("newMergeTable: %v", err)
	}
	toks, release := bytePairEncode("aaa", m)
	defer release()
	want := []Rank{0, 10}
	if len(toks) != len(want) || toks[0] != want[0] || toks[1] != want[1] {
		t.Fatalf("bytePairEncode(aaa) = %v, want %v", toks, want)
	}
}
