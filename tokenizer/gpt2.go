package tokenizer

import (
	"bufio"
	"encoding/json"
	"sort"
	"strings"
)

// gpt2ByteToRune and its inverse implement GPT-2's byte-level remapping:
// printable bytes (and a fixed set of Latin-1 ranges) map to themselves as
// runes, while the remaining 68 bytes are remapped to private-use-adjacent
// runes starting at 256. This is the table behind `vocab.json`/
// `encoder.json`'s "display string" encoding.
func gpt2ByteToRune() (map[byte]rune, map[rune]byte) {
	var bs []int
	for i := 33; i <= 126; i++ {
		bs = append(bs, i)
	}
	for i := 161; i <= 172; i++ {
		bs = append(bs, i)
	}
	for i := 174; i <= 255; i++ {
		bs = append(bs, i)
	}
	inBS := make(map[int]bool, len(bs))
	for _, b := range bs {
		inBS[b] = true
	}
	cs := append([]int(nil), bs...)
	n := 0
	for b := 0; b < 256; b++ {
		if !inBS[b] {
			bs = append(bs, b)
			cs = append(cs, 256+n)
			n++
		}
	}
	type pair struct{ b, c int }
	pairs := make([]pair, len(bs))
	for i := range bs {
		pairs[i] = pair{bs[i], cs[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].b < pairs[j].b })

	byteToRune := make(map[byte]rune, 256)
	runeToByte := make(map[rune]byte, 256)
	for _, p := range pairs {
		byteToRune[byte(p.b)] = rune(p.c)
		runeToByte[rune(p.c)] = byte(p.b)
	}
	return byteToRune, runeToByte
}

// ParseGPT2Vocab builds merge ranks from the original GPT-2
// `encoder.json` (display-string -> rank) file alone. Ranks come from
// encoder.json directly; the companion merges file (`vocab.bpe` /
// `merges.txt`) is not an input to this function, since encoder.json
// already assigns every rank.
//
// encoder.json's published blob also carries the entry
// "<|endoftext|>": 50256 alongside the ordinary byte-merge vocabulary.
// specials names the literals that belong in the special-token table
// instead; any entry whose decoded raw bytes match one of them is
// dropped here rather than ingested as an ordinary multi-byte token,
// keeping the ordinary and special rank spaces disjoint (spec.md §3
// invariant 2).
func ParseGPT2Vocab(encoderJSON []byte, specials map[string]Rank) ([]EncoderPair, error) {
	var disp map[string]int
	if err := json.Unmarshal(encoderJSON, &disp); err != nil {
		return nil, &ValueError{Msg: "malformed GPT-2 encoder.json: " + err.Error()}
	}
	_, runeToByte := gpt2ByteToRune()

	pairs := make([]EncoderPair, 0, len(disp))
	for display, rank := range disp {
		raw := make([]byte, 0, len(display))
		for _, r := range display {
			b, ok := runeToByte[r]
			if !ok {
				return nil, &ValueError{Msg: "encoder.json contains a display rune outside the GPT-2 byte alphabet"}
			}
			raw = append(raw, b)
		}
		if _, isSpecial := specials[string(raw)]; isSpecial {
			continue
		}
		pairs = append(pairs, EncoderPair{raw, Rank(rank)})
	}
	return pairs, nil
}

// ParseGPT2Merges validates a merges.txt file's shape (header line
// optional, then "tokenA tokenB" per line) and returns the pairs in file
// order. It assigns no ranks; this package has no function that derives
// ranks from merges.txt line order.
func ParseGPT2Merges(mergesTxt []byte) ([][2]string, error) {
	var out [][2]string
	sc := bufio.NewScanner(strings.NewReader(string(mergesTxt)))
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if first && strings.HasPrefix(line, "#") {
			first = false
			continue
		}
		first = false
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, &ValueError{Msg: "malformed merges.txt line: " + line}
		}
		out = append(out, [2]string{parts[0], parts[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, &IOError{Op: "scan merges.txt", Err: err}
	}
	return out, nil
}
