package tiktoken

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kaelbrook/tiktoken-go/tokenizer"
)

// Specials parameterizes which special tokens a call treats as allowed or
// disallowed.
type Specials struct {
	all        bool
	collection map[string]struct{}
}

// AllSpecials selects every special token the encoding knows about.
func AllSpecials() Specials { return Specials{all: true} }

// NoSpecials selects none.
func NoSpecials() Specials { return Specials{collection: map[string]struct{}{}} }

// SpecialsCollection selects exactly the named literals.
func SpecialsCollection(literals ...string) Specials {
	m := make(map[string]struct{}, len(literals))
	for _, l := range literals {
		m[l] = struct{}{}
	}
	return Specials{collection: m}
}

func (s Specials) resolve(full map[string]struct{}) map[string]struct{} {
	if s.all {
		out := make(map[string]struct{}, len(full))
		for k := range full {
			out[k] = struct{}{}
		}
		return out
	}
	return s.collection
}

// Encoding is the public tokenizer handle: a named set of merge ranks, a
// pre-tokenization pattern, and a special-token table, bound together into
// an immutable *tokenizer.Core.
type Encoding struct {
	name        string
	core        *tokenizer.Core
	allSpecials map[string]struct{}
}

// NewEncoding constructs the named built-in encoding, fetching (and
// caching) its merge table if not already cached.
func NewEncoding(name string) (*Encoding, error) {
	entry, ok := registry()[name]
	if !ok {
		return nil, &tokenizer.ValueError{Msg: fmt.Sprintf("unknown encoding %q", name)}
	}
	ranks, err := entry.loadRanks()
	if err != nil {
		return nil, err
	}
	core, err := tokenizer.NewCore(ranks, entry.pattern, entry.specials)
	if err != nil {
		return nil, err
	}
	if entry.explicitVocab != 0 {
		got := int(core.MaxTokenValue()) + 1
		if got != entry.explicitVocab {
			return nil, &tokenizer.ValueError{Msg: fmt.Sprintf(
				"%s: explicit vocab size %d but max_token_value+1 = %d", name, entry.explicitVocab, got)}
		}
	}
	all := make(map[string]struct{}, len(entry.specials))
	for lit := range entry.specials {
		all[lit] = struct{}{}
	}
	return &Encoding{name: name, core: core, allSpecials: all}, nil
}

// NewEncodingFromRanks builds a custom encoding from an already-parsed
// merge table, a pre-tokenization pattern, and a special-token table,
// bypassing the registry entirely. Useful for encodings not in the
// built-in set, or for tests.
func NewEncodingFromRanks(name, pattern string, ranks []tokenizer.EncoderPair, specials map[string]tokenizer.Rank) (*Encoding, error) {
	core, err := tokenizer.NewCore(ranks, pattern, specials)
	if err != nil {
		return nil, err
	}
	all := make(map[string]struct{}, len(specials))
	for lit := range specials {
		all[lit] = struct{}{}
	}
	return &Encoding{name: name, core: core, allSpecials: all}, nil
}

// Name returns the encoding's registry name.
func (e *Encoding) Name() string { return e.name }

// NVocab returns max_token_value + 1.
func (e *Encoding) NVocab() int { return int(e.core.MaxTokenValue()) + 1 }

// EndOfTextToken returns the rank of "<|endoftext|>", failing if the
// encoding has none.
func (e *Encoding) EndOfTextToken() (tokenizer.Rank, error) {
	return e.core.EncodeSingleToken([]byte("<|endoftext|>"))
}

// SpecialTokensSet returns every special-token literal this encoding knows.
func (e *Encoding) SpecialTokensSet() map[string]struct{} {
	out := make(map[string]struct{}, len(e.allSpecials))
	for k := range e.allSpecials {
		out[k] = struct{}{}
	}
	return out
}

// TokenByteValues returns the raw byte sequence of every ordinary token, in
// ascending lexicographic order.
func (e *Encoding) TokenByteValues() [][]byte {
	return e.core.SortedTokenBytes()
}

func (e *Encoding) preflight(text string, disallowed map[string]struct{}) error {
	if len(disallowed) == 0 {
		return nil
	}
	lits := make([]string, 0, len(disallowed))
	for lit := range disallowed {
		lits = append(lits, lit)
	}
	for _, lit := range lits {
		if strings.Index(text, lit) >= 0 {
			return &tokenizer.ValueError{Msg: fmt.Sprintf(
				"text contains disallowed special token %q", lit)}
		}
	}
	return nil
}

// EncodeOrdinary tokenizes text with no special-token handling (C3+C2).
func (e *Encoding) EncodeOrdinary(text string) ([]tokenizer.Rank, error) {
	return e.core.EncodeOrdinary(text)
}

// Encode tokenizes text, recognizing allowed's special literals as their
// dedicated rank and failing with *ValueError if any of disallowed's
// literals appear in text.
func (e *Encoding) Encode(text string, allowed, disallowed Specials) ([]tokenizer.Rank, error) {
	allowedSet := allowed.resolve(e.allSpecials)
	disallowedSet := disallowed.resolve(e.allSpecials)
	if disallowed.all {
		disallowedSet = subtract(e.allSpecials, allowedSet)
	}
	if err := e.preflight(text, disallowedSet); err != nil {
		return nil, err
	}
	toks, _, err := e.core.Encode(text, allowedSet)
	return toks, err
}

func subtract(full, minus map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(full))
	for k := range full {
		if _, ok := minus[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// EncodeWithUnstable runs Encode and additionally returns the set of token
// sequences that could complete the last unstable piece (C5).
func (e *Encoding) EncodeWithUnstable(text string, allowed, disallowed Specials) ([]tokenizer.Rank, [][]tokenizer.Rank, error) {
	allowedSet := allowed.resolve(e.allSpecials)
	disallowedSet := disallowed.resolve(e.allSpecials)
	if disallowed.all {
		disallowedSet = subtract(e.allSpecials, allowedSet)
	}
	if err := e.preflight(text, disallowedSet); err != nil {
		return nil, nil, err
	}
	return e.core.EncodeUnstable(text, allowedSet)
}

// EncodeSingleToken looks up a single known token's rank.
func (e *Encoding) EncodeSingleToken(piece []byte) (tokenizer.Rank, error) {
	return e.core.EncodeSingleToken(piece)
}

// Decode decodes tokens to a string under the given policy.
func (e *Encoding) Decode(tokens []tokenizer.Rank, policy tokenizer.DecodePolicy) (string, error) {
	return e.core.Decode(tokens, policy)
}

// DecodeBytes decodes tokens to raw bytes, with no UTF-8 interpretation.
func (e *Encoding) DecodeBytes(tokens []tokenizer.Rank) ([]byte, error) {
	return e.core.DecodeBytes(tokens)
}

// DecodeWithOffsets decodes tokens to text and the character offset at
// which each token's text begins.
func (e *Encoding) DecodeWithOffsets(tokens []tokenizer.Rank) (string, []int, error) {
	return e.core.DecodeWithOffsets(tokens)
}

// DecodeSingleTokenBytes returns one token's raw bytes.
func (e *Encoding) DecodeSingleTokenBytes(t tokenizer.Rank) ([]byte, error) {
	return e.core.DecodeSingleTokenBytes(t)
}

// EncodeOrdinaryBatch tokenizes every text in texts concurrently, bounded
// by concurrency. Safe because an Encoding's fields are read-only once
// constructed.
func (e *Encoding) EncodeOrdinaryBatch(ctx context.Context, texts []string, concurrency int) ([][]tokenizer.Rank, error) {
	out := make([][]tokenizer.Rank, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			toks, err := e.core.EncodeOrdinary(text)
			if err != nil {
				return err
			}
			out[i] = toks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeBatch is EncodeOrdinaryBatch's special-token-aware counterpart.
func (e *Encoding) EncodeBatch(ctx context.Context, texts []string, allowed, disallowed Specials, concurrency int) ([][]tokenizer.Rank, error) {
	out := make([][]tokenizer.Rank, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			toks, err := e.Encode(text, allowed, disallowed)
			if err != nil {
				return err
			}
			out[i] = toks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeBytesBatch decodes every token sequence in batch to raw bytes
// concurrently, with no UTF-8 interpretation.
func (e *Encoding) DecodeBytesBatch(ctx context.Context, batch [][]tokenizer.Rank, concurrency int) ([][]byte, error) {
	out := make([][]byte, len(batch))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, tokens := range batch {
		i, tokens := i, tokens
		g.Go(func() error {
			b, err := e.core.DecodeBytes(tokens)
			if err != nil {
				return err
			}
			out[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeBatch decodes every token sequence in batch concurrently.
func (e *Encoding) DecodeBatch(ctx context.Context, batch [][]tokenizer.Rank, policy tokenizer.DecodePolicy, concurrency int) ([]string, error) {
	out := make([]string, len(batch))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, tokens := range batch {
		i, tokens := i, tokens
		g.Go(func() error {
			s, err := e.core.Decode(tokens, policy)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
