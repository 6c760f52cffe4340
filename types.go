package tiktoken

import "github.com/kaelbrook/tiktoken-go/tokenizer"

// Rank is the root package's name for a token id.
type Rank = tokenizer.Rank

// DecodePolicy and its constants are re-exported so callers never need to
// import the tokenizer package directly.
type DecodePolicy = tokenizer.DecodePolicy

const (
	DecodeStrict          = tokenizer.DecodeStrict
	DecodeReplace         = tokenizer.DecodeReplace
	DecodeIgnore          = tokenizer.DecodeIgnore
	DecodeBackslashEscape = tokenizer.DecodeBackslashEscape
)

// EncoderPair is the root package's name for a (token bytes, rank) pair, as
// produced by the merge-table loaders.
type EncoderPair = tokenizer.EncoderPair
