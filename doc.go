// Package tiktoken provides a pure Go implementation of an OpenAI-compatible
// byte-level BPE tokenizer.
//
// It covers the gpt2, r50k_base, p50k_base, p50k_edit and cl100k_base
// encodings: pre-tokenization, greedy pair-merging, special-token handling,
// unstable-completion search, and decoding, plus model-name resolution and
// merge-table loading with content-addressed caching.
package tiktoken
