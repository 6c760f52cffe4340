package tiktoken

import "github.com/kaelbrook/tiktoken-go/tokenizer"

// gpt2Pattern and cl100kPattern are the two distinct pre-tokenization
// regexes in use across the supported encodings.
const (
	gpt2Pattern   = `'(?:[sdmt]|ll|ve|re)| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`
	cl100kPattern = `(?i:'(?:[sdmt]|ll|ve|re))|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]|\s+(?!\S)|\s+`
)

// Blob locations for the published merge tables, content-addressed by
// SHA-256. These are the same coordinates the original
// Python tiktoken package's registry uses.
const (
	r50kBlobURL    = "https://openaipublic.blob.core.windows.net/encodings/r50k_base.tiktoken"
	r50kBlobSHA256 = "306cd27f03c1a714eca7108e03d66b7dc042abe8c258b44c199a7ed9838c9ffa"

	p50kBlobURL    = "https://openaipublic.blob.core.windows.net/encodings/p50k_base.tiktoken"
	p50kBlobSHA256 = "94b5ca7dff4d00767bc256fdd1b27e5b17361d7b8a5f968547f9f23eb70d2069"

	cl100kBlobURL    = "https://openaipublic.blob.core.windows.net/encodings/cl100k_base.tiktoken"
	cl100kBlobSHA256 = "223921b76ee99bde995b7ff738513eef100fb51d18c93597a113f05d9cf4cb61"

	gpt2VocabURL  = "https://openaipublic.blob.core.windows.net/gpt-2/encodings/main/encoder.json"
	gpt2MergesURL = "https://openaipublic.blob.core.windows.net/gpt-2/encodings/main/vocab.bpe"
)

// specialSet builds the literal -> rank special-token table for a registry
// entry from a flat literal/rank list.
func specialSet(pairs ...any) map[string]tokenizer.Rank {
	m := make(map[string]tokenizer.Rank, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i].(string)] = tokenizer.Rank(pairs[i+1].(int))
	}
	return m
}

// registryEntry is everything NewEncoding needs to construct a Core for a
// named, built-in encoding, minus the merge ranks themselves (fetched
// lazily by loadRanks, since they require network/cache access).
type registryEntry struct {
	name          string
	pattern       string
	specials      map[string]tokenizer.Rank
	explicitVocab int // 0 means "unspecified; derive from table sizes"
	loadRanks     func() ([]tokenizer.EncoderPair, error)
}

func gpt2Specials() map[string]tokenizer.Rank {
	return specialSet("<|endoftext|>", 50256)
}

func r50kSpecials() map[string]tokenizer.Rank {
	return specialSet("<|endoftext|>", 50256)
}

func p50kBaseSpecials() map[string]tokenizer.Rank {
	return specialSet("<|endoftext|>", 50256)
}

// p50kEditSpecials uses the distinct `<|fim_suffix|>` sentinel at rank
// 50283 rather than the source table's apparent fim_middle/fim_suffix
// name collision (see DESIGN.md's Open Question decisions).
func p50kEditSpecials() map[string]tokenizer.Rank {
	return specialSet(
		"<|endoftext|>", 50256,
		"<|fim_prefix|>", 50281,
		"<|fim_middle|>", 50282,
		"<|fim_suffix|>", 50283,
	)
}

func cl100kSpecials() map[string]tokenizer.Rank {
	return specialSet(
		"<|endoftext|>", 100257,
		"<|fim_prefix|>", 100258,
		"<|fim_middle|>", 100259,
		"<|fim_suffix|>", 100260,
		"<|endofprompt|>", 100276,
	)
}

// loadGPT2Ranks fetches encoder.json/vocab.bpe and builds the ordinary
// merge ranks, filtering out specials so the published "<|endoftext|>":
// 50256 entry in encoder.json lands only in the special-token table, not
// the ordinary encoder too.
func loadGPT2Ranks(specials map[string]tokenizer.Rank) func() ([]tokenizer.EncoderPair, error) {
	return func() ([]tokenizer.EncoderPair, error) {
		vocab, err := tokenizer.FetchAndCache(gpt2VocabURL, "")
		if err != nil {
			return nil, err
		}
		if _, err := tokenizer.FetchAndCache(gpt2MergesURL, ""); err != nil {
			return nil, err
		}
		return tokenizer.ParseGPT2Vocab(vocab, specials)
	}
}

func loadTiktokenRanks(url, sha256 string) func() ([]tokenizer.EncoderPair, error) {
	return func() ([]tokenizer.EncoderPair, error) {
		return tokenizer.LoadMergeableRanksURL(url, sha256)
	}
}

// registry maps encoding name to its construction recipe. The map is
// built afresh on every call rather than held in a package-level var;
// no merge ranks are loaded until an entry's loadRanks is invoked.
func registry() map[string]registryEntry {
	return map[string]registryEntry{
		"gpt2": {
			name:          "gpt2",
			pattern:       gpt2Pattern,
			specials:      gpt2Specials(),
			explicitVocab: 50257,
			loadRanks:     loadGPT2Ranks(gpt2Specials()),
		},
		"r50k_base": {
			name:          "r50k_base",
			pattern:       gpt2Pattern,
			specials:      r50kSpecials(),
			explicitVocab: 50257,
			loadRanks:     loadTiktokenRanks(r50kBlobURL, r50kBlobSHA256),
		},
		"p50k_base": {
			name:          "p50k_base",
			pattern:       gpt2Pattern,
			specials:      p50kBaseSpecials(),
			explicitVocab: 50281,
			loadRanks:     loadTiktokenRanks(p50kBlobURL, p50kBlobSHA256),
		},
		"p50k_edit": {
			name:      "p50k_edit",
			pattern:   gpt2Pattern,
			specials:  p50kEditSpecials(),
			loadRanks: loadTiktokenRanks(p50kBlobURL, p50kBlobSHA256),
		},
		"cl100k_base": {
			name:      "cl100k_base",
			pattern:   cl100kPattern,
			specials:  cl100kSpecials(),
			loadRanks: loadTiktokenRanks(cl100kBlobURL, cl100kBlobSHA256),
		},
	}
}

// EncodingNames lists every built-in encoding name.
func EncodingNames() []string {
	r := registry()
	out := make([]string, 0, len(r))
	for name := range r {
		out = append(out, name)
	}
	return out
}
