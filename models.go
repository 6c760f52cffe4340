package tiktoken

import (
	"strings"

	"github.com/kaelbrook/tiktoken-go/tokenizer"
)

// modelToEncoding is the exact-match half of the model-name routing table.
var modelToEncoding = map[string]string{
	"gpt-4":                  "cl100k_base",
	"gpt-3.5-turbo":          "cl100k_base",
	"gpt-35-turbo":           "cl100k_base",
	"davinci-002":            "cl100k_base",
	"babbage-002":            "cl100k_base",
	"text-davinci-003":       "p50k_base",
	"text-davinci-002":       "p50k_base",
	"text-davinci-001":       "r50k_base",
	"text-curie-001":         "r50k_base",
	"text-babbage-001":       "r50k_base",
	"text-ada-001":           "r50k_base",
	"davinci":                "r50k_base",
	"curie":                  "r50k_base",
	"babbage":                "r50k_base",
	"ada":                    "r50k_base",
	"code-davinci-002":       "p50k_base",
	"code-davinci-001":       "p50k_base",
	"code-cushman-002":       "p50k_base",
	"code-cushman-001":       "p50k_base",
	"davinci-codex":          "p50k_base",
	"cushman-codex":          "p50k_base",
	"text-davinci-edit-001":  "p50k_edit",
	"code-davinci-edit-001":  "p50k_edit",
	"gpt2":                   "gpt2",
	"gpt-2":                  "gpt2",
}

// modelPrefixToEncoding is the prefix half of the routing table; order
// matters only in that every prefix here maps to the same target, so
// iteration order is immaterial.
var modelPrefixToEncoding = map[string]string{
	"gpt-4-":         "cl100k_base",
	"gpt-3.5-turbo-": "cl100k_base",
	"gpt-35-turbo-":  "cl100k_base",
	"ft:gpt-4":       "cl100k_base",
	"ft:gpt-3.5":     "cl100k_base",
	"ft:davinci-002": "cl100k_base",
	"ft:babbage-002": "cl100k_base",
}

// EncodingForModel resolves a model name to its encoding name, trying an
// exact match before the prefix table, and fails with *ModelNotFoundError
// on no match.
func EncodingForModel(model string) (string, error) {
	if name, ok := modelToEncoding[model]; ok {
		return name, nil
	}
	for prefix, name := range modelPrefixToEncoding {
		if strings.HasPrefix(model, prefix) {
			return name, nil
		}
	}
	return "", &tokenizer.ModelNotFoundError{Model: model}
}

// ForModel loads the Encoding that EncodingForModel resolves model to.
func ForModel(model string) (*Encoding, error) {
	name, err := EncodingForModel(model)
	if err != nil {
		return nil, err
	}
	return NewEncoding(name)
}
