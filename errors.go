package tiktoken

import "github.com/kaelbrook/tiktoken-go/tokenizer"

// These aliases keep the package's error surface flat: callers type-switch
// on tiktoken.KeyError etc. without reaching into the tokenizer package.
type (
	ModelNotFoundError = tokenizer.ModelNotFoundError
	RegexError         = tokenizer.RegexError
	KeyError           = tokenizer.KeyError
	ValueError         = tokenizer.ValueError
	ByteDecodeError    = tokenizer.ByteDecodeError
	IOError            = tokenizer.IOError
	Base64DecodeError  = tokenizer.Base64DecodeError
)
