// Package tokens estimates prompt sizes before generation calls. The remote
// vendor does not publish its tokenizer, so counts produced here are
// estimates used for logging and oversize warnings, never hard limits.
package tokens

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// charsPerToken is the fallback ratio when no codec is available.
const charsPerToken = 4

// Counter estimates token counts for plain text using a tiktoken codec,
// falling back to a character-ratio estimate when the codec cannot be
// loaded or fails on the input.
type Counter struct {
	once  sync.Once
	codec tokenizer.Codec
}

// NewCounter creates a counter. Codec loading is deferred to the first call
// so construction never fails.
func NewCounter() *Counter {
	return &Counter{}
}

// Count returns the estimated token count for text.
func (c *Counter) Count(text string) int {
	c.once.Do(func() {
		// cl100k_base is a reasonable stand-in for the vendor's tokenizer.
		codec, err := tokenizer.Get(tokenizer.Cl100kBase)
		if err == nil {
			c.codec = codec
		}
	})

	if c.codec != nil {
		if ids, _, err := c.codec.Encode(text); err == nil {
			return len(ids)
		}
	}
	return Estimate(text)
}

// Estimate returns a character-ratio token estimate. It is the fallback used
// when no tokenizer codec is available.
func Estimate(text string) int {
	return len(text) / charsPerToken
}
