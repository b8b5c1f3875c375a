package memory

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sandevgo/journal/internal/core"
)

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// CountTokens approximates the prompt size in cl100k_base tokens.
// ok is false when the encoding could not be loaded.
func CountTokens(messages []core.Message) (n int, ok bool) {
	enc, err := getTokenizer()
	if err != nil {
		return 0, false
	}
	for _, m := range messages {
		n += len(enc.Encode(m.Content, nil, nil))
	}
	return n, true
}
