package lexicon

import (
	_ "embed"
	"sync"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns a fresh copy of the built-in English lexicon.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = Parse(defaultYAML)
	})
	if defaultErr != nil {
		panic("lexicon: built-in lexicon is invalid: " + defaultErr.Error())
	}
	lex := New()
	lex.Merge(defaultLex)
	return lex
}
