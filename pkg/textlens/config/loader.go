package config

import (
	"context"
	"fmt"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/lexicon"
	"github.com/cognicore/textlens/pkg/textlens/store"
	"github.com/cognicore/textlens/pkg/textlens/store/sqlite"
	"github.com/cognicore/textlens/pkg/textlens/tagger"
)

// Loader loads all lexicon sources and constructs components
type Loader struct {
	LexiconPath  string // YAML lexicon merged over the embedded default
	WordListPath string // pipe-separated word list merged last
	LexiconDB    string // SQLite store merged after the default
	// Store, when set, is used in place of opening LexiconDB. Components
	// takes ownership of it.
	Store store.Store
	// SkipDefault starts from an empty lexicon instead of the embedded one.
	SkipDefault bool
}

// Components holds all loaded configuration components
type Components struct {
	Lexicon *lexicon.Lexicon
	Tagger  *tagger.Lexical
	// Store is open when LexiconDB or Loader.Store is set; the caller closes it.
	Store store.Store
}

// Close releases the store, if any.
func (c *Components) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// Load merges the lexicon sources in order (default, database, YAML file,
// word list) and returns a tagger over the result.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	comp := &Components{}

	lex := lexicon.New()
	if !l.SkipDefault {
		lex.Merge(lexicon.Default())
	}

	st := l.Store
	if st == nil && l.LexiconDB != "" {
		var err error
		st, err = sqlite.OpenSQLite(ctx, l.LexiconDB)
		if err != nil {
			return nil, fmt.Errorf("%w: open lexicon db: %v", internalerr.ErrInvalidConfig, err)
		}
	}
	if st != nil {
		stored, err := store.LoadLexicon(ctx, st)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("load lexicon db: %w", err)
		}
		lex.Merge(stored)
		comp.Store = st
	}

	if l.LexiconPath != "" {
		fileLex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			comp.Close()
			return nil, fmt.Errorf("%w: load lexicon: %v", internalerr.ErrInvalidConfig, err)
		}
		lex.Merge(fileLex)
	}

	if l.WordListPath != "" {
		list, err := LoadWordList(l.WordListPath)
		if err != nil {
			comp.Close()
			return nil, fmt.Errorf("%w: load word list: %v", internalerr.ErrInvalidConfig, err)
		}
		list.Apply(lex)
	}

	comp.Lexicon = lex
	comp.Tagger = tagger.NewLexical(lex)
	return comp, nil
}
