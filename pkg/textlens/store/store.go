package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/cognicore/textlens/pkg/textlens/lexicon"
)

// Store persists the tagger vocabulary: word class memberships and lemma
// groups.
type Store interface {
	Close() error

	UpsertEntries(ctx context.Context, entries []lexicon.Entry) error
	DeleteEntry(ctx context.Context, e lexicon.Entry) error
	Entries(ctx context.Context) ([]lexicon.Entry, error)
	UpsertLemma(ctx context.Context, lemma string, forms []string) error
	DeleteLemma(ctx context.Context, lemma string) error
	Lemmas(ctx context.Context) (map[string][]string, error)
}

// SaveLexicon writes every class membership and lemma group of lex.
func SaveLexicon(ctx context.Context, st Store, lex *lexicon.Lexicon) error {
	if err := st.UpsertEntries(ctx, lex.Entries()); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	for lemma, forms := range lex.LemmaGroups() {
		if err := st.UpsertLemma(ctx, lemma, forms); err != nil {
			return fmt.Errorf("save lemma %q: %w", lemma, err)
		}
	}
	return nil
}

// LoadLexicon rebuilds a lexicon from the store contents.
func LoadLexicon(ctx context.Context, st Store) (*lexicon.Lexicon, error) {
	entries, err := st.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	lemmas, err := st.Lemmas(ctx)
	if err != nil {
		return nil, fmt.Errorf("load lemmas: %w", err)
	}

	lex := lexicon.New()
	for _, e := range entries {
		lex.AddWords(e.Class, e.Word)
	}
	names := make([]string, 0, len(lemmas))
	for lemma := range lemmas {
		names = append(names, lemma)
	}
	sort.Strings(names)
	for _, lemma := range names {
		lex.AddLemma(lemma, lemmas[lemma]...)
	}
	return lex, nil
}
