package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/lexicon"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu      sync.RWMutex
	entries map[lexicon.Entry]struct{}
	lemmas  map[string][]string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		entries: make(map[lexicon.Entry]struct{}),
		lemmas:  make(map[string][]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertEntries adds class memberships; existing ones are left as is.
func (s *Store) UpsertEntries(ctx context.Context, entries []lexicon.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		if e.Word == "" {
			continue
		}
		s.entries[e] = struct{}{}
	}
	return nil
}

// DeleteEntry removes a class membership.
func (s *Store) DeleteEntry(ctx context.Context, e lexicon.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[e]; !ok {
		return fmt.Errorf("%w: %s %q", internalerr.ErrNotFound, e.Class, e.Word)
	}
	delete(s.entries, e)
	return nil
}

// Entries returns all memberships sorted by class then word.
func (s *Store) Entries(ctx context.Context) ([]lexicon.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]lexicon.Entry, 0, len(s.entries))
	for e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].Word < out[j].Word
	})
	return out, nil
}

// UpsertLemma replaces the forms of a lemma group.
func (s *Store) UpsertLemma(ctx context.Context, lemma string, forms []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lemmas[lemma] = append([]string(nil), forms...)
	return nil
}

// DeleteLemma removes a lemma group.
func (s *Store) DeleteLemma(ctx context.Context, lemma string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lemmas[lemma]; !ok {
		return fmt.Errorf("%w: lemma %q", internalerr.ErrNotFound, lemma)
	}
	delete(s.lemmas, lemma)
	return nil
}

// Lemmas returns a copy of every lemma group.
func (s *Store) Lemmas(ctx context.Context) (map[string][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]string, len(s.lemmas))
	for lemma, forms := range s.lemmas {
		out[lemma] = append([]string(nil), forms...)
	}
	return out, nil
}
