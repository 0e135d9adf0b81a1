package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/textlens/pkg/textlens/lexicon"
)

// WordList is a plain-text lexicon extension
type WordList struct {
	Entries []WordListEntry
}

// WordListEntry is one line of a word list
type WordListEntry struct {
	Class lexicon.Class
	Words []string
}

// LoadWordList loads a pipe-separated word list.
// Format: class|word1|word2|...
// Blank lines and lines starting with '#' are ignored. Words may contain
// spaces to declare phrases.
func LoadWordList(path string) (*WordList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWordList(string(data))
}

// ParseWordList parses word list content.
func ParseWordList(data string) (*WordList, error) {
	list := &WordList{Entries: []WordListEntry{}}
	lines := strings.Split(data, "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			return nil, fmt.Errorf("line %d: expected class|word..., got %q", i+1, line)
		}

		class, err := lexicon.ParseClass(parts[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		entry := WordListEntry{Class: class}
		for _, w := range parts[1:] {
			if w = strings.TrimSpace(w); w != "" {
				entry.Words = append(entry.Words, w)
			}
		}
		list.Entries = append(list.Entries, entry)
	}

	return list, nil
}

// Apply adds every entry to lex.
func (w *WordList) Apply(lex *lexicon.Lexicon) {
	for _, e := range w.Entries {
		lex.AddWords(e.Class, e.Words...)
	}
}
