package lexicon

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Class is a closed word class the tagger can look words up in.
type Class string

const (
	Pronoun     Class = "pronoun"
	Conjunction Class = "conjunction"
	Honorific   Class = "honorific"
	Slang       Class = "slang"
	Expression  Class = "expression"
	Determiner  Class = "determiner"
	Preposition Class = "preposition"
	Auxiliary   Class = "auxiliary"
	Adverb      Class = "adverb"
	Adjective   Class = "adjective"
	Verb        Class = "verb"
	Participle  Class = "participle"
	Stopword    Class = "stopword"
)

// Classes lists every class in a fixed order.
var Classes = []Class{
	Pronoun, Conjunction, Honorific, Slang, Expression, Determiner,
	Preposition, Auxiliary, Adverb, Adjective, Verb, Participle, Stopword,
}

// ParseClass validates a class name.
func ParseClass(name string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Classes {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown word class %q", name)
}

// Lexicon stores the vocabulary the rule-based tagger relies on:
// - Classes: closed word lists (pronouns, conjunctions, slang, ...)
// - Phrases: multi-word entries of a class ("you know" -> expression)
// - Lemmas: irregular inflections mapped to their base form (went -> go)
type Lexicon struct {
	// word -> classes it belongs to
	classes map[string]map[Class]struct{}

	// first word of a phrase -> phrases starting with it, longest first
	phrases map[string][]Phrase

	// lemma -> all forms (including the lemma itself)
	// Example: "be" -> ["be", "am", "is", "are", "was", "were", "been", "being"]
	forms map[string][]string

	// form -> lemma
	reverseIndex map[string]string
}

// Phrase is a multi-word lexicon entry.
type Phrase struct {
	Words []string
	Class Class
}

// Entry is a single (word, class) membership, used for import/export.
type Entry struct {
	Word  string
	Class Class
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		classes:      make(map[string]map[Class]struct{}),
		phrases:      make(map[string][]Phrase),
		forms:        make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// File is the YAML layout of a lexicon file.
//
// Expected format:
//
//	classes:
//	  pronoun: [i, you, he, she]
//	  expression: [wow, "you know"]
//	lemmas:
//	  - lemma: be
//	    forms: [am, is, are, was, were, been, being]
//
// Entries containing spaces become phrases.
type File struct {
	Classes map[string][]string `yaml:"classes"`
	Lemmas  []LemmaGroup        `yaml:"lemmas"`
}

// LemmaGroup is a lemma with its inflected forms.
type LemmaGroup struct {
	Lemma string   `yaml:"lemma"`
	Forms []string `yaml:"forms,flow"`
}

// LoadFromYAML loads a lexicon from a YAML file.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML lexicon data.
func Parse(data []byte) (*Lexicon, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	lex := New()
	names := make([]string, 0, len(f.Classes))
	for name := range f.Classes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		class, err := ParseClass(name)
		if err != nil {
			return nil, err
		}
		lex.AddWords(class, f.Classes[name]...)
	}
	for _, entry := range f.Lemmas {
		if strings.TrimSpace(entry.Lemma) == "" {
			return nil, fmt.Errorf("lemma entry without lemma: %v", entry.Forms)
		}
		lex.AddLemma(entry.Lemma, entry.Forms...)
	}

	return lex, nil
}

// File returns the YAML layout of the lexicon, words sorted within each
// class and lemma groups sorted by lemma.
func (l *Lexicon) File() File {
	f := File{Classes: make(map[string][]string)}
	for _, e := range l.Entries() {
		f.Classes[string(e.Class)] = append(f.Classes[string(e.Class)], e.Word)
	}

	lemmas := make([]string, 0, len(l.forms))
	for lemma := range l.forms {
		lemmas = append(lemmas, lemma)
	}
	sort.Strings(lemmas)
	for _, lemma := range lemmas {
		f.Lemmas = append(f.Lemmas, LemmaGroup{Lemma: lemma, Forms: l.forms[lemma][1:]})
	}
	return f
}

// MarshalYAML encodes the lexicon in the layout Parse reads.
func (l *Lexicon) MarshalYAML() (interface{}, error) {
	return l.File(), nil
}

// AddWords registers words (or space-separated phrases) under a class.
func (l *Lexicon) AddWords(class Class, words ...string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if parts := strings.Fields(w); len(parts) > 1 {
			l.addPhrase(Phrase{Words: parts, Class: class})
			continue
		}
		set, ok := l.classes[w]
		if !ok {
			set = make(map[Class]struct{})
			l.classes[w] = set
		}
		set[class] = struct{}{}
	}
}

func (l *Lexicon) addPhrase(p Phrase) {
	head := p.Words[0]
	for _, existing := range l.phrases[head] {
		if existing.Class == p.Class && strings.Join(existing.Words, " ") == strings.Join(p.Words, " ") {
			return
		}
	}
	list := append(l.phrases[head], p)
	sort.SliceStable(list, func(i, j int) bool {
		return len(list[i].Words) > len(list[j].Words)
	})
	l.phrases[head] = list
}

// AddLemma adds a lemma group. The lemma is always included as the first form.
// If the group already exists, old reverse index entries are cleaned up first.
func (l *Lexicon) AddLemma(lemma string, forms ...string) {
	lemma = strings.ToLower(strings.TrimSpace(lemma))

	if old, exists := l.forms[lemma]; exists {
		for _, f := range old {
			if l.reverseIndex[f] == lemma {
				delete(l.reverseIndex, f)
			}
		}
	}

	normalized := []string{lemma}
	seen := map[string]bool{lemma: true}
	for _, f := range forms {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		normalized = append(normalized, f)
	}

	l.forms[lemma] = normalized
	for _, f := range normalized {
		l.reverseIndex[f] = lemma
	}
}

// Is reports whether a word belongs to class.
func (l *Lexicon) Is(word string, class Class) bool {
	set, ok := l.classes[strings.ToLower(word)]
	if !ok {
		return false
	}
	_, ok = set[class]
	return ok
}

// ClassesOf returns the classes a word belongs to, in Classes order.
func (l *Lexicon) ClassesOf(word string) []Class {
	set := l.classes[strings.ToLower(word)]
	out := []Class{}
	for _, c := range Classes {
		if _, ok := set[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Known reports whether the word belongs to any class.
func (l *Lexicon) Known(word string) bool {
	_, ok := l.classes[strings.ToLower(word)]
	return ok
}

// Lemma returns the base form registered for a word.
//
// Examples:
//   - Lemma("went") -> "go", true
//   - Lemma("unknown") -> "unknown", false
func (l *Lexicon) Lemma(word string) (string, bool) {
	word = strings.ToLower(word)
	if lemma, ok := l.reverseIndex[word]; ok {
		return lemma, true
	}
	return word, false
}

// Forms returns every registered form of the lemma a word belongs to.
func (l *Lexicon) Forms(word string) []string {
	lemma, _ := l.Lemma(word)
	if forms, ok := l.forms[lemma]; ok {
		return forms
	}
	return []string{lemma}
}

// PhrasesAt returns the phrases whose first word is head, longest first.
func (l *Lexicon) PhrasesAt(head string) []Phrase {
	return l.phrases[strings.ToLower(head)]
}

// Entries returns all class memberships (phrases included) sorted by class then word.
func (l *Lexicon) Entries() []Entry {
	var out []Entry
	for word, set := range l.classes {
		for class := range set {
			out = append(out, Entry{Word: word, Class: class})
		}
	}
	for _, list := range l.phrases {
		for _, p := range list {
			out = append(out, Entry{Word: strings.Join(p.Words, " "), Class: p.Class})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// LemmaGroups returns lemma -> forms, lemma first in each list.
func (l *Lexicon) LemmaGroups() map[string][]string {
	out := make(map[string][]string, len(l.forms))
	for lemma, forms := range l.forms {
		out[lemma] = append([]string(nil), forms...)
	}
	return out
}

// Merge copies every entry of other into l.
func (l *Lexicon) Merge(other *Lexicon) {
	if other == nil {
		return
	}
	for _, e := range other.Entries() {
		l.AddWords(e.Class, e.Word)
	}
	// Lemma groups go in sorted order so a form shared by two groups
	// always resolves to the lemma that sorts last.
	lemmas := make([]string, 0, len(other.forms))
	for lemma := range other.forms {
		lemmas = append(lemmas, lemma)
	}
	sort.Strings(lemmas)
	for _, lemma := range lemmas {
		l.AddLemma(lemma, other.forms[lemma]...)
	}
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	s := Stats{Words: len(l.classes), LemmaGroups: len(l.forms)}
	for _, list := range l.phrases {
		s.Phrases += len(list)
	}
	for _, forms := range l.forms {
		s.Forms += len(forms)
	}
	return s
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	Words       int // distinct single words with at least one class
	Phrases     int // multi-word entries
	LemmaGroups int // number of lemmas
	Forms       int // total forms across lemma groups
}
