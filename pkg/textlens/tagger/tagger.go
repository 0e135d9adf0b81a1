package tagger

import (
	"slices"
	"sort"
	"strings"
)

// Tagger segments text and annotates every word with grammatical tags.
// Any implementation honouring the Doc contract can back the analyzers.
type Tagger interface {
	Tag(text string) *Doc
}

// Tag is a bit set of grammatical tags carried by a token.
type Tag uint32

const (
	Noun Tag = 1 << iota
	Verb
	Auxiliary
	Adjective
	Adverb
	Pronoun
	Conjunction
	Determiner
	Preposition
	Honorific
	Slang
	Expression
	Passive
	Active
)

var tagNames = []struct {
	tag  Tag
	name string
}{
	{Noun, "Noun"}, {Verb, "Verb"}, {Auxiliary, "Auxiliary"},
	{Adjective, "Adjective"}, {Adverb, "Adverb"}, {Pronoun, "Pronoun"},
	{Conjunction, "Conjunction"}, {Determiner, "Determiner"},
	{Preposition, "Preposition"}, {Honorific, "Honorific"}, {Slang, "Slang"},
	{Expression, "Expression"}, {Passive, "Passive"}, {Active, "Active"},
}

// Has reports whether any of the bits in o are set.
func (t Tag) Has(o Tag) bool { return t&o != 0 }

func (t Tag) String() string {
	var names []string
	for _, tn := range tagNames {
		if t.Has(tn.tag) {
			names = append(names, tn.name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, "|")
}

// Token is one word of a sentence.
type Token struct {
	Text  string // surface form
	Norm  string // lowercased surface form
	Lemma string
	Tags  Tag
}

// Sentence is an ordered unit of the document with its tokens.
type Sentence struct {
	Text   string
	Tokens []Token
}

// Term is a lemma with its frequency across the document. Forms holds the
// lowercased surface forms it was seen as, in first-seen order.
type Term struct {
	Lemma string   `json:"lemma"`
	Count int      `json:"count"`
	Forms []string `json:"forms,omitempty"`
}

// Mentions reports whether the lowercased sentence contains the lemma or any
// of its surface forms. Irregular lemmas ("person" for "people") only match
// through their forms.
func Mentions(sentence, lemma string, forms []string) bool {
	lower := strings.ToLower(sentence)
	if lemma != "" && strings.Contains(lower, lemma) {
		return true
	}
	for _, f := range forms {
		if f != "" && strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// Doc is the result of one tagging pass. It is read-only once built.
type Doc struct {
	sentences []Sentence
	nouns     []Term
	verbs     []Term
}

// NewDoc builds a Doc from already tagged sentences and ranks its terms.
func NewDoc(sentences []Sentence) *Doc {
	d := &Doc{sentences: sentences}
	d.nouns = rankTerms(sentences, func(tok Token) bool {
		return tok.Tags.Has(Noun)
	})
	d.verbs = rankTerms(sentences, func(tok Token) bool {
		return tok.Tags.Has(Verb) && !tok.Tags.Has(Auxiliary)
	})
	return d
}

// Sentences returns the sentence texts in document order.
func (d *Doc) Sentences() []string {
	out := make([]string, len(d.sentences))
	for i, s := range d.sentences {
		out[i] = s.Text
	}
	return out
}

// TaggedSentences returns the sentences with their tokens.
func (d *Doc) TaggedSentences() []Sentence {
	return d.sentences
}

// Nouns returns noun lemmas ranked by count, ties by first occurrence.
func (d *Doc) Nouns() []Term {
	return append([]Term(nil), d.nouns...)
}

// Verbs returns main-verb lemmas ranked by count, ties by first occurrence.
func (d *Doc) Verbs() []Term {
	return append([]Term(nil), d.verbs...)
}

// Count returns how many tokens carry at least one of the given tags.
func (d *Doc) Count(tags ...Tag) int {
	var mask Tag
	for _, t := range tags {
		mask |= t
	}
	n := 0
	for _, s := range d.sentences {
		for _, tok := range s.Tokens {
			if tok.Tags.Has(mask) {
				n++
			}
		}
	}
	return n
}

func rankTerms(sentences []Sentence, keep func(Token) bool) []Term {
	counts := make(map[string]int)
	forms := make(map[string][]string)
	var order []string
	for _, s := range sentences {
		for _, tok := range s.Tokens {
			if tok.Lemma == "" || !keep(tok) {
				continue
			}
			if _, seen := counts[tok.Lemma]; !seen {
				order = append(order, tok.Lemma)
			}
			counts[tok.Lemma]++
			if tok.Norm != "" && !slices.Contains(forms[tok.Lemma], tok.Norm) {
				forms[tok.Lemma] = append(forms[tok.Lemma], tok.Norm)
			}
		}
	}

	terms := make([]Term, len(order))
	for i, lemma := range order {
		terms[i] = Term{Lemma: lemma, Count: counts[lemma], Forms: forms[lemma]}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Count > terms[j].Count
	})
	return terms
}
