package tagger

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/textlens/pkg/textlens/lexicon"
)

// Lexical is a rule-based Tagger driven by a lexicon of closed word classes,
// irregular lemmas and suffix heuristics. It is safe for concurrent use as
// long as the lexicon is not modified after construction.
type Lexical struct {
	lex *lexicon.Lexicon
}

// NewLexical creates a tagger over lex. A nil lexicon selects lexicon.Default().
func NewLexical(lex *lexicon.Lexicon) *Lexical {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Lexical{lex: lex}
}

// Lexicon returns the lexicon backing the tagger.
func (l *Lexical) Lexicon() *lexicon.Lexicon {
	return l.lex
}

// closed classes that settle a word's tags on their own
var closedClasses = []struct {
	class lexicon.Class
	tag   Tag
}{
	{lexicon.Honorific, Honorific},
	{lexicon.Pronoun, Pronoun},
	{lexicon.Conjunction, Conjunction},
	{lexicon.Slang, Slang},
	{lexicon.Expression, Expression},
}

var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "mx": true, "dr": true, "prof": true,
	"rev": true, "hon": true, "capt": true, "sgt": true, "lt": true,
	"col": true, "gen": true, "st": true, "jr": true, "sr": true, "vs": true,
}

var subjectPronouns = map[string]bool{
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "who": true,
}

var possessives = map[string]bool{
	"my": true, "your": true, "his": true, "her": true, "its": true,
	"our": true, "their": true, "whose": true,
}

var adjectiveSuffixes = []string{"ous", "ful", "ive", "able", "ible", "less", "ical"}

// Tag segments text into sentences and tags every word.
func (l *Lexical) Tag(text string) *Doc {
	texts := SplitSentences(text, l.isAbbrev)
	sentences := make([]Sentence, len(texts))
	for i, s := range texts {
		sentences[i] = Sentence{Text: s, Tokens: l.tagSentence(s)}
	}
	return NewDoc(sentences)
}

func (l *Lexical) isAbbrev(word, next string) bool {
	if word == "" {
		return false
	}
	if strings.Contains(word, ".") || abbreviations[word] {
		return true
	}
	if utf8.RuneCountInString(word) == 1 {
		return isInitialFollower(next) || l.isNameToken(next)
	}
	return false
}

// isInitialFollower reports whether next is itself an initial such as "K.".
func isInitialFollower(next string) bool {
	r := []rune(next)
	return len(r) == 2 && unicode.IsUpper(r[0]) && r[1] == '.'
}

// isNameToken reports whether next looks like a proper name: capitalized and
// absent from the lexicon, so "J. Smith" keeps its initial while "plan B. It"
// and "vitamin C. Take" end the sentence.
func (l *Lexical) isNameToken(next string) bool {
	r := []rune(next)
	if len(r) < 2 || !unicode.IsUpper(r[0]) {
		return false
	}
	word := strings.ToLower(strings.TrimRightFunc(next, func(c rune) bool {
		return !unicode.IsLetter(c)
	}))
	if l.lex.Known(word) {
		return false
	}
	_, isLemma := l.lex.Lemma(word)
	return !isLemma
}

func (l *Lexical) tagSentence(s string) []Token {
	words := Words(s)
	toks := make([]Token, len(words))
	for i, w := range words {
		norm := strings.ToLower(w)
		if strings.HasSuffix(norm, "'s") && !l.lex.Known(norm) {
			norm = norm[:len(norm)-2]
		}
		toks[i] = Token{Text: w, Norm: norm, Lemma: norm}
	}

	inPhrase := l.markPhrases(toks)

	var prev *Token
	for i := range toks {
		if inPhrase[i] {
			prev = &toks[i]
			continue
		}
		toks[i].Tags, toks[i].Lemma = l.classify(toks[i].Norm, prev)
		prev = &toks[i]
	}

	l.resolveAuxiliaries(toks)

	for i := range toks {
		if toks[i].Tags.Has(Verb) && !toks[i].Tags.Has(Passive) {
			toks[i].Tags |= Active
		}
	}
	return toks
}

// markPhrases tags multi-word lexicon entries on their first token and
// reports which tokens belong to a phrase.
func (l *Lexical) markPhrases(toks []Token) []bool {
	inPhrase := make([]bool, len(toks))
	for i := 0; i < len(toks); i++ {
		for _, p := range l.lex.PhrasesAt(toks[i].Norm) {
			if !matchesAt(toks, i, p.Words) {
				continue
			}
			toks[i].Tags = classTag(p.Class)
			toks[i].Lemma = strings.Join(p.Words, " ")
			for k := i; k < i+len(p.Words); k++ {
				inPhrase[k] = true
			}
			i += len(p.Words) - 1
			break
		}
	}
	return inPhrase
}

func matchesAt(toks []Token, i int, words []string) bool {
	if i+len(words) > len(toks) {
		return false
	}
	for k, w := range words {
		if toks[i+k].Norm != w {
			return false
		}
	}
	return true
}

func classTag(c lexicon.Class) Tag {
	switch c {
	case lexicon.Pronoun:
		return Pronoun
	case lexicon.Conjunction:
		return Conjunction
	case lexicon.Honorific:
		return Honorific
	case lexicon.Slang:
		return Slang
	case lexicon.Expression:
		return Expression
	case lexicon.Determiner:
		return Determiner
	case lexicon.Preposition:
		return Preposition
	case lexicon.Auxiliary:
		return Auxiliary
	case lexicon.Adverb:
		return Adverb
	case lexicon.Adjective:
		return Adjective
	case lexicon.Verb, lexicon.Participle:
		return Verb
	}
	return 0
}

func (l *Lexical) classify(w string, prev *Token) (Tag, string) {
	lex := l.lex

	var tags Tag
	for _, c := range closedClasses {
		if lex.Is(w, c.class) {
			tags |= c.tag
		}
	}
	if tags != 0 {
		return tags, w
	}
	if isNumericOnly(w) {
		return 0, w
	}
	if lex.Is(w, lexicon.Auxiliary) {
		lemma, _ := lex.Lemma(w)
		return Auxiliary, lemma
	}
	if lex.Is(w, lexicon.Determiner) {
		return Determiner, w
	}

	verbLemma, knownVerb := l.verbLemma(w)
	verbContext := knownVerb && (isSubject(prev) || isModal(prev))

	if lex.Is(w, lexicon.Preposition) && !verbContext {
		return Preposition, w
	}
	if lex.Is(w, lexicon.Stopword) {
		return 0, w
	}
	if lex.Is(w, lexicon.Adverb) {
		return Adverb, w
	}
	if lex.Is(w, lexicon.Adjective) && !verbContext {
		return Adjective, w
	}
	if knownVerb && prev != nil && prev.Norm == "to" {
		return Verb, verbLemma
	}
	if modifiesNoun(prev) {
		if hasAdjectiveSuffix(w) {
			return Adjective, w
		}
		return Noun, l.nounLemma(w)
	}
	if knownVerb {
		return Verb, verbLemma
	}
	if len(w) > 4 && strings.HasSuffix(w, "ed") {
		return Verb, verbLemma
	}
	if len(w) > 5 && strings.HasSuffix(w, "ing") && prev != nil && prev.Tags.Has(Auxiliary) {
		return Verb, verbLemma
	}
	if len(w) >= 5 && strings.HasSuffix(w, "ly") {
		return Adverb, w
	}
	if hasAdjectiveSuffix(w) {
		return Adjective, w
	}
	if isSubject(prev) || isModal(prev) {
		return Verb, verbLemma
	}
	if utf8.RuneCountInString(w) < 3 {
		return 0, w
	}
	return Noun, l.nounLemma(w)
}

// resolveAuxiliaries marks passive constructions ("was written") and turns
// auxiliaries that are not followed by a verb into main verbs ("have fur").
func (l *Lexical) resolveAuxiliaries(toks []Token) {
	for i := range toks {
		if !toks[i].Tags.Has(Auxiliary) {
			continue
		}

		j := i + 1
		for j < len(toks) && (toks[j].Tags.Has(Adverb) || toks[j].Norm == "not") {
			j++
		}
		if j >= len(toks) {
			toks[i].Tags |= Verb
			continue
		}

		if isBeForm(&toks[i]) && l.isParticiple(toks[j]) {
			lemma, _ := l.verbLemma(toks[j].Norm)
			toks[j].Tags = Verb | Passive
			toks[j].Lemma = lemma
			continue
		}
		if toks[j].Tags.Has(Verb) || toks[j].Tags.Has(Auxiliary) {
			continue
		}
		toks[i].Tags |= Verb
	}
}

func (l *Lexical) isParticiple(tok Token) bool {
	if tok.Tags.Has(Pronoun | Determiner | Preposition | Conjunction) {
		return false
	}
	if l.lex.Is(tok.Norm, lexicon.Participle) {
		return true
	}
	return len(tok.Norm) > 3 && strings.HasSuffix(tok.Norm, "ed")
}

// verbLemma returns the base form of w and whether it is a known verb.
func (l *Lexical) verbLemma(w string) (string, bool) {
	lex := l.lex
	if lemma, ok := lex.Lemma(w); ok {
		return lemma, lex.Is(lemma, lexicon.Verb) || lex.Is(w, lexicon.Participle)
	}
	if lex.Is(w, lexicon.Verb) {
		return w, true
	}
	for _, c := range verbCandidates(w) {
		if lex.Is(c, lexicon.Verb) {
			return c, true
		}
	}
	return guessVerbLemma(w), false
}

func (l *Lexical) nounLemma(w string) string {
	if lemma, ok := l.lex.Lemma(w); ok {
		return lemma
	}
	return nounLemma(w)
}

func isSubject(prev *Token) bool {
	return prev != nil && prev.Tags.Has(Pronoun) && subjectPronouns[prev.Norm]
}

func isModal(prev *Token) bool {
	return prev != nil && prev.Tags.Has(Auxiliary) && !isBeForm(prev) && prev.Lemma != "have"
}

func isBeForm(tok *Token) bool {
	if tok.Lemma == "be" {
		return true
	}
	for _, suffix := range []string{"'s", "'re", "'m"} {
		if strings.HasSuffix(tok.Norm, suffix) {
			return true
		}
	}
	return false
}

func modifiesNoun(prev *Token) bool {
	if prev == nil {
		return false
	}
	if prev.Tags.Has(Determiner | Adjective | Preposition) {
		return true
	}
	return possessives[prev.Norm]
}

func hasAdjectiveSuffix(w string) bool {
	for _, suffix := range adjectiveSuffixes {
		if len(w) > len(suffix)+2 && strings.HasSuffix(w, suffix) {
			return true
		}
	}
	return false
}
