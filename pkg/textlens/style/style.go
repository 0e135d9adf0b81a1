// Package style implements the infographic-oriented analysis: document
// structure, readability, themes, topics with context, stylistic profile and
// improvement suggestions.
package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/tagger"
)

// Readability buckets the simplified Flesch reading-ease score.
type Readability string

const (
	Easy     Readability = "easy"
	Moderate Readability = "moderate"
	Complex  Readability = "complex"
)

type Tone string

const (
	Professional   Tone = "professional"
	Conversational Tone = "conversational"
)

type Voice string

const (
	Active  Voice = "active"
	Passive Voice = "passive"
)

type Formality string

const (
	Formal  Formality = "formal"
	Neutral Formality = "neutral"
	Casual  Formality = "casual"
)

// Fixed output strings.
const (
	DefaultTheme   = "General Content"
	NoKeyPoints    = "No explicit key points found"
	NoSubThemes    = "No secondary themes identified"
	WellOrganized  = "Content structure appears well-organized"
	AddHeaders     = "Consider adding clear section headers to improve structure"
	HighlightKeys  = "Consider highlighting key points more explicitly"
	UseActiveVoice = "Consider using more active voice for better engagement"
	ToneMismatch   = "Content complexity might not match the casual tone"
)

const (
	maxTopics    = 5
	maxKeyPoints = 3
	maxSubThemes = 3
)

var (
	headingLine = regexp.MustCompile(`^[A-Z][\w\s]+:?$`)
	keyMarkers  = []string{"important", "key", "main", "essential"}
)

// Analysis is the full style/topic result.
type Analysis struct {
	Structure   Structure `json:"structure"`
	Content     Content   `json:"content"`
	Style       Profile   `json:"style"`
	Topics      []Topic   `json:"topics"`
	Suggestions []string  `json:"suggestions"`
}

type Structure struct {
	Paragraphs  int         `json:"paragraphs"`
	Sections    int         `json:"sections"`
	Readability Readability `json:"readability"`
}

type Content struct {
	MainTheme string   `json:"mainTheme"`
	SubThemes []string `json:"subThemes"`
	KeyPoints []string `json:"keyPoints"`
}

// Profile is the coarse stylistic classification of a document.
type Profile struct {
	Tone      Tone      `json:"tone"`
	Voice     Voice     `json:"voice"`
	Formality Formality `json:"formality"`
}

// Topic is a frequent noun with its share of noun mentions and an
// illustrative sentence.
type Topic struct {
	Topic     string  `json:"topic"`
	Relevance float64 `json:"relevance"`
	Context   string  `json:"context"`
}

// Analyze runs the style pipeline over a tagged document and its raw text.
// It fails with internalerr.ErrInvalidInput when the text has no sentences
// or no words.
func Analyze(doc *tagger.Doc, text string) (Analysis, error) {
	sentences := doc.Sentences()
	paragraphs := tagger.SplitParagraphs(text)
	words := strings.Fields(text)

	readability, _, err := ReadabilityOf(words, len(sentences))
	if err != nil {
		return Analysis{}, err
	}

	nouns := doc.Nouns()
	keyPoints := KeyPoints(sentences)
	profile := ProfileOf(doc, len(words))

	res := Analysis{
		Structure: Structure{
			Paragraphs:  len(paragraphs),
			Sections:    CountSections(paragraphs),
			Readability: readability,
		},
		Content: Content{
			MainTheme: DefaultTheme,
			SubThemes: []string{},
			KeyPoints: keyPoints,
		},
		Style:  profile,
		Topics: Topics(nouns, sentences),
	}
	if len(nouns) > 0 {
		res.Content.MainTheme = nouns[0].Lemma
	}
	for i := 1; i < len(nouns) && i <= maxSubThemes; i++ {
		res.Content.SubThemes = append(res.Content.SubThemes, nouns[i].Lemma)
	}

	res.Suggestions = Suggestions(res.Structure, len(keyPoints), profile)
	if len(res.Content.KeyPoints) == 0 {
		res.Content.KeyPoints = []string{NoKeyPoints}
	}
	if len(res.Content.SubThemes) == 0 {
		res.Content.SubThemes = []string{NoSubThemes}
	}
	if len(res.Topics) == 0 {
		res.Topics = []Topic{{Topic: DefaultTheme, Context: sentences[0]}}
	}
	return res, nil
}

// ReadabilityOf computes 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words),
// counting syllables as vowel clusters across the concatenated words.
func ReadabilityOf(words []string, sentences int) (Readability, float64, error) {
	if sentences == 0 {
		return "", 0, fmt.Errorf("%w: no sentences", internalerr.ErrInvalidInput)
	}
	if len(words) == 0 {
		return "", 0, fmt.Errorf("%w: no words", internalerr.ErrInvalidInput)
	}

	syllables := CountSyllables(strings.Join(words, ""))
	n := float64(len(words))
	score := 206.835 - 1.015*(n/float64(sentences)) - 84.6*(float64(syllables)/n)

	switch {
	case score > 70:
		return Easy, score, nil
	case score > 50:
		return Moderate, score, nil
	}
	return Complex, score, nil
}

// CountSyllables approximates syllables as runs of ASCII vowels.
func CountSyllables(s string) int {
	count := 0
	inVowel := false
	for _, r := range s {
		switch r {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			if !inVowel {
				count++
			}
			inVowel = true
		default:
			inVowel = false
		}
	}
	return count
}

// CountSections counts paragraphs whose first line looks like a heading:
// capitalized words with an optional trailing colon.
func CountSections(paragraphs []string) int {
	n := 0
	for _, p := range paragraphs {
		first, _, _ := strings.Cut(strings.TrimSpace(p), "\n")
		if headingLine.MatchString(strings.TrimRight(first, "\r")) {
			n++
		}
	}
	return n
}

// KeyPoints returns up to three sentences containing a key-point marker.
// Matching is case-sensitive.
func KeyPoints(sentences []string) []string {
	var out []string
	for _, s := range sentences {
		if len(out) == maxKeyPoints {
			break
		}
		for _, m := range keyMarkers {
			if strings.Contains(s, m) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Topics annotates the top nouns with relevance (count over total noun
// mentions) and the first sentence mentioning them.
func Topics(nouns []tagger.Term, sentences []string) []Topic {
	total := 0
	for _, n := range nouns {
		total += n.Count
	}

	limit := min(len(nouns), maxTopics)
	out := make([]Topic, 0, limit)
	for _, n := range nouns[:limit] {
		topic := Topic{Topic: n.Lemma}
		if total > 0 {
			topic.Relevance = float64(n.Count) / float64(total)
		}
		for _, s := range sentences {
			if tagger.Mentions(s, n.Lemma, n.Forms) {
				topic.Context = s
				break
			}
		}
		out = append(out, topic)
	}
	return out
}

// ProfileOf derives tone, voice and formality from tag counts. wordCount is
// the whitespace-separated word count of the raw text.
func ProfileOf(doc *tagger.Doc, wordCount int) Profile {
	formal := doc.Count(tagger.Honorific, tagger.Pronoun, tagger.Conjunction)
	casual := doc.Count(tagger.Slang, tagger.Expression)

	p := Profile{Tone: Conversational, Voice: Active, Formality: Neutral}
	if formal > casual {
		p.Tone = Professional
	}
	if doc.Count(tagger.Passive) > doc.Count(tagger.Active) {
		p.Voice = Passive
	}

	words := float64(wordCount)
	switch {
	case float64(formal) > words*0.2:
		p.Formality = Formal
	case float64(casual) > words*0.1:
		p.Formality = Casual
	}
	return p
}

// Suggestions evaluates the improvement rules in a fixed order, each adding
// at most one message. With no rule firing a single placeholder is returned.
func Suggestions(s Structure, keyPoints int, p Profile) []string {
	var out []string
	if s.Sections < 2 && s.Paragraphs > 3 {
		out = append(out, AddHeaders)
	}
	if keyPoints < 2 {
		out = append(out, HighlightKeys)
	}
	if p.Voice == Passive && p.Formality != Formal {
		out = append(out, UseActiveVoice)
	}
	if s.Readability == Complex && p.Formality == Casual {
		out = append(out, ToneMismatch)
	}
	if len(out) == 0 {
		return []string{WellOrganized}
	}
	return out
}
