package tagger

import (
	"regexp"
	"strings"
	"unicode"
)

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// SplitParagraphs splits text on blank lines and drops empty paragraphs.
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitSentences segments text into sentences. A sentence ends at a run of
// '.', '!' or '?' (plus closing quotes/brackets) followed by whitespace or
// the end of its paragraph. A period after a word for which isAbbrev returns
// true does not end a sentence; isAbbrev also sees the following word as
// written. Whitespace inside a sentence is collapsed.
func SplitSentences(text string, isAbbrev func(word, next string) bool) []string {
	var out []string
	for _, para := range SplitParagraphs(text) {
		out = append(out, splitParagraph(strings.Join(strings.Fields(para), " "), isAbbrev)...)
	}
	return out
}

func splitParagraph(p string, isAbbrev func(word, next string) bool) []string {
	runes := []rune(p)
	var out []string
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		j := i + 1
		for j < len(runes) && (isTerminator(runes[j]) || isCloser(runes[j])) {
			j++
		}
		if j < len(runes) && !unicode.IsSpace(runes[j]) {
			continue
		}
		if r == '.' && j == i+1 && isAbbrev != nil && isAbbrev(wordBefore(runes, i), wordAfter(runes, j)) {
			continue
		}

		if s := strings.TrimSpace(string(runes[start:j])); s != "" {
			out = append(out, s)
		}
		start = j
		i = j - 1
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}', '”', '’':
		return true
	}
	return false
}

// wordBefore returns the lowercased letters immediately preceding index i.
func wordBefore(runes []rune, i int) string {
	k := i
	for k > 0 && (unicode.IsLetter(runes[k-1]) || runes[k-1] == '.') {
		k--
	}
	return strings.ToLower(string(runes[k:i]))
}

// wordAfter returns the whitespace-delimited token starting after index j,
// skipping leading spaces. Case is preserved.
func wordAfter(runes []rune, j int) string {
	for j < len(runes) && unicode.IsSpace(runes[j]) {
		j++
	}
	k := j
	for k < len(runes) && !unicode.IsSpace(runes[k]) {
		k++
	}
	return string(runes[j:k])
}
