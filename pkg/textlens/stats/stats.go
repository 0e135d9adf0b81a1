// Package stats computes surface statistics of a text: counts, reading time
// and the most frequent words.
package stats

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// WordsPerMinute is the reading speed used for ReadingTime.
	WordsPerMinute = 200
	// TopWordsLimit caps TextStats.TopWords.
	TopWordsLimit = 5
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type TextStats struct {
	WordCount     int         `json:"wordCount"`
	CharCount     int         `json:"charCount"`
	SentenceCount int         `json:"sentenceCount"`
	ReadingTime   int         `json:"readingTime"`
	TopWords      []WordCount `json:"topWords"`
}

// Compute returns the statistics of text. It never fails; empty text yields
// zero counts and an empty TopWords list.
func Compute(text string) TextStats {
	words := strings.Fields(text)

	sentences := 0
	for _, s := range sentenceBreak.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	return TextStats{
		WordCount:     len(words),
		CharCount:     utf8.RuneCountInString(text),
		SentenceCount: sentences,
		ReadingTime:   ReadingTime(len(words)),
		TopWords:      TopWords(words, TopWordsLimit),
	}
}

// ReadingTime is the number of whole minutes needed to read n words.
func ReadingTime(n int) int {
	return (n + WordsPerMinute - 1) / WordsPerMinute
}

// TopWords counts normalized words and returns the limit most frequent ones,
// ties broken by first occurrence.
func TopWords(words []string, limit int) []WordCount {
	index := make(map[string]int)
	counts := []WordCount{}
	for _, w := range words {
		clean := normalize(w)
		if clean == "" {
			continue
		}
		if i, ok := index[clean]; ok {
			counts[i].Count++
			continue
		}
		index[clean] = len(counts)
		counts = append(counts, WordCount{Word: clean, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// normalize lowercases w and drops everything outside [a-z0-9].
func normalize(w string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(w) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
