// Package structure scores sentence-level structure: length complexity,
// narrative flow and lexical coherence between consecutive sentences.
package structure

import "strings"

// Complexity buckets the average sentence length.
type Complexity string

const (
	Basic        Complexity = "basic"
	Intermediate Complexity = "intermediate"
	Advanced     Complexity = "advanced"
)

// Flow classifies how often discourse markers redirect the narrative.
type Flow string

const (
	Linear    Flow = "linear"
	Branching Flow = "branching"
	Circular  Flow = "circular"
)

// TransitionMarkers are the discourse markers counted by Flow.
var TransitionMarkers = []string{"however", "moreover", "therefore"}

// Result groups the three structural scores.
type Result struct {
	Complexity Complexity `json:"complexity"`
	Flow       Flow       `json:"flow"`
	Coherence  float64    `json:"coherence"`
}

// Analyze computes complexity, flow and coherence for the sentences.
func Analyze(sentences []string) Result {
	return Result{
		Complexity: ComplexityOf(sentences),
		Flow:       FlowOf(sentences),
		Coherence:  Coherence(sentences),
	}
}

// AverageLength is the mean number of space-separated words per sentence.
// It is 0 for an empty slice.
func AverageLength(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	total := 0
	for _, s := range sentences {
		total += len(strings.Split(s, " "))
	}
	return float64(total) / float64(len(sentences))
}

// ComplexityOf maps the average sentence length to a bucket:
// < 10 basic, < 20 intermediate, otherwise advanced.
func ComplexityOf(sentences []string) Complexity {
	avg := AverageLength(sentences)
	switch {
	case avg < 10:
		return Basic
	case avg < 20:
		return Intermediate
	}
	return Advanced
}

// FlowOf classifies the share of sentences containing a transition marker:
// < 0.1 linear, < 0.2 branching, otherwise circular.
func FlowOf(sentences []string) Flow {
	transitions := 0
	for _, s := range sentences {
		if containsAny(strings.ToLower(s), TransitionMarkers) {
			transitions++
		}
	}

	n := float64(len(sentences))
	switch {
	case float64(transitions) < n*0.1:
		return Linear
	case float64(transitions) < n*0.2:
		return Branching
	}
	return Circular
}

// Coherence averages the lexical overlap of consecutive sentence pairs.
// Overlap is |A ∩ B| / max(|A|, |B|) over lowercased, space-split word sets.
// Fewer than two sentences yield 0.
func Coherence(sentences []string) float64 {
	if len(sentences) < 2 {
		return 0
	}

	score := 0.0
	prev := wordSet(sentences[0])
	for _, s := range sentences[1:] {
		curr := wordSet(s)
		overlap := 0
		for w := range prev {
			if _, ok := curr[w]; ok {
				overlap++
			}
		}
		score += float64(overlap) / float64(max(len(prev), len(curr)))
		prev = curr
	}
	return score / float64(len(sentences)-1)
}

func wordSet(s string) map[string]struct{} {
	words := strings.Split(strings.ToLower(s), " ")
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
