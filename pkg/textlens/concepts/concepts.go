// Package concepts turns ranked lemmas into a concept graph: the salient
// concepts, the typed relationships between them and their hierarchy levels.
package concepts

import (
	"slices"
	"sort"

	"github.com/cognicore/textlens/pkg/textlens/tagger"
)

// DefaultLimit is the number of concepts selected per document.
const DefaultLimit = 5

// Concept is a salient lemma selected as a graph node.
type Concept struct {
	Name      string  `json:"name"`
	Frequency int     `json:"frequency"`
	Relevance float64 `json:"relevance"`
	// Forms are the surface forms the lemma was seen as.
	Forms []string `json:"-"`
}

// In reports whether sentence mentions the concept by name or by one of its
// surface forms.
func (c Concept) In(sentence string) bool {
	return tagger.Mentions(sentence, c.Name, c.Forms)
}

// Extract merges the noun and verb rankings (nouns first, so nouns win ties),
// keeps the top limit lemmas by count and drops duplicate lemmas while
// preserving rank order. Relevance is each frequency over the summed
// frequency of the selected concepts.
func Extract(nouns, verbs []tagger.Term, limit int) []Concept {
	if limit <= 0 {
		limit = DefaultLimit
	}

	merged := make([]tagger.Term, 0, len(nouns)+len(verbs))
	merged = append(merged, nouns...)
	merged = append(merged, verbs...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Count > merged[j].Count
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}

	seen := make(map[string]int, len(merged))
	out := make([]Concept, 0, len(merged))
	total := 0
	for _, term := range merged {
		if i, ok := seen[term.Lemma]; ok {
			for _, f := range term.Forms {
				if !slices.Contains(out[i].Forms, f) {
					out[i].Forms = append(out[i].Forms, f)
				}
			}
			continue
		}
		seen[term.Lemma] = len(out)
		out = append(out, Concept{
			Name:      term.Lemma,
			Frequency: term.Count,
			Forms:     append([]string(nil), term.Forms...),
		})
		total += term.Count
	}

	if total > 0 {
		for i := range out {
			out[i].Relevance = float64(out[i].Frequency) / float64(total)
		}
	}
	return out
}

// Names returns the concept names in rank order.
func Names(concepts []Concept) []string {
	names := make([]string, len(concepts))
	for i, c := range concepts {
		names[i] = c.Name
	}
	return names
}
