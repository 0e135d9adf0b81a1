// Package insights derives takeaways, gaps and strengths from how well each
// concept is connected in the relationship graph.
package insights

import (
	"fmt"

	"github.com/cognicore/textlens/pkg/textlens/concepts"
)

// Placeholders substituted for empty lists.
const (
	NoTakeaways = "No clear takeaways identified"
	NoGaps      = "No significant gaps identified"
	NoStrengths = "Content structure appears balanced"
)

// TakeawayConcepts is how many leading concepts get a representative sentence.
const TakeawayConcepts = 3

// Insights is the narrative summary of a concept graph. Every list is non-empty.
type Insights struct {
	KeyTakeaways []string `json:"keyTakeaways"`
	Gaps         []string `json:"gaps"`
	Strengths    []string `json:"strengths"`
}

// Generate builds the insight bundle for ranked concepts and their
// relationships over the document sentences.
func Generate(sentences []string, ranked []concepts.Concept, rels []concepts.Relationship) Insights {
	res := Insights{
		KeyTakeaways: Takeaways(sentences, ranked),
	}

	for _, c := range Connections(rels) {
		switch {
		case c.Count < 2:
			res.Gaps = append(res.Gaps, fmt.Sprintf("Limited exploration of \"%s\" and its relationships", c.Concept))
		case c.Count > 2:
			res.Strengths = append(res.Strengths, fmt.Sprintf("Strong development of \"%s\" throughout the content", c.Concept))
		}
	}

	if len(res.KeyTakeaways) == 0 {
		res.KeyTakeaways = []string{NoTakeaways}
	}
	if len(res.Gaps) == 0 {
		res.Gaps = []string{NoGaps}
	}
	if len(res.Strengths) == 0 {
		res.Strengths = []string{NoStrengths}
	}
	return res
}

// Takeaways picks, for each of the first three concepts, the first sentence
// mentioning it by name or surface form. Concepts without a match are skipped.
func Takeaways(sentences []string, ranked []concepts.Concept) []string {
	if len(ranked) > TakeawayConcepts {
		ranked = ranked[:TakeawayConcepts]
	}

	var out []string
	for _, c := range ranked {
		for _, s := range sentences {
			if c.In(s) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Connection is the number of edge endpoints touching a concept.
type Connection struct {
	Concept string
	Count   int
}

// Connections tallies, per concept, how many edges it appears in as source
// or target. Concepts are listed in the order they first appear.
func Connections(rels []concepts.Relationship) []Connection {
	index := make(map[string]int)
	var out []Connection
	bump := func(name string) {
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, Connection{Concept: name})
		}
		out[i].Count++
	}
	for _, r := range rels {
		bump(r.Source)
		bump(r.Target)
	}
	return out
}
