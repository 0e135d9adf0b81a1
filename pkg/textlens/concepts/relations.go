package concepts

import "strings"

// RelationType is the discourse relation between two co-occurring concepts.
type RelationType string

const (
	Supports   RelationType = "supports"
	Contrasts  RelationType = "contrasts"
	Elaborates RelationType = "elaborates"
)

var (
	contrastMarkers = []string{"but", "however", "although"}
	supportMarkers  = []string{"because", "therefore", "thus"}
)

// Relationship is a directed co-occurrence edge between two concepts.
type Relationship struct {
	Source string       `json:"source"`
	Target string       `json:"target"`
	Type   RelationType `json:"type"`
}

// FindRelationships emits one edge per sentence for every concept pair
// (i < j in rank order) that the sentence both mentions (see Concept.In).
// Edges are not deduplicated.
func FindRelationships(sentences []string, concepts []Concept) []Relationship {
	out := []Relationship{}
	for _, sentence := range sentences {
		for i := 0; i < len(concepts); i++ {
			if !concepts[i].In(sentence) {
				continue
			}
			for j := i + 1; j < len(concepts); j++ {
				if !concepts[j].In(sentence) {
					continue
				}
				out = append(out, Relationship{
					Source: concepts[i].Name,
					Target: concepts[j].Name,
					Type:   RelationTypeOf(sentence),
				})
			}
		}
	}
	return out
}

// RelationTypeOf classifies a sentence by its markers. Contrast markers are
// checked before support markers; anything else elaborates. Matching is a
// plain substring test.
func RelationTypeOf(sentence string) RelationType {
	lower := strings.ToLower(sentence)
	switch {
	case containsAny(lower, contrastMarkers):
		return Contrasts
	case containsAny(lower, supportMarkers):
		return Supports
	}
	return Elaborates
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
