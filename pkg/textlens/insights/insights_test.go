package insights

import (
	"reflect"
	"testing"

	"github.com/cognicore/textlens/pkg/textlens/concepts"
)

func edge(src, dst string) concepts.Relationship {
	return concepts.Relationship{Source: src, Target: dst, Type: concepts.Elaborates}
}

func named(names ...string) []concepts.Concept {
	out := make([]concepts.Concept, len(names))
	for i, n := range names {
		out[i] = concepts.Concept{Name: n}
	}
	return out
}

func TestTakeaways(t *testing.T) {
	sentences := []string{"Cats are mammals.", "Cats have fur.", "However, dogs differ.", "Birds fly."}
	got := Takeaways(sentences, named("cat", "dog", "whale", "bird"))

	// whale has no sentence and bird is beyond the first three concepts
	want := []string{"Cats are mammals.", "However, dogs differ."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Takeaways = %q, want %q", got, want)
	}
}

func TestTakeawaysUseSurfaceForms(t *testing.T) {
	sentences := []string{"Rain fell.", "The men left early.", "A man stayed."}
	got := Takeaways(sentences, []concepts.Concept{{Name: "man", Forms: []string{"men"}}})
	if want := []string{"The men left early."}; !reflect.DeepEqual(got, want) {
		t.Errorf("Takeaways = %q, want %q", got, want)
	}
}

func TestConnections(t *testing.T) {
	got := Connections([]concepts.Relationship{edge("a", "b"), edge("a", "c"), edge("b", "c"), edge("a", "b")})
	want := []Connection{{"a", 3}, {"b", 3}, {"c", 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Connections = %v, want %v", got, want)
	}
}

func TestGenerateGapsAndStrengths(t *testing.T) {
	rels := []concepts.Relationship{edge("a", "b"), edge("a", "c"), edge("a", "b"), edge("d", "e")}
	// a:3 b:2 c:1 d:1 e:1
	res := Generate([]string{"a sentence"}, named("a", "b", "c"), rels)

	wantGaps := []string{
		`Limited exploration of "c" and its relationships`,
		`Limited exploration of "d" and its relationships`,
		`Limited exploration of "e" and its relationships`,
	}
	if !reflect.DeepEqual(res.Gaps, wantGaps) {
		t.Errorf("Gaps = %q", res.Gaps)
	}
	wantStrengths := []string{`Strong development of "a" throughout the content`}
	if !reflect.DeepEqual(res.Strengths, wantStrengths) {
		t.Errorf("Strengths = %q", res.Strengths)
	}
	if !reflect.DeepEqual(res.KeyTakeaways, []string{"a sentence"}) {
		t.Errorf("KeyTakeaways = %q", res.KeyTakeaways)
	}
}

func TestGeneratePlaceholders(t *testing.T) {
	res := Generate(nil, nil, nil)
	if !reflect.DeepEqual(res.KeyTakeaways, []string{NoTakeaways}) {
		t.Errorf("KeyTakeaways = %q", res.KeyTakeaways)
	}
	if !reflect.DeepEqual(res.Gaps, []string{NoGaps}) {
		t.Errorf("Gaps = %q", res.Gaps)
	}
	if !reflect.DeepEqual(res.Strengths, []string{NoStrengths}) {
		t.Errorf("Strengths = %q", res.Strengths)
	}
}

func TestGenerateExactlyTwoIsNeither(t *testing.T) {
	res := Generate(nil, nil, []concepts.Relationship{edge("a", "b"), edge("b", "a")})
	if res.Gaps[0] != NoGaps || res.Strengths[0] != NoStrengths {
		t.Errorf("count 2 should be neither gap nor strength: %+v", res)
	}
}
