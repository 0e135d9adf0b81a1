package textlens

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/cognicore/textlens/pkg/textlens/concepts"
	"github.com/cognicore/textlens/pkg/textlens/insights"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/structure"
	"github.com/cognicore/textlens/pkg/textlens/tagger"
)

const scenario = "Cats are mammals. Cats have fur. However, dogs differ."

func newTestAnalyzer() *Analyzer {
	logger, _ := logtest.NewNullLogger()
	return New(Options{Logger: logger})
}

func TestAnalyzeSemanticsScenario(t *testing.T) {
	res, err := newTestAnalyzer().AnalyzeSemantics(context.Background(), scenario)
	if err != nil {
		t.Fatalf("AnalyzeSemantics: %v", err)
	}

	if res.Structure.Complexity != structure.Basic {
		t.Errorf("Complexity = %q, want basic", res.Structure.Complexity)
	}
	if res.Structure.Flow != structure.Circular {
		t.Errorf("Flow = %q, want circular", res.Structure.Flow)
	}

	gotNames := concepts.Names(res.Semantics.MainConcepts)
	if want := []string{"cat", "mammal", "fur", "dog", "differ"}; !reflect.DeepEqual(gotNames, want) {
		t.Errorf("MainConcepts = %q, want %q", gotNames, want)
	}

	wantRels := []concepts.Relationship{
		{Source: "cat", Target: "mammal", Type: concepts.Elaborates},
		{Source: "cat", Target: "fur", Type: concepts.Elaborates},
		{Source: "dog", Target: "differ", Type: concepts.Contrasts},
	}
	if !reflect.DeepEqual(res.Semantics.Relationships, wantRels) {
		t.Errorf("Relationships = %+v, want %+v", res.Semantics.Relationships, wantRels)
	}

	var order []string
	for _, n := range res.Semantics.Hierarchy {
		order = append(order, n.Concept)
	}
	if want := []string{"mammal", "fur", "differ", "cat", "dog"}; !reflect.DeepEqual(order, want) {
		t.Errorf("hierarchy order = %q, want %q", order, want)
	}

	wantTakeaways := []string{"Cats are mammals.", "Cats are mammals.", "Cats have fur."}
	if !reflect.DeepEqual(res.Insights.KeyTakeaways, wantTakeaways) {
		t.Errorf("KeyTakeaways = %q, want %q", res.Insights.KeyTakeaways, wantTakeaways)
	}
	if len(res.Insights.Gaps) != 4 {
		t.Errorf("expected 4 gaps, got %q", res.Insights.Gaps)
	}
	if want := []string{insights.NoStrengths}; !reflect.DeepEqual(res.Insights.Strengths, want) {
		t.Errorf("Strengths = %q, want %q", res.Insights.Strengths, want)
	}
}

func TestAnalyzeMatchesInflectedConcepts(t *testing.T) {
	a := newTestAnalyzer()
	ctx := context.Background()
	text := "People need cities. People build cities. People love cities."

	res, err := a.AnalyzeSemantics(ctx, text)
	if err != nil {
		t.Fatalf("AnalyzeSemantics: %v", err)
	}
	names := concepts.Names(res.Semantics.MainConcepts)
	if len(names) < 2 || names[0] != "person" || names[1] != "city" {
		t.Fatalf("MainConcepts = %q, want person and city first", names)
	}

	pairs := 0
	for _, r := range res.Semantics.Relationships {
		if r.Source == "person" && r.Target == "city" {
			pairs++
		}
	}
	if pairs != 3 {
		t.Errorf("person->city edges = %d, want 3 (%+v)", pairs, res.Semantics.Relationships)
	}
	want := []string{"People need cities.", "People need cities.", "People need cities."}
	if !reflect.DeepEqual(res.Insights.KeyTakeaways, want) {
		t.Errorf("KeyTakeaways = %q, want %q", res.Insights.KeyTakeaways, want)
	}

	st, err := a.AnalyzeStyle(ctx, text)
	if err != nil {
		t.Fatalf("AnalyzeStyle: %v", err)
	}
	if len(st.Topics) < 2 || st.Topics[0].Context != "People need cities." || st.Topics[1].Context != "People need cities." {
		t.Errorf("Topics = %+v, want contexts for person and city", st.Topics)
	}

	res, err = a.AnalyzeSemantics(ctx, "Studies show results. Studies matter.")
	if err != nil {
		t.Fatal(err)
	}
	linked := false
	for _, r := range res.Semantics.Relationships {
		if r.Source == "study" {
			linked = true
		}
	}
	if !linked {
		t.Errorf("study has no edges: %+v", res.Semantics)
	}
}

func TestAnalyzeRejectsEmptyInput(t *testing.T) {
	a := newTestAnalyzer()
	ctx := context.Background()

	for _, text := range []string{"", "   \n\t "} {
		if res, err := a.AnalyzeSemantics(ctx, text); !errors.Is(err, internalerr.ErrInvalidInput) || res != nil {
			t.Errorf("AnalyzeSemantics(%q) = %v, %v; want ErrInvalidInput", text, res, err)
		}
		if res, err := a.AnalyzeStyle(ctx, text); !errors.Is(err, internalerr.ErrInvalidInput) || res != nil {
			t.Errorf("AnalyzeStyle(%q) = %v, %v; want ErrInvalidInput", text, res, err)
		}
		if res, err := a.AnalyzeText(ctx, text); !errors.Is(err, internalerr.ErrInvalidInput) || res != nil {
			t.Errorf("AnalyzeText(%q) = %v, %v; want ErrInvalidInput", text, res, err)
		}
	}
}

func TestAnalyzeListsNeverEmpty(t *testing.T) {
	a := newTestAnalyzer()
	ctx := context.Background()

	texts := []string{
		scenario,
		"Hi.",
		"!!!",
		"The report was written by Dr. Smith.",
		"Introduction\n\nThis is important. The key idea is simple.\n\nMore text follows here.",
	}
	for _, text := range texts {
		sem, err := a.AnalyzeSemantics(ctx, text)
		if err != nil {
			t.Fatalf("AnalyzeSemantics(%q): %v", text, err)
		}
		ins := sem.Insights
		if len(ins.KeyTakeaways) == 0 || len(ins.Gaps) == 0 || len(ins.Strengths) == 0 {
			t.Errorf("AnalyzeSemantics(%q) has an empty insight list: %+v", text, ins)
		}
		if sem.Semantics.Relationships == nil || sem.Semantics.Hierarchy == nil || sem.Semantics.MainConcepts == nil {
			t.Errorf("AnalyzeSemantics(%q) has a nil semantics list: %+v", text, sem.Semantics)
		}

		st, err := a.AnalyzeStyle(ctx, text)
		if err != nil {
			t.Fatalf("AnalyzeStyle(%q): %v", text, err)
		}
		if len(st.Content.KeyPoints) == 0 || len(st.Content.SubThemes) == 0 || len(st.Topics) == 0 || len(st.Suggestions) == 0 {
			t.Errorf("AnalyzeStyle(%q) has an empty list: %+v", text, st)
		}
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := newTestAnalyzer()
	ctx := context.Background()
	text := "Markets rose because demand grew. However, supply lagged. Demand and markets moved together, but prices held."

	encode := func(v any) []byte {
		t.Helper()
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return b
	}

	sem1, err := a.AnalyzeSemantics(ctx, text)
	if err != nil {
		t.Fatal(err)
	}
	sem2, err := a.AnalyzeSemantics(ctx, text)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(encode(sem1), encode(sem2)) {
		t.Error("semantic analysis differs between runs")
	}

	st1, err := a.AnalyzeStyle(ctx, text)
	if err != nil {
		t.Fatal(err)
	}
	st2, err := a.AnalyzeStyle(ctx, text)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(encode(st1), encode(st2)) {
		t.Error("style analysis differs between runs")
	}
}

func TestAnalyzeText(t *testing.T) {
	res, err := newTestAnalyzer().AnalyzeText(context.Background(), "Hello world. Bye.")
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	if res.WordCount != 3 || res.SentenceCount != 2 || res.ReadingTime != 1 {
		t.Errorf("unexpected stats %+v", res)
	}
}

type panicTagger struct{}

func (panicTagger) Tag(string) *tagger.Doc { panic("tagger exploded") }

func TestAnalyzeRecoversPanics(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	a := New(Options{Tagger: panicTagger{}, Logger: logger})

	res, err := a.AnalyzeSemantics(context.Background(), scenario)
	if !errors.Is(err, internalerr.ErrAnalysis) {
		t.Fatalf("expected ErrAnalysis, got %v", err)
	}
	if errors.Is(err, internalerr.ErrInvalidInput) {
		t.Error("internal failures must not look like invalid input")
	}
	if res != nil {
		t.Errorf("expected no result, got %+v", res)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected an error log entry, got %+v", entry)
	}
	if entry.Data["mode"] != "semantic" {
		t.Errorf("log entry mode = %v", entry.Data["mode"])
	}
}

// panicHook fails while the completion message of a stage is logged, after
// the result has been built.
type panicHook struct{}

func (panicHook) Levels() []logrus.Level { return []logrus.Level{logrus.DebugLevel} }

func (panicHook) Fire(*logrus.Entry) error { panic("log sink exploded") }

func TestAnalyzeDropsPartialResultOnPanic(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	logger.AddHook(panicHook{})
	a := New(Options{Logger: logger})
	ctx := context.Background()

	sem, err := a.AnalyzeSemantics(ctx, scenario)
	if !errors.Is(err, internalerr.ErrAnalysis) {
		t.Fatalf("AnalyzeSemantics: expected ErrAnalysis, got %v", err)
	}
	if sem != nil {
		t.Errorf("AnalyzeSemantics returned a partial result: %+v", sem)
	}

	st, err := a.AnalyzeStyle(ctx, scenario)
	if !errors.Is(err, internalerr.ErrAnalysis) {
		t.Fatalf("AnalyzeStyle: expected ErrAnalysis, got %v", err)
	}
	if st != nil {
		t.Errorf("AnalyzeStyle returned a partial result: %+v", st)
	}

	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Errorf("expected an error log entry, got %+v", entry)
	}
}

func TestAnalyzeHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestAnalyzer().AnalyzeStyle(ctx, scenario); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
