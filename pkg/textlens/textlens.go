package textlens

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/textlens/pkg/textlens/concepts"
	"github.com/cognicore/textlens/pkg/textlens/insights"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/stats"
	"github.com/cognicore/textlens/pkg/textlens/structure"
	"github.com/cognicore/textlens/pkg/textlens/style"
	"github.com/cognicore/textlens/pkg/textlens/tagger"
)

// Analyzer is the text analysis facade. It holds no per-call state and is
// safe for concurrent use.
type Analyzer struct {
	tagger tagger.Tagger
	log    logrus.FieldLogger
}

// Options configures an Analyzer
type Options struct {
	// Tagger defaults to a Lexical tagger over the embedded lexicon.
	Tagger tagger.Tagger
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// New creates an Analyzer with the given dependencies
func New(opts Options) *Analyzer {
	a := &Analyzer{tagger: opts.Tagger, log: opts.Logger}
	if a.tagger == nil {
		a.tagger = tagger.NewLexical(nil)
	}
	if a.log == nil {
		a.log = logrus.StandardLogger()
	}
	return a
}

// WithLogger returns a copy of a that logs to l, typically a request-scoped
// entry.
func (a *Analyzer) WithLogger(l logrus.FieldLogger) *Analyzer {
	return &Analyzer{tagger: a.tagger, log: l}
}

// SemanticAnalysis is the concept-graph result
type SemanticAnalysis struct {
	Structure structure.Result  `json:"structure"`
	Semantics Semantics         `json:"semantics"`
	Insights  insights.Insights `json:"insights"`
}

// Semantics groups the concept graph
type Semantics struct {
	MainConcepts  []concepts.Concept      `json:"mainConcepts"`
	Relationships []concepts.Relationship `json:"relationships"`
	Hierarchy     []concepts.Node         `json:"hierarchy"`
}

// AnalyzeSemantics extracts structure, concepts with their relationships and
// hierarchy, and insights from text.
func (a *Analyzer) AnalyzeSemantics(ctx context.Context, text string) (res *SemanticAnalysis, err error) {
	log := a.log.WithField("mode", "semantic")
	defer recoverStage(log, &res, &err)

	doc, err := a.prepare(ctx, text)
	if err != nil {
		return nil, err
	}

	sentences := doc.Sentences()
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w: no sentences", internalerr.ErrInvalidInput)
	}

	main := concepts.Extract(doc.Nouns(), doc.Verbs(), concepts.DefaultLimit)
	names := concepts.Names(main)
	rels := concepts.FindRelationships(sentences, main)

	res = &SemanticAnalysis{
		Structure: structure.Analyze(sentences),
		Semantics: Semantics{
			MainConcepts:  main,
			Relationships: rels,
			Hierarchy:     concepts.BuildHierarchy(names, rels),
		},
		Insights: insights.Generate(sentences, main, rels),
	}

	log.WithFields(logrus.Fields{
		"sentences":     len(sentences),
		"concepts":      len(main),
		"relationships": len(rels),
	}).Debug("semantic analysis complete")
	return res, nil
}

// AnalyzeStyle computes the infographic-oriented style and topic analysis.
func (a *Analyzer) AnalyzeStyle(ctx context.Context, text string) (res *style.Analysis, err error) {
	log := a.log.WithField("mode", "style")
	defer recoverStage(log, &res, &err)

	doc, err := a.prepare(ctx, text)
	if err != nil {
		return nil, err
	}

	analysis, err := style.Analyze(doc, text)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"paragraphs":  analysis.Structure.Paragraphs,
		"readability": analysis.Structure.Readability,
		"topics":      len(analysis.Topics),
	}).Debug("style analysis complete")
	return &analysis, nil
}

// AnalyzeText returns surface statistics of text. It skips the tagger.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (res *stats.TextStats, err error) {
	log := a.log.WithField("mode", "stats")
	defer recoverStage(log, &res, &err)

	if err := validate(ctx, text); err != nil {
		return nil, err
	}
	s := stats.Compute(text)
	return &s, nil
}

func (a *Analyzer) prepare(ctx context.Context, text string) (*tagger.Doc, error) {
	if err := validate(ctx, text); err != nil {
		return nil, err
	}
	doc := a.tagger.Tag(text)
	if doc == nil {
		return nil, fmt.Errorf("%w: tagger returned no document", internalerr.ErrAnalysis)
	}
	return doc, nil
}

func validate(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is empty", internalerr.ErrInvalidInput)
	}
	return nil
}

// recoverStage converts a panic inside an analysis stage into ErrAnalysis
// and drops any partially built result.
func recoverStage[T any](log logrus.FieldLogger, res **T, err *error) {
	r := recover()
	if r == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"panic": r,
		"stack": string(debug.Stack()),
	}).Error("analysis stage panicked")
	*res = nil
	*err = fmt.Errorf("%w: %v", internalerr.ErrAnalysis, r)
}
