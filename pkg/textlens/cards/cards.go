package cards

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/textlens/pkg/textlens"
	"github.com/cognicore/textlens/pkg/textlens/stats"
	"github.com/cognicore/textlens/pkg/textlens/style"
)

// Kind names which analyses a report carries
type Kind string

const (
	KindSemantic Kind = "semantic"
	KindStyle    Kind = "style"
	KindStats    Kind = "stats"
	KindAll      Kind = "all"
	KindEmpty    Kind = "empty"
)

// Builder constructs report envelopes with sortable unique IDs. It is safe
// for concurrent use.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Parts holds the analysis results to wrap. Nil parts are omitted.
type Parts struct {
	Semantic *textlens.SemanticAnalysis
	Style    *style.Analysis
	Stats    *stats.TextStats
}

// Report is the envelope returned by the CLI and the HTTP API
type Report struct {
	ID        string                     `json:"id"`
	Kind      Kind                       `json:"kind"`
	Title     string                     `json:"title,omitempty"`
	CreatedAt time.Time                  `json:"createdAt"`
	Summary   []string                   `json:"summary"`
	Semantic  *textlens.SemanticAnalysis `json:"semantic,omitempty"`
	Style     *style.Analysis            `json:"style,omitempty"`
	Stats     *stats.TextStats           `json:"stats,omitempty"`
}

// Build wraps the given parts in a report with a fresh ULID
func (b *Builder) Build(title string, p Parts) Report {
	b.mu.Lock()
	now := b.now().UTC()
	id := ulid.MustNew(ulid.Timestamp(now), b.entropy).String()
	b.mu.Unlock()

	return Report{
		ID:        id,
		Kind:      kindOf(p),
		Title:     title,
		CreatedAt: now,
		Summary:   Summarize(p),
		Semantic:  p.Semantic,
		Style:     p.Style,
		Stats:     p.Stats,
	}
}

func kindOf(p Parts) Kind {
	var kinds []Kind
	if p.Semantic != nil {
		kinds = append(kinds, KindSemantic)
	}
	if p.Style != nil {
		kinds = append(kinds, KindStyle)
	}
	if p.Stats != nil {
		kinds = append(kinds, KindStats)
	}
	switch len(kinds) {
	case 0:
		return KindEmpty
	case 1:
		return kinds[0]
	}
	return KindAll
}

// Summarize renders one headline bullet per present part.
func Summarize(p Parts) []string {
	bullets := []string{}

	if s := p.Semantic; s != nil {
		names := make([]string, len(s.Semantics.MainConcepts))
		for i, c := range s.Semantics.MainConcepts {
			names[i] = c.Name
		}
		bullets = append(bullets, fmt.Sprintf("%s %s structure, %d concepts (%s), %d relationships",
			s.Structure.Complexity, s.Structure.Flow, len(names),
			strings.Join(names, ", "), len(s.Semantics.Relationships)))
	}
	if s := p.Style; s != nil {
		bullets = append(bullets, fmt.Sprintf("%s readability, %s tone, %s voice, theme %q",
			s.Structure.Readability, s.Style.Tone, s.Style.Voice, s.Content.MainTheme))
	}
	if s := p.Stats; s != nil {
		bullets = append(bullets, fmt.Sprintf("%d words, %d sentences, %d min read",
			s.WordCount, s.SentenceCount, s.ReadingTime))
	}
	return bullets
}
