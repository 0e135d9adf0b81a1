package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cognicore/textlens/internal/extract"
	"github.com/cognicore/textlens/pkg/textlens/cards"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/lexicon"
)

// AnalyzeRequest is the body of the /v1/analyze routes
type AnalyzeRequest struct {
	Text  string `json:"text"`
	HTML  bool   `json:"html"`
	Title string `json:"title,omitempty"`
}

// WordInfo describes how the tagger's lexicon sees a single word
type WordInfo struct {
	Word    string          `json:"word"`
	Lemma   string          `json:"lemma"`
	Known   bool            `json:"known"`
	Classes []lexicon.Class `json:"classes"`
	Forms   []string        `json:"forms"`
}

// LexiconStats is the body of GET /v1/lexicon
type LexiconStats struct {
	Words       int `json:"words"`
	Phrases     int `json:"phrases"`
	LemmaGroups int `json:"lemmaGroups"`
	Forms       int `json:"forms"`
}

func (s *Server) handleAnalyze(kind cards.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := loggerFrom(ctx, s.log)

		r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
		var req AnalyzeRequest
		if err := DecodeJSON(r, &req); err != nil {
			HandleError(w, err)
			return
		}

		text := req.Text
		if req.HTML {
			text = extract.String(text)
		}

		analyzer := s.analyzer.WithLogger(log)
		var parts cards.Parts
		var err error
		switch kind {
		case cards.KindSemantic:
			parts.Semantic, err = analyzer.AnalyzeSemantics(ctx, text)
		case cards.KindStyle:
			parts.Style, err = analyzer.AnalyzeStyle(ctx, text)
		case cards.KindStats:
			parts.Stats, err = analyzer.AnalyzeText(ctx, text)
		default:
			if parts.Semantic, err = analyzer.AnalyzeSemantics(ctx, text); err != nil {
				break
			}
			if parts.Style, err = analyzer.AnalyzeStyle(ctx, text); err != nil {
				break
			}
			parts.Stats, err = analyzer.AnalyzeText(ctx, text)
		}
		if err != nil {
			if !errors.Is(err, internalerr.ErrInvalidInput) {
				log.WithError(err).WithField("kind", kind).Error("analysis failed")
			}
			HandleError(w, analysisError(err))
			return
		}

		JSONResponse(w, http.StatusOK, s.builder.Build(req.Title, parts))
	}
}

func (s *Server) handleLexiconStats(w http.ResponseWriter, _ *http.Request) {
	st := s.lexicon.Stats()
	JSONResponse(w, http.StatusOK, LexiconStats{
		Words:       st.Words,
		Phrases:     st.Phrases,
		LemmaGroups: st.LemmaGroups,
		Forms:       st.Forms,
	})
}

func (s *Server) handleLexiconLookup(w http.ResponseWriter, r *http.Request) {
	word := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "word")))
	if word == "" {
		HandleError(w, &HTTPError{Code: http.StatusBadRequest, Message: "word is required"})
		return
	}

	lemma, _ := s.lexicon.Lemma(word)
	JSONResponse(w, http.StatusOK, WordInfo{
		Word:    word,
		Lemma:   lemma,
		Known:   s.lexicon.Known(word),
		Classes: s.lexicon.ClassesOf(word),
		Forms:   s.lexicon.Forms(word),
	})
}

// analysisError maps analyzer errors onto HTTP status codes.
func analysisError(err error) error {
	switch {
	case errors.Is(err, internalerr.ErrInvalidInput):
		return &HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return &HTTPError{Code: http.StatusServiceUnavailable, Message: "analysis timed out"}
	}
	return &HTTPError{Code: http.StatusInternalServerError, Message: "analysis failed"}
}
