package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/cognicore/textlens/pkg/textlens/cards"
	"github.com/cognicore/textlens/pkg/textlens/lexicon"
)

const scenario = "Cats are mammals. Cats have fur. However, dogs differ."

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	opts.Logger = logger
	return New(opts)
}

func post(t *testing.T, h http.Handler, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func body(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("healthz: %d %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeSemantic(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := post(t, h, "/v1/analyze/semantic", "application/json", body(AnalyzeRequest{Text: scenario}))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var report cards.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.ID == "" || report.Kind != cards.KindSemantic {
		t.Errorf("unexpected envelope %+v", report)
	}
	if report.Semantic == nil || report.Style != nil || report.Stats != nil {
		t.Fatalf("unexpected parts %+v", report)
	}
	if got := report.Semantic.Structure.Flow; got != "circular" {
		t.Errorf("flow = %q, want circular", got)
	}
}

func TestAnalyzeStyleAndStats(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := post(t, h, "/v1/analyze/style", "application/json; charset=utf-8", body(AnalyzeRequest{Text: scenario}))
	if w.Code != http.StatusOK {
		t.Fatalf("style status %d: %s", w.Code, w.Body.String())
	}
	var styleReport cards.Report
	json.Unmarshal(w.Body.Bytes(), &styleReport)
	if styleReport.Style == nil || styleReport.Style.Content.MainTheme != "cat" {
		t.Errorf("unexpected style report %s", w.Body.String())
	}

	w = post(t, h, "/v1/analyze/stats", "application/json", body(AnalyzeRequest{Text: "Hello world. Bye."}))
	if w.Code != http.StatusOK {
		t.Fatalf("stats status %d: %s", w.Code, w.Body.String())
	}
	var statsReport cards.Report
	json.Unmarshal(w.Body.Bytes(), &statsReport)
	if statsReport.Stats == nil || statsReport.Stats.WordCount != 3 || statsReport.Stats.SentenceCount != 2 {
		t.Errorf("unexpected stats report %s", w.Body.String())
	}
}

func TestAnalyzeHTML(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	html := "<h1>Pets</h1><p>Cats are <b>mammals</b>.</p>"
	w := post(t, h, "/v1/analyze/stats", "application/json", body(AnalyzeRequest{Text: html, HTML: true}))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var report cards.Report
	json.Unmarshal(w.Body.Bytes(), &report)
	if report.Stats.WordCount != 4 {
		t.Errorf("WordCount = %d, want 4 (markup stripped)", report.Stats.WordCount)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	s := newTestServer(t, Options{MaxBodyBytes: 64})
	h := s.Handler()

	tests := []struct {
		name        string
		contentType string
		body        string
		want        int
	}{
		{"empty text", "application/json", `{"text":"   "}`, http.StatusBadRequest},
		{"malformed json", "application/json", `{"text":`, http.StatusBadRequest},
		{"unknown field", "application/json", `{"txt":"hi"}`, http.StatusBadRequest},
		{"wrong content type", "text/plain", scenario, http.StatusUnsupportedMediaType},
		{"missing content type", "", `{"text":"hi"}`, http.StatusUnsupportedMediaType},
		{"too large", "application/json", body(AnalyzeRequest{Text: strings.Repeat("word ", 40)}), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, "/v1/analyze/semantic", tt.contentType, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			var payload map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil || payload["error"] == "" {
				t.Errorf("expected JSON error body, got %q", w.Body.String())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()
	req := httptest.NewRequest(http.MethodGet, "/v1/analyze/semantic", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestLexiconRoutes(t *testing.T) {
	lex := lexicon.New()
	lex.AddWords(lexicon.Slang, "gonna")
	lex.AddWords(lexicon.Expression, "you know")
	lex.AddLemma("go", "went", "gone")
	h := newTestServer(t, Options{Lexicon: lex}).Handler()

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w := get("/v1/lexicon/")
	var st LexiconStats
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode stats: %v (%s)", err, w.Body.String())
	}
	if st.Words != 1 || st.Phrases != 1 || st.LemmaGroups != 1 || st.Forms != 3 {
		t.Errorf("stats = %+v", st)
	}

	w = get("/v1/lexicon/Went")
	var info WordInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode word: %v", err)
	}
	want := WordInfo{Word: "went", Lemma: "go", Known: false, Classes: []lexicon.Class{}, Forms: []string{"go", "went", "gone"}}
	if !reflect.DeepEqual(info, want) {
		t.Errorf("lookup(Went) = %+v, want %+v", info, want)
	}

	w = get("/v1/lexicon/gonna")
	json.Unmarshal(w.Body.Bytes(), &info)
	if !info.Known || !reflect.DeepEqual(info.Classes, []lexicon.Class{lexicon.Slang}) {
		t.Errorf("lookup(gonna) = %+v", info)
	}
}

func TestLexiconRoutesNeedLexicon(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()
	req := httptest.NewRequest(http.MethodGet, "/v1/lexicon/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without a lexicon", w.Code)
	}
}

func TestAnalyzeAll(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	w := post(t, h, "/v1/analyze/all", "application/json", body(AnalyzeRequest{Text: scenario, Title: "cats"}))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var report cards.Report
	json.Unmarshal(w.Body.Bytes(), &report)
	if report.Kind != cards.KindAll || report.Title != "cats" {
		t.Errorf("unexpected envelope %+v", report)
	}
	if report.Semantic == nil || report.Style == nil || report.Stats == nil {
		t.Fatalf("missing parts in %s", w.Body.String())
	}
	if len(report.Summary) != 3 {
		t.Errorf("Summary = %q", report.Summary)
	}
}

func TestRequestLoggerFields(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	h := New(Options{Logger: logger}).Handler()

	post(t, h, "/v1/analyze/stats", "application/json", body(AnalyzeRequest{Text: "Hi there."}))

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "request completed" {
		t.Fatalf("unexpected last entry %+v", entry)
	}
	if entry.Data["status"] != http.StatusOK || entry.Data["path"] != "/v1/analyze/stats" {
		t.Errorf("entry data = %v", entry.Data)
	}
	if id, _ := entry.Data["request_id"].(string); id == "" {
		t.Error("request_id missing")
	}
}
