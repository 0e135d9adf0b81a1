// Package extract turns HTML documents into plain text suitable for
// analysis. Block-level elements become blank-line separated paragraphs so
// paragraph and heading detection keeps working on the result.
package extract

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Head:     true,
	atom.Svg:      true,
	atom.Iframe:   true,
}

var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Aside: true,
	atom.Nav: true, atom.Blockquote: true, atom.Pre: true, atom.Figure: true,
	atom.Figcaption: true, atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.Dl: true, atom.Dt: true, atom.Dd: true, atom.Table: true,
	atom.Tr: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Hr: true,
}

// Text parses an HTML document and returns its visible text.
func Text(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", internalerr.ErrInvalidInput, err)
	}

	w := &writer{}
	w.walk(doc)
	return w.String(), nil
}

// String is Text over a string. Unparseable input is returned unchanged.
func String(s string) string {
	text, err := Text(strings.NewReader(s))
	if err != nil {
		return s
	}
	return text
}

// writer accumulates paragraphs; the current one is built from inline text.
type writer struct {
	paragraphs []string
	current    strings.Builder
}

func (w *writer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		// source line breaks are plain whitespace; only <br> breaks a line
		w.current.WriteString(strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return ' '
			}
			return r
		}, n.Data))
		return
	case html.ElementNode:
		if skipped[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			w.current.WriteString("\n")
			return
		}
	}

	block := n.Type == html.ElementNode && blocks[n.DataAtom]
	if block {
		w.flush()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	if block {
		w.flush()
	}
}

// flush closes the current paragraph, collapsing runs of spaces on each line.
func (w *writer) flush() {
	var lines []string
	for _, line := range strings.Split(w.current.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	w.current.Reset()
	if len(lines) > 0 {
		w.paragraphs = append(w.paragraphs, strings.Join(lines, "\n"))
	}
}

func (w *writer) String() string {
	w.flush()
	return strings.Join(w.paragraphs, "\n\n")
}
