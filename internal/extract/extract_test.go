package extract

import (
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs and headings",
			html: `<html><head><title>T</title><style>p{}</style></head><body>
<h1>Introduction</h1>
<p>Cats are   <b>mammals</b>.
Cats have fur.</p>
<script>var x = 1;</script>
<ul><li>First item</li><li>Second item</li></ul>
</body></html>`,
			want: "Introduction\n\nCats are mammals. Cats have fur.\n\nFirst item\n\nSecond item",
		},
		{
			name: "line breaks stay inside the paragraph",
			html: `<div>one<br>two</div>`,
			want: "one\ntwo",
		},
		{
			name: "entities decoded",
			html: `<p>Fish &amp; chips &lt;3</p>`,
			want: "Fish & chips <3",
		},
		{
			name: "plain text passes through",
			html: "Just text. Nothing else.",
			want: "Just text. Nothing else.",
		},
		{
			name: "only markup",
			html: `<div><script>x()</script></div>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("Text: %v", err)
			}
			if got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := String("<p>Hello <i>world</i>.</p>"); got != "Hello world." {
		t.Errorf("String = %q", got)
	}
}
