// Package htmltext converts LeetCode problem statements from HTML into
// plain text or Markdown.
package htmltext

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"leetcode-export/internal/domain/ports"
)

// PlainText extracts the visible text of an HTML fragment, one block per line.
type PlainText struct{}

var _ ports.TextNormalizer = PlainText{}

var blockElements = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Li:         true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Pre:        true,
	atom.Blockquote: true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Table:      true,
	atom.Tr:         true,
	atom.Section:    true,
	atom.Article:    true,
}

// Normalize implements ports.TextNormalizer. It never fails: malformed markup
// is repaired by the parser and absent input yields "".
func (PlainText) Normalize(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	node, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var builder strings.Builder
	extractText(node, &builder)
	return collapseLines(builder.String())
}

func extractText(node *html.Node, builder *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		builder.WriteString(node.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		switch node.DataAtom {
		case atom.Script, atom.Style, atom.Template:
			return
		case atom.Br, atom.Hr:
			builder.WriteRune('\n')
			return
		}
		if blockElements[node.DataAtom] {
			builder.WriteRune('\n')
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		extractText(child, builder)
	}

	if node.Type == html.ElementNode && blockElements[node.DataAtom] {
		builder.WriteRune('\n')
	}
}

// collapseLines drops blank lines and trailing whitespace so block
// boundaries become single newlines.
func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
