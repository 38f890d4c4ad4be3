package htmltext

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"leetcode-export/internal/domain/ports"
)

// Markdown renders problem statements as Markdown, keeping code blocks,
// emphasis and lists. Conversion errors fall back to PlainText.
type Markdown struct {
	converter *md.Converter
	fallback  PlainText
}

var _ ports.TextNormalizer = (*Markdown)(nil)

// NewMarkdown builds a Markdown normalizer.
func NewMarkdown() *Markdown {
	return &Markdown{converter: md.NewConverter("", true, nil)}
}

// Normalize implements ports.TextNormalizer.
func (m *Markdown) Normalize(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	out, err := m.converter.ConvertString(markup)
	if err != nil {
		return m.fallback.Normalize(markup)
	}
	return strings.TrimSpace(out)
}
