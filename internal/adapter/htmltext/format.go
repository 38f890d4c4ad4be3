package htmltext

import (
	"fmt"
	"strings"

	"leetcode-export/internal/domain/ports"
)

// Supported description formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// New returns the normalizer for format. An empty format selects plain text.
func New(format string) (ports.TextNormalizer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return PlainText{}, nil
	case FormatMarkdown:
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unknown description format %q", format)
	}
}
