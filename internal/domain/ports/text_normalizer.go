package ports

// TextNormalizer turns an HTML fragment into display text.
type TextNormalizer interface {
	Normalize(markup string) string
}
