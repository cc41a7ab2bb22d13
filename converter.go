package commpost

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an inline HTML fragment, such as stringified
	// comment content, into Markdown.
	Convert(html string) (string, error)
}
