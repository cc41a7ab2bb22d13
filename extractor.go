package commpost

// Warning kinds.
const (
	// WarnUnresolvedEmote marks an inline image no emote token was found for.
	// The image is kept in the content as a literal <img> tag.
	WarnUnresolvedEmote = "unresolved_emote"
)

// Warning is a non-fatal diagnostic raised while extracting a post.
type Warning struct {
	PostID string
	Kind   string
	Detail string
}

// PostExtractor converts one archived post page into a Post.
type PostExtractor interface {
	// ExtractPost parses html and returns the post identified by id.
	// Any structural contract violation fails the whole post; the
	// returned error is a *PostError naming id. No partial post is returned.
	ExtractPost(id string, html string) (*Post, []Warning, error)
}

// SanityChecker scans raw post markup for signs of an incomplete archive.
type SanityChecker interface {
	// Check returns the labels of every failed check, or nil if the
	// markup looks complete.
	Check(html string) []string
}
