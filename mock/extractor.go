package mock

import "github.com/fwojciec/commpost"

var _ commpost.PostExtractor = (*PostExtractor)(nil)

// PostExtractor is a mock implementation of commpost.PostExtractor.
type PostExtractor struct {
	ExtractPostFn func(id string, html string) (*commpost.Post, []commpost.Warning, error)
}

func (e *PostExtractor) ExtractPost(id string, html string) (*commpost.Post, []commpost.Warning, error) {
	return e.ExtractPostFn(id, html)
}

var _ commpost.SanityChecker = (*SanityChecker)(nil)

// SanityChecker is a mock implementation of commpost.SanityChecker.
type SanityChecker struct {
	CheckFn func(html string) []string
}

func (c *SanityChecker) Check(html string) []string {
	return c.CheckFn(html)
}
