package mock

import "github.com/fwojciec/commpost"

var _ commpost.EmoteResolver = (*EmoteResolver)(nil)

// EmoteResolver is a mock implementation of commpost.EmoteResolver.
type EmoteResolver struct {
	ResolveFn func(src, alt string) (string, bool)
}

func (r *EmoteResolver) Resolve(src, alt string) (string, bool) {
	return r.ResolveFn(src, alt)
}
