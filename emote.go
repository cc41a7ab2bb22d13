package commpost

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// unicodeEmoteMarker prefixes the file name of images rendered for
// standard Unicode emoji, e.g. ".../emoji_u1f64c_1f3fb.png".
const unicodeEmoteMarker = "emoji_u"

// EmoteResolver maps an inline image to its textual emote token.
type EmoteResolver interface {
	// Resolve returns the token for the image at src with the given alt
	// text, which may be empty. It reports false when no token is known.
	Resolve(src, alt string) (string, bool)
}

var _ EmoteResolver = (*EmoteMap)(nil)

// EmoteMap resolves emotes against a fixed asset-id-to-name mapping.
// It is read-only once built and safe for concurrent use.
type EmoteMap struct {
	names map[string]string
}

// NewEmoteMap builds an EmoteMap from mapping layers. Later layers override
// earlier ones on key collision. Nil layers are skipped.
func NewEmoteMap(layers ...map[string]string) *EmoteMap {
	names := make(map[string]string)
	for _, layer := range layers {
		for id, name := range layer {
			names[id] = name
		}
	}
	return &EmoteMap{names: names}
}

// Len returns the number of known custom emotes.
func (m *EmoteMap) Len() int {
	return len(m.names)
}

// Resolve returns the token for an inline emote image.
//
// Unicode emoji resolve to their alt text, or failing that to the code
// points encoded in the file name. Custom emotes resolve to ":_name:", using
// the alt text as name or looking the asset id up in the mapping.
func (m *EmoteMap) Resolve(src, alt string) (string, bool) {
	if strings.TrimSpace(alt) == "" {
		alt = ""
	}

	if strings.Contains(src, unicodeEmoteMarker) {
		if alt != "" {
			return alt, true
		}
		return decodeCodePoints(strings.TrimPrefix(fileStem(src), unicodeEmoteMarker))
	}

	if alt != "" {
		return ":_" + alt + ":", true
	}
	if name, ok := m.names[EmoteAssetID(src)]; ok {
		return ":_" + name + ":", true
	}
	return "", false
}

// EmoteAssetID returns the mapping key of a custom emote image URL: the last
// path segment up to and including its first '='. Sizing options after the
// '=' are dropped.
func EmoteAssetID(src string) string {
	stem := fileStem(src)
	if i := strings.IndexByte(stem, '='); i >= 0 {
		return stem[:i+1]
	}
	return stem
}

// fileStem returns the last path segment of src cut at its first '.'.
func fileStem(src string) string {
	if i := strings.LastIndexByte(src, '/'); i >= 0 {
		src = src[i+1:]
	}
	stem, _, _ := strings.Cut(src, ".")
	return stem
}

// decodeCodePoints decodes '_'-separated hex code points, such as
// "1f647_200d_2642", into one string.
func decodeCodePoints(code string) (string, bool) {
	if code == "" {
		return "", false
	}
	var b strings.Builder
	for _, group := range strings.Split(code, "_") {
		n, err := strconv.ParseUint(group, 16, 32)
		if err != nil {
			return "", false
		}
		r := rune(n)
		if !utf8.ValidRune(r) {
			return "", false
		}
		b.WriteRune(r)
	}
	return b.String(), true
}
