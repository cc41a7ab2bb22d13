package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/commpost"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// emphasisStyle marks a bold run of comment text.
const emphasisStyle = "font-weight: 500"

// inlineKind enumerates the inline shapes comment content is built from.
type inlineKind int

const (
	inlineOther inlineKind = iota
	inlineText
	inlineStyled
	inlineEmote
	inlineLink
	inlineComment
)

// inline is one classified child of a content element.
type inline struct {
	kind inlineKind
	node *html.Node

	text string // inlineText, inlineStyled, inlineLink
	bold bool   // inlineStyled
	src  string // inlineEmote
	alt  string // inlineEmote
	href string // inlineLink
}

// classify maps a content child onto its inline shape.
func classify(n *html.Node) inline {
	switch n.Type {
	case html.TextNode:
		return inline{kind: inlineText, node: n, text: strings.TrimSpace(n.Data)}
	case html.CommentNode:
		return inline{kind: inlineComment, node: n}
	case html.ElementNode:
		if n.DataAtom == atom.Span {
			return classifySpan(n)
		}
	}
	return inline{kind: inlineOther, node: n}
}

// classifySpan distinguishes a span wrapping a single image or anchor from
// a span carrying (possibly bold) text.
func classifySpan(n *html.Node) inline {
	var only *html.Node
	elements, words := 0, false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			elements++
			only = c
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				words = true
			}
		}
	}

	if elements == 1 && !words {
		switch only.DataAtom {
		case atom.Img:
			if src, ok := attr(only, "src"); ok {
				alt, _ := attr(only, "alt")
				return inline{kind: inlineEmote, node: n, src: src, alt: alt}
			}
		case atom.A:
			if href, ok := attr(only, "href"); ok {
				return inline{kind: inlineLink, node: n, href: href, text: trimmedNodeText(only)}
			}
		}
	}

	text := strings.TrimSpace(strings.Join(appendTextNodes(nil, n), ""))
	if text == "" {
		return inline{kind: inlineOther, node: n}
	}
	style, _ := attr(n, "style")
	return inline{kind: inlineStyled, node: n, text: text, bold: strings.Contains(style, emphasisStyle)}
}

// Stringifier flattens rich comment content into a single string. Bold runs,
// links and unresolved images are kept as inline HTML tags; emotes are
// replaced by their tokens.
type Stringifier struct {
	emotes commpost.EmoteResolver
}

// NewStringifier creates a Stringifier resolving emotes with emotes.
func NewStringifier(emotes commpost.EmoteResolver) *Stringifier {
	if emotes == nil {
		emotes = commpost.NewEmoteMap()
	}
	return &Stringifier{emotes: emotes}
}

// Stringify flattens the children of content in document order. It also
// returns the source of every image no emote token was found for; those
// images are written as <img src="..."> instead.
// An unrecognized inline node fails with EINLINE.
func (s *Stringifier) Stringify(content *goquery.Selection) (string, []string, error) {
	var b strings.Builder
	var unresolved []string
	for _, parent := range content.Nodes {
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			in := classify(c)
			switch in.kind {
			case inlineText:
				b.WriteString(in.text)
			case inlineStyled:
				if in.bold {
					b.WriteString("<b>" + in.text + "</b>")
				} else {
					b.WriteString(in.text)
				}
			case inlineEmote:
				if token, ok := s.emotes.Resolve(in.src, in.alt); ok {
					b.WriteString(token)
				} else {
					unresolved = append(unresolved, in.src)
					b.WriteString(`<img src="` + in.src + `">`)
				}
			case inlineLink:
				b.WriteString(`<a href="` + in.href + `">` + in.text + `</a>`)
			case inlineComment:
				// markup comments carry no content
			default:
				return "", nil, commpost.Errorf(commpost.EINLINE, "content: unrecognized inline node %s", describe(in.node))
			}
		}
	}
	return b.String(), unresolved, nil
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func trimmedNodeText(n *html.Node) string {
	var b strings.Builder
	for _, t := range appendTextNodes(nil, n) {
		b.WriteString(strings.TrimSpace(t))
	}
	return b.String()
}

// describe renders a node for error messages, truncated to a readable length.
func describe(n *html.Node) string {
	const limit = 120
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return n.Data
	}
	s := buf.String()
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
