package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/commpost"
	"golang.org/x/net/html"
)

// Phrases of the archived (Thai) page chrome.
const (
	PhraseSortComments    = "จัดเรียงความคิดเห็น"
	PhraseAddComment      = "เพิ่มความคิดเห็น"
	PhraseLike            = "ชอบ"
	PhraseDislike         = "ไม่ชอบ"
	PhraseShowMoreReplies = "แสดงการตอบกลับเพิ่มเติม"
	PhraseReadMore        = "อ่านเพิ่มเติม"
	PhraseReplies         = "การตอบกลับ"
)

// FlagPollAttachment flags a poll without percentages, or more than one poll.
const FlagPollAttachment = "poll-attachment"

const hiddenStyle = "display: none;"

// collapsedPhrases must not be visible in a fully expanded archive.
var collapsedPhrases = []string{
	PhraseShowMoreReplies,
	PhraseReadMore,
	PhraseReplies,
}

var pollPercentage = regexp.MustCompile(`[0-9]{2}%`)

var _ commpost.SanityChecker = (*Checker)(nil)

// Checker flags archived pages that were saved before being fully loaded or
// expanded.
type Checker struct{}

// NewChecker creates a new Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Check returns the names of the checks content fails, in a stable order.
// An empty result means the page looks complete.
func (c *Checker) Check(content string) []string {
	var flags []string

	enabled := !strings.Contains(content, commpost.DisabledCommentsIndicator)
	if enabled != strings.Contains(content, PhraseSortComments) {
		flags = append(flags, PhraseSortComments)
	}
	if enabled != strings.Contains(content, PhraseAddComment) {
		flags = append(flags, PhraseAddComment)
	}
	if !strings.Contains(content, PhraseLike) {
		flags = append(flags, PhraseLike)
	}
	if !strings.Contains(content, PhraseDislike) {
		flags = append(flags, PhraseDislike)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return append(flags, FlagPollAttachment)
	}

	for _, n := range doc.Nodes {
		flags = append(flags, visiblePhrases(n, collapsedPhrases)...)
	}

	polls := qPoll.all(doc.Selection)
	switch polls.Length() {
	case 0:
	case 1:
		if !pollPercentage.MatchString(strings.Join(textNodes(polls), "")) {
			flags = append(flags, FlagPollAttachment)
		}
	default:
		flags = append(flags, FlagPollAttachment)
	}

	return flags
}

// visiblePhrases returns the phrases found in visible text under root, in
// the order of phrases. Each text node counts toward the first phrase it
// contains. Subtrees marked hidden or styled "display: none;" are skipped.
func visiblePhrases(root *html.Node, phrases []string) []string {
	seen := make([]bool, len(phrases))
	found := 0

	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		switch n.Type {
		case html.TextNode:
			for i, p := range phrases {
				if strings.Contains(n.Data, p) {
					if !seen[i] {
						seen[i] = true
						found++
					}
					break
				}
			}
			return found == len(phrases)
		case html.ElementNode:
			if _, ok := attr(n, "hidden"); ok {
				return false
			}
			if style, _ := attr(n, "style"); style == hiddenStyle {
				return false
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)

	var visible []string
	for i, p := range phrases {
		if seen[i] {
			visible = append(visible, p)
		}
	}
	return visible
}
