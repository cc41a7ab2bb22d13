package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/commpost"
)

const (
	// commentsElement is the element holding the comment section.
	commentsElement = "ytd-comments"

	// channelLinkMarker appears in links back to the author's own channel.
	channelLinkMarker = "/@"

	// videoLinkMarker appears in links to a watch page.
	videoLinkMarker = "/watch?v="
)

// Structural queries, compiled once. The post page is laid out as
//
//	body > #contents > (post section) [comments section]
//
// where the post section holds #main and the comments section holds the
// comment count and one ytd-comment-thread-renderer per thread.
var (
	qSections = compile("sections", "body>#contents>*")
	qMain     = compile("main", "#post>*>#body #main")

	qAuthor      = compile("author", "#author-text")
	qPublishTime = compile("publish time", "#published-time-text")
	qLike        = compile("like count", "#vote-count-middle")

	qSponsorOnly = compile("sponsors only badge", "#sponsors-only-badge")
	qContent     = compile("content", "#content")
	qAttachment  = compile("content attachment", "#content-attachment:not([hidden])")
	qImages      = compile("attachment images", "img[src]")
	qLinks       = compile("attachment links", "a[href]")

	qPoll           = compile("poll attachment", "#poll-attachment:not([hidden])")
	qVoteInfo       = compile("poll vote info", "#vote-info")
	qPollItems      = compile("poll items", "a[role='option'] .choice-info")
	qChoiceText     = compile("poll choice text", ".choice-text")
	qVotePercentage = compile("poll vote percentage", ".vote-percentage")

	qCommentCount   = compile("comment count", "#count")
	qThreads        = compile("comment threads", "#contents>ytd-comment-thread-renderer")
	qThreadComment  = compile("thread comment", "#comment")
	qReplies        = compile("replies", "#replies:not([hidden])")
	qReplyItems     = compile("reply items", "#contents>*")
	qSponsor        = compile("sponsor badge", "#sponsor-comment-badge>ytd-sponsor-comment-badge-renderer")
	qSponsorImage   = compile("sponsor badge image", "img[src]")
	qCommentContent = compile("comment content", "#content-text>*")
)

var _ commpost.PostExtractor = (*Extractor)(nil)

// Extractor extracts posts from archived community post pages.
// It holds no per-document state and is safe for concurrent use.
type Extractor struct {
	stringifier *Stringifier
}

// NewExtractor creates a new Extractor resolving inline emotes with emotes.
func NewExtractor(emotes commpost.EmoteResolver) *Extractor {
	return &Extractor{stringifier: NewStringifier(emotes)}
}

// ExtractPost parses html and returns the post identified by id, along with
// a warning for every emote image that could not be resolved.
func (e *Extractor) ExtractPost(id string, html string) (*commpost.Post, []commpost.Warning, error) {
	x := &extraction{id: id, stringifier: e.stringifier}
	post, err := x.post(html)
	if err != nil {
		return nil, nil, &commpost.PostError{PostID: id, Err: err}
	}
	return post, x.warnings, nil
}

// extraction carries the state of one ExtractPost call.
type extraction struct {
	id          string
	stringifier *Stringifier
	warnings    []commpost.Warning
}

func (x *extraction) post(html string) (*commpost.Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, commpost.Errorf(commpost.EINVALID, "failed to parse HTML: %v", err)
	}

	sections := qSections.all(doc.Selection)
	if n := sections.Length(); n < 1 || n > 2 {
		return nil, qSections.violation("one or two sections", sections)
	}

	postSection := sections.Eq(0)
	var commentSection *goquery.Selection
	if sections.Length() == 2 {
		commentSection = sections.Eq(1)
		if name := goquery.NodeName(commentSection); name != commentsElement {
			return nil, commpost.Errorf(commpost.ECONTRACT, "sections: want %s as second section, got %s", commentsElement, name)
		}
	} else {
		markup, err := goquery.OuterHtml(postSection)
		if err != nil {
			return nil, fmt.Errorf("render post section: %w", err)
		}
		if !strings.Contains(markup, commpost.DisabledCommentsIndicator) {
			return nil, commpost.Errorf(commpost.ECONTRACT, "sections: comment section missing but comments are not turned off")
		}
	}

	mainSel, err := qMain.exactlyOne(postSection)
	if err != nil {
		return nil, err
	}
	main, err := x.main(mainSel)
	if err != nil {
		return nil, fmt.Errorf("main: %w", err)
	}

	post := &commpost.Post{ID: x.id, Main: *main}
	if commentSection != nil {
		total, comments, err := x.comments(commentSection)
		if err != nil {
			return nil, fmt.Errorf("comments: %w", err)
		}
		post.Comments = comments
		post.TotalComment = &total
	}
	return post, nil
}

func (x *extraction) main(s *goquery.Selection) (*commpost.Main, error) {
	author, err := qAuthor.exactlyOne(s)
	if err != nil {
		return nil, err
	}
	publishTime, err := qPublishTime.exactlyOne(s)
	if err != nil {
		return nil, err
	}

	badge, err := qSponsorOnly.atMostOne(s)
	if err != nil {
		return nil, err
	}
	var sponsorOnly *string
	if badge != nil {
		if text := joinedText(badge, "\n"); text != "" {
			sponsorOnly = &text
		}
	}

	content, err := qContent.first(s)
	if err != nil {
		return nil, err
	}

	poll, err := x.poll(s)
	if err != nil {
		return nil, err
	}

	like, err := parseLike(s)
	if err != nil {
		return nil, err
	}

	return &commpost.Main{
		Author:            trimmedText(author),
		PublishTime:       trimmedText(publishTime),
		SponsorOnly:       sponsorOnly,
		Content:           trimmedText(content),
		ContentAttachment: attachment(qAttachment.firstOptional(s)),
		PollAttachment:    poll,
		Like:              like,
	}, nil
}

// attachment partitions the links of a content attachment into watch-page
// videos and other links, after dropping links to the author's channel and
// adjacent duplicates. It returns nil when s is nil.
func attachment(s *goquery.Selection) *commpost.ContentAttachment {
	if s == nil {
		return nil
	}

	a := &commpost.ContentAttachment{Images: []string{}, Videos: []string{}}
	qImages.all(s).Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		a.Images = append(a.Images, src)
	})

	var prev string
	kept := 0
	qLinks.all(s).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if strings.Contains(href, channelLinkMarker) {
			return
		}
		if kept > 0 && href == prev {
			return
		}
		prev = href
		kept++

		if strings.Contains(href, videoLinkMarker) {
			a.Videos = append(a.Videos, href)
		} else {
			a.Unknown = append(a.Unknown, href)
		}
	})
	return a
}

func (x *extraction) poll(s *goquery.Selection) (*commpost.PollAttachment, error) {
	poll, err := qPoll.atMostOne(s)
	if err != nil || poll == nil {
		return nil, err
	}

	info, err := qVoteInfo.exactlyOne(poll)
	if err != nil {
		return nil, err
	}
	votes := strings.TrimSuffix(strings.TrimSpace(info.Text()), commpost.VoteUnit)
	total, err := commpost.ParseCount(votes)
	if err != nil {
		return nil, fmt.Errorf("poll total votes: %w", err)
	}

	items := qPollItems.all(poll)
	p := &commpost.PollAttachment{TotalVotes: total, Items: make([]commpost.PollItem, 0, items.Length())}
	for i := range items.Length() {
		item := items.Eq(i)
		text, err := qChoiceText.exactlyOne(item)
		if err != nil {
			return nil, fmt.Errorf("poll item %d: %w", i+1, err)
		}
		percentage, err := qVotePercentage.exactlyOne(item)
		if err != nil {
			return nil, fmt.Errorf("poll item %d: %w", i+1, err)
		}
		p.Items = append(p.Items, commpost.PollItem{
			Text:       trimmedText(text),
			Percentage: trimmedText(percentage),
		})
	}
	return p, nil
}

// comments extracts every thread of the comment section. The declared
// comment count may exceed the number of threads, since hidden comments
// are counted but not rendered; it may never be lower.
func (x *extraction) comments(s *goquery.Selection) (int, []commpost.MainComment, error) {
	count, err := qCommentCount.exactlyOne(s)
	if err != nil {
		return 0, nil, err
	}
	total, err := parseCommentCount(count)
	if err != nil {
		return 0, nil, err
	}

	threads := qThreads.all(s)
	comments := make([]commpost.MainComment, 0, threads.Length())
	for i := range threads.Length() {
		c, err := x.thread(threads.Eq(i))
		if err != nil {
			return 0, nil, fmt.Errorf("thread %d: %w", i+1, err)
		}
		comments = append(comments, *c)
	}

	if total < len(comments) {
		return 0, nil, commpost.Errorf(commpost.ECONTRACT, "comment count: declared %d but %d threads present", total, len(comments))
	}
	return total, comments, nil
}

// parseCommentCount returns the first text node of the count badge that
// parses as a count, e.g. "1,234" in "1,234 comments".
func parseCommentCount(s *goquery.Selection) (int, error) {
	for _, t := range textNodes(s) {
		if strings.TrimSpace(t) == "" {
			continue
		}
		if n, err := commpost.ParseCount(t); err == nil {
			return n, nil
		}
	}
	return 0, commpost.Errorf(commpost.ELOCALE, "comment count (%s): no count in %q", qCommentCount.expr, trimmedText(s))
}

func (x *extraction) thread(s *goquery.Selection) (*commpost.MainComment, error) {
	top, err := qThreadComment.exactlyOne(s)
	if err != nil {
		return nil, err
	}
	comment, err := x.comment(top)
	if err != nil {
		return nil, err
	}

	region, err := qReplies.atMostOne(s)
	if err != nil {
		return nil, err
	}
	var replies []commpost.Comment
	if region != nil {
		items := qReplyItems.all(region)
		replies = make([]commpost.Comment, 0, items.Length())
		for i := range items.Length() {
			r, err := x.comment(items.Eq(i))
			if err != nil {
				return nil, fmt.Errorf("reply %d: %w", i+1, err)
			}
			replies = append(replies, *r)
		}
	}

	return &commpost.MainComment{Comment: *comment, Replies: replies}, nil
}

func (x *extraction) comment(s *goquery.Selection) (*commpost.Comment, error) {
	author, err := qAuthor.exactlyOne(s)
	if err != nil {
		return nil, err
	}
	publishTime, err := qPublishTime.exactlyOne(s)
	if err != nil {
		return nil, err
	}

	sponsor, err := qSponsor.atMostOne(s)
	if err != nil {
		return nil, err
	}
	var duration, badge *string
	if sponsor != nil {
		label, err := requireAttr(sponsor, qSponsor.field, "aria-label")
		if err != nil {
			return nil, err
		}
		duration = &label

		img, err := qSponsorImage.atMostOne(sponsor)
		if err != nil {
			return nil, err
		}
		if img != nil {
			src, _ := img.Attr("src")
			badge = &src
		}
	}

	like, err := parseLike(s)
	if err != nil {
		return nil, err
	}

	contentSel, err := qCommentContent.exactlyOne(s)
	if err != nil {
		return nil, err
	}
	content, unresolved, err := x.stringifier.Stringify(contentSel)
	if err != nil {
		return nil, err
	}
	for _, src := range unresolved {
		x.warnings = append(x.warnings, commpost.Warning{
			PostID: x.id,
			Kind:   commpost.WarnUnresolvedEmote,
			Detail: src,
		})
	}

	return &commpost.Comment{
		Author:          trimmedText(author),
		Content:         content,
		PublishTime:     trimmedText(publishTime),
		SponsorDuration: duration,
		SponsorBadge:    badge,
		Like:            like,
	}, nil
}

func parseLike(s *goquery.Selection) (int, error) {
	sel, err := qLike.first(s)
	if err != nil {
		return 0, err
	}
	like, err := commpost.ParseCount(sel.Text())
	if err != nil {
		return 0, fmt.Errorf("like count: %w", err)
	}
	return like, nil
}
