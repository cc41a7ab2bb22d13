package goquery_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/commpost"
	"github.com/fwojciec/commpost/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements commpost.PostExtractor at compile time.
var _ commpost.PostExtractor = (*goquery.Extractor)(nil)

// page wraps a main block and an optional comments section into a post page.
func page(main, comments string) string {
	return `<!DOCTYPE html>
<html>
<body>
<div id="contents">
	<ytd-backstage-post-thread-renderer>
		<div id="post"><div><div id="body">` + main + `</div></div></div>
	</ytd-backstage-post-thread-renderer>
	` + comments + `
</div>
</body>
</html>`
}

// mainBlock builds a #main element around extra markup.
func mainBlock(content, extra string) string {
	return `<div id="main">
	<div id="author-text"> <span> Channel </span> </div>
	<div id="published-time-text"> 2 days ago </div>
	<div id="content"> ` + content + ` </div>
	` + extra + `
	<div id="vote-count-middle"> 12 </div>
</div>`
}

// commentsSection builds a ytd-comments section.
func commentsSection(count string, threads ...string) string {
	return `<ytd-comments>
	<div id="count"><span>` + count + `</span><span> ความคิดเห็น</span></div>
	<div id="contents">` + strings.Join(threads, "\n") + `</div>
</ytd-comments>`
}

// commentBlock builds the inner markup of a comment.
func commentBlock(author, content, like, extra string) string {
	return `<div id="author-text"><span> ` + author + ` </span></div>
	<div id="published-time-text"> 1 day ago </div>
	` + extra + `
	<div id="vote-count-middle"> ` + like + ` </div>
	<div id="content-text"><span> ` + content + ` </span></div>`
}

func thread(comment string, replies string) string {
	return `<ytd-comment-thread-renderer>
	<div id="comment">` + comment + `</div>
	` + replies + `
</ytd-comment-thread-renderer>`
}

func TestExtractor_ExtractPost(t *testing.T) {
	t.Parallel()

	t.Run("extracts minimal post with comments", func(t *testing.T) {
		t.Parallel()

		html := page(
			mainBlock("Hello", ""),
			commentsSection("1", thread(commentBlock("A", "Nice", "3", ""), "")),
		)

		post, warnings, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, "p1", post.ID)
		assert.Equal(t, "Channel", post.Author)
		assert.Equal(t, "2 days ago", post.PublishTime)
		assert.Equal(t, "Hello", post.Content)
		assert.Equal(t, 12, post.Like)
		assert.Nil(t, post.SponsorOnly)
		assert.Nil(t, post.ContentAttachment)
		assert.Nil(t, post.PollAttachment)

		require.NotNil(t, post.TotalComment)
		assert.Equal(t, 1, *post.TotalComment)
		require.Len(t, post.Comments, 1)
		c := post.Comments[0]
		assert.Equal(t, "A", c.Author)
		assert.Equal(t, "Nice", c.Content)
		assert.Equal(t, "1 day ago", c.PublishTime)
		assert.Equal(t, 3, c.Like)
		assert.Nil(t, c.SponsorDuration)
		assert.Nil(t, c.SponsorBadge)
		assert.Nil(t, c.Replies)
	})

	t.Run("post without comment section requires comments turned off", func(t *testing.T) {
		t.Parallel()

		html := page(mainBlock("Hello", ""), "")

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		assert.Equal(t, commpost.ECONTRACT, commpost.ErrorCode(err))
	})

	t.Run("comments turned off yields no comments", func(t *testing.T) {
		t.Parallel()

		notice := `<a href="https://support.google.com/youtube/answer/9706180">Learn more</a>`
		html := page(mainBlock("Hello", notice), "")

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		assert.Nil(t, post.Comments)
		assert.Nil(t, post.TotalComment)
	})

	t.Run("rejects second section that is not comments", func(t *testing.T) {
		t.Parallel()

		html := page(mainBlock("Hello", ""), `<div id="related"></div>`)

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		assert.Equal(t, commpost.ECONTRACT, commpost.ErrorCode(err))
		assert.Contains(t, err.Error(), "ytd-comments")
	})

	t.Run("rejects more than two sections", func(t *testing.T) {
		t.Parallel()

		html := page(mainBlock("Hello", ""), commentsSection("0")+`<div></div>`)

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		assert.Equal(t, commpost.ECONTRACT, commpost.ErrorCode(err))
	})

	t.Run("wraps failures with post id", func(t *testing.T) {
		t.Parallel()

		html := page(`<div id="main"></div>`, commentsSection("0"))

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p9", html)

		var postErr *commpost.PostError
		require.True(t, errors.As(err, &postErr))
		assert.Equal(t, "p9", postErr.PostID)
		assert.Equal(t, commpost.ECONTRACT, commpost.ErrorCode(err))
		assert.Contains(t, err.Error(), "#author-text")
	})

	t.Run("reports duplicate author with sample", func(t *testing.T) {
		t.Parallel()

		main := mainBlock("Hello", `<div id="author-text">Other</div>`)
		html := page(main, commentsSection("0"))

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		assert.Equal(t, commpost.ECONTRACT, commpost.ErrorCode(err))
		assert.Contains(t, commpost.ErrorMessage(err), "got 2")
		assert.Contains(t, commpost.ErrorMessage(err), `"Other"`)
	})

	t.Run("extracts sponsors only badge", func(t *testing.T) {
		t.Parallel()

		badge := `<div id="sponsors-only-badge"><span> Members only </span><span>  </span><span>Tier 1</span></div>`
		html := page(mainBlock("Hello", badge), commentsSection("0"))

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		require.NotNil(t, post.SponsorOnly)
		assert.Equal(t, "Members only\nTier 1", *post.SponsorOnly)
	})

	t.Run("blank sponsors only badge is absent", func(t *testing.T) {
		t.Parallel()

		badge := `<div id="sponsors-only-badge"> </div>`
		html := page(mainBlock("Hello", badge), commentsSection("0"))

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		assert.Nil(t, post.SponsorOnly)
	})

	t.Run("partitions attachment links", func(t *testing.T) {
		t.Parallel()

		att := `<div id="content-attachment">
	<img src="https://i.ytimg.com/a.jpg">
	<a href="/@channel">Channel</a>
	<a href="/watch?v=abc">Video</a>
	<a href="/watch?v=abc">Video again</a>
	<a href="/@channel">Channel</a>
	<a href="/watch?v=abc">Video after channel</a>
	<a href="https://example.com">Site</a>
</div>`
		html := page(mainBlock("Hello", att), commentsSection("0"))

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		require.NotNil(t, post.ContentAttachment)
		assert.Equal(t, []string{"https://i.ytimg.com/a.jpg"}, post.ContentAttachment.Images)
		assert.Equal(t, []string{"/watch?v=abc"}, post.ContentAttachment.Videos)
		assert.Equal(t, []string{"https://example.com"}, post.ContentAttachment.Unknown)
	})

	t.Run("hidden attachment is ignored", func(t *testing.T) {
		t.Parallel()

		att := `<div id="content-attachment" hidden><img src="x.jpg"></div>`
		html := page(mainBlock("Hello", att), commentsSection("0"))

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		assert.Nil(t, post.ContentAttachment)
	})

	t.Run("empty attachment has empty lists", func(t *testing.T) {
		t.Parallel()

		html := page(mainBlock("Hello", `<div id="content-attachment"></div>`), commentsSection("0"))

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		require.NotNil(t, post.ContentAttachment)
		assert.Equal(t, []string{}, post.ContentAttachment.Images)
		assert.Equal(t, []string{}, post.ContentAttachment.Videos)
		assert.Nil(t, post.ContentAttachment.Unknown)
	})

	t.Run("extracts poll", func(t *testing.T) {
		t.Parallel()

		poll := `<div id="poll-attachment">
	<div id="vote-info"> 1.2 พัน คะแนน </div>
	<a role="option"><div class="choice-info"><span class="choice-text"> Yes </span><span class="vote-percentage"> 60% </span></div></a>
	<a role="option"><div class="choice-info"><span class="choice-text"> No </span><span class="vote-percentage"> 40% </span></div></a>
</div>`
		html := page(mainBlock("Hello", poll), commentsSection("0"))

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		require.NotNil(t, post.PollAttachment)
		assert.Equal(t, 1200, post.PollAttachment.TotalVotes)
		assert.Equal(t, []commpost.PollItem{
			{Text: "Yes", Percentage: "60%"},
			{Text: "No", Percentage: "40%"},
		}, post.PollAttachment.Items)
	})

	t.Run("poll item without percentage fails", func(t *testing.T) {
		t.Parallel()

		poll := `<div id="poll-attachment">
	<div id="vote-info">10 คะแนน</div>
	<a role="option"><div class="choice-info"><span class="choice-text">Yes</span></div></a>
</div>`
		html := page(mainBlock("Hello", poll), commentsSection("0"))

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		assert.Equal(t, commpost.ECONTRACT, commpost.ErrorCode(err))
		assert.Contains(t, err.Error(), "poll item 1")
	})

	t.Run("unparseable like count fails with ELOCALE", func(t *testing.T) {
		t.Parallel()

		main := `<div id="main">
	<div id="author-text">Channel</div>
	<div id="published-time-text">now</div>
	<div id="content">Hello</div>
	<div id="vote-count-middle">1.5K</div>
</div>`
		html := page(main, commentsSection("0"))

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		assert.Equal(t, commpost.ELOCALE, commpost.ErrorCode(err))
	})

	t.Run("blank like count is zero", func(t *testing.T) {
		t.Parallel()

		html := page(
			mainBlock("Hello", ""),
			commentsSection("1", thread(commentBlock("A", "Nice", "", ""), "")),
		)

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		assert.Equal(t, 0, post.Comments[0].Like)
	})

	t.Run("extracts visible replies", func(t *testing.T) {
		t.Parallel()

		replies := `<div id="replies"><div id="contents">
	<div>` + commentBlock("B", "Reply one", "1", "") + `</div>
	<div>` + commentBlock("C", "Reply two", "0", "") + `</div>
</div></div>`
		html := page(
			mainBlock("Hello", ""),
			commentsSection("3", thread(commentBlock("A", "Nice", "3", ""), replies)),
		)

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		require.Len(t, post.Comments, 1)
		replyAuthors := make([]string, 0, 2)
		for _, r := range post.Comments[0].Replies {
			replyAuthors = append(replyAuthors, r.Author)
		}
		assert.Equal(t, []string{"B", "C"}, replyAuthors)
		assert.Equal(t, "Reply two", post.Comments[0].Replies[1].Content)
	})

	t.Run("hidden replies are absent", func(t *testing.T) {
		t.Parallel()

		replies := `<div id="replies" hidden><div id="contents"><div>` +
			commentBlock("B", "Reply", "1", "") + `</div></div></div>`
		html := page(
			mainBlock("Hello", ""),
			commentsSection("1", thread(commentBlock("A", "Nice", "3", ""), replies)),
		)

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		assert.Nil(t, post.Comments[0].Replies)
	})

	t.Run("extracts sponsor badge", func(t *testing.T) {
		t.Parallel()

		badge := `<div id="sponsor-comment-badge"><ytd-sponsor-comment-badge-renderer aria-label="Member for 2 months">
	<img src="https://yt3.ggpht.com/badge=s16">
</ytd-sponsor-comment-badge-renderer></div>`
		html := page(
			mainBlock("Hello", ""),
			commentsSection("1", thread(commentBlock("A", "Nice", "3", badge), "")),
		)

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		c := post.Comments[0]
		require.NotNil(t, c.SponsorDuration)
		assert.Equal(t, "Member for 2 months", *c.SponsorDuration)
		require.NotNil(t, c.SponsorBadge)
		assert.Equal(t, "https://yt3.ggpht.com/badge=s16", *c.SponsorBadge)
	})

	t.Run("sponsor badge without label fails", func(t *testing.T) {
		t.Parallel()

		badge := `<div id="sponsor-comment-badge"><ytd-sponsor-comment-badge-renderer></ytd-sponsor-comment-badge-renderer></div>`
		html := page(
			mainBlock("Hello", ""),
			commentsSection("1", thread(commentBlock("A", "Nice", "3", badge), "")),
		)

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		assert.Equal(t, commpost.ECONTRACT, commpost.ErrorCode(err))
		assert.Contains(t, err.Error(), "aria-label")
	})

	t.Run("comment count lower than threads fails", func(t *testing.T) {
		t.Parallel()

		html := page(
			mainBlock("Hello", ""),
			commentsSection("1",
				thread(commentBlock("A", "One", "0", ""), ""),
				thread(commentBlock("B", "Two", "0", ""), ""),
			),
		)

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		assert.Equal(t, commpost.ECONTRACT, commpost.ErrorCode(err))
	})

	t.Run("comment count may exceed threads", func(t *testing.T) {
		t.Parallel()

		html := page(
			mainBlock("Hello", ""),
			commentsSection("1,234", thread(commentBlock("A", "One", "0", ""), "")),
		)

		post, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		require.NoError(t, err)
		assert.Equal(t, 1234, *post.TotalComment)
		assert.GreaterOrEqual(t, *post.TotalComment, len(post.Comments))
	})

	t.Run("comment count without number fails with ELOCALE", func(t *testing.T) {
		t.Parallel()

		html := page(mainBlock("Hello", ""), commentsSection("many"))

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		assert.Equal(t, commpost.ELOCALE, commpost.ErrorCode(err))
	})

	t.Run("resolves emotes and warns on misses", func(t *testing.T) {
		t.Parallel()

		content := `<span><img src="https://yt3.ggpht.com/known=w48-h48" alt=""></span>` +
			`<span><img src="https://yt3.ggpht.com/unknown=w48-h48" alt=""></span>`
		comment := `<div id="author-text">A</div>
	<div id="published-time-text">now</div>
	<div id="vote-count-middle">0</div>
	<div id="content-text"><span>` + content + `</span></div>`
		html := page(mainBlock("Hello", ""), commentsSection("1", thread(comment, "")))
		emotes := commpost.NewEmoteMap(map[string]string{"known=": "wave"})

		post, warnings, err := goquery.NewExtractor(emotes).ExtractPost("p1", html)

		require.NoError(t, err)
		assert.Equal(t, `:_wave:<img src="https://yt3.ggpht.com/unknown=w48-h48">`, post.Comments[0].Content)
		assert.Equal(t, []commpost.Warning{{
			PostID: "p1",
			Kind:   commpost.WarnUnresolvedEmote,
			Detail: "https://yt3.ggpht.com/unknown=w48-h48",
		}}, warnings)
	})

	t.Run("unrecognized inline node fails with EINLINE", func(t *testing.T) {
		t.Parallel()

		comment := `<div id="author-text">A</div>
	<div id="published-time-text">now</div>
	<div id="vote-count-middle">0</div>
	<div id="content-text"><span><div>block</div></span></div>`
		html := page(mainBlock("Hello", ""), commentsSection("1", thread(comment, "")))

		_, _, err := goquery.NewExtractor(nil).ExtractPost("p1", html)

		assert.Equal(t, commpost.EINLINE, commpost.ErrorCode(err))
		assert.Contains(t, err.Error(), "thread 1")
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		html := page(
			mainBlock("Hello", ""),
			commentsSection("2",
				thread(commentBlock("A", "One", "1", ""), ""),
				thread(commentBlock("B", "Two", "2", ""), ""),
			),
		)
		e := goquery.NewExtractor(nil)

		first, _, err := e.ExtractPost("p1", html)
		require.NoError(t, err)
		second, _, err := e.ExtractPost("p1", html)
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.JSONEq(t, string(a), string(b))
	})
}
