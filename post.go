package commpost

import (
	"context"
	"time"
)

// Post is one archived community post.
type Post struct {
	ID string `json:"id"`
	Main

	// Comments is nil when comments are turned off on the source page.
	Comments     []MainComment `json:"comments"`
	TotalComment *int          `json:"total_comment"`
}

// Main is the body of a post.
type Main struct {
	Author            string             `json:"author"`
	PublishTime       string             `json:"publish_time"`
	SponsorOnly       *string            `json:"sponsor_only"`
	Content           string             `json:"content"`
	ContentAttachment *ContentAttachment `json:"content_attachment"`
	PollAttachment    *PollAttachment    `json:"poll_attachment"`
	Like              int                `json:"like"`
}

// ContentAttachment holds the media linked from a post body.
type ContentAttachment struct {
	Images  []string `json:"images"`
	Videos  []string `json:"videos"`
	Unknown []string `json:"unknown,omitempty"`
}

// PollAttachment is a poll attached to a post.
type PollAttachment struct {
	TotalVotes int        `json:"total_votes"`
	Items      []PollItem `json:"items"`
}

// PollItem is one poll choice in presentation order.
type PollItem struct {
	Text       string `json:"text"`
	Percentage string `json:"percentage"`
}

// MainComment is a top-level comment with its replies.
type MainComment struct {
	Comment

	// Replies is nil when the replies region is hidden.
	Replies []Comment `json:"replies"`
}

// Comment is a single comment or reply.
type Comment struct {
	Author          string  `json:"author"`
	Content         string  `json:"content"`
	PublishTime     string  `json:"publish_time"`
	SponsorDuration *string `json:"sponsor_duration"`
	SponsorBadge    *string `json:"sponsor_badge"`
	Like            int     `json:"like"`
}

// Threads returns the number of comment threads present in the post.
func (p *Post) Threads() int {
	return len(p.Comments)
}

// Meta describes where and when a record was produced.
type Meta struct {
	RunID            string     `json:"run_id,omitempty"`
	SourceHash       string     `json:"source_hash"`
	SourceModifiedAt *time.Time `json:"source_modified_at"`
	ProcessedAt      time.Time  `json:"processed_at"`
}

// Record is an extracted post together with its processing metadata.
type Record struct {
	Meta Meta `json:"meta"`
	*Post
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Post == nil {
		return Errorf(EINVALID, "record post required")
	}
	if r.ID == "" {
		return Errorf(EINVALID, "record post ID required")
	}
	if r.Comments != nil && r.TotalComment == nil {
		return Errorf(EINVALID, "post %s: comment total required when comments are present", r.ID)
	}
	if r.TotalComment != nil && *r.TotalComment < len(r.Comments) {
		return Errorf(EINVALID, "post %s: comment total %d below %d threads", r.ID, *r.TotalComment, len(r.Comments))
	}
	return nil
}

// PostService represents a service for storing extracted posts.
type PostService interface {
	// SavePost stores a record, replacing any previous record with the same post ID.
	SavePost(ctx context.Context, rec *Record) error

	// FindPostByID retrieves a record by post ID.
	// Returns ENOTFOUND if the post does not exist.
	FindPostByID(ctx context.Context, id string) (*Record, error)

	// FindPosts retrieves records matching the filter, ordered by post ID.
	FindPosts(ctx context.Context, filter PostFilter) ([]*Record, error)

	// DeletePost permanently removes a record.
	// Returns ENOTFOUND if the post does not exist.
	DeletePost(ctx context.Context, id string) error
}

// PostFilter represents a filter for FindPosts.
type PostFilter struct {
	ID    *string `json:"id"`
	RunID *string `json:"runId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
