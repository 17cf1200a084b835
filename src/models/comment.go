package models

import (
	"fmt"
	"time"
)

type CommentStatus int

const (
	CommentPending  CommentStatus = 1 // Awaiting a moderation decision by the post's author
	CommentApproved CommentStatus = 2
	CommentRejected CommentStatus = 3
)

func (s CommentStatus) String() string {
	switch s {
	case CommentPending:
		return "pending"
	case CommentApproved:
		return "approved"
	case CommentRejected:
		return "rejected"
	}
	return fmt.Sprintf("CommentStatus(%d)", int(s))
}

// Comments go over the wire with their status spelled out, matching the
// public API ("pending", "approved", "rejected").
func (s CommentStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *CommentStatus) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"pending"`:
		*s = CommentPending
	case `"approved"`:
		*s = CommentApproved
	case `"rejected"`:
		*s = CommentRejected
	default:
		return fmt.Errorf("unrecognized comment status: %s", data)
	}
	return nil
}

type Comment struct {
	ID       int  `db:"id" json:"id"`
	PostID   int  `db:"post_id" json:"postId"`
	AuthorID int  `db:"author_id" json:"authorId"`
	ParentID *int `db:"parent_id" json:"parentId"`

	TextRaw  string `db:"text_raw" json:"text"`
	TextHTML string `db:"text_html" json:"textHtml"`

	Status  CommentStatus `db:"status" json:"status"`
	Deleted bool          `db:"deleted" json:"deleted"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// True if the comment should appear in the public view of a post's thread.
// Pending and rejected comments are only ever visible to their author and to
// the post's author via the pending queue.
func (c *Comment) PubliclyVisible() bool {
	return c.Status == CommentApproved && !c.Deleted
}
