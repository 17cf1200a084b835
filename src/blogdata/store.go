package blogdata

import (
	"context"
	"errors"

	"github.com/inkwell-net/inkwell/src/models"
)

var NotFound = errors.New("not found")

// The requested parent comment does not exist, or belongs to a different
// post than the comment being created.
var InvalidParent = errors.New("invalid parent comment")

type CommentFilter int

const (
	// Approved, not deleted, ordered by creation time ascending. This is
	// the set of comments the public ever sees.
	CommentsApproved CommentFilter = iota + 1

	// Pending, not deleted, ordered by creation time descending. Only the
	// post's author gets this view.
	CommentsPending
)

/*
Store owns durable storage and identity for posts and their comment trees.

The postgres implementation is the production path; the in-memory
implementation backs tests and local experiments. Both enforce the same
write-time invariants: a comment's parent must belong to the same post, and
deleting a post removes its entire comment tree in one atomic operation.
*/
type Store interface {
	CreatePost(ctx context.Context, authorID int, title, contentRaw, contentHTML string) (*models.Post, error)
	GetPost(ctx context.Context, id int) (*models.Post, error)
	// Ordered by creation time descending.
	ListPosts(ctx context.Context) ([]*models.Post, error)
	SavePost(ctx context.Context, post *models.Post) error
	// Hard delete. Cascades to every comment on the post, transitively
	// through the reply tree.
	DeletePost(ctx context.Context, id int) error

	// New comments always start out pending and not deleted. Fails with
	// NotFound if the post does not exist and InvalidParent if parentID is
	// set but missing or cross-post.
	CreateComment(ctx context.Context, postID, authorID int, textRaw, textHTML string, parentID *int) (*models.Comment, error)
	// Returns the record regardless of status or deletion; moderation
	// needs full visibility.
	GetComment(ctx context.Context, id int) (*models.Comment, error)
	// Persists the full mutated record (last write wins, see the
	// concurrency notes in DESIGN.md).
	SaveComment(ctx context.Context, comment *models.Comment) error
	ListCommentsForPost(ctx context.Context, postID int, filter CommentFilter) ([]*models.Comment, error)
}
