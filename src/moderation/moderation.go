package moderation

import (
	"context"
	"errors"

	"github.com/inkwell-net/inkwell/src/blogdata"
	"github.com/inkwell-net/inkwell/src/models"
)

// The acting user is not allowed to perform this operation on this comment.
var Forbidden = errors.New("not allowed to act on this comment")

// Approved comments are frozen for their author. Rejected and pending ones
// can still be edited (and editing sends them back through the queue).
var CannotEditApproved = errors.New("approved comments cannot be edited")

// The comment was soft-deleted. Deletion is final; no operation can revive
// a deleted comment, including moderation decisions.
var CommentDeleted = errors.New("comment has been deleted")

/*
This package is the moderation core: every state transition a comment can
go through, and who is allowed to trigger it. Handlers validate and render
input, then call in here; the store below only persists what this layer
decided.

The lifecycle: comments are born pending, a moderation decision moves them
to approved or rejected, an author edit moves them back to pending, and
deletion is a terminal flag orthogonal to status.
*/

func CreateComment(ctx context.Context, store blogdata.Store, postID, authorID int, textRaw, textHTML string, parentID *int) (*models.Comment, error) {
	return store.CreateComment(ctx, postID, authorID, textRaw, textHTML, parentID)
}

// Only the comment's author may edit, and only while the comment is not
// approved. An edit always resets the comment to pending, so re-editing a
// rejected comment gives it another shot at the queue.
func EditComment(ctx context.Context, store blogdata.Store, actorID, commentID int, textRaw, textHTML string) (*models.Comment, error) {
	comment, err := store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Deleted {
		return nil, CommentDeleted
	}
	if comment.AuthorID != actorID {
		return nil, Forbidden
	}
	if comment.Status == models.CommentApproved {
		return nil, CannotEditApproved
	}

	comment.TextRaw = textRaw
	comment.TextHTML = textHTML
	comment.Status = models.CommentPending
	err = store.SaveComment(ctx, comment)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// Moderation authority belongs to the author of the post the comment lives
// on. Decisions are idempotent and re-decidable: an approved comment can be
// rejected later and vice versa.
func SetApproval(ctx context.Context, store blogdata.Store, actorID, commentID int, approve bool) (*models.Comment, error) {
	comment, err := store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Deleted {
		return nil, CommentDeleted
	}

	post, err := store.GetPost(ctx, comment.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, Forbidden
	}

	if approve {
		comment.Status = models.CommentApproved
	} else {
		comment.Status = models.CommentRejected
	}
	err = store.SaveComment(ctx, comment)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// Both the comment's author and the post's author may delete. The record
// stays in storage with its text intact, but no operation will touch it
// again and no listing will surface it.
func DeleteComment(ctx context.Context, store blogdata.Store, actorID, commentID int) error {
	comment, err := store.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.Deleted {
		return CommentDeleted
	}

	post, err := store.GetPost(ctx, comment.PostID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID && post.AuthorID != actorID {
		return Forbidden
	}

	comment.Deleted = true
	return store.SaveComment(ctx, comment)
}

// The public view of a post's comments, threaded. See AssembleThread for
// the visibility and ordering rules.
func ListPublicThread(ctx context.Context, store blogdata.Store, postID int) ([]*ThreadNode, error) {
	if _, err := store.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := store.ListCommentsForPost(ctx, postID, blogdata.CommentsApproved)
	if err != nil {
		return nil, err
	}
	return AssembleThread(comments), nil
}

// The post author's moderation queue: every pending, undeleted comment on
// the post, newest first, flat. Threading does not matter until a comment
// is approved.
func ListPendingQueue(ctx context.Context, store blogdata.Store, actorID, postID int) ([]*models.Comment, error) {
	post, err := store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, Forbidden
	}
	return store.ListCommentsForPost(ctx, postID, blogdata.CommentsPending)
}
