package moderation

import (
	"context"
	"testing"

	"github.com/inkwell-net/inkwell/src/blogdata"
	"github.com/inkwell-net/inkwell/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	postAuthor    = 1
	commentAuthor = 2
	bystander     = 3
)

func makePost(t *testing.T, store blogdata.Store) *models.Post {
	t.Helper()
	post, err := store.CreatePost(context.Background(), postAuthor, "A post", "Some content here", "")
	require.NoError(t, err)
	return post
}

func approve(t *testing.T, store blogdata.Store, commentID int) *models.Comment {
	t.Helper()
	comment, err := SetApproval(context.Background(), store, postAuthor, commentID, true)
	require.NoError(t, err)
	return comment
}

func TestCommentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	post := makePost(t, store)

	comment, err := CreateComment(ctx, store, post.ID, commentAuthor, "hello", "<p>hello</p>", nil)
	require.NoError(t, err)
	assert.Equal(t, models.CommentPending, comment.Status)

	// Pending comments are not public.
	thread, err := ListPublicThread(ctx, store, post.ID)
	require.NoError(t, err)
	assert.Empty(t, thread)

	comment = approve(t, store, comment.ID)
	assert.Equal(t, models.CommentApproved, comment.Status)

	thread, err = ListPublicThread(ctx, store, post.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, comment.ID, thread[0].Comment.ID)
	assert.Empty(t, thread[0].Replies)

	// Decisions can be reversed.
	comment, err = SetApproval(ctx, store, postAuthor, comment.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.CommentRejected, comment.Status)

	thread, err = ListPublicThread(ctx, store, post.ID)
	require.NoError(t, err)
	assert.Empty(t, thread)
}

func TestEditComment(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	post := makePost(t, store)

	comment, err := CreateComment(ctx, store, post.ID, commentAuthor, "hello", "", nil)
	require.NoError(t, err)

	// Only the author may edit.
	_, err = EditComment(ctx, store, bystander, comment.ID, "hijacked", "")
	assert.ErrorIs(t, err, Forbidden)
	_, err = EditComment(ctx, store, postAuthor, comment.ID, "hijacked", "")
	assert.ErrorIs(t, err, Forbidden)

	// Approved comments are frozen.
	approve(t, store, comment.ID)
	_, err = EditComment(ctx, store, commentAuthor, comment.ID, "hello v2", "")
	assert.ErrorIs(t, err, CannotEditApproved)

	// Rejected comments can be edited, and editing requeues them.
	_, err = SetApproval(ctx, store, postAuthor, comment.ID, false)
	require.NoError(t, err)
	edited, err := EditComment(ctx, store, commentAuthor, comment.ID, "hello v2", "")
	require.NoError(t, err)
	assert.Equal(t, "hello v2", edited.TextRaw)
	assert.Equal(t, models.CommentPending, edited.Status)

	_, err = EditComment(ctx, store, commentAuthor, 999, "void", "")
	assert.ErrorIs(t, err, blogdata.NotFound)
}

func TestSetApprovalAuthority(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	post := makePost(t, store)

	comment, err := CreateComment(ctx, store, post.ID, commentAuthor, "hello", "", nil)
	require.NoError(t, err)

	_, err = SetApproval(ctx, store, commentAuthor, comment.ID, true)
	assert.ErrorIs(t, err, Forbidden)
	_, err = SetApproval(ctx, store, bystander, comment.ID, true)
	assert.ErrorIs(t, err, Forbidden)

	_, err = SetApproval(ctx, store, postAuthor, 999, true)
	assert.ErrorIs(t, err, blogdata.NotFound)
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	post := makePost(t, store)

	comment, err := CreateComment(ctx, store, post.ID, commentAuthor, "hello", "", nil)
	require.NoError(t, err)

	err = DeleteComment(ctx, store, bystander, comment.ID)
	assert.ErrorIs(t, err, Forbidden)

	// The comment's own author may delete it.
	err = DeleteComment(ctx, store, commentAuthor, comment.ID)
	require.NoError(t, err)

	// Soft delete keeps the record and its text.
	stored, err := store.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.True(t, stored.Deleted)
	assert.Equal(t, "hello", stored.TextRaw)

	// The post author may also delete comments on their post.
	other, err := CreateComment(ctx, store, post.ID, commentAuthor, "another", "", nil)
	require.NoError(t, err)
	err = DeleteComment(ctx, store, postAuthor, other.ID)
	require.NoError(t, err)
}

func TestDeletedCommentIsInert(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	post := makePost(t, store)

	comment, err := CreateComment(ctx, store, post.ID, commentAuthor, "hello", "", nil)
	require.NoError(t, err)
	require.NoError(t, DeleteComment(ctx, store, commentAuthor, comment.ID))

	_, err = EditComment(ctx, store, commentAuthor, comment.ID, "revived", "")
	assert.ErrorIs(t, err, CommentDeleted)
	_, err = SetApproval(ctx, store, postAuthor, comment.ID, true)
	assert.ErrorIs(t, err, CommentDeleted)
	err = DeleteComment(ctx, store, postAuthor, comment.ID)
	assert.ErrorIs(t, err, CommentDeleted)
}

func TestReplyThreading(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	post := makePost(t, store)

	parent, err := CreateComment(ctx, store, post.ID, commentAuthor, "parent", "", nil)
	require.NoError(t, err)
	reply, err := CreateComment(ctx, store, post.ID, bystander, "reply", "", &parent.ID)
	require.NoError(t, err)

	approve(t, store, parent.ID)
	approve(t, store, reply.ID)

	thread, err := ListPublicThread(ctx, store, post.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, parent.ID, thread[0].Comment.ID)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, reply.ID, thread[0].Replies[0].ID)
}

func TestOrphanedReplyIsPromoted(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	post := makePost(t, store)

	parent, err := CreateComment(ctx, store, post.ID, commentAuthor, "parent", "", nil)
	require.NoError(t, err)
	reply, err := CreateComment(ctx, store, post.ID, bystander, "reply", "", &parent.ID)
	require.NoError(t, err)

	// Only the reply gets approved; the parent stays pending. The reply is
	// evaluated on its own flags, so it surfaces at top level.
	approve(t, store, reply.ID)

	thread, err := ListPublicThread(ctx, store, post.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, reply.ID, thread[0].Comment.ID)
	assert.Empty(t, thread[0].Replies)

	// Same rule when the parent is deleted after approval.
	approve(t, store, parent.ID)
	require.NoError(t, DeleteComment(ctx, store, commentAuthor, parent.ID))

	thread, err = ListPublicThread(ctx, store, post.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, reply.ID, thread[0].Comment.ID)
}

func TestPublicThreadNeverLeaks(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	post := makePost(t, store)

	pending, err := CreateComment(ctx, store, post.ID, commentAuthor, "pending", "", nil)
	require.NoError(t, err)
	rejected, err := CreateComment(ctx, store, post.ID, commentAuthor, "rejected", "", nil)
	require.NoError(t, err)
	deleted, err := CreateComment(ctx, store, post.ID, commentAuthor, "deleted", "", nil)
	require.NoError(t, err)
	shown, err := CreateComment(ctx, store, post.ID, commentAuthor, "shown", "", nil)
	require.NoError(t, err)

	_, err = SetApproval(ctx, store, postAuthor, rejected.ID, false)
	require.NoError(t, err)
	approve(t, store, deleted.ID)
	require.NoError(t, DeleteComment(ctx, store, commentAuthor, deleted.ID))
	approve(t, store, shown.ID)

	thread, err := ListPublicThread(ctx, store, post.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, shown.ID, thread[0].Comment.ID)

	_ = pending
}

func TestPendingQueue(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	post := makePost(t, store)

	first, err := CreateComment(ctx, store, post.ID, commentAuthor, "first", "", nil)
	require.NoError(t, err)
	second, err := CreateComment(ctx, store, post.ID, bystander, "second", "", nil)
	require.NoError(t, err)

	_, err = ListPendingQueue(ctx, store, commentAuthor, post.ID)
	assert.ErrorIs(t, err, Forbidden)

	queue, err := ListPendingQueue(ctx, store, postAuthor, post.ID)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, second.ID, queue[0].ID, "newest pending comment comes first")
	assert.Equal(t, first.ID, queue[1].ID)

	approve(t, store, first.ID)
	queue, err = ListPendingQueue(ctx, store, postAuthor, post.ID)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, second.ID, queue[0].ID)

	_, err = ListPendingQueue(ctx, store, postAuthor, 999)
	assert.ErrorIs(t, err, blogdata.NotFound)
}

func TestAssembleThreadOrdering(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	post := makePost(t, store)

	var topLevel []*models.Comment
	for _, text := range []string{"one", "two", "three"} {
		c, err := CreateComment(ctx, store, post.ID, commentAuthor, text, "", nil)
		require.NoError(t, err)
		approve(t, store, c.ID)
		topLevel = append(topLevel, c)
	}

	// Replies arrive interleaved across parents.
	r1, err := CreateComment(ctx, store, post.ID, bystander, "re: one", "", &topLevel[0].ID)
	require.NoError(t, err)
	r2, err := CreateComment(ctx, store, post.ID, bystander, "re: three", "", &topLevel[2].ID)
	require.NoError(t, err)
	r3, err := CreateComment(ctx, store, post.ID, postAuthor, "re: one again", "", &topLevel[0].ID)
	require.NoError(t, err)
	for _, c := range []*models.Comment{r1, r2, r3} {
		approve(t, store, c.ID)
	}

	thread, err := ListPublicThread(ctx, store, post.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	for i, c := range topLevel {
		assert.Equal(t, c.ID, thread[i].Comment.ID)
	}
	require.Len(t, thread[0].Replies, 2)
	assert.Equal(t, r1.ID, thread[0].Replies[0].ID)
	assert.Equal(t, r3.ID, thread[0].Replies[1].ID)
	assert.Empty(t, thread[1].Replies)
	require.Len(t, thread[2].Replies, 1)
	assert.Equal(t, r2.ID, thread[2].Replies[0].ID)
}
