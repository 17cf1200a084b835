package blogdata

import (
	"context"
	"testing"

	"github.com/inkwell-net/inkwell/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePosts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	post, err := store.CreatePost(ctx, 1, "First post", "Hello *world*", "<p>Hello <em>world</em></p>")
	require.NoError(t, err)
	assert.Equal(t, 1, post.ID)

	fetched, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First post", fetched.Title)

	_, err = store.GetPost(ctx, 999)
	assert.ErrorIs(t, err, NotFound)

	second, err := store.CreatePost(ctx, 2, "Second post", "More content here", "<p>More content here</p>")
	require.NoError(t, err)

	posts, err := store.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID, "newest post should come first")

	fetched.Title = "Renamed"
	err = store.SavePost(ctx, fetched)
	require.NoError(t, err)
	fetched, err = store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Title)
	assert.True(t, fetched.UpdatedAt.After(fetched.CreatedAt))

	err = store.SavePost(ctx, &models.Post{ID: 999})
	assert.ErrorIs(t, err, NotFound)
}

func TestMemoryStoreCreateComment(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	post, err := store.CreatePost(ctx, 1, "A post", "Some content here", "")
	require.NoError(t, err)
	otherPost, err := store.CreatePost(ctx, 1, "Another post", "Some content here", "")
	require.NoError(t, err)

	comment, err := store.CreateComment(ctx, post.ID, 2, "nice post", "", nil)
	require.NoError(t, err)
	assert.Equal(t, models.CommentPending, comment.Status)
	assert.False(t, comment.Deleted)
	assert.Nil(t, comment.ParentID)

	reply, err := store.CreateComment(ctx, post.ID, 3, "agreed", "", &comment.ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, comment.ID, *reply.ParentID)

	_, err = store.CreateComment(ctx, 999, 2, "void", "", nil)
	assert.ErrorIs(t, err, NotFound)

	missing := 999
	_, err = store.CreateComment(ctx, post.ID, 2, "orphan", "", &missing)
	assert.ErrorIs(t, err, InvalidParent)

	// The parent exists, but on a different post.
	_, err = store.CreateComment(ctx, otherPost.ID, 2, "crossed", "", &comment.ID)
	assert.ErrorIs(t, err, InvalidParent)
}

func TestMemoryStoreDeletePostCascades(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	post, err := store.CreatePost(ctx, 1, "Doomed post", "Some content here", "")
	require.NoError(t, err)
	survivor, err := store.CreatePost(ctx, 1, "Safe post", "Some content here", "")
	require.NoError(t, err)

	comment, err := store.CreateComment(ctx, post.ID, 2, "top level", "", nil)
	require.NoError(t, err)
	_, err = store.CreateComment(ctx, post.ID, 3, "reply", "", &comment.ID)
	require.NoError(t, err)
	kept, err := store.CreateComment(ctx, survivor.ID, 2, "unaffected", "", nil)
	require.NoError(t, err)

	err = store.DeletePost(ctx, post.ID)
	require.NoError(t, err)

	_, err = store.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, NotFound)
	_, err = store.GetComment(ctx, comment.ID)
	assert.ErrorIs(t, err, NotFound)
	_, err = store.GetComment(ctx, kept.ID)
	assert.NoError(t, err)

	err = store.DeletePost(ctx, post.ID)
	assert.ErrorIs(t, err, NotFound)
}

func TestMemoryStoreListCommentsForPost(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	post, err := store.CreatePost(ctx, 1, "A post", "Some content here", "")
	require.NoError(t, err)

	first, err := store.CreateComment(ctx, post.ID, 2, "first", "", nil)
	require.NoError(t, err)
	second, err := store.CreateComment(ctx, post.ID, 3, "second", "", nil)
	require.NoError(t, err)
	third, err := store.CreateComment(ctx, post.ID, 4, "third", "", nil)
	require.NoError(t, err)

	// Approve the first two, soft-delete the third.
	for _, c := range []*models.Comment{first, second} {
		c.Status = models.CommentApproved
		require.NoError(t, store.SaveComment(ctx, c))
	}
	third.Deleted = true
	require.NoError(t, store.SaveComment(ctx, third))

	fourth, err := store.CreateComment(ctx, post.ID, 5, "fourth", "", nil)
	require.NoError(t, err)
	fifth, err := store.CreateComment(ctx, post.ID, 6, "fifth", "", nil)
	require.NoError(t, err)

	approved, err := store.ListCommentsForPost(ctx, post.ID, CommentsApproved)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, first.ID, approved[0].ID)
	assert.Equal(t, second.ID, approved[1].ID)

	pending, err := store.ListCommentsForPost(ctx, post.ID, CommentsPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, fifth.ID, pending[0].ID, "pending queue is newest first")
	assert.Equal(t, fourth.ID, pending[1].ID)
}
