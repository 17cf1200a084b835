package website

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inkwell-net/inkwell/src/blogdata"
	"github.com/inkwell-net/inkwell/src/logging"
	"github.com/inkwell-net/inkwell/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestContext(t *testing.T, store blogdata.Store, user *models.User, body string, pathParams map[string]string) *RequestContext {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	return &RequestContext{
		Route:       "test",
		Logger:      logging.GlobalLogger(),
		Req:         req,
		PathParams:  pathParams,
		Store:       store,
		CurrentUser: user,
		ctx:         context.Background(),
	}
}

func responseError(t *testing.T, res ResponseData) string {
	t.Helper()
	var body apiError
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	return body.Error
}

func TestCreateCommentHandler(t *testing.T) {
	store := blogdata.NewMemoryStore()
	author := &models.User{ID: 1, Username: "author"}
	commenter := &models.User{ID: 2, Username: "commenter"}

	post, err := store.CreatePost(context.Background(), author.ID, "A post", "Some content here", "")
	require.NoError(t, err)
	postParams := map[string]string{"id": fmt.Sprintf("%d", post.ID)}

	t.Run("creates a pending comment", func(t *testing.T) {
		c := makeTestContext(t, store, commenter, `{"text":"hello there"}`, postParams)
		res := CreateComment(c)
		require.Equal(t, http.StatusCreated, res.StatusCode)

		var comment models.Comment
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &comment))
		assert.Equal(t, models.CommentPending, comment.Status)
		assert.NotEmpty(t, comment.TextHTML)
	})

	t.Run("rejects short text", func(t *testing.T) {
		c := makeTestContext(t, store, commenter, `{"text":"hi"}`, postParams)
		res := CreateComment(c)
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	})

	t.Run("rejects overlong text", func(t *testing.T) {
		text := strings.Repeat("a", 1025)
		c := makeTestContext(t, store, commenter, fmt.Sprintf(`{"text":"%s"}`, text), postParams)
		res := CreateComment(c)
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		c := makeTestContext(t, store, commenter, `{"text":"hello there","bogus":true}`, postParams)
		res := CreateComment(c)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("404s on a missing post", func(t *testing.T) {
		c := makeTestContext(t, store, commenter, `{"text":"hello there"}`, map[string]string{"id": "999"})
		res := CreateComment(c)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("400s on a cross-post parent", func(t *testing.T) {
		otherPost, err := store.CreatePost(context.Background(), author.ID, "Another post", "Some content here", "")
		require.NoError(t, err)
		parent, err := store.CreateComment(context.Background(), otherPost.ID, commenter.ID, "elsewhere", "", nil)
		require.NoError(t, err)

		c := makeTestContext(t, store, commenter, fmt.Sprintf(`{"text":"hello there","parentId":%d}`, parent.ID), postParams)
		res := CreateComment(c)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, responseError(t, res), "parent")
	})
}

func TestModerationHandlers(t *testing.T) {
	ctx := context.Background()
	store := blogdata.NewMemoryStore()
	author := &models.User{ID: 1, Username: "author"}
	commenter := &models.User{ID: 2, Username: "commenter"}
	bystander := &models.User{ID: 3, Username: "bystander"}

	post, err := store.CreatePost(ctx, author.ID, "A post", "Some content here", "")
	require.NoError(t, err)
	postParams := map[string]string{"id": fmt.Sprintf("%d", post.ID)}

	comment, err := store.CreateComment(ctx, post.ID, commenter.ID, "hello", "", nil)
	require.NoError(t, err)
	commentParams := map[string]string{"id": fmt.Sprintf("%d", comment.ID)}

	t.Run("only the post author sees the pending queue", func(t *testing.T) {
		c := makeTestContext(t, store, commenter, "", postParams)
		res := ListPendingComments(c)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)

		c = makeTestContext(t, store, author, "", postParams)
		res = ListPendingComments(c)
		require.Equal(t, http.StatusOK, res.StatusCode)

		var pending []*models.Comment
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &pending))
		require.Len(t, pending, 1)
		assert.Equal(t, comment.ID, pending[0].ID)
	})

	t.Run("only the post author can moderate", func(t *testing.T) {
		c := makeTestContext(t, store, bystander, `{"status":"approved"}`, commentParams)
		res := SetCommentApproval(c)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)

		c = makeTestContext(t, store, author, `{"status":"approved"}`, commentParams)
		res = SetCommentApproval(c)
		require.Equal(t, http.StatusOK, res.StatusCode)

		var moderated models.Comment
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &moderated))
		assert.Equal(t, models.CommentApproved, moderated.Status)
	})

	t.Run("bogus approval status is rejected", func(t *testing.T) {
		c := makeTestContext(t, store, author, `{"status":"maybe"}`, commentParams)
		res := SetCommentApproval(c)
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	})

	t.Run("approved comments cannot be edited", func(t *testing.T) {
		c := makeTestContext(t, store, commenter, `{"text":"hello v2"}`, commentParams)
		res := EditComment(c)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, responseError(t, res), "approved")
	})

	t.Run("the public thread shows the approved comment", func(t *testing.T) {
		c := makeTestContext(t, store, nil, "", postParams)
		res := ListPostComments(c)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, res.Body.String(), `"hello"`)
	})

	t.Run("deletion hides the comment and makes it inert", func(t *testing.T) {
		c := makeTestContext(t, store, bystander, "", commentParams)
		res := DeleteComment(c)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)

		c = makeTestContext(t, store, author, "", commentParams)
		res = DeleteComment(c)
		require.Equal(t, http.StatusNoContent, res.StatusCode)

		c = makeTestContext(t, store, nil, "", postParams)
		res = ListPostComments(c)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.NotContains(t, res.Body.String(), `"hello"`)

		c = makeTestContext(t, store, author, `{"status":"approved"}`, commentParams)
		res = SetCommentApproval(c)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Contains(t, responseError(t, res), "deleted")
	})

	t.Run("empty threads are a JSON array", func(t *testing.T) {
		empty, err := store.CreatePost(ctx, author.ID, "Quiet post", "Some content here", "")
		require.NoError(t, err)

		c := makeTestContext(t, store, nil, "", map[string]string{"id": fmt.Sprintf("%d", empty.ID)})
		res := ListPostComments(c)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "[]\n", res.Body.String())
	})
}
