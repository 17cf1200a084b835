package website

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/inkwell-net/inkwell/src/blogdata"
	"github.com/inkwell-net/inkwell/src/moderation"
	"github.com/inkwell-net/inkwell/src/oops"
	"github.com/inkwell-net/inkwell/src/parsing"
)

type commentInput struct {
	Text     string `json:"text"`
	ParentID *int   `json:"parentId"`
}

func validateCommentText(text string) (reason string, ok bool) {
	if len(text) < 3 {
		return "comment text must be at least 3 characters", false
	}
	if utf8.RuneCountInString(text) > 1024 {
		return "comment text must be at most 1024 characters", false
	}
	return "", true
}

// Translates the moderation error taxonomy into response codes. Deleted
// comments 404 like missing ones, but with a body that tells the author
// their comment is gone rather than nonexistent.
func commentErrorResponse(c *RequestContext, err error, while string) ResponseData {
	switch {
	case errors.Is(err, blogdata.NotFound):
		return FourOhFour(c)
	case errors.Is(err, moderation.CommentDeleted):
		res := ResponseData{StatusCode: http.StatusNotFound}
		res.WriteJson(apiError{Error: "this comment has been deleted"})
		return res
	case errors.Is(err, blogdata.InvalidParent):
		res := ResponseData{StatusCode: http.StatusBadRequest}
		res.WriteJson(apiError{Error: "parent comment does not exist on this post"})
		return res
	case errors.Is(err, moderation.Forbidden):
		res := ResponseData{StatusCode: http.StatusForbidden}
		res.WriteJson(apiError{Error: "you are not allowed to do that"})
		return res
	case errors.Is(err, moderation.CannotEditApproved):
		res := ResponseData{StatusCode: http.StatusBadRequest}
		res.WriteJson(apiError{Error: "approved comments cannot be edited"})
		return res
	default:
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, while))
	}
}

func ListPostComments(c *RequestContext) ResponseData {
	thread, err := moderation.ListPublicThread(c, c.Store, c.PathParamInt("id"))
	if err != nil {
		return commentErrorResponse(c, err, "failed to fetch comments")
	}
	if thread == nil {
		thread = []*moderation.ThreadNode{}
	}

	var res ResponseData
	res.WriteJson(thread)
	return res
}

func CreateComment(c *RequestContext) ResponseData {
	var input commentInput
	if err := c.ParseJson(&input); err != nil {
		return c.ErrorResponse(http.StatusBadRequest, err)
	}
	input.Text = strings.TrimSpace(input.Text)
	if reason, ok := validateCommentText(input.Text); !ok {
		return c.RejectRequest(reason)
	}

	textHTML := parsing.ParseMarkdown(input.Text, parsing.RealMarkdown)
	comment, err := moderation.CreateComment(c, c.Store, c.PathParamInt("id"), c.CurrentUser.ID, input.Text, textHTML, input.ParentID)
	if err != nil {
		return commentErrorResponse(c, err, "failed to create comment")
	}

	res := ResponseData{StatusCode: http.StatusCreated}
	res.WriteJson(comment)
	return res
}

func ListPendingComments(c *RequestContext) ResponseData {
	pending, err := moderation.ListPendingQueue(c, c.Store, c.CurrentUser.ID, c.PathParamInt("id"))
	if err != nil {
		return commentErrorResponse(c, err, "failed to fetch pending comments")
	}

	var res ResponseData
	res.WriteJson(pending)
	return res
}

func EditComment(c *RequestContext) ResponseData {
	var input struct {
		Text string `json:"text"`
	}
	if err := c.ParseJson(&input); err != nil {
		return c.ErrorResponse(http.StatusBadRequest, err)
	}
	input.Text = strings.TrimSpace(input.Text)
	if reason, ok := validateCommentText(input.Text); !ok {
		return c.RejectRequest(reason)
	}

	textHTML := parsing.ParseMarkdown(input.Text, parsing.RealMarkdown)
	comment, err := moderation.EditComment(c, c.Store, c.CurrentUser.ID, c.PathParamInt("id"), input.Text, textHTML)
	if err != nil {
		return commentErrorResponse(c, err, "failed to edit comment")
	}

	var res ResponseData
	res.WriteJson(comment)
	return res
}

func DeleteComment(c *RequestContext) ResponseData {
	err := moderation.DeleteComment(c, c.Store, c.CurrentUser.ID, c.PathParamInt("id"))
	if err != nil {
		return commentErrorResponse(c, err, "failed to delete comment")
	}

	res := ResponseData{StatusCode: http.StatusNoContent}
	return res
}

func SetCommentApproval(c *RequestContext) ResponseData {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ParseJson(&input); err != nil {
		return c.ErrorResponse(http.StatusBadRequest, err)
	}

	var approve bool
	switch input.Status {
	case "approved":
		approve = true
	case "rejected":
		approve = false
	default:
		return c.RejectRequest("status must be either 'approved' or 'rejected'")
	}

	comment, err := moderation.SetApproval(c, c.Store, c.CurrentUser.ID, c.PathParamInt("id"), approve)
	if err != nil {
		return commentErrorResponse(c, err, "failed to moderate comment")
	}

	var res ResponseData
	res.WriteJson(comment)
	return res
}
