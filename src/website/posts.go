package website

import (
	"errors"
	"net/http"
	"strings"

	"github.com/inkwell-net/inkwell/src/blogdata"
	"github.com/inkwell-net/inkwell/src/oops"
	"github.com/inkwell-net/inkwell/src/parsing"
)

type postInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func validatePostInput(input postInput) (reason string, ok bool) {
	if len(input.Title) < 3 || len(input.Title) > 255 {
		return "title must be between 3 and 255 characters", false
	}
	if len(input.Content) < 10 {
		return "content must be at least 10 characters", false
	}
	return "", true
}

func ListPosts(c *RequestContext) ResponseData {
	posts, err := c.Store.ListPosts(c)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch posts"))
	}

	var res ResponseData
	res.WriteJson(posts)
	return res
}

func GetPost(c *RequestContext) ResponseData {
	post, err := c.Store.GetPost(c, c.PathParamInt("id"))
	if err != nil {
		if errors.Is(err, blogdata.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch post"))
	}

	var res ResponseData
	res.WriteJson(post)
	return res
}

func CreatePost(c *RequestContext) ResponseData {
	var input postInput
	if err := c.ParseJson(&input); err != nil {
		return c.ErrorResponse(http.StatusBadRequest, err)
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	if reason, ok := validatePostInput(input); !ok {
		return c.RejectRequest(reason)
	}

	contentHTML := parsing.ParseMarkdown(input.Content, parsing.RealMarkdown)
	post, err := c.Store.CreatePost(c, c.CurrentUser.ID, input.Title, input.Content, contentHTML)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create post"))
	}

	res := ResponseData{StatusCode: http.StatusCreated}
	res.WriteJson(post)
	return res
}

func UpdatePost(c *RequestContext) ResponseData {
	post, err := c.Store.GetPost(c, c.PathParamInt("id"))
	if err != nil {
		if errors.Is(err, blogdata.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch post"))
	}
	if post.AuthorID != c.CurrentUser.ID {
		res := ResponseData{StatusCode: http.StatusForbidden}
		res.WriteJson(apiError{Error: "only the post author can edit this post"})
		return res
	}

	var input postInput
	if err := c.ParseJson(&input); err != nil {
		return c.ErrorResponse(http.StatusBadRequest, err)
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	if reason, ok := validatePostInput(input); !ok {
		return c.RejectRequest(reason)
	}

	post.Title = input.Title
	post.ContentRaw = input.Content
	post.ContentHTML = parsing.ParseMarkdown(input.Content, parsing.RealMarkdown)
	err = c.Store.SavePost(c, post)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to save post"))
	}

	var res ResponseData
	res.WriteJson(post)
	return res
}

func DeletePost(c *RequestContext) ResponseData {
	post, err := c.Store.GetPost(c, c.PathParamInt("id"))
	if err != nil {
		if errors.Is(err, blogdata.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch post"))
	}
	if post.AuthorID != c.CurrentUser.ID {
		res := ResponseData{StatusCode: http.StatusForbidden}
		res.WriteJson(apiError{Error: "only the post author can delete this post"})
		return res
	}

	err = c.Store.DeletePost(c, post.ID)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to delete post"))
	}

	res := ResponseData{StatusCode: http.StatusNoContent}
	return res
}
