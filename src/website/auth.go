package website

import (
	"errors"
	"net/http"
	"strings"

	"github.com/inkwell-net/inkwell/src/auth"
	"github.com/inkwell-net/inkwell/src/db"
	"github.com/inkwell-net/inkwell/src/models"
	"github.com/inkwell-net/inkwell/src/oops"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func Login(c *RequestContext) ResponseData {
	var input loginInput
	if err := c.ParseJson(&input); err != nil {
		return c.ErrorResponse(http.StatusBadRequest, err)
	}
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || len(input.Password) < minPasswordLength {
		return c.RejectRequest("email and password are required")
	}

	user, err := fetchUserByEmail(c, input.Email)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return invalidCredentials(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to look up user for login"))
	}

	hashed, err := auth.ParsePasswordString(user.Password)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "user has a corrupted password hash"))
	}
	ok, err := auth.CheckPassword(input.Password, hashed)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to check password"))
	}
	if !ok {
		return invalidCredentials(c)
	}

	if user.Status == models.UserStatusBanned {
		res := ResponseData{StatusCode: http.StatusForbidden}
		res.WriteJson(apiError{Error: "this account is banned"})
		return res
	}

	session, err := auth.CreateSession(c, c.Conn, user.ID)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create session"))
	}

	var res ResponseData
	res.WriteJson(loginResult{
		Token: session.ID,
		User:  user,
	})
	return res
}

func Logout(c *RequestContext) ResponseData {
	err := auth.DeleteSession(c, c.Conn, c.CurrentSession.ID)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to delete session"))
	}

	var res ResponseData
	res.WriteJson(apiMessage{Message: "logged out"})
	return res
}

func CurrentUserProfile(c *RequestContext) ResponseData {
	var res ResponseData
	res.WriteJson(c.CurrentUser)
	return res
}

// Timing of failed logins must not reveal whether the email exists; the
// security timer middleware pads the whole request either way.
func invalidCredentials(c *RequestContext) ResponseData {
	res := ResponseData{StatusCode: http.StatusUnauthorized}
	res.WriteJson(apiError{Error: "invalid email or password"})
	return res
}

func fetchUserByEmail(c *RequestContext, email string) (*models.User, error) {
	return db.QueryOne[models.User](c, c.Conn,
		`
		SELECT id, username, password, email, name, is_staff, status, date_joined
		FROM inkwell_user
		WHERE LOWER(email) = LOWER($1)
		`,
		email,
	)
}
