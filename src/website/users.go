package website

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/inkwell-net/inkwell/src/auth"
	"github.com/inkwell-net/inkwell/src/db"
	"github.com/inkwell-net/inkwell/src/models"
	"github.com/inkwell-net/inkwell/src/oops"
)

const minPasswordLength = 6

const userColumns = `id, username, password, email, name, is_staff, status, date_joined`

func ListUsers(c *RequestContext) ResponseData {
	users, err := db.Query[models.User](c, c.Conn,
		`SELECT `+userColumns+` FROM inkwell_user ORDER BY id ASC`,
	)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch users"))
	}

	var res ResponseData
	res.WriteJson(users)
	return res
}

func GetUser(c *RequestContext) ResponseData {
	user, err := db.QueryOne[models.User](c, c.Conn,
		`SELECT `+userColumns+` FROM inkwell_user WHERE id = $1`,
		c.PathParamInt("id"),
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch user"))
	}

	var res ResponseData
	res.WriteJson(user)
	return res
}

type createUserInput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func CreateUser(c *RequestContext) ResponseData {
	var input createUserInput
	if err := c.ParseJson(&input); err != nil {
		return c.ErrorResponse(http.StatusBadRequest, err)
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if len(input.Username) < 3 || len(input.Username) > 30 {
		return c.RejectRequest("username must be between 3 and 30 characters")
	}
	if len(input.Name) < 2 || len(input.Name) > 100 {
		return c.RejectRequest("name must be between 2 and 100 characters")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return c.RejectRequest("a valid email address is required")
	}
	if len(input.Password) < minPasswordLength {
		return c.RejectRequest("password must be at least 6 characters")
	}

	taken, err := db.QueryOneScalar[bool](c, c.Conn,
		`
		SELECT COUNT(*) > 0
		FROM inkwell_user
		WHERE LOWER(email) = LOWER($1) OR LOWER(username) = LOWER($2)
		`,
		input.Email, input.Username,
	)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to check for existing users"))
	}
	if taken {
		res := ResponseData{StatusCode: http.StatusConflict}
		res.WriteJson(apiError{Error: "email or username is already in use"})
		return res
	}

	hashed := auth.HashPassword(input.Password)
	user, err := db.QueryOne[models.User](c, c.Conn,
		`
		INSERT INTO inkwell_user (username, name, email, password, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		input.Username, input.Name, input.Email, hashed.String(), models.UserStatusActive,
	)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create user"))
	}

	res := ResponseData{StatusCode: http.StatusCreated}
	res.WriteJson(user)
	return res
}

type updateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func UpdateUser(c *RequestContext) ResponseData {
	userID := c.PathParamInt("id")
	if c.CurrentUser.ID != userID && !c.CurrentUser.IsStaff {
		res := ResponseData{StatusCode: http.StatusForbidden}
		res.WriteJson(apiError{Error: "you can only edit your own profile"})
		return res
	}

	var input updateUserInput
	if err := c.ParseJson(&input); err != nil {
		return c.ErrorResponse(http.StatusBadRequest, err)
	}

	user, err := db.QueryOne[models.User](c, c.Conn,
		`SELECT `+userColumns+` FROM inkwell_user WHERE id = $1`,
		userID,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch user"))
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 2 || len(name) > 100 {
			return c.RejectRequest("name must be between 2 and 100 characters")
		}
		user.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return c.RejectRequest("a valid email address is required")
		}

		taken, err := db.QueryOneScalar[bool](c, c.Conn,
			`SELECT COUNT(*) > 0 FROM inkwell_user WHERE LOWER(email) = LOWER($1) AND id != $2`,
			email, userID,
		)
		if err != nil {
			return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to check for existing email"))
		}
		if taken {
			res := ResponseData{StatusCode: http.StatusConflict}
			res.WriteJson(apiError{Error: "email is already in use"})
			return res
		}
		user.Email = email
	}

	_, err = c.Conn.Exec(c,
		`UPDATE inkwell_user SET name = $1, email = $2 WHERE id = $3`,
		user.Name, user.Email, user.ID,
	)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to update user"))
	}

	var res ResponseData
	res.WriteJson(user)
	return res
}

func DeleteUser(c *RequestContext) ResponseData {
	userID := c.PathParamInt("id")
	if c.CurrentUser.ID != userID && !c.CurrentUser.IsStaff {
		res := ResponseData{StatusCode: http.StatusForbidden}
		res.WriteJson(apiError{Error: "you can only delete your own account"})
		return res
	}

	tag, err := c.Conn.Exec(c, `DELETE FROM inkwell_user WHERE id = $1`, userID)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to delete user"))
	}
	if tag.RowsAffected() == 0 {
		return FourOhFour(c)
	}

	res := ResponseData{StatusCode: http.StatusNoContent}
	return res
}
