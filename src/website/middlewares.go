package website

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-net/inkwell/src/auth"
	"github.com/inkwell-net/inkwell/src/db"
	"github.com/inkwell-net/inkwell/src/models"
	"github.com/inkwell-net/inkwell/src/oops"
	"github.com/inkwell-net/inkwell/src/utils"
)

func panicCatcherMiddleware(h Handler) Handler {
	return func(c *RequestContext) (res ResponseData) {
		defer func() {
			if recovered := recover(); recovered != nil {
				maybeError, ok := recovered.(*error)
				var err error
				if ok {
					err = *maybeError
				} else {
					err = oops.New(nil, fmt.Sprintf("Recovered from panic with value: %v", recovered))
				}
				res = c.ErrorResponse(http.StatusInternalServerError, err)
			}
		}()

		return h(c)
	}
}

// Tags every request with an id, gives the request its own sub-logger, and
// logs one line per request with the timing and resulting status.
func trackRequestMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		start := time.Now()
		requestID := uuid.New().String()

		logger := c.Logger.With().
			Str("requestId", requestID).
			Str("method", c.Req.Method).
			Str("path", c.Req.URL.Path).
			Logger()
		c.Logger = &logger

		res := h(c)

		status := res.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		c.Logger.Info().
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("Served request")

		return res
	}
}

func logContextErrors(c *RequestContext, errs ...error) {
	for _, err := range errs {
		c.Logger.Error().Timestamp().Stack().Str("Requested", c.FullUrl()).Err(err).Msg("error occurred during request")
	}
}

func logContextErrorsMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		res := h(c)
		logContextErrors(c, res.Errors...)
		return res
	}
}

// Resolves the Authorization bearer token to a user, if there is one.
// Handlers that require a user get it via needsAuth; this middleware alone
// never rejects anything.
func currentUserMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		token, hasToken := bearerToken(c.Req)
		if hasToken {
			user, session, err := getCurrentUserAndSession(c, token)
			if err != nil {
				return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to get current user"))
			}

			c.CurrentUser = user
			c.CurrentSession = session
		}

		return h(c)
	}
}

func bearerToken(req *http.Request) (string, bool) {
	header := req.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// An invalid or expired token is treated the same as no token at all.
func getCurrentUserAndSession(c *RequestContext, token string) (*models.User, *models.Session, error) {
	session, err := auth.GetSession(c, c.Conn, token)
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	user, err := db.QueryOne[models.User](c, c.Conn,
		`
		SELECT id, username, password, email, name, is_staff, status, date_joined
		FROM inkwell_user
		WHERE id = $1
		`,
		session.UserID,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			// The user was deleted out from under their session.
			return nil, nil, nil
		}
		return nil, nil, oops.New(err, "failed to get user for session")
	}

	return user, session, nil
}

func needsAuth(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		if c.CurrentUser == nil {
			res := ResponseData{StatusCode: http.StatusUnauthorized}
			res.WriteJson(apiError{Error: "authentication required"})
			return res
		}

		return h(c)
	}
}

func securityTimerMiddleware(duration time.Duration, h Handler) Handler {
	// Will make sure that the request takes at least `duration` to finish. Adds a 10% random duration.
	return func(c *RequestContext) ResponseData {
		additionalDuration := time.Duration(rand.Int63n(utils.Int64Max(1, int64(duration)/10)))
		timer := time.NewTimer(duration + additionalDuration)
		res := h(c)
		select {
		case <-c.Done():
		case <-timer.C:
		}
		return res
	}
}
