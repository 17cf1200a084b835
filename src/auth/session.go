package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"time"

	"github.com/inkwell-net/inkwell/src/db"
	"github.com/inkwell-net/inkwell/src/jobs"
	"github.com/inkwell-net/inkwell/src/models"
	"github.com/inkwell-net/inkwell/src/oops"
	"github.com/inkwell-net/inkwell/src/utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jpillora/backoff"
)

const sessionDuration = time.Hour * 24 * 14

var ErrNoSession = errors.New("no session found")

// Session tokens are opaque and carried in the Authorization header as a
// bearer token. 40 characters of base64 is well over 200 bits of entropy.
func makeSessionToken() string {
	tokenBytes := make([]byte, 40)
	_, err := io.ReadFull(rand.Reader, tokenBytes)
	if err != nil {
		panic(err)
	}

	return base64.URLEncoding.EncodeToString(tokenBytes)[:40]
}

func GetSession(ctx context.Context, conn db.ConnOrTx, token string) (*models.Session, error) {
	session, err := db.QueryOne[models.Session](ctx, conn,
		`
		SELECT id, user_id, created_at, expires_at
		FROM session
		WHERE id = $1 AND expires_at > CURRENT_TIMESTAMP
		`,
		token,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, ErrNoSession
		} else {
			return nil, oops.New(err, "failed to get session")
		}
	}

	return session, nil
}

func CreateSession(ctx context.Context, conn db.ConnOrTx, userID int) (*models.Session, error) {
	session := models.Session{
		ID:        makeSessionToken(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(sessionDuration),
	}

	_, err := conn.Exec(ctx,
		`
		INSERT INTO session (id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		`,
		session.ID, session.UserID, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return nil, oops.New(err, "failed to persist session")
	}

	return &session, nil
}

// Deletes a session by token. If no session with that token exists, no
// error is returned.
func DeleteSession(ctx context.Context, conn db.ConnOrTx, token string) error {
	_, err := conn.Exec(ctx, "DELETE FROM session WHERE id = $1", token)
	if err != nil {
		return oops.New(err, "failed to delete session")
	}

	return nil
}

func DeleteExpiredSessions(ctx context.Context, conn db.ConnOrTx) (int64, error) {
	tag, err := conn.Exec(ctx, "DELETE FROM session WHERE expires_at <= CURRENT_TIMESTAMP")
	if err != nil {
		return 0, oops.New(err, "failed to delete expired sessions")
	}

	return tag.RowsAffected(), nil
}

func PeriodicallyDeleteExpiredSessions(conn *pgxpool.Pool) *jobs.Job {
	job := jobs.New("delete expired sessions")
	go func() {
		defer job.Finish()

		b := backoff.Backoff{
			Min: time.Minute,
			Max: time.Hour,
		}
		for {
			n, err := DeleteExpiredSessions(job.Ctx, conn)
			if err == nil {
				if n > 0 {
					job.Logger.Info().Int64("num deleted sessions", n).Msg("Deleted expired sessions")
				}
				b.Reset()
			} else {
				job.Logger.Error().Err(err).Msg("Failed to delete expired sessions")
			}

			wait := time.Hour
			if err != nil {
				wait = b.Duration()
			}
			if utils.SleepContext(job.Ctx, wait) != nil {
				return
			}
		}
	}()
	return job
}
