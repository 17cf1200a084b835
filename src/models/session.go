package models

import "time"

type Session struct {
	ID     string `db:"id"`
	UserID int    `db:"user_id"`

	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
