package models

import "time"

type UserStatus int

const (
	UserStatusInactive UserStatus = 1 // Default for new users
	UserStatusActive   UserStatus = 2 // Allowed to log in and post
	UserStatusBanned   UserStatus = 3
)

type User struct {
	ID int `db:"id" json:"id"`

	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
	Email    string `db:"email" json:"email"`
	Name     string `db:"name" json:"name"`

	IsStaff bool       `db:"is_staff" json:"-"`
	Status  UserStatus `db:"status" json:"-"`

	DateJoined time.Time `db:"date_joined" json:"createdAt"`
}

func (u *User) BestName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
