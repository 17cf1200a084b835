package models

import "time"

type Post struct {
	ID       int `db:"id" json:"id"`
	AuthorID int `db:"author_id" json:"authorId"`

	Title       string `db:"title" json:"title"`
	ContentRaw  string `db:"content_raw" json:"content"`
	ContentHTML string `db:"content_html" json:"contentHtml"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
