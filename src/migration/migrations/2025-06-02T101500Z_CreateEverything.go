package migrations

import (
	"context"
	"time"

	"github.com/inkwell-net/inkwell/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(CreateEverything{})
}

type CreateEverything struct{}

func (m CreateEverything) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2025, 6, 2, 10, 15, 0, 0, time.UTC))
}

func (m CreateEverything) Name() string {
	return "CreateEverything"
}

func (m CreateEverything) Description() string {
	return "Creates the initial database schema"
}

func (m CreateEverything) Up(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		CREATE TABLE inkwell_user (
			id SERIAL PRIMARY KEY,
			username VARCHAR(150) NOT NULL UNIQUE,
			password VARCHAR(256) NOT NULL DEFAULT '',
			email VARCHAR(254) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL DEFAULT '',
			is_staff BOOLEAN NOT NULL DEFAULT FALSE,
			status INT NOT NULL DEFAULT 1,
			date_joined TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE session (
			id VARCHAR(40) PRIMARY KEY,
			user_id INT NOT NULL REFERENCES inkwell_user (id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			expires_at TIMESTAMP WITH TIME ZONE NOT NULL
		);

		CREATE TABLE post (
			id SERIAL PRIMARY KEY,
			author_id INT NOT NULL REFERENCES inkwell_user (id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			content_raw TEXT NOT NULL,
			content_html TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE comment (
			id SERIAL PRIMARY KEY,
			post_id INT NOT NULL REFERENCES post (id) ON DELETE CASCADE,
			author_id INT NOT NULL REFERENCES inkwell_user (id) ON DELETE CASCADE,
			parent_id INT REFERENCES comment (id) ON DELETE CASCADE,
			text_raw TEXT NOT NULL,
			text_html TEXT NOT NULL,
			status INT NOT NULL DEFAULT 1,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX comment_post_id ON comment (post_id);
		CREATE INDEX comment_parent_id ON comment (parent_id);
		CREATE INDEX comment_post_status ON comment (post_id, status) WHERE NOT deleted;
		CREATE INDEX session_expires_at ON session (expires_at);
	`)
	return err
}

func (m CreateEverything) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		DROP TABLE comment;
		DROP TABLE post;
		DROP TABLE session;
		DROP TABLE inkwell_user;
	`)
	return err
}
