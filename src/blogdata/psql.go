package blogdata

import (
	"context"
	"errors"

	"github.com/inkwell-net/inkwell/src/db"
	"github.com/inkwell-net/inkwell/src/models"
	"github.com/inkwell-net/inkwell/src/oops"
)

// All comment columns, in the order the model declares them. Keep in sync
// with the CreateEverything migration.
const commentColumns = `id, post_id, author_id, parent_id, text_raw, text_html, status, deleted, created_at, updated_at`
const postColumns = `id, author_id, title, content_raw, content_html, created_at, updated_at`

type PSQLStore struct {
	Conn db.ConnOrTx
}

var _ Store = &PSQLStore{}

func NewPSQLStore(conn db.ConnOrTx) *PSQLStore {
	return &PSQLStore{Conn: conn}
}

func (s *PSQLStore) CreatePost(ctx context.Context, authorID int, title, contentRaw, contentHTML string) (*models.Post, error) {
	post, err := db.QueryOne[models.Post](ctx, s.Conn,
		`
		INSERT INTO post (author_id, title, content_raw, content_html)
		VALUES ($1, $2, $3, $4)
		RETURNING `+postColumns,
		authorID, title, contentRaw, contentHTML,
	)
	if err != nil {
		return nil, oops.New(err, "failed to create post")
	}
	return post, nil
}

func (s *PSQLStore) GetPost(ctx context.Context, id int) (*models.Post, error) {
	post, err := db.QueryOne[models.Post](ctx, s.Conn,
		`SELECT `+postColumns+` FROM post WHERE id = $1`,
		id,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, NotFound
		}
		return nil, oops.New(err, "failed to fetch post")
	}
	return post, nil
}

func (s *PSQLStore) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := db.Query[models.Post](ctx, s.Conn,
		`SELECT `+postColumns+` FROM post ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch posts")
	}
	return posts, nil
}

func (s *PSQLStore) SavePost(ctx context.Context, post *models.Post) error {
	tag, err := s.Conn.Exec(ctx,
		`
		UPDATE post
		SET title = $1, content_raw = $2, content_html = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		`,
		post.Title, post.ContentRaw, post.ContentHTML, post.ID,
	)
	if err != nil {
		return oops.New(err, "failed to save post")
	}
	if tag.RowsAffected() == 0 {
		return NotFound
	}
	return nil
}

func (s *PSQLStore) DeletePost(ctx context.Context, id int) error {
	tx, err := s.Conn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	// The schema's ON DELETE CASCADE would do this on its own, but the
	// cascade is a core behavior of the store, not an accident of the
	// schema, so it is spelled out here.
	_, err = tx.Exec(ctx, `DELETE FROM comment WHERE post_id = $1`, id)
	if err != nil {
		return oops.New(err, "failed to delete comments for post")
	}

	tag, err := tx.Exec(ctx, `DELETE FROM post WHERE id = $1`, id)
	if err != nil {
		return oops.New(err, "failed to delete post")
	}
	if tag.RowsAffected() == 0 {
		return NotFound
	}

	err = tx.Commit(ctx)
	if err != nil {
		return oops.New(err, "failed to commit post deletion")
	}
	return nil
}

func (s *PSQLStore) CreateComment(ctx context.Context, postID, authorID int, textRaw, textHTML string, parentID *int) (*models.Comment, error) {
	tx, err := s.Conn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	_, err = db.QueryOneScalar[int](ctx, tx, `SELECT id FROM post WHERE id = $1`, postID)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, NotFound
		}
		return nil, oops.New(err, "failed to check post before creating comment")
	}

	if parentID != nil {
		parentPostID, err := db.QueryOneScalar[int](ctx, tx,
			`SELECT post_id FROM comment WHERE id = $1`,
			*parentID,
		)
		if err != nil {
			if errors.Is(err, db.NotFound) {
				return nil, InvalidParent
			}
			return nil, oops.New(err, "failed to check parent before creating comment")
		}
		if parentPostID != postID {
			return nil, InvalidParent
		}
	}

	comment, err := db.QueryOne[models.Comment](ctx, tx,
		`
		INSERT INTO comment (post_id, author_id, parent_id, text_raw, text_html, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+commentColumns,
		postID, authorID, parentID, textRaw, textHTML, models.CommentPending,
	)
	if err != nil {
		return nil, oops.New(err, "failed to create comment")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit comment creation")
	}
	return comment, nil
}

func (s *PSQLStore) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	comment, err := db.QueryOne[models.Comment](ctx, s.Conn,
		`SELECT `+commentColumns+` FROM comment WHERE id = $1`,
		id,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, NotFound
		}
		return nil, oops.New(err, "failed to fetch comment")
	}
	return comment, nil
}

func (s *PSQLStore) SaveComment(ctx context.Context, comment *models.Comment) error {
	tag, err := s.Conn.Exec(ctx,
		`
		UPDATE comment
		SET text_raw = $1, text_html = $2, status = $3, deleted = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		`,
		comment.TextRaw, comment.TextHTML, comment.Status, comment.Deleted, comment.ID,
	)
	if err != nil {
		return oops.New(err, "failed to save comment")
	}
	if tag.RowsAffected() == 0 {
		return NotFound
	}
	return nil
}

func (s *PSQLStore) ListCommentsForPost(ctx context.Context, postID int, filter CommentFilter) ([]*models.Comment, error) {
	var qb db.QueryBuilder
	qb.Add(`SELECT ` + commentColumns + ` FROM comment`)
	qb.Add(`WHERE post_id = $? AND NOT deleted`, postID)
	switch filter {
	case CommentsApproved:
		qb.Add(`AND status = $?`, models.CommentApproved)
		qb.Add(`ORDER BY created_at ASC, id ASC`)
	case CommentsPending:
		qb.Add(`AND status = $?`, models.CommentPending)
		qb.Add(`ORDER BY created_at DESC, id DESC`)
	default:
		return nil, oops.New(nil, "unrecognized comment filter: %d", filter)
	}

	comments, err := db.Query[models.Comment](ctx, s.Conn, qb.String(), qb.Args()...)
	if err != nil {
		return nil, oops.New(err, "failed to fetch comments for post")
	}
	return comments, nil
}
