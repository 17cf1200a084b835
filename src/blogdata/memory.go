package blogdata

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/inkwell-net/inkwell/src/models"
)

// MemoryStore keeps everything in maps under one mutex. It backs tests and
// local experiments; production traffic goes through PSQLStore.
type MemoryStore struct {
	mu sync.Mutex

	posts    map[int]*models.Post
	comments map[int]*models.Comment

	nextPostID    int
	nextCommentID int

	// Monotonic fake clock so records created in the same instant still
	// have a total order by (created_at, id).
	now time.Time
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:         make(map[int]*models.Post),
		comments:      make(map[int]*models.Comment),
		nextPostID:    1,
		nextCommentID: 1,
		now:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *MemoryStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *MemoryStore) CreatePost(ctx context.Context, authorID int, title, contentRaw, contentHTML string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tick()
	post := &models.Post{
		ID:          s.nextPostID,
		AuthorID:    authorID,
		Title:       title,
		ContentRaw:  contentRaw,
		ContentHTML: contentHTML,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextPostID++
	s.posts[post.ID] = post

	res := *post
	return &res, nil
}

func (s *MemoryStore) GetPost(ctx context.Context, id int) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, NotFound
	}
	res := *post
	return &res, nil
}

func (s *MemoryStore) ListPosts(ctx context.Context) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []*models.Post
	for _, post := range s.posts {
		res := *post
		posts = append(posts, &res)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

func (s *MemoryStore) SavePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[post.ID]
	if !ok {
		return NotFound
	}
	existing.Title = post.Title
	existing.ContentRaw = post.ContentRaw
	existing.ContentHTML = post.ContentHTML
	existing.UpdatedAt = s.tick()
	post.UpdatedAt = existing.UpdatedAt
	return nil
}

func (s *MemoryStore) DeletePost(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return NotFound
	}
	delete(s.posts, id)
	for cid, comment := range s.comments {
		if comment.PostID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s *MemoryStore) CreateComment(ctx context.Context, postID, authorID int, textRaw, textHTML string, parentID *int) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return nil, NotFound
	}
	if parentID != nil {
		parent, ok := s.comments[*parentID]
		if !ok || parent.PostID != postID {
			return nil, InvalidParent
		}
	}

	now := s.tick()
	comment := &models.Comment{
		ID:        s.nextCommentID,
		PostID:    postID,
		AuthorID:  authorID,
		ParentID:  parentID,
		TextRaw:   textRaw,
		TextHTML:  textHTML,
		Status:    models.CommentPending,
		Deleted:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextCommentID++
	s.comments[comment.ID] = comment

	res := *comment
	return &res, nil
}

func (s *MemoryStore) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, NotFound
	}
	res := *comment
	return &res, nil
}

func (s *MemoryStore) SaveComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.comments[comment.ID]
	if !ok {
		return NotFound
	}
	existing.TextRaw = comment.TextRaw
	existing.TextHTML = comment.TextHTML
	existing.Status = comment.Status
	existing.Deleted = comment.Deleted
	existing.UpdatedAt = s.tick()
	comment.UpdatedAt = existing.UpdatedAt
	return nil
}

func (s *MemoryStore) ListCommentsForPost(ctx context.Context, postID int, filter CommentFilter) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []*models.Comment
	for _, comment := range s.comments {
		if comment.PostID != postID || comment.Deleted {
			continue
		}
		switch filter {
		case CommentsApproved:
			if comment.Status != models.CommentApproved {
				continue
			}
		case CommentsPending:
			if comment.Status != models.CommentPending {
				continue
			}
		}
		res := *comment
		comments = append(comments, &res)
	}

	newestFirst := filter == CommentsPending
	sort.Slice(comments, func(i, j int) bool {
		a, b := comments[i], comments[j]
		if newestFirst {
			a, b = b, a
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return comments, nil
}
