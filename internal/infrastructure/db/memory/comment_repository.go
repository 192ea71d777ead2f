package memory

import (
	"context"
	"sync"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

type CommentRepository struct {
	mu       sync.RWMutex
	lastID   int64
	comments []*domain.Comment // insertion order
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func cloneComment(c *domain.Comment) *domain.Comment {
	clone := *c
	if c.UserID != nil {
		id := *c.UserID
		clone.UserID = &id
	}
	return &clone
}

func (r *CommentRepository) FindByCountryCode(_ context.Context, countryCode string) ([]*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []*domain.Comment{}
	for _, c := range r.comments {
		if c.CountryCode == countryCode {
			matched = append(matched, cloneComment(c))
		}
	}
	return matched, nil
}

func (r *CommentRepository) Create(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	c.ID = r.lastID
	r.comments = append(r.comments, cloneComment(c))
	return nil
}

func (r *CommentRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(id) >= 0, nil
}

func (r *CommentRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.comments = append(r.comments[:i], r.comments[i+1:]...)
	}
	return nil
}

// Len reports how many comments are stored.
func (r *CommentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.comments)
}

func (r *CommentRepository) indexOf(id int64) int {
	for i, c := range r.comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}
