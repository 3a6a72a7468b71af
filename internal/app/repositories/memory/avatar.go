package memory

import (
	"context"
	"sort"

	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/repositories"
)

// AvatarRepository is the in-memory repositories.AvatarRepository
type AvatarRepository struct {
	store *Store
}

// Save inserts or replaces the student's avatar. The store stays locked while
// beforeCommit runs so no reader observes a row whose hook later fails.
func (r *AvatarRepository) Save(ctx context.Context, avatar *models.Avatar, beforeCommit repositories.BeforeCommitFn) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[avatar.StudentID]; !ok {
		return repositories.ErrInvalidReference
	}

	id, exists := s.avatarByStudent[avatar.StudentID]
	if beforeCommit != nil {
		if err := beforeCommit(ctx); err != nil {
			return err
		}
	}

	if !exists {
		s.nextAvatarID++
		id = s.nextAvatarID
	}

	stored := *avatar
	stored.ID = id
	stored.Data = append([]byte(nil), avatar.Data...)
	s.avatars[id] = stored
	s.avatarByStudent[avatar.StudentID] = id

	avatar.ID = id
	return nil
}

// GetByID retrieves an avatar, image data included
func (r *AvatarRepository) GetByID(_ context.Context, id int64) (*models.Avatar, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	avatar, ok := s.avatars[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	avatar.Data = append([]byte(nil), avatar.Data...)
	return &avatar, nil
}

// GetByStudentID retrieves the avatar of a student, image data included
func (r *AvatarRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.Avatar, error) {
	r.store.mu.RLock()
	id, ok := r.store.avatarByStudent[studentID]
	r.store.mu.RUnlock()

	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// List returns a page of avatar metadata ordered by id and the total count
func (r *AvatarRepository) List(_ context.Context, offset uint64, limit int) ([]*models.Avatar, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.avatars))
	for id := range s.avatars {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := int64(len(ids))
	page := []*models.Avatar{}
	for i := offset; i < uint64(len(ids)) && len(page) < limit; i++ {
		avatar := s.avatars[ids[i]]
		avatar.Data = nil
		page = append(page, &avatar)
	}
	return page, total, nil
}
