package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/repositories"
)

// FacultyRepository is the in-memory repositories.FacultyRepository
type FacultyRepository struct {
	store *Store
}

// Create creates a new faculty
func (r *FacultyRepository) Create(_ context.Context, faculty *models.Faculty) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextFacultyID++
	stored := *faculty
	stored.ID = s.nextFacultyID
	s.faculties[stored.ID] = stored
	return stored.ID, nil
}

// GetByID retrieves a faculty by ID
func (r *FacultyRepository) GetByID(_ context.Context, id int64) (*models.Faculty, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	faculty, ok := s.faculties[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &faculty, nil
}

// Update updates an existing faculty
func (r *FacultyRepository) Update(_ context.Context, faculty *models.Faculty) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.faculties[faculty.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.faculties[faculty.ID] = *faculty
	return nil
}

// Delete deletes a faculty and detaches its students
func (r *FacultyRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.faculties[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.faculties, id)

	for studentID, student := range s.students {
		if student.FacultyID != nil && *student.FacultyID == id {
			student.FacultyID = nil
			s.students[studentID] = student
		}
	}
	return nil
}

// List retrieves the faculties matching filter, ordered by id
func (r *FacultyRepository) List(_ context.Context, filter repositories.FacultyFilter) ([]*models.Faculty, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	color := strings.TrimSpace(filter.Color)
	search := strings.ToLower(filter.Search)

	faculties := []*models.Faculty{}
	for _, faculty := range s.faculties {
		if color != "" && !strings.EqualFold(faculty.Color, color) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(faculty.Name), search) &&
			!strings.Contains(strings.ToLower(faculty.Color), search) {
			continue
		}
		f := faculty
		faculties = append(faculties, &f)
	}

	sort.Slice(faculties, func(i, j int) bool { return faculties[i].ID < faculties[j].ID })
	return faculties, nil
}
