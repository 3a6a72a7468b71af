// Package memory keeps every record in process memory. It is selected with
// database.driver=memory and backs the service and HTTP tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/repositories"
)

// Store holds the three tables and enforces the same references as the SQL schema
type Store struct {
	mu sync.RWMutex

	students  map[int64]models.Student
	faculties map[int64]models.Faculty
	avatars   map[int64]models.Avatar
	// student id -> avatar id, mirrors UNIQUE (student_id)
	avatarByStudent map[int64]int64

	nextStudentID int64
	nextFacultyID int64
	nextAvatarID  int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		students:        make(map[int64]models.Student),
		faculties:       make(map[int64]models.Faculty),
		avatars:         make(map[int64]models.Avatar),
		avatarByStudent: make(map[int64]int64),
	}
}

// NewRepositories returns repositories sharing one new Store
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}

// Repositories returns repositories backed by s
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Students:  &StudentRepository{store: s},
		Faculties: &FacultyRepository{store: s},
		Avatars:   &AvatarRepository{store: s},
	}
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error { return nil }

// Name identifies the backend in health responses
func (s *Store) Name() string { return "memory" }

// resolve returns a detached copy with the faculty filled in. Caller holds mu.
func (s *Store) resolve(student models.Student) *models.Student {
	out := student
	out.Faculty = nil
	if student.FacultyID != nil {
		id := *student.FacultyID
		out.FacultyID = &id
		if f, ok := s.faculties[id]; ok {
			out.Faculty = &f
		}
	}
	return &out
}

// facultyExists treats a nil reference as valid. Caller holds mu.
func (s *Store) facultyExists(id *int64) bool {
	if id == nil {
		return true
	}
	_, ok := s.faculties[*id]
	return ok
}

// StudentRepository is the in-memory repositories.StudentRepository
type StudentRepository struct {
	store *Store
}

// Create inserts a student and returns the generated id
func (r *StudentRepository) Create(_ context.Context, student *models.Student) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.facultyExists(student.FacultyID) {
		return 0, repositories.ErrInvalidReference
	}

	s.nextStudentID++
	stored := *student
	stored.ID = s.nextStudentID
	stored.Faculty = nil
	s.students[stored.ID] = stored
	return stored.ID, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s.resolve(student), nil
}

// Update replaces name, age and faculty of an existing student
func (r *StudentRepository) Update(_ context.Context, student *models.Student) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[student.ID]; !ok {
		return repositories.ErrNotFound
	}
	if !s.facultyExists(student.FacultyID) {
		return repositories.ErrInvalidReference
	}

	stored := *student
	stored.Faculty = nil
	s.students[stored.ID] = stored
	return nil
}

// Delete removes a student together with its avatar
func (r *StudentRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.students, id)
	if avatarID, ok := s.avatarByStudent[id]; ok {
		delete(s.avatars, avatarID)
		delete(s.avatarByStudent, id)
	}
	return nil
}

type studentFilter repositories.StudentFilter

func (f studentFilter) match(student models.Student) bool {
	switch {
	case f.Age != nil && student.Age != *f.Age:
		return false
	case f.MinAge != nil && student.Age < *f.MinAge:
		return false
	case f.MaxAge != nil && student.Age > *f.MaxAge:
		return false
	case f.AgeLessThan != nil && student.Age >= *f.AgeLessThan:
		return false
	case f.FacultyID != nil && (student.FacultyID == nil || *student.FacultyID != *f.FacultyID):
		return false
	case f.NameContains != "" && !strings.Contains(strings.ToLower(student.Name), strings.ToLower(f.NameContains)):
		return false
	}
	return true
}

// List returns the students matching filter
func (r *StudentRepository) List(_ context.Context, filter repositories.StudentFilter) ([]*models.Student, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := studentFilter(filter)
	students := []*models.Student{}
	for _, student := range s.students {
		if f.match(student) {
			students = append(students, s.resolve(student))
		}
	}

	sort.Slice(students, func(i, j int) bool {
		if filter.OrderByAge && students[i].Age != students[j].Age {
			return students[i].Age < students[j].Age
		}
		return students[i].ID < students[j].ID
	})
	return students, nil
}

// Count returns the number of students
func (r *StudentRepository) Count(_ context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.students)), nil
}

// AverageAge returns the mean age, 0 when there are no students
func (r *StudentRepository) AverageAge(_ context.Context) (float64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.students) == 0 {
		return 0, nil
	}
	var sum int64
	for _, student := range s.students {
		sum += int64(student.Age)
	}
	return float64(sum) / float64(len(s.students)), nil
}

// LastN returns the n students with the highest ids, newest first
func (r *StudentRepository) LastN(ctx context.Context, n int) ([]*models.Student, error) {
	all, err := r.List(ctx, repositories.StudentFilter{})
	if err != nil {
		return nil, err
	}

	last := []*models.Student{}
	for i := len(all) - 1; i >= 0 && len(last) < n; i-- {
		last = append(last, all[i])
	}
	return last, nil
}
