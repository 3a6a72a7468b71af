package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/repositories"
	"github.com/yigit/hogwarts/internal/pkg/apperrors"
	"github.com/yigit/hogwarts/internal/pkg/filestorage"
	"github.com/yigit/hogwarts/internal/pkg/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	lastStudentsLimit = 5
	defaultNamePrefix = "A"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
	GetAllStudents(ctx context.Context) ([]*models.Student, error)
	GetStudentsByAge(ctx context.Context, age int) ([]*models.Student, error)
	GetStudentsByAgeBetween(ctx context.Context, minAge, maxAge int) ([]*models.Student, error)
	GetStudentsByNameContaining(ctx context.Context, fragment string) ([]*models.Student, error)
	GetStudentsByAgeLessThan(ctx context.Context, age int) ([]*models.Student, error)
	GetStudentsOrderedByAge(ctx context.Context) ([]*models.Student, error)
	GetStudentFaculty(ctx context.Context, studentID int64) (*models.Faculty, error)
	CountStudents(ctx context.Context) (int64, error)
	GetAverageAge(ctx context.Context) (float64, error)
	GetLastFiveStudents(ctx context.Context) ([]*models.Student, error)
	GetStudentNamesStartingWith(ctx context.Context, letter string) ([]string, error)
	PrintStudentsParallel(ctx context.Context) ([]string, error)
	PrintStudentsSynchronized(ctx context.Context) ([]string, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.StudentRepository
	facultyRepo repositories.FacultyRepository
	avatarRepo  repositories.AvatarRepository
	storage     filestorage.FileStorage
	roster      RosterConfig
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(repos *repositories.Repositories, storage filestorage.FileStorage, roster RosterConfig) StudentService {
	return &studentServiceImpl{
		studentRepo: repos.Students,
		facultyRepo: repos.Faculties,
		avatarRepo:  repos.Avatars,
		storage:     storage,
		roster:      roster.withDefaults(),
		logger:      logger.Component("student_service"),
	}
}

// resolveFaculty loads the referenced faculty, ErrFacultyReference when it does not exist
func (s *studentServiceImpl) resolveFaculty(ctx context.Context, facultyID *int64) (*models.Faculty, error) {
	if facultyID == nil {
		return nil, nil
	}

	faculty, err := s.facultyRepo.GetByID(ctx, *facultyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.FacultyReferenceError(*facultyID)
		}
		return nil, fmt.Errorf("error resolving faculty: %w", err)
	}
	return faculty, nil
}

// CreateStudent persists a new student and returns it with the assigned id
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if student == nil {
		return nil, fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}

	faculty, err := s.resolveFaculty(ctx, student.FacultyID)
	if err != nil {
		return nil, err
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidReference) {
			return nil, apperrors.FacultyReferenceError(derefID(student.FacultyID))
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	student.ID = id
	student.AssignFaculty(faculty)
	s.logger.Info().Int64("studentID", id).Str("name", student.Name).Msg("Student created")
	return student, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	s.logger.Debug().Int64("studentID", id).Msg("Getting student")

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrStudentNotFound)
	}
	return student, nil
}

// UpdateStudent replaces an existing student, it never creates one
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if student == nil {
		return nil, fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}

	if _, err := s.studentRepo.GetByID(ctx, student.ID); err != nil {
		return nil, translate(err, apperrors.ErrStudentNotFound)
	}

	faculty, err := s.resolveFaculty(ctx, student.FacultyID)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrInvalidReference) {
			return nil, apperrors.FacultyReferenceError(derefID(student.FacultyID))
		}
		return nil, translate(err, apperrors.ErrStudentNotFound)
	}

	student.AssignFaculty(faculty)
	s.logger.Info().Int64("studentID", student.ID).Msg("Student updated")
	return student, nil
}

// DeleteStudent removes a student, its avatar row and the avatar file
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	avatar, err := s.avatarRepo.GetByStudentID(ctx, id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("error loading avatar of student: %w", err)
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return translate(err, apperrors.ErrStudentNotFound)
	}

	if avatar != nil {
		if err := s.storage.DeleteFile(avatar.FilePath); err != nil {
			// the row is already gone, an orphaned file is harmless
			s.logger.Warn().Err(err).Int64("studentID", id).Str("path", avatar.FilePath).Msg("Failed to remove avatar file of deleted student")
		}
	}

	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

func (s *studentServiceImpl) list(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error) {
	students, err := s.studentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// GetAllStudents returns every student ordered by id
func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return s.list(ctx, repositories.StudentFilter{})
}

// GetStudentsByAge returns students of exactly the given age
func (s *studentServiceImpl) GetStudentsByAge(ctx context.Context, age int) ([]*models.Student, error) {
	return s.list(ctx, repositories.StudentFilter{Age: &age})
}

// GetStudentsByAgeBetween returns students with minAge <= age <= maxAge
func (s *studentServiceImpl) GetStudentsByAgeBetween(ctx context.Context, minAge, maxAge int) ([]*models.Student, error) {
	return s.list(ctx, repositories.StudentFilter{MinAge: &minAge, MaxAge: &maxAge})
}

// GetStudentsByNameContaining matches the fragment case-insensitively anywhere in the name
func (s *studentServiceImpl) GetStudentsByNameContaining(ctx context.Context, fragment string) ([]*models.Student, error) {
	return s.list(ctx, repositories.StudentFilter{NameContains: fragment})
}

// GetStudentsByAgeLessThan returns students strictly younger than age
func (s *studentServiceImpl) GetStudentsByAgeLessThan(ctx context.Context, age int) ([]*models.Student, error) {
	return s.list(ctx, repositories.StudentFilter{AgeLessThan: &age})
}

// GetStudentsOrderedByAge returns every student, youngest first
func (s *studentServiceImpl) GetStudentsOrderedByAge(ctx context.Context) ([]*models.Student, error) {
	return s.list(ctx, repositories.StudentFilter{OrderByAge: true})
}

// GetStudentFaculty returns the faculty the student belongs to
func (s *studentServiceImpl) GetStudentFaculty(ctx context.Context, studentID int64) (*models.Faculty, error) {
	student, err := s.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Faculty == nil {
		return nil, apperrors.ErrFacultyNotAssigned
	}
	return student.Faculty, nil
}

// CountStudents returns the number of students
func (s *studentServiceImpl) CountStudents(ctx context.Context) (int64, error) {
	count, err := s.studentRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// GetAverageAge returns the mean age, 0 when there are no students
func (s *studentServiceImpl) GetAverageAge(ctx context.Context) (float64, error) {
	avg, err := s.studentRepo.AverageAge(ctx)
	if err != nil {
		return 0, fmt.Errorf("error computing average age: %w", err)
	}
	return avg, nil
}

// GetLastFiveStudents returns the five most recently created students, newest first
func (s *studentServiceImpl) GetLastFiveStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.LastN(ctx, lastStudentsLimit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving last students: %w", err)
	}
	return students, nil
}

// GetStudentNamesStartingWith returns upper-cased names beginning with letter, sorted.
// An empty letter means "A".
func (s *studentServiceImpl) GetStudentNamesStartingWith(ctx context.Context, letter string) ([]string, error) {
	upper := cases.Upper(language.Und)
	prefix := upper.String(strings.TrimSpace(letter))
	if prefix == "" {
		prefix = defaultNamePrefix
	}

	students, err := s.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, student := range students {
		name := upper.String(student.Name)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
