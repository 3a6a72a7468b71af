package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/repositories"
	"github.com/yigit/hogwarts/internal/pkg/apperrors"
	"github.com/yigit/hogwarts/internal/pkg/logger"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	UpdateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	DeleteFaculty(ctx context.Context, id int64) error
	GetAllFaculties(ctx context.Context) ([]*models.Faculty, error)
	GetFacultiesByColor(ctx context.Context, color string) ([]*models.Faculty, error)
	SearchFaculties(ctx context.Context, query string) ([]*models.Faculty, error)
	GetFacultyStudents(ctx context.Context, id int64) ([]*models.Student, error)
	GetLongestFacultyName(ctx context.Context) (string, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo repositories.FacultyRepository
	studentRepo repositories.StudentRepository
	logger      zerolog.Logger
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(repos *repositories.Repositories) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: repos.Faculties,
		studentRepo: repos.Students,
		logger:      logger.Component("faculty_service"),
	}
}

// CreateFaculty creates a new faculty
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if faculty == nil {
		return nil, fmt.Errorf("%w: faculty is nil", apperrors.ErrValidationFailed)
	}

	id, err := s.facultyRepo.Create(ctx, faculty)
	if err != nil {
		return nil, fmt.Errorf("error creating faculty: %w", err)
	}

	faculty.ID = id
	s.logger.Info().Int64("facultyID", id).Str("name", faculty.Name).Msg("Faculty created")
	return faculty, nil
}

// GetFacultyByID retrieves a faculty by ID
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound)
	}
	return faculty, nil
}

// UpdateFaculty replaces an existing faculty
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if faculty == nil {
		return nil, fmt.Errorf("%w: faculty is nil", apperrors.ErrValidationFailed)
	}

	if err := s.facultyRepo.Update(ctx, faculty); err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound)
	}

	s.logger.Info().Int64("facultyID", faculty.ID).Msg("Faculty updated")
	return faculty, nil
}

// DeleteFaculty deletes a faculty. Its students stay, without a faculty.
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	if err := s.facultyRepo.Delete(ctx, id); err != nil {
		return translate(err, apperrors.ErrFacultyNotFound)
	}

	s.logger.Info().Int64("facultyID", id).Msg("Faculty deleted")
	return nil
}

func (s *facultyServiceImpl) list(ctx context.Context, filter repositories.FacultyFilter) ([]*models.Faculty, error) {
	faculties, err := s.facultyRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculties: %w", err)
	}
	return faculties, nil
}

// GetAllFaculties retrieves all faculties
func (s *facultyServiceImpl) GetAllFaculties(ctx context.Context) ([]*models.Faculty, error) {
	return s.list(ctx, repositories.FacultyFilter{})
}

// GetFacultiesByColor matches the color case-insensitively
func (s *facultyServiceImpl) GetFacultiesByColor(ctx context.Context, color string) ([]*models.Faculty, error) {
	if strings.TrimSpace(color) == "" {
		return []*models.Faculty{}, nil
	}
	return s.list(ctx, repositories.FacultyFilter{Color: color})
}

// SearchFaculties matches query case-insensitively against name or color
func (s *facultyServiceImpl) SearchFaculties(ctx context.Context, query string) ([]*models.Faculty, error) {
	return s.list(ctx, repositories.FacultyFilter{Search: query})
}

// GetFacultyStudents returns the students of a faculty, empty when it has none
func (s *facultyServiceImpl) GetFacultyStudents(ctx context.Context, id int64) ([]*models.Student, error) {
	if _, err := s.GetFacultyByID(ctx, id); err != nil {
		return nil, err
	}

	students, err := s.studentRepo.List(ctx, repositories.StudentFilter{FacultyID: &id})
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculty students: %w", err)
	}
	return students, nil
}

// GetLongestFacultyName returns the name with the most characters.
// Ties go to the faculty with the lowest id.
func (s *facultyServiceImpl) GetLongestFacultyName(ctx context.Context) (string, error) {
	faculties, err := s.GetAllFaculties(ctx)
	if err != nil {
		return "", err
	}
	if len(faculties) == 0 {
		return "", apperrors.ErrNoFacultiesExist
	}

	longest := faculties[0].Name
	for _, faculty := range faculties[1:] {
		if utf8.RuneCountInString(faculty.Name) > utf8.RuneCountInString(longest) {
			longest = faculty.Name
		}
	}
	return longest, nil
}
