package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/db"
)

// Shared repository errors. Services translate them into apperrors.
var (
	// ErrNotFound is returned when no row matches the key
	ErrNotFound = errors.New("record not found")
	// ErrInvalidReference is returned when a foreign key points at a missing row
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// StudentFilter narrows List. Zero value lists everything ordered by id.
type StudentFilter struct {
	Age          *int
	MinAge       *int
	MaxAge       *int
	AgeLessThan  *int
	NameContains string
	FacultyID    *int64
	OrderByAge   bool
}

// FacultyFilter narrows List. Both matches are case-insensitive.
type FacultyFilter struct {
	Color  string
	Search string
}

// StudentRepository persists students
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter StudentFilter) ([]*models.Student, error)
	Count(ctx context.Context) (int64, error)
	AverageAge(ctx context.Context) (float64, error)
	LastN(ctx context.Context, n int) ([]*models.Student, error)
}

// FacultyRepository persists faculties
type FacultyRepository interface {
	Create(ctx context.Context, faculty *models.Faculty) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Faculty, error)
	Update(ctx context.Context, faculty *models.Faculty) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter FacultyFilter) ([]*models.Faculty, error)
}

// BeforeCommitFn runs after the avatar row is written but before it becomes visible.
// Returning an error discards the row.
type BeforeCommitFn func(ctx context.Context) error

// AvatarRepository persists avatars, at most one per student
type AvatarRepository interface {
	// Save inserts or replaces the avatar of avatar.StudentID and sets avatar.ID
	Save(ctx context.Context, avatar *models.Avatar, beforeCommit BeforeCommitFn) error
	GetByID(ctx context.Context, id int64) (*models.Avatar, error)
	GetByStudentID(ctx context.Context, studentID int64) (*models.Avatar, error)
	// List returns one page of avatars without image data, plus the total count
	List(ctx context.Context, offset uint64, limit int) ([]*models.Avatar, int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Students  StudentRepository
	Faculties FacultyRepository
	Avatars   AvatarRepository
}

// NewRepositories initializes the PostgreSQL backed repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		Students:  NewStudentRepository(database),
		Faculties: NewFacultyRepository(database),
		Avatars:   NewAvatarRepository(database),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching fragment anywhere
func containsPattern(fragment string) string {
	return "%" + likeEscaper.Replace(fragment) + "%"
}
