package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/db"
	"github.com/yigit/hogwarts/internal/pkg/dberrors"
	"github.com/yigit/hogwarts/internal/pkg/logger"
)

// PostgresStudentRepository handles student database operations
type PostgresStudentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new PostgresStudentRepository
func NewStudentRepository(database *db.PostgresDB) *PostgresStudentRepository {
	return &PostgresStudentRepository{
		db: database,
		sb: statementBuilder(),
	}
}

// selectStudents joins the faculty so every read returns a resolved Student
func (r *PostgresStudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select("s.id", "s.name", "s.age", "s.faculty_id", "f.name", "f.color").
		From("students s").
		LeftJoin("faculties f ON f.id = s.faculty_id")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	var facultyName, facultyColor *string
	if err := row.Scan(&student.ID, &student.Name, &student.Age, &student.FacultyID, &facultyName, &facultyColor); err != nil {
		return nil, err
	}
	if student.FacultyID != nil && facultyName != nil {
		student.Faculty = &models.Faculty{ID: *student.FacultyID, Name: *facultyName}
		if facultyColor != nil {
			student.Faculty.Color = *facultyColor
		}
	}
	return student, nil
}

func (r *PostgresStudentRepository) queryStudents(ctx context.Context, builder squirrel.SelectBuilder, op string) ([]*models.Student, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building student list SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing student list query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Str("op", op).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Create inserts a student and returns the generated id
func (r *PostgresStudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "age", "faculty_id").
		Values(student.Name, student.Age, student.FacultyID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err, "") {
			return 0, ErrInvalidReference
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetByID retrieves a student by ID
func (r *PostgresStudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// Update replaces name, age and faculty of an existing student
func (r *PostgresStudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":       student.Name,
			"age":        student.Age,
			"faculty_id": student.FacultyID,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "") {
			return ErrInvalidReference
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a student. The avatar row goes with it (ON DELETE CASCADE).
func (r *PostgresStudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// List returns the students matching filter
func (r *PostgresStudentRepository) List(ctx context.Context, filter StudentFilter) ([]*models.Student, error) {
	builder := r.selectStudents()

	if filter.Age != nil {
		builder = builder.Where(squirrel.Eq{"s.age": *filter.Age})
	}
	if filter.MinAge != nil {
		builder = builder.Where(squirrel.GtOrEq{"s.age": *filter.MinAge})
	}
	if filter.MaxAge != nil {
		builder = builder.Where(squirrel.LtOrEq{"s.age": *filter.MaxAge})
	}
	if filter.AgeLessThan != nil {
		builder = builder.Where(squirrel.Lt{"s.age": *filter.AgeLessThan})
	}
	if filter.NameContains != "" {
		builder = builder.Where(squirrel.ILike{"s.name": containsPattern(filter.NameContains)})
	}
	if filter.FacultyID != nil {
		builder = builder.Where(squirrel.Eq{"s.faculty_id": *filter.FacultyID})
	}

	if filter.OrderByAge {
		builder = builder.OrderBy("s.age ASC", "s.id ASC")
	} else {
		builder = builder.OrderBy("s.id ASC")
	}

	return r.queryStudents(ctx, builder, "list students")
}

// Count returns the number of students
func (r *PostgresStudentRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count students SQL")
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}

// AverageAge returns the mean age, 0 when there are no students
func (r *PostgresStudentRepository) AverageAge(ctx context.Context) (float64, error) {
	sql, args, err := r.sb.Select("COALESCE(AVG(age), 0)::float8").From("students").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building average age SQL")
		return 0, fmt.Errorf("failed to build average age query: %w", err)
	}

	var avg float64
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&avg); err != nil {
		logger.Error().Err(err).Msg("Error computing average student age")
		return 0, fmt.Errorf("error computing average age: %w", err)
	}

	return avg, nil
}

// LastN returns the n students with the highest ids, newest first
func (r *PostgresStudentRepository) LastN(ctx context.Context, n int) ([]*models.Student, error) {
	builder := r.selectStudents().
		OrderBy("s.id DESC").
		Limit(uint64(n))
	return r.queryStudents(ctx, builder, "last students")
}
