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

const upsertAvatarSuffix = `ON CONFLICT (student_id) DO UPDATE SET
	file_path = EXCLUDED.file_path,
	file_size = EXCLUDED.file_size,
	media_type = EXCLUDED.media_type,
	data = EXCLUDED.data
RETURNING id`

// PostgresAvatarRepository handles avatar database operations
type PostgresAvatarRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAvatarRepository creates a new PostgresAvatarRepository
func NewAvatarRepository(database *db.PostgresDB) *PostgresAvatarRepository {
	return &PostgresAvatarRepository{
		db: database,
		sb: statementBuilder(),
	}
}

// Save upserts the avatar row keyed by student_id inside a transaction.
// beforeCommit runs inside the same transaction; its error rolls the row back.
func (r *PostgresAvatarRepository) Save(ctx context.Context, avatar *models.Avatar, beforeCommit BeforeCommitFn) error {
	sql, args, err := r.sb.Insert("avatars").
		Columns("student_id", "file_path", "file_size", "media_type", "data").
		Values(avatar.StudentID, avatar.FilePath, avatar.FileSize, avatar.MediaType, avatar.Data).
		Suffix(upsertAvatarSuffix).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building save avatar SQL")
		return fmt.Errorf("failed to build save avatar query: %w", err)
	}

	var id int64
	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			if dberrors.IsForeignKeyViolation(err, "") {
				return ErrInvalidReference
			}
			logger.Error().Err(err).Int64("studentID", avatar.StudentID).Msg("Error executing save avatar query")
			return fmt.Errorf("error saving avatar: %w", err)
		}

		if beforeCommit != nil {
			return beforeCommit(ctx)
		}
		return nil
	})
	if err != nil {
		return err
	}

	avatar.ID = id
	return nil
}

func (r *PostgresAvatarRepository) getOne(ctx context.Context, where squirrel.Eq, logField string, key int64) (*models.Avatar, error) {
	sql, args, err := r.sb.Select("id", "file_path", "file_size", "media_type", "data", "student_id").
		From("avatars").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get avatar SQL")
		return nil, fmt.Errorf("failed to build get avatar query: %w", err)
	}

	avatar := &models.Avatar{}
	err = r.db.Pool.QueryRow(ctx, sql, args...).
		Scan(&avatar.ID, &avatar.FilePath, &avatar.FileSize, &avatar.MediaType, &avatar.Data, &avatar.StudentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64(logField, key).Msg("Error scanning avatar row")
		return nil, fmt.Errorf("error getting avatar: %w", err)
	}

	return avatar, nil
}

// GetByID retrieves an avatar, image data included
func (r *PostgresAvatarRepository) GetByID(ctx context.Context, id int64) (*models.Avatar, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "avatarID", id)
}

// GetByStudentID retrieves the avatar of a student, image data included
func (r *PostgresAvatarRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.Avatar, error) {
	return r.getOne(ctx, squirrel.Eq{"student_id": studentID}, "studentID", studentID)
}

// List returns a page of avatar metadata ordered by id and the total row count
func (r *PostgresAvatarRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Avatar, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("avatars").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count avatars SQL")
		return nil, 0, fmt.Errorf("failed to build count avatars query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting avatars")
		return nil, 0, fmt.Errorf("error counting avatars: %w", err)
	}

	sql, args, err := r.sb.Select("id", "file_path", "file_size", "media_type", "student_id").
		From("avatars").
		OrderBy("id ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list avatars SQL")
		return nil, 0, fmt.Errorf("failed to build list avatars query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list avatars query")
		return nil, 0, fmt.Errorf("error querying avatars: %w", err)
	}
	defer rows.Close()

	avatars := []*models.Avatar{}
	for rows.Next() {
		avatar := &models.Avatar{}
		if err := rows.Scan(&avatar.ID, &avatar.FilePath, &avatar.FileSize, &avatar.MediaType, &avatar.StudentID); err != nil {
			logger.Error().Err(err).Msg("Error scanning avatar row during list")
			return nil, 0, fmt.Errorf("error scanning avatar row: %w", err)
		}
		avatars = append(avatars, avatar)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating avatar rows")
		return nil, 0, fmt.Errorf("error iterating avatar rows: %w", err)
	}

	return avatars, total, nil
}
