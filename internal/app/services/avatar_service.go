package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/models/dto"
	"github.com/yigit/hogwarts/internal/app/repositories"
	"github.com/yigit/hogwarts/internal/pkg/apperrors"
	"github.com/yigit/hogwarts/internal/pkg/filestorage"
	"github.com/yigit/hogwarts/internal/pkg/helpers"
	"github.com/yigit/hogwarts/internal/pkg/logger"
)

const defaultAvatarExtension = ".dat"

// UploadAvatarInput carries an uploaded image and its declared metadata
type UploadAvatarInput struct {
	StudentID   int64
	FileName    string
	ContentType string
	// Size as declared by the upload, len(Data) when not positive
	Size int64
	Data []byte
}

// AvatarImage is the raw image returned to clients
type AvatarImage struct {
	MediaType string
	Size      int64
	Data      []byte
}

// AvatarService defines the interface for avatar-related operations
type AvatarService interface {
	UploadAvatar(ctx context.Context, input UploadAvatarInput) (*models.Avatar, error)
	GetAvatarByID(ctx context.Context, id int64) (*models.Avatar, error)
	GetAvatarByStudentID(ctx context.Context, studentID int64) (*models.Avatar, error)
	GetAvatarImageFromFile(ctx context.Context, studentID int64) (*AvatarImage, error)
	GetAllAvatars(ctx context.Context, page, size int) ([]*models.Avatar, dto.PaginationInfo, error)
}

// avatarServiceImpl implements the AvatarService interface
type avatarServiceImpl struct {
	avatarRepo  repositories.AvatarRepository
	studentRepo repositories.StudentRepository
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewAvatarService creates a new avatar service instance
func NewAvatarService(repos *repositories.Repositories, storage filestorage.FileStorage) AvatarService {
	return &avatarServiceImpl{
		avatarRepo:  repos.Avatars,
		studentRepo: repos.Students,
		storage:     storage,
		logger:      logger.Component("avatar_service"),
	}
}

// AvatarFileName returns avatar_<studentID><ext>, ext being the last dot-suffix
// of the original name or .dat when there is none
func AvatarFileName(studentID int64, originalName string) string {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = defaultAvatarExtension
	}
	return "avatar_" + strconv.FormatInt(studentID, 10) + ext
}

// UploadAvatar stores the image on disk and in the database as one operation.
// The file is written while the row's transaction is still open: a failed write
// rolls the row back and a failed commit removes the file again, or restores
// the previous avatar's bytes when they were overwritten.
func (s *avatarServiceImpl) UploadAvatar(ctx context.Context, input UploadAvatarInput) (*models.Avatar, error) {
	if _, err := s.studentRepo.GetByID(ctx, input.StudentID); err != nil {
		return nil, translate(err, apperrors.ErrStudentNotFound)
	}

	previous, err := s.avatarRepo.GetByStudentID(ctx, input.StudentID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("error loading current avatar: %w", err)
	}

	size := input.Size
	if size <= 0 {
		size = int64(len(input.Data))
	}

	fileName := AvatarFileName(input.StudentID, input.FileName)
	avatar := &models.Avatar{
		FilePath:  s.storage.Path(fileName),
		FileSize:  size,
		MediaType: input.ContentType,
		Data:      input.Data,
		StudentID: input.StudentID,
	}

	// the previous file is overwritten in place when the extension is unchanged
	var prior []byte
	replacing := previous != nil && previous.FilePath == avatar.FilePath
	if replacing {
		if prior, err = s.storage.ReadFile(previous.FilePath); err != nil {
			if !errors.Is(err, filestorage.ErrFileNotFound) {
				return nil, fmt.Errorf("error reading current avatar file: %w", err)
			}
			replacing = false
		}
	}

	written := false
	err = s.avatarRepo.Save(ctx, avatar, func(context.Context) error {
		path, err := s.storage.WriteFile(fileName, input.Data)
		if err != nil {
			return fmt.Errorf("error writing avatar file: %w", err)
		}
		avatar.FilePath = path
		written = true
		return nil
	})
	if err != nil {
		if written {
			s.discardAvatarFile(fileName, avatar.FilePath, prior, replacing)
		}
		if errors.Is(err, repositories.ErrInvalidReference) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error saving avatar: %w", err)
	}

	// a new extension leaves the old file behind
	if previous != nil && previous.FilePath != avatar.FilePath {
		if err := s.storage.DeleteFile(previous.FilePath); err != nil {
			s.logger.Warn().Err(err).Str("path", previous.FilePath).Msg("Failed to remove replaced avatar file")
		}
	}

	s.logger.Info().
		Int64("avatarID", avatar.ID).
		Int64("studentID", avatar.StudentID).
		Int64("fileSize", avatar.FileSize).
		Str("mediaType", avatar.MediaType).
		Msg("Avatar uploaded")
	return avatar, nil
}

// discardAvatarFile undoes the write of a failed save, putting back the bytes
// of the avatar that is still current
func (s *avatarServiceImpl) discardAvatarFile(fileName, path string, prior []byte, restore bool) {
	if restore {
		if _, err := s.storage.WriteFile(fileName, prior); err != nil {
			s.logger.Error().Err(err).Str("path", path).Msg("Failed to restore previous avatar file after failed save")
		}
		return
	}
	if err := s.storage.DeleteFile(path); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("Failed to remove avatar file after failed save")
	}
}

// GetAvatarByID retrieves an avatar including its image data
func (s *avatarServiceImpl) GetAvatarByID(ctx context.Context, id int64) (*models.Avatar, error) {
	avatar, err := s.avatarRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrAvatarNotFound)
	}
	return avatar, nil
}

// GetAvatarByStudentID retrieves the avatar of a student
func (s *avatarServiceImpl) GetAvatarByStudentID(ctx context.Context, studentID int64) (*models.Avatar, error) {
	avatar, err := s.avatarRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, translate(err, apperrors.ErrAvatarNotFound)
	}
	return avatar, nil
}

// GetAvatarImageFromFile re-reads the image from disk. A missing row and a
// missing file are reported as different errors.
func (s *avatarServiceImpl) GetAvatarImageFromFile(ctx context.Context, studentID int64) (*AvatarImage, error) {
	avatar, err := s.GetAvatarByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	data, err := s.storage.ReadFile(avatar.FilePath)
	if err != nil {
		if errors.Is(err, filestorage.ErrFileNotFound) {
			s.logger.Warn().Int64("studentID", studentID).Str("path", avatar.FilePath).Msg("Avatar row exists but file is missing")
			return nil, apperrors.ErrAvatarFileMissing
		}
		return nil, fmt.Errorf("error reading avatar file: %w", err)
	}

	return &AvatarImage{
		MediaType: avatar.MediaType,
		Size:      int64(len(data)),
		Data:      data,
	}, nil
}

// GetAllAvatars returns one 0-based page of avatar metadata
func (s *avatarServiceImpl) GetAllAvatars(ctx context.Context, page, size int) ([]*models.Avatar, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	avatars, total, err := s.avatarRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error retrieving avatars: %w", err)
	}

	return avatars, helpers.NewPaginationInfo(total, page, limit), nil
}
