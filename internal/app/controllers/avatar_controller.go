package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/yigit/hogwarts/internal/app/models/dto"
	"github.com/yigit/hogwarts/internal/app/services"
	"github.com/yigit/hogwarts/internal/pkg/helpers"
	"github.com/yigit/hogwarts/internal/middleware"
)

const (
	avatarFormField     = "file"
	octetStreamMimeType = "application/octet-stream"
)

// AvatarController handles avatar upload and retrieval
type AvatarController struct {
	avatarService services.AvatarService
}

// NewAvatarController creates a new AvatarController
func NewAvatarController(avatarService services.AvatarService) *AvatarController {
	return &AvatarController{
		avatarService: avatarService,
	}
}

// UploadAvatar stores a student's avatar on disk and in the database
// @Summary Upload a student avatar
// @Description Replaces any existing avatar of the student
// @Tags avatars
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student ID" Format(int64)
// @Param file formData file true "Avatar image"
// @Success 200 {integer} int64 "Avatar ID"
// @Failure 400 {object} dto.ErrorResponse "Invalid or missing file"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /avatar/{id}/upload [post]
func (c *AvatarController) UploadAvatar(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile(avatarFormField)
	if err != nil {
		middleware.RespondBadRequest(ctx, "Invalid or missing file", err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == octetStreamMimeType {
		contentType = mimetype.Detect(data).String()
	}

	avatar, err := c.avatarService.UploadAvatar(ctx, services.UploadAvatarInput{
		StudentID:   studentID,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Data:        data,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, avatar.ID)
}

// GetAvatarFromDB returns the image bytes stored in the database
// @Summary Avatar image from the database
// @Tags avatars
// @Produce octet-stream
// @Param id path int true "Avatar ID" Format(int64)
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse "Invalid avatar ID"
// @Failure 404 {object} dto.ErrorResponse "Avatar not found"
// @Router /avatar/{id}/from-db [get]
func (c *AvatarController) GetAvatarFromDB(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Avatar")
	if !ok {
		return
	}

	avatar, err := c.avatarService.GetAvatarByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	writeImage(ctx, avatar.MediaType, avatar.FileSize, avatar.Data)
}

// GetAvatarFromFile returns the image bytes re-read from disk
// @Summary Avatar image from the file system
// @Tags avatars
// @Produce octet-stream
// @Param id path int true "Student ID" Format(int64)
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Avatar not found in database"
// @Failure 410 {object} dto.ErrorResponse "Avatar file missing on disk"
// @Router /avatar/{id}/from-file [get]
func (c *AvatarController) GetAvatarFromFile(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	image, err := c.avatarService.GetAvatarImageFromFile(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	writeImage(ctx, image.MediaType, image.Size, image.Data)
}

// GetAvatarByStudent returns avatar metadata of a student
// @Summary Avatar metadata of a student
// @Tags avatars
// @Produce json
// @Param studentId path int true "Student ID" Format(int64)
// @Success 200 {object} models.Avatar
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Avatar not found"
// @Router /avatar/student/{studentId} [get]
func (c *AvatarController) GetAvatarByStudent(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "studentId", "Student")
	if !ok {
		return
	}

	avatar, err := c.avatarService.GetAvatarByStudentID(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, avatar)
}

// GetAllAvatars lists avatar metadata page by page
// @Summary List avatars
// @Tags avatars
// @Produce json
// @Param page query int false "0-based page" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.PaginatedResponse{items=[]models.Avatar}
// @Router /avatar [get]
func (c *AvatarController) GetAllAvatars(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	avatars, pagination, err := c.avatarService.GetAllAvatars(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaginatedResponse{
		Items:      avatars,
		Pagination: pagination,
	})
}

func writeImage(ctx *gin.Context, mediaType string, size int64, data []byte) {
	if mediaType == "" {
		mediaType = octetStreamMimeType
	}
	// net/http rejects a body that disagrees with the declared length
	if size != int64(len(data)) {
		size = int64(len(data))
	}
	ctx.Header("Content-Length", strconv.FormatInt(size, 10))
	ctx.Data(http.StatusOK, mediaType, data)
}
