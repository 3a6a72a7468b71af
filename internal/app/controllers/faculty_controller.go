package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hogwarts/internal/app/models/dto"
	"github.com/yigit/hogwarts/internal/app/services"
	"github.com/yigit/hogwarts/internal/middleware"
)

// FacultyController handles faculty-related operations
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

// CreateFaculty handles faculty creation
// @Summary Create a new faculty
// @Description Creates a new faculty with the provided information
// @Tags faculties
// @Accept json
// @Produce json
// @Param request body dto.FacultyRequest true "Faculty information"
// @Success 201 {object} models.Faculty "Faculty created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.FacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	faculty, err := c.facultyService.CreateFaculty(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, faculty)
}

// GetFacultyByID retrieves a faculty by ID
// @Summary Get faculty details
// @Description Retrieves detailed information about a specific faculty by its ID
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64)
// @Success 200 {object} models.Faculty "Faculty retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id} [get]
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Faculty")
	if !ok {
		return
	}

	faculty, err := c.facultyService.GetFacultyByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculty)
}

// GetAllFaculties retrieves all faculties
// @Summary Get all faculties
// @Description Retrieves a list of all faculties
// @Tags faculties
// @Produce json
// @Success 200 {array} models.Faculty "Faculties retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty [get]
func (c *FacultyController) GetAllFaculties(ctx *gin.Context) {
	faculties, err := c.facultyService.GetAllFaculties(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculties)
}

// UpdateFaculty updates an existing faculty
// @Summary Update a faculty
// @Description Replaces name and color of an existing faculty
// @Tags faculties
// @Accept json
// @Produce json
// @Param id path int true "Faculty ID" Format(int64)
// @Param request body dto.FacultyRequest true "Updated faculty information"
// @Success 200 {object} models.Faculty "Faculty updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Faculty")
	if !ok {
		return
	}

	var req dto.FacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	// Ensure the correct ID is set
	faculty := req.ToModel()
	faculty.ID = id

	updated, err := c.facultyService.UpdateFaculty(ctx, faculty)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteFaculty deletes a faculty
// @Summary Delete a faculty
// @Description Deletes a faculty. Its students remain without a faculty.
// @Tags faculties
// @Param id path int true "Faculty ID" Format(int64)
// @Success 204 "Faculty deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Faculty")
	if !ok {
		return
	}

	if err := c.facultyService.DeleteFaculty(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetFacultiesByColor
// @Summary Faculties of a color, ignoring case
// @Tags faculties
// @Produce json
// @Param color query string true "Color"
// @Success 200 {array} models.Faculty
// @Router /faculty/by-color [get]
func (c *FacultyController) GetFacultiesByColor(ctx *gin.Context) {
	faculties, err := c.facultyService.GetFacultiesByColor(ctx, ctx.Query("color"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculties)
}

// SearchFaculties
// @Summary Faculties whose name or color contains the search text
// @Tags faculties
// @Produce json
// @Param search query string true "Search text"
// @Success 200 {array} models.Faculty
// @Router /faculty/search [get]
func (c *FacultyController) SearchFaculties(ctx *gin.Context) {
	faculties, err := c.facultyService.SearchFaculties(ctx, ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculties)
}

// GetFacultyStudents lists the students of a faculty
// @Summary Students of a faculty
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64)
// @Success 200 {array} models.Student
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculty/{id}/students [get]
func (c *FacultyController) GetFacultyStudents(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Faculty")
	if !ok {
		return
	}

	students, err := c.facultyService.GetFacultyStudents(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// GetLongestFacultyName
// @Summary The longest faculty name
// @Tags faculties
// @Produce json
// @Success 200 {string} string
// @Failure 404 {object} dto.ErrorResponse "No faculties"
// @Router /faculty/longest-name [get]
func (c *FacultyController) GetLongestFacultyName(ctx *gin.Context) {
	name, err := c.facultyService.GetLongestFacultyName(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, name)
}
