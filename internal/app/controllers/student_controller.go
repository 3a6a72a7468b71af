package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hogwarts/internal/app/models/dto"
	"github.com/yigit/hogwarts/internal/app/services"
	"github.com/yigit/hogwarts/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent handles student creation
// @Summary Create a new student
// @Description Creates a student, optionally assigned to an existing faculty
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.StudentRequest true "Student information"
// @Success 201 {object} models.Student "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown faculty"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// GetStudentByID retrieves a student by ID
// @Summary Get student details
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64)
// @Success 200 {object} models.Student "Student retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// UpdateStudent replaces an existing student
// @Summary Update a student
// @Description Full replace of name, age and faculty. Never creates a student.
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64)
// @Param request body dto.StudentRequest true "Replacement student"
// @Success 200 {object} models.Student "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown faculty"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student := req.ToModel()
	student.ID = id

	updated, err := c.studentService.UpdateStudent(ctx, student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteStudent deletes a student together with its avatar
// @Summary Delete a student
// @Tags students
// @Param id path int true "Student ID" Format(int64)
// @Success 204 "Student deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetAllStudents lists every student
// @Summary Get all students
// @Tags students
// @Produce json
// @Success 200 {array} models.Student
// @Router /student [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// GetStudentsByAge
// @Summary Students of an exact age
// @Tags students
// @Produce json
// @Param age query int true "Age"
// @Success 200 {array} models.Student
// @Failure 400 {object} dto.ErrorResponse "Invalid age"
// @Router /student/by-age [get]
func (c *StudentController) GetStudentsByAge(ctx *gin.Context) {
	age, ok := queryInt(ctx, "age")
	if !ok {
		return
	}

	students, err := c.studentService.GetStudentsByAge(ctx, age)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// GetStudentsByAgeBetween
// @Summary Students with min <= age <= max
// @Tags students
// @Produce json
// @Param min query int true "Minimum age, inclusive"
// @Param max query int true "Maximum age, inclusive"
// @Success 200 {array} models.Student
// @Failure 400 {object} dto.ErrorResponse "Invalid bounds"
// @Router /student/by-age-between [get]
func (c *StudentController) GetStudentsByAgeBetween(ctx *gin.Context) {
	minAge, ok := queryInt(ctx, "min")
	if !ok {
		return
	}
	maxAge, ok := queryInt(ctx, "max")
	if !ok {
		return
	}

	students, err := c.studentService.GetStudentsByAgeBetween(ctx, minAge, maxAge)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// GetStudentsByName
// @Summary Students whose name contains a fragment, ignoring case
// @Tags students
// @Produce json
// @Param name query string true "Name fragment"
// @Success 200 {array} models.Student
// @Router /student/by-name [get]
func (c *StudentController) GetStudentsByName(ctx *gin.Context) {
	students, err := c.studentService.GetStudentsByNameContaining(ctx, ctx.Query("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// GetStudentsByAgeLessThan
// @Summary Students strictly younger than age
// @Tags students
// @Produce json
// @Param age query int true "Exclusive upper bound"
// @Success 200 {array} models.Student
// @Failure 400 {object} dto.ErrorResponse "Invalid age"
// @Router /student/age-less-than [get]
func (c *StudentController) GetStudentsByAgeLessThan(ctx *gin.Context) {
	age, ok := queryInt(ctx, "age")
	if !ok {
		return
	}

	students, err := c.studentService.GetStudentsByAgeLessThan(ctx, age)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// GetStudentsOrderedByAge
// @Summary All students, youngest first
// @Tags students
// @Produce json
// @Success 200 {array} models.Student
// @Router /student/ordered-by-age [get]
func (c *StudentController) GetStudentsOrderedByAge(ctx *gin.Context) {
	students, err := c.studentService.GetStudentsOrderedByAge(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// GetStudentFaculty returns the faculty of a student
// @Summary Faculty of a student
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64)
// @Success 200 {object} models.Faculty
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found or without faculty"
// @Router /student/{id}/faculty [get]
func (c *StudentController) GetStudentFaculty(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Student")
	if !ok {
		return
	}

	faculty, err := c.studentService.GetStudentFaculty(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, faculty)
}

// CountStudents
// @Summary Number of students
// @Tags students
// @Produce json
// @Success 200 {integer} int64
// @Router /student/count [get]
func (c *StudentController) CountStudents(ctx *gin.Context) {
	count, err := c.studentService.CountStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, count)
}

// GetAverageAge
// @Summary Mean student age, 0 without students
// @Tags students
// @Produce json
// @Success 200 {number} float64
// @Router /student/average-age [get]
func (c *StudentController) GetAverageAge(ctx *gin.Context) {
	avg, err := c.studentService.GetAverageAge(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, avg)
}

// GetLastFiveStudents
// @Summary The five most recently created students
// @Tags students
// @Produce json
// @Success 200 {array} models.Student
// @Router /student/last-five [get]
func (c *StudentController) GetLastFiveStudents(ctx *gin.Context) {
	students, err := c.studentService.GetLastFiveStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// GetStudentNamesStartingWith
// @Summary Upper-cased student names starting with a letter
// @Tags students
// @Produce json
// @Param letter query string false "First letter" default(A)
// @Success 200 {array} string
// @Router /student/names-starting-with [get]
func (c *StudentController) GetStudentNamesStartingWith(ctx *gin.Context) {
	names, err := c.studentService.GetStudentNamesStartingWith(ctx, ctx.Query("letter"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, names)
}

// PrintStudentsParallel
// @Summary Print six student names from three concurrent workers
// @Tags students
// @Produce json
// @Success 200 {array} string "Names in the order they were printed"
// @Router /student/print-parallel [get]
func (c *StudentController) PrintStudentsParallel(ctx *gin.Context) {
	names, err := c.studentService.PrintStudentsParallel(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, names)
}

// PrintStudentsSynchronized
// @Summary Print six student names from three workers, one worker at a time
// @Tags students
// @Produce json
// @Success 200 {array} string "Names in the order they were printed"
// @Router /student/print-synchronized [get]
func (c *StudentController) PrintStudentsSynchronized(ctx *gin.Context) {
	names, err := c.studentService.PrintStudentsSynchronized(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, names)
}
