package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/hogwarts/internal/app/controllers"
	"github.com/yigit/hogwarts/internal/pkg/logger"
	"github.com/yigit/hogwarts/internal/pkg/validation"
)

// Controllers groups every controller the router needs
type Controllers struct {
	Student *controllers.StudentController
	Faculty *controllers.FacultyController
	Avatar  *controllers.AvatarController
	Util    *controllers.UtilController
	Info    *controllers.InfoController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	if err := validation.RegisterBindingRules(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to register binding rules")
	}

	students := router.Group("/student")
	{
		students.POST("", c.Student.CreateStudent)
		students.GET("", c.Student.GetAllStudents)

		// Static segments take precedence over /:id
		students.GET("/by-age", c.Student.GetStudentsByAge)
		students.GET("/by-age-between", c.Student.GetStudentsByAgeBetween)
		students.GET("/by-name", c.Student.GetStudentsByName)
		students.GET("/age-less-than", c.Student.GetStudentsByAgeLessThan)
		students.GET("/ordered-by-age", c.Student.GetStudentsOrderedByAge)
		students.GET("/count", c.Student.CountStudents)
		students.GET("/average-age", c.Student.GetAverageAge)
		students.GET("/last-five", c.Student.GetLastFiveStudents)
		students.GET("/names-starting-with", c.Student.GetStudentNamesStartingWith)
		students.GET("/print-parallel", c.Student.PrintStudentsParallel)
		students.GET("/print-synchronized", c.Student.PrintStudentsSynchronized)

		students.GET("/:id", c.Student.GetStudentByID)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", c.Student.DeleteStudent)
		students.GET("/:id/faculty", c.Student.GetStudentFaculty)
	}

	faculties := router.Group("/faculty")
	{
		faculties.POST("", c.Faculty.CreateFaculty)
		faculties.GET("", c.Faculty.GetAllFaculties)
		faculties.GET("/by-color", c.Faculty.GetFacultiesByColor)
		faculties.GET("/search", c.Faculty.SearchFaculties)
		faculties.GET("/longest-name", c.Faculty.GetLongestFacultyName)

		faculties.GET("/:id", c.Faculty.GetFacultyByID)
		faculties.PUT("/:id", c.Faculty.UpdateFaculty)
		faculties.DELETE("/:id", c.Faculty.DeleteFaculty)
		faculties.GET("/:id/students", c.Faculty.GetFacultyStudents)
	}

	// gin requires one wildcard name per segment, so :id is the student id
	// for upload and from-file and the avatar id for from-db
	avatars := router.Group("/avatar")
	{
		avatars.GET("", c.Avatar.GetAllAvatars)
		avatars.GET("/student/:studentId", c.Avatar.GetAvatarByStudent)
		avatars.POST("/:id/upload", c.Avatar.UploadAvatar)
		avatars.GET("/:id/from-db", c.Avatar.GetAvatarFromDB)
		avatars.GET("/:id/from-file", c.Avatar.GetAvatarFromFile)
	}

	util := router.Group("/util")
	{
		util.GET("/sum-million", c.Util.SumMillion)
		util.GET("/sum-million-slow", c.Util.SumMillionSlow)
	}

	router.GET("/port", c.Info.GetPort)
	router.GET("/health", c.Info.Health)
}
