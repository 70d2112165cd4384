package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hogwarts/internal/app/controllers"
	"github.com/yigit/hogwarts/internal/app/models/dto"
	"github.com/yigit/hogwarts/internal/pkg/logger"
	"github.com/yigit/hogwarts/internal/pkg/validation"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	facultyController *controllers.FacultyController,
) {
	if err := validation.RegisterRules(); err != nil {
		logger.Error().Err(err).Msg("Failed to register validation rules")
	}

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.PingResponse{Message: "pong"})
	})

	students := router.Group("/student")
	{
		students.POST("", studentController.CreateStudent)
		students.PUT("", studentController.EditStudent)
		students.POST("/import", studentController.ImportStudents)

		// Static paths share the level with /:id
		students.GET("/studentAge", studentController.FindByAge)
		students.GET("/studentAgeBetween", studentController.FindByAgeBetween)
		students.GET("/studentNumber", studentController.CountStudents)
		students.GET("/AvgAgeOfStudents", studentController.AverageAge)
		students.GET("/LastFiveStudents", studentController.LastFiveStudents)

		students.GET("/:id", studentController.GetStudent)
		students.GET("/:id/faculty", studentController.GetStudentFaculty)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	faculties := router.Group("/faculty")
	{
		faculties.GET("", facultyController.FindFaculties)
		faculties.POST("", facultyController.CreateFaculty)
		faculties.PUT("", facultyController.EditFaculty)
		faculties.GET("/:id", facultyController.GetFaculty)
		faculties.GET("/:id/student", facultyController.GetFacultyStudents)
		faculties.DELETE("/:id", facultyController.DeleteFaculty)
	}
}
