package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hogwarts/internal/app/models"
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

// GetStudent retrieves a student by ID
// @Summary Get student
// @Description Retrieves a student, with its faculty, by ID
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64)
// @Success 200 {object} models.Student
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}

	student, err := c.studentService.FindStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// CreateStudent handles student creation
// @Summary Create student
// @Description Creates a student. The id in the body is ignored.
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.StudentRequest true "Student"
// @Success 200 {object} models.Student
// @Failure 400 {object} dto.ErrorResponse "Invalid student data or unknown faculty"
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

	ctx.JSON(http.StatusOK, student)
}

// EditStudent replaces an existing student
// @Summary Edit student
// @Description Replaces every field of the student identified by the id in the body
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.StudentRequest true "Student"
// @Success 200 {object} models.Student
// @Failure 400 {object} dto.ErrorResponse "Invalid data or student does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student [put]
func (c *StudentController) EditStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.EditStudent(ctx, req.ToModel())
	if err != nil {
		middleware.HandleInvalidEdit(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// DeleteStudent deletes a student
// @Summary Delete student
// @Description Deletes a student by ID. Deleting a missing student succeeds.
// @Tags students
// @Param id path int true "Student ID" Format(int64)
// @Success 200
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}

// FindByAge lists students of an exact age
// @Summary Students by age
// @Tags students
// @Produce json
// @Param age query int true "Age"
// @Success 200 {array} models.Student
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid age"
// @Router /student/studentAge [get]
func (c *StudentController) FindByAge(ctx *gin.Context) {
	var query dto.StudentAgeQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	if *query.Age <= 0 {
		ctx.JSON(http.StatusOK, []*models.Student{})
		return
	}

	students, err := c.studentService.FindByAge(ctx, *query.Age)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// FindByAgeBetween lists students with min <= age <= max
// @Summary Students by age range
// @Tags students
// @Produce json
// @Param min query int true "Minimum age (inclusive)"
// @Param max query int true "Maximum age (inclusive)"
// @Success 200 {array} models.Student
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid bounds"
// @Router /student/studentAgeBetween [get]
func (c *StudentController) FindByAgeBetween(ctx *gin.Context) {
	var query dto.StudentAgeBetweenQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	students, err := c.studentService.FindByAgeBetween(ctx, *query.Min, *query.Max)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// GetStudentFaculty returns the faculty of a student
// @Summary Faculty of student
// @Description Returns the student's faculty, or null when it has none
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64)
// @Success 200 {object} models.Faculty
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/{id}/faculty [get]
func (c *StudentController) GetStudentFaculty(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}

	faculty, err := c.studentService.FacultyOfStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculty)
}

// CountStudents returns the number of students
// @Summary Number of students
// @Tags students
// @Produce json
// @Success 200 {integer} int64
// @Router /student/studentNumber [get]
func (c *StudentController) CountStudents(ctx *gin.Context) {
	count, err := c.studentService.CountStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, count)
}

// AverageAge returns the truncated average age
// @Summary Average student age
// @Tags students
// @Produce json
// @Success 200 {integer} int
// @Router /student/AvgAgeOfStudents [get]
func (c *StudentController) AverageAge(ctx *gin.Context) {
	avg, err := c.studentService.AverageAge(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, avg)
}

// LastFiveStudents returns the five newest students
// @Summary Last five students
// @Tags students
// @Produce json
// @Success 200 {array} models.Student
// @Router /student/LastFiveStudents [get]
func (c *StudentController) LastFiveStudents(ctx *gin.Context) {
	students, err := c.studentService.LastFiveStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// ImportStudents creates students from an uploaded spreadsheet
// @Summary Import students
// @Description Imports students from the first sheet of an .xlsx file (name, age, faculty id; header row skipped)
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook (.xlsx)"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} dto.ErrorResponse "Missing or unreadable file"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/import [post]
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidUpload, "File upload required").
			WithField("file").
			WithDetails(err.Error())
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.studentService.ImportStudents(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
