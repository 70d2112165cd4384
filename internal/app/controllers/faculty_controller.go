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

// GetFaculty retrieves a faculty by ID
// @Summary Get faculty details
// @Description Retrieves detailed information about a specific faculty by its ID
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64)
// @Success 200 {object} models.Faculty
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id} [get]
func (c *FacultyController) GetFaculty(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Faculty")
	if !ok {
		return
	}

	faculty, err := c.facultyService.FindFaculty(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculty)
}

// GetFacultyStudents lists the students of a faculty
// @Summary Students of faculty
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64)
// @Success 200 {array} models.Student
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculty/{id}/student [get]
func (c *FacultyController) GetFacultyStudents(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Faculty")
	if !ok {
		return
	}

	students, err := c.facultyService.StudentsOfFaculty(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// FindFaculties searches faculties by name or color
// @Summary Search faculties
// @Description Returns faculties whose name or color matches. Both blank returns an empty list.
// @Tags faculties
// @Produce json
// @Param name query string false "Faculty name"
// @Param color query string false "Faculty color"
// @Success 200 {array} models.Faculty
// @Router /faculty [get]
func (c *FacultyController) FindFaculties(ctx *gin.Context) {
	var query dto.FacultySearchQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	faculties, err := c.facultyService.FindByNameOrColor(ctx, query.Name, query.Color)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculties)
}

// CreateFaculty handles faculty creation
// @Summary Create a new faculty
// @Description Creates a new faculty. The id in the body is ignored.
// @Tags faculties
// @Accept json
// @Produce json
// @Param request body dto.FacultyRequest true "Faculty information"
// @Success 200 {object} models.Faculty
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

	ctx.JSON(http.StatusOK, faculty)
}

// EditFaculty replaces an existing faculty
// @Summary Edit a faculty
// @Description Replaces the faculty identified by the id in the body
// @Tags faculties
// @Accept json
// @Produce json
// @Param request body dto.FacultyRequest true "Faculty information"
// @Success 200 {object} models.Faculty
// @Failure 400 {object} dto.ErrorResponse "Invalid data or faculty does not exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty [put]
func (c *FacultyController) EditFaculty(ctx *gin.Context) {
	var req dto.FacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	faculty, err := c.facultyService.EditFaculty(ctx, req.ToModel())
	if err != nil {
		middleware.HandleInvalidEdit(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, faculty)
}

// DeleteFaculty deletes a faculty
// @Summary Delete a faculty
// @Description Deletes a faculty and clears it from its students. Deleting a missing faculty succeeds.
// @Tags faculties
// @Param id path int true "Faculty ID" Format(int64)
// @Success 200
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Faculty")
	if !ok {
		return
	}

	if err := c.facultyService.DeleteFaculty(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}
