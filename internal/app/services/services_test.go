package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/repositories"
	"github.com/yigit/hogwarts/internal/db"
	"github.com/yigit/hogwarts/internal/pkg/apperrors"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	sqliteDB, err := db.NewSQLiteDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteDB.Close() })
	require.NoError(t, sqliteDB.EnsureSchema(context.Background()))
	return NewServices(repositories.NewSQLiteRepositories(sqliteDB.DB))
}

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"name", "age", "faculty"}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestStudentService_CreateFindDelete(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	created, err := svc.StudentService.CreateStudent(ctx, &models.Student{ID: 42, Name: "John", Age: 15})
	require.NoError(t, err)
	assert.NotEqual(t, int64(42), created.ID, "incoming id is ignored")

	found, err := svc.StudentService.FindStudent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
	assert.True(t, created.Equal(found))

	require.NoError(t, svc.StudentService.DeleteStudent(ctx, created.ID))
	_, err = svc.StudentService.FindStudent(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	require.NoError(t, svc.StudentService.DeleteStudent(ctx, 987654))
	_, err = svc.StudentService.FindStudent(ctx, 987654)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentService_EditMissingStudentDoesNotWrite(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.StudentService.EditStudent(ctx, &models.Student{ID: 77, Name: "Nobody", Age: 20})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	count, err := svc.StudentService.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestStudentService_EditWithoutIDDoesNotCreate(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.StudentService.EditStudent(ctx, &models.Student{Name: "Phantom", Age: 30})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	count, err := svc.StudentService.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFacultyService_EditMissingFacultyDoesNotWrite(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	for _, id := range []int64{0, 4040} {
		_, err := svc.FacultyService.EditFaculty(ctx, &models.Faculty{ID: id, Name: "Phantom", Color: "grey"})
		assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound, "id %d", id)
	}

	found, err := svc.FacultyService.FindByNameOrColor(ctx, "Phantom", "grey")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = svc.FacultyService.FindFaculty(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
}

func TestStudentService_FacultyReference(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.StudentService.CreateStudent(ctx, &models.Student{Name: "Harry", Age: 11, Faculty: &models.Faculty{ID: 5}})
	assert.ErrorIs(t, err, apperrors.ErrUnknownFaculty)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	house, err := svc.FacultyService.CreateFaculty(ctx, &models.Faculty{Name: "Gryffindor", Color: "red"})
	require.NoError(t, err)

	harry, err := svc.StudentService.CreateStudent(ctx, &models.Student{Name: "Harry", Age: 11, Faculty: &models.Faculty{ID: house.ID}})
	require.NoError(t, err)

	faculty, err := svc.StudentService.FacultyOfStudent(ctx, harry.ID)
	require.NoError(t, err)
	assert.Equal(t, house, faculty)

	harry.Faculty = &models.Faculty{ID: house.ID + 100}
	_, err = svc.StudentService.EditStudent(ctx, harry)
	assert.ErrorIs(t, err, apperrors.ErrUnknownFaculty)

	edited, err := svc.StudentService.EditStudent(ctx, &models.Student{ID: harry.ID, Name: "Harry", Age: 12})
	require.NoError(t, err)
	assert.Nil(t, edited.Faculty)
	assert.Equal(t, 12, edited.Age)

	faculty, err = svc.StudentService.FacultyOfStudent(ctx, harry.ID)
	require.NoError(t, err)
	assert.Nil(t, faculty)

	_, err = svc.StudentService.FacultyOfStudent(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentService_Statistics(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	avg, err := svc.StudentService.AverageAge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, avg)

	for _, age := range []int{10, 11, 12, 13, 14, 15, 17} {
		_, err := svc.StudentService.CreateStudent(ctx, &models.Student{Name: "s", Age: age})
		require.NoError(t, err)
	}

	count, err := svc.StudentService.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	avg, err = svc.StudentService.AverageAge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, avg)

	last, err := svc.StudentService.LastFiveStudents(ctx)
	require.NoError(t, err)
	require.Len(t, last, 5)
	assert.Equal(t, 17, last[0].Age)
	assert.Equal(t, 12, last[4].Age)

	between, err := svc.StudentService.FindByAgeBetween(ctx, 12, 14)
	require.NoError(t, err)
	assert.Len(t, between, 3)

	exact, err := svc.StudentService.FindByAge(ctx, 17)
	require.NoError(t, err)
	assert.Len(t, exact, 1)
}

func TestFacultyService(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.FacultyService.CreateFaculty(ctx, &models.Faculty{Name: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	a, err := svc.FacultyService.CreateFaculty(ctx, &models.Faculty{ID: 9, Name: "x", Color: "y"})
	require.NoError(t, err)
	b, err := svc.FacultyService.CreateFaculty(ctx, &models.Faculty{Name: "z", Color: "y"})
	require.NoError(t, err)

	both, err := svc.FacultyService.FindByNameOrColor(ctx, "x", "y")
	require.NoError(t, err)
	assert.Equal(t, []*models.Faculty{a, b}, both)

	none, err := svc.FacultyService.FindByNameOrColor(ctx, "", "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	students, err := svc.FacultyService.StudentsOfFaculty(ctx, a.ID)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)

	_, err = svc.FacultyService.StudentsOfFaculty(ctx, 4040)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)

	_, err = svc.FacultyService.EditFaculty(ctx, &models.Faculty{ID: 4040, Name: "Ghost"})
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)

	edited, err := svc.FacultyService.EditFaculty(ctx, &models.Faculty{ID: a.ID, Name: "x", Color: "scarlet"})
	require.NoError(t, err)
	assert.Equal(t, "scarlet", edited.Color)

	member, err := svc.StudentService.CreateStudent(ctx, &models.Student{Name: "Ron", Age: 11, Faculty: &models.Faculty{ID: a.ID}})
	require.NoError(t, err)

	students, err = svc.FacultyService.StudentsOfFaculty(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, member.ID, students[0].ID)

	require.NoError(t, svc.FacultyService.DeleteFaculty(ctx, a.ID))
	require.NoError(t, svc.FacultyService.DeleteFaculty(ctx, a.ID))

	_, err = svc.FacultyService.FindFaculty(ctx, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)

	reloaded, err := svc.StudentService.FindStudent(ctx, member.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Faculty)
}

func TestStudentService_ImportStudents(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	house, err := svc.FacultyService.CreateFaculty(ctx, &models.Faculty{Name: "Ravenclaw", Color: "blue"})
	require.NoError(t, err)

	buf := workbook(t,
		[]interface{}{"Luna Lovegood", 14, house.ID},
		[]interface{}{"Cho Chang", "15"},
		[]interface{}{"", 12},
		[]interface{}{"Padma Patil", "old"},
		[]interface{}{"Terry Boot", 13, 999},
	)

	result, err := svc.StudentService.ImportStudents(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	assert.Len(t, result.Errors, 3)

	members, err := svc.FacultyService.StudentsOfFaculty(ctx, house.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Luna Lovegood", members[0].Name)

	count, err := svc.StudentService.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStudentService_ImportStudentsRejectsGarbage(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.StudentService.ImportStudents(context.Background(), strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidWorkbook)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
