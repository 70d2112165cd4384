package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/db"
)

func newSQLiteRepos(t *testing.T) *Repositories {
	t.Helper()
	sqliteDB, err := db.NewSQLiteDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteDB.Close() })
	require.NoError(t, sqliteDB.EnsureSchema(context.Background()))
	return NewSQLiteRepositories(sqliteDB.DB)
}

func mustSaveStudent(t *testing.T, repo StudentRepository, name string, age int, faculty *models.Faculty) *models.Student {
	t.Helper()
	saved, err := repo.Save(context.Background(), &models.Student{Name: name, Age: age, Faculty: faculty})
	require.NoError(t, err)
	return saved
}

func studentIDs(students []*models.Student) []int64 {
	ids := make([]int64, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSQLiteStudentRepository_SaveAndGet(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()

	gryffindor, err := repos.FacultyRepository.Save(ctx, &models.Faculty{Name: "Gryffindor", Color: "red"})
	require.NoError(t, err)

	saved := mustSaveStudent(t, repos.StudentRepository, "Harry", 15, &models.Faculty{ID: gryffindor.ID})
	assert.NotZero(t, saved.ID)
	require.NotNil(t, saved.Faculty)
	assert.Equal(t, "Gryffindor", saved.Faculty.Name, "faculty is loaded on the stored record")

	found, err := repos.StudentRepository.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, found)

	t.Run("replace overwrites every column", func(t *testing.T) {
		updated, err := repos.StudentRepository.Save(ctx, &models.Student{ID: saved.ID, Name: "Harry Potter", Age: 16})
		require.NoError(t, err)
		assert.Equal(t, "Harry Potter", updated.Name)
		assert.Equal(t, 16, updated.Age)
		assert.Nil(t, updated.Faculty)
	})

	t.Run("replace of a missing id", func(t *testing.T) {
		_, err := repos.StudentRepository.Save(ctx, &models.Student{ID: 999, Name: "Ghost", Age: 300})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSQLiteStudentRepository_Delete(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()

	saved := mustSaveStudent(t, repos.StudentRepository, "Neville", 15, nil)

	require.NoError(t, repos.StudentRepository.Delete(ctx, saved.ID))
	_, err := repos.StudentRepository.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again, or deleting something that never existed, is fine
	assert.NoError(t, repos.StudentRepository.Delete(ctx, saved.ID))
	assert.NoError(t, repos.StudentRepository.Delete(ctx, 12345))
}

func TestSQLiteStudentRepository_AgeQueries(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()
	repo := repos.StudentRepository

	s11 := mustSaveStudent(t, repo, "Ginny", 11, nil)
	s13 := mustSaveStudent(t, repo, "Ron", 13, nil)
	s15a := mustSaveStudent(t, repo, "Harry", 15, nil)
	s15b := mustSaveStudent(t, repo, "Hermione", 15, nil)
	s17 := mustSaveStudent(t, repo, "Fred", 17, nil)

	byAge, err := repo.FindByAge(ctx, 15)
	require.NoError(t, err)
	assert.Equal(t, []int64{s15a.ID, s15b.ID}, studentIDs(byAge))

	none, err := repo.FindByAge(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	tests := []struct {
		name     string
		min, max int
		want     []int64
	}{
		{name: "inclusive bounds", min: 13, max: 15, want: []int64{s13.ID, s15a.ID, s15b.ID}},
		{name: "single point", min: 17, max: 17, want: []int64{s17.ID}},
		{name: "everything", min: 0, max: 100, want: []int64{s11.ID, s13.ID, s15a.ID, s15b.ID, s17.ID}},
		{name: "min greater than max", min: 15, max: 13, want: []int64{}},
		{name: "no match", min: 18, max: 30, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindByAgeBetween(ctx, tt.min, tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.want, studentIDs(got))
		})
	}
}

func TestSQLiteStudentRepository_Aggregates(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()
	repo := repos.StudentRepository

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	avg, err := repo.AverageAge(ctx)
	require.NoError(t, err, "average of an empty table is defined")
	assert.Equal(t, 0, avg)

	last, err := repo.LastFive(ctx)
	require.NoError(t, err)
	assert.Empty(t, last)

	var ids []int64
	for _, age := range []int{11, 12, 12, 13, 14, 15, 16} {
		s := mustSaveStudent(t, repo, "student", age, nil)
		ids = append(ids, s.ID)
	}

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	// 93 / 7 = 13.28..., truncated
	avg, err = repo.AverageAge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, avg)

	last, err = repo.LastFive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{ids[6], ids[5], ids[4], ids[3], ids[2]}, studentIDs(last))
}

func TestSQLiteFacultyRepository_FindByNameOrColor(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()
	repo := repos.FacultyRepository

	a, err := repo.Save(ctx, &models.Faculty{Name: "x", Color: "y"})
	require.NoError(t, err)
	b, err := repo.Save(ctx, &models.Faculty{Name: "z", Color: "y"})
	require.NoError(t, err)
	c, err := repo.Save(ctx, &models.Faculty{Name: "w", Color: "blue"})
	require.NoError(t, err)

	facultyIDs := func(faculties []*models.Faculty) []int64 {
		ids := []int64{}
		for _, f := range faculties {
			ids = append(ids, f.ID)
		}
		return ids
	}

	tests := []struct {
		name, facultyName, color string
		want                     []int64
	}{
		{name: "name or color", facultyName: "x", color: "y", want: []int64{a.ID, b.ID}},
		{name: "name or other color", facultyName: "w", color: "y", want: []int64{a.ID, b.ID, c.ID}},
		{name: "name only", facultyName: "z", want: []int64{b.ID}},
		{name: "color only", color: "blue", want: []int64{c.ID}},
		{name: "blank name is ignored", facultyName: "   ", color: "blue", want: []int64{c.ID}},
		{name: "both blank", want: []int64{}},
		{name: "no match", facultyName: "nope", color: "none", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindByNameOrColor(ctx, tt.facultyName, tt.color)
			require.NoError(t, err)
			assert.Equal(t, tt.want, facultyIDs(got))
		})
	}
}

func TestSQLiteFacultyRepository_SaveGetDelete(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()

	created, err := repos.FacultyRepository.Save(ctx, &models.Faculty{Name: "Slytherin", Color: "green"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repos.FacultyRepository.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	updated, err := repos.FacultyRepository.Save(ctx, &models.Faculty{ID: created.ID, Name: "Slytherin", Color: "silver"})
	require.NoError(t, err)
	assert.Equal(t, "silver", updated.Color)

	_, err = repos.FacultyRepository.Save(ctx, &models.Faculty{ID: 404, Name: "Nowhere"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repos.FacultyRepository.Delete(ctx, created.ID))
	_, err = repos.FacultyRepository.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, repos.FacultyRepository.Delete(ctx, created.ID))
}

func TestSQLiteFacultyRepository_DeleteClearsStudentReferences(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()

	house, err := repos.FacultyRepository.Save(ctx, &models.Faculty{Name: "Hufflepuff", Color: "yellow"})
	require.NoError(t, err)
	other, err := repos.FacultyRepository.Save(ctx, &models.Faculty{Name: "Ravenclaw", Color: "blue"})
	require.NoError(t, err)

	cedric := mustSaveStudent(t, repos.StudentRepository, "Cedric", 17, &models.Faculty{ID: house.ID})
	luna := mustSaveStudent(t, repos.StudentRepository, "Luna", 14, &models.Faculty{ID: other.ID})

	members, err := repos.StudentRepository.FindByFacultyID(ctx, house.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{cedric.ID}, studentIDs(members))

	require.NoError(t, repos.FacultyRepository.Delete(ctx, house.ID))

	reloaded, err := repos.StudentRepository.GetByID(ctx, cedric.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Faculty)

	untouched, err := repos.StudentRepository.GetByID(ctx, luna.ID)
	require.NoError(t, err)
	require.NotNil(t, untouched.Faculty)
	assert.Equal(t, other.ID, untouched.Faculty.ID)

	members, err = repos.StudentRepository.FindByFacultyID(ctx, house.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}
