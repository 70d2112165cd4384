package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/hogwarts/internal/app/models"
	appRepos "github.com/yigit/hogwarts/internal/app/repositories"
	"github.com/yigit/hogwarts/internal/db"
)

func TestCreateDefaultData(t *testing.T) {
	sqliteDB, err := db.NewSQLiteDB(db.MemoryPath)
	require.NoError(t, err)
	defer sqliteDB.Close()

	ctx := context.Background()
	require.NoError(t, sqliteDB.EnsureSchema(ctx))
	repos := appRepos.NewSQLiteRepositories(sqliteDB.DB)

	// A house created by hand before the first start is kept as is
	existing, err := repos.FacultyRepository.Save(ctx, &appModels.Faculty{Name: "Ravenclaw", Color: "bronze"})
	require.NoError(t, err)

	require.NoError(t, CreateDefaultData(ctx, repos.FacultyRepository, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, repos.FacultyRepository, zerolog.Nop()), "seeding twice is a no-op")

	for _, house := range DefaultFaculties {
		found, err := repos.FacultyRepository.FindByNameOrColor(ctx, house.Name, "")
		require.NoError(t, err)
		assert.Len(t, found, 1, house.Name)
	}

	ravenclaw, err := repos.FacultyRepository.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "bronze", ravenclaw.Color)

	red, err := repos.FacultyRepository.FindByNameOrColor(ctx, "", "red")
	require.NoError(t, err)
	require.Len(t, red, 1)
	assert.Equal(t, "Gryffindor", red[0].Name)
}
