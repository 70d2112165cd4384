package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/hogwarts/internal/app/models"
	appRepos "github.com/yigit/hogwarts/internal/app/repositories"
)

// DefaultFaculties are the houses every fresh school starts with
var DefaultFaculties = []appModels.Faculty{
	{Name: "Gryffindor", Color: "red"},
	{Name: "Slytherin", Color: "green"},
	{Name: "Ravenclaw", Color: "blue"},
	{Name: "Hufflepuff", Color: "yellow"},
}

// CreateDefaultData creates the default faculties that don't exist yet.
// A faculty exists when one with the exact same name is stored.
// Errors are collected so one failing house does not stop the others.
func CreateDefaultData(ctx context.Context, facultyRepo appRepos.FacultyRepository, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Faculties)...")
	var finalErr error

	for _, house := range DefaultFaculties {
		exists, err := facultyExists(ctx, facultyRepo, house.Name)
		if err != nil {
			lgr.Error().Err(err).Str("faculty", house.Name).Msg("Error checking default faculty")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			lgr.Debug().Str("faculty", house.Name).Msg("Default faculty already exists")
			continue
		}

		faculty := house
		created, err := facultyRepo.Save(ctx, &faculty)
		if err != nil {
			lgr.Error().Err(err).Str("faculty", house.Name).Msg("Error creating default faculty")
			finalErr = errors.Join(finalErr, fmt.Errorf("creating %s: %w", house.Name, err))
			continue
		}
		lgr.Info().Int64("facultyID", created.ID).Str("faculty", created.Name).Msg("Default faculty created")
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed.")
	}
	return finalErr
}

func facultyExists(ctx context.Context, facultyRepo appRepos.FacultyRepository, name string) (bool, error) {
	matches, err := facultyRepo.FindByNameOrColor(ctx, name, "")
	if err != nil {
		return false, err
	}
	for _, f := range matches {
		if f.Name == name {
			return true, nil
		}
	}
	return false, nil
}
