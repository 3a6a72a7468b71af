package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/hogwarts/internal/app/models"
	appRepos "github.com/yigit/hogwarts/internal/app/repositories"
)

// DefaultFaculties are the four houses created on an empty database
var DefaultFaculties = []appModels.Faculty{
	{Name: "Gryffindor", Color: "red"},
	{Name: "Hufflepuff", Color: "yellow"},
	{Name: "Ravenclaw", Color: "blue"},
	{Name: "Slytherin", Color: "green"},
}

// CreateDefaultData creates the default faculties if no faculty exists yet.
// Every house is attempted; failures are joined into the returned error.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Faculties)...")

	existing, err := repos.Faculties.List(ctx, appRepos.FacultyFilter{})
	if err != nil {
		return fmt.Errorf("error listing faculties: %w", err)
	}
	if len(existing) > 0 {
		lgr.Info().Int("faculties", len(existing)).Msg("Faculties already present, skipping seed")
		return nil
	}

	var finalErr error
	for _, house := range DefaultFaculties {
		faculty := house
		id, err := repos.Faculties.Create(ctx, &faculty)
		if err != nil {
			lgr.Error().Err(err).Str("faculty", house.Name).Msg("Error creating default faculty")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Debug().Int64("facultyID", id).Str("faculty", house.Name).Msg("Default faculty created")
	}

	if finalErr == nil {
		lgr.Info().Int("faculties", len(DefaultFaculties)).Msg("Default data created")
	}
	return finalErr
}
