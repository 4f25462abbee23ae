package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository(SeedProjects())
	ctx := context.Background()

	t.Run("get all returns a snapshot", func(t *testing.T) {
		projects, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, projects)

		projects[0] = nil

		again, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, again[0])
	})

	t.Run("get by id", func(t *testing.T) {
		project, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), project.ID)

		_, err = repo.GetByID(ctx, 9999)
		require.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("increment views bumps the version", func(t *testing.T) {
		before, err := repo.Version(ctx)
		require.NoError(t, err)

		project, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		views := project.Views

		require.NoError(t, repo.IncrementViews(ctx, 2))

		project, err = repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, views+1, project.Views)

		after, err := repo.Version(ctx)
		require.NoError(t, err)
		assert.Greater(t, after, before)
	})

	t.Run("increment views on a missing project", func(t *testing.T) {
		require.ErrorIs(t, repo.IncrementViews(ctx, 9999), ErrProjectNotFound)
	})
}

func TestSeedProjects(t *testing.T) {
	projects := SeedProjects()
	require.NotEmpty(t, projects)

	seen := make(map[int64]bool)
	departments := make(map[int64]bool)
	for _, department := range SeedDepartments {
		departments[department.ID] = true
	}

	for _, project := range projects {
		assert.False(t, seen[project.ID], "duplicate project id %d", project.ID)
		seen[project.ID] = true

		assert.NotEmpty(t, project.Title)
		assert.NotEmpty(t, project.Category)
		assert.NotEmpty(t, project.Keywords)
		assert.True(t, departments[project.DepartmentID],
			"project %d references unknown department %d", project.ID, project.DepartmentID)
		assert.False(t, project.CreatedAt.IsZero())
	}
}
