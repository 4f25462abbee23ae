package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslab/fyphub-backend/internal/catalog"
)

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		name        string
		interaction Interaction
		want        float64
	}{
		{"view only", Interaction{Viewed: true}, 0.1},
		{"bookmark only", Interaction{Bookmarked: true}, 0.4},
		{"application only", Interaction{Applied: true}, 0.9},
		{"rating only", Interaction{Rating: 5}, 2.0},
		{"everything", Interaction{Viewed: true, Bookmarked: true, Applied: true, Rating: 4}, 3.0},
		{"empty", Interaction{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.interaction.WeightedScore(), 1e-9)
		})
	}
}

func TestBuildMatrixOverwritesRepeatEvents(t *testing.T) {
	filter := NewCollaborativeFilter()

	matrix := filter.BuildMatrix([]*Interaction{
		viewed("u1", 1),
		bookmarked("u1", 1),
		rated("u1", 1, 5),
		applied("u2", 1, 0),
	})

	// The last event for (u1, 1) wins outright, it does not accumulate.
	assert.InDelta(t, 5*0.4+0.1, matrix["u1"][1], 1e-9)
	assert.InDelta(t, 0.9+0.1, matrix["u2"][1], 1e-9)
}

func TestItemSimilarityProperties(t *testing.T) {
	filter := NewCollaborativeFilter()
	projects := testProjects()[:3]

	matrix := UserItemMatrix{
		"u1": {1: 2.0, 2: 2.0, 3: 1.5},
		"u2": {1: 3.0, 2: 3.0},
		"u3": {2: 1.0},
	}

	table, err := filter.ItemSimilarity(context.Background(), projects, matrix)
	require.NoError(t, err)

	t.Run("self similarity is one", func(t *testing.T) {
		for _, project := range projects {
			assert.Equal(t, 1.0, table[project.ID][project.ID])
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, table[1][2], table[2][1], 1e-9)
		assert.InDelta(t, table[1][3], table[3][1], 1e-9)
	})

	t.Run("fewer than two common raters scores zero", func(t *testing.T) {
		// Only u1 touched both 1 and 3.
		assert.Equal(t, 0.0, table[1][3])
	})

	t.Run("proportional vectors score one", func(t *testing.T) {
		assert.InDelta(t, 1.0, table[1][2], 1e-9)
	})
}

func TestItemSimilarityHonorsCancellation(t *testing.T) {
	filter := NewCollaborativeFilter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := filter.ItemSimilarity(ctx, testProjects(), UserItemMatrix{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollaborativeRecommend(t *testing.T) {
	filter := NewCollaborativeFilter()
	projects := []*catalog.Project{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
		{ID: 3, Title: "c"},
	}

	matrix := UserItemMatrix{"u1": {1: 2.0}}
	table := SimilarityTable{
		1: {1: 1, 2: 0.9, 3: 0.05},
		2: {1: 0.9, 2: 1, 3: 0},
		3: {1: 0.05, 2: 0, 3: 1},
	}

	recs := filter.Recommend("u1", projects, matrix, table, 5)
	require.Len(t, recs, 1)

	// Project 1 is excluded as interacted; project 3 sits below the
	// similarity gate and has no prediction at all.
	assert.Equal(t, int64(2), recs[0].Project.ID)
	assert.InDelta(t, 2.0, recs[0].Score, 1e-9)
	assert.InDelta(t, 0.9/5, recs[0].Confidence, 1e-9)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2}, []float64{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
}
