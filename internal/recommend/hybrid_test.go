package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuslab/fyphub-backend/internal/catalog"
)

// activeUserLog seeds a requester with six events over four projects plus
// two neighbor users whose history links those projects to project 5.
func activeUserLog() []*Interaction {
	return []*Interaction{
		applied("u1", 1, 5),
		applied("u1", 2, 4),
		applied("u1", 3, 0),
		bookmarked("u1", 4),
		bookmarked("u1", 1),
		viewed("u1", 2),

		rated("u2", 1, 5),
		rated("u2", 2, 4),
		rated("u2", 5, 4),

		rated("u3", 1, 4),
		rated("u3", 2, 3),
		rated("u3", 5, 5),
	}
}

func TestCombinerRecommendActiveUser(t *testing.T) {
	combiner := newTestCombiner()
	projects := testProjects()
	interactions := activeUserLog()

	set := combiner.Recommend(context.Background(), "u1", projects, interactions, 3)
	require.NotNil(t, set)
	require.Len(t, set.Recommendations, 3)
	assert.Equal(t, DegradationNone, set.Degradation)

	interacted := map[int64]bool{1: true, 2: true, 3: true, 4: true}
	hybridOrCollaborative := false

	for index, rec := range set.Recommendations {
		assert.False(t, interacted[rec.Project.ID],
			"interacted project %d must not resurface", rec.Project.ID)
		assert.Contains(t, []string{MethodCollaborative, MethodContentBased, MethodHybrid}, rec.Method)
		assert.Greater(t, rec.Confidence, 0.0)
		require.NotNil(t, rec.Components)

		if rec.Method == MethodHybrid || rec.Method == MethodCollaborative {
			hybridOrCollaborative = true
		}
		if index > 0 {
			// Diversification may reorder within the tail but the head
			// keeps the top raw score.
			assert.LessOrEqual(t, rec.Score, set.Recommendations[0].Score)
		}
	}

	assert.True(t, hybridOrCollaborative,
		"an active user with strong neighbors should see a collaborative signal")
}

func TestCombinerRecommendDeterministic(t *testing.T) {
	combiner := newTestCombiner()
	projects := testProjects()
	interactions := activeUserLog()

	first := combiner.Recommend(context.Background(), "u1", projects, interactions, 5)

	for run := 0; run < 5; run++ {
		next := combiner.Recommend(context.Background(), "u1", projects, interactions, 5)
		require.Len(t, next.Recommendations, len(first.Recommendations))

		for i := range first.Recommendations {
			assert.Equal(t, first.Recommendations[i].Project.ID, next.Recommendations[i].Project.ID)
			assert.Equal(t, first.Recommendations[i].Score, next.Recommendations[i].Score)
			assert.Equal(t, first.Recommendations[i].Method, next.Recommendations[i].Method)
		}
	}
}

func TestCombinerRecommendColdStart(t *testing.T) {
	combiner := newTestCombiner()
	projects := testProjects()

	// The log has activity, just none from the requester.
	interactions := []*Interaction{
		rated("u2", 1, 5),
		rated("u3", 2, 4),
	}

	set := combiner.Recommend(context.Background(), "newcomer", projects, interactions, 5)
	require.NotEmpty(t, set.Recommendations)

	for _, rec := range set.Recommendations {
		assert.Contains(t, []string{MethodContentBased, MethodFallback}, rec.Method)
		assert.LessOrEqual(t, rec.Confidence, 0.5)
	}
}

func TestCombinerCollaborativeGate(t *testing.T) {
	combiner := newTestCombiner()
	projects := testProjects()

	// Four events: one short of the collaborative threshold.
	interactions := []*Interaction{
		applied("u1", 1, 5),
		applied("u1", 2, 4),
		bookmarked("u1", 3),
		viewed("u1", 4),

		rated("u2", 1, 5),
		rated("u2", 5, 4),
		rated("u3", 1, 4),
		rated("u3", 5, 5),
	}

	set := combiner.Recommend(context.Background(), "u1", projects, interactions, 5)
	require.NotEmpty(t, set.Recommendations)

	for _, rec := range set.Recommendations {
		assert.NotEqual(t, MethodCollaborative, rec.Method)
		assert.NotEqual(t, MethodHybrid, rec.Method)
	}
}

func TestCombinerEmptyCatalog(t *testing.T) {
	combiner := newTestCombiner()

	set := combiner.Recommend(context.Background(), "u1", nil, nil, 5)
	require.NotNil(t, set)
	assert.Empty(t, set.Recommendations)
}

type errorTableSource struct{}

func (errorTableSource) Table(context.Context, []*catalog.Project, UserItemMatrix) (SimilarityTable, error) {
	return nil, errors.New("similarity backend down")
}

func TestCombinerTableFailureDegradesToPartial(t *testing.T) {
	combiner := NewCombiner(
		NewCollaborativeFilter(),
		NewContentFilter(),
		newTestScorer(),
		errorTableSource{},
		zap.NewNop(),
		CombinerConfig{MinInteractionsForCF: 5, DiversityFactor: 0.2},
	)

	set := combiner.Recommend(context.Background(), "u1", testProjects(), activeUserLog(), 3)
	require.NotEmpty(t, set.Recommendations)
	assert.Equal(t, DegradationPartial, set.Degradation)

	for _, rec := range set.Recommendations {
		assert.NotEqual(t, MethodCollaborative, rec.Method)
		assert.NotEqual(t, MethodHybrid, rec.Method)
	}
}

type panicTableSource struct{}

func (panicTableSource) Table(context.Context, []*catalog.Project, UserItemMatrix) (SimilarityTable, error) {
	panic("corrupt similarity table")
}

func TestCombinerRecoversFromPanic(t *testing.T) {
	combiner := NewCombiner(
		NewCollaborativeFilter(),
		NewContentFilter(),
		newTestScorer(),
		panicTableSource{},
		zap.NewNop(),
		CombinerConfig{MinInteractionsForCF: 5, DiversityFactor: 0.2},
	)

	set := combiner.Recommend(context.Background(), "u1", testProjects(), activeUserLog(), 3)
	require.NotNil(t, set)
	require.Len(t, set.Recommendations, 3)
	assert.Equal(t, DegradationFallback, set.Degradation)

	for _, rec := range set.Recommendations {
		assert.Equal(t, MethodFallback, rec.Method)
		assert.Equal(t, 0.2, rec.Confidence)
	}
}

func TestCombinerRecoversFromScoringPanic(t *testing.T) {
	combiner := newTestCombiner()

	// A nil catalog entry blows up the very first scoring pass; the
	// safety net must already be armed.
	projects := append(testProjects(), nil)

	set := combiner.Recommend(context.Background(), "u1", projects, activeUserLog(), 3)
	require.NotNil(t, set)
	require.Len(t, set.Recommendations, 3)
	assert.Equal(t, DegradationFallback, set.Degradation)

	for _, rec := range set.Recommendations {
		require.NotNil(t, rec.Project)
		assert.Equal(t, MethodFallback, rec.Method)
		assert.Equal(t, 0.2, rec.Confidence)
	}
}

func TestDiversifyPromotesVariety(t *testing.T) {
	combiner := newTestCombiner()

	mk := func(id int64, category, department string, score float64) *Recommendation {
		return &Recommendation{
			Project: &catalog.Project{ID: id, Category: category, Department: department},
			Score:   score,
		}
	}

	candidates := []*Recommendation{
		mk(1, "Machine Learning", "Computer Science", 0.9),
		mk(2, "Machine Learning", "Computer Science", 0.8),
		mk(3, "Machine Learning", "Computer Science", 0.7),
		mk(4, "IoT", "Engineering", 0.6),
		mk(5, "Blockchain", "Software Engineering", 0.5),
	}

	diversified := combiner.diversify(candidates)
	require.Len(t, diversified, 5)

	// The top raw score keeps its slot.
	assert.Equal(t, int64(1), diversified[0].Project.ID)

	varietyInTop4 := false
	for _, rec := range diversified[:4] {
		if rec.Project.ID == 4 || rec.Project.ID == 5 {
			varietyInTop4 = true
		}
	}
	assert.True(t, varietyInTop4, "a differing category should displace a same-category candidate")
}

func TestDiversifySkipsShortLists(t *testing.T) {
	combiner := newTestCombiner()

	candidates := []*Recommendation{
		{Project: &catalog.Project{ID: 1, Category: "A"}, Score: 0.9},
		{Project: &catalog.Project{ID: 2, Category: "A"}, Score: 0.8},
		{Project: &catalog.Project{ID: 3, Category: "A"}, Score: 0.7},
	}

	diversified := combiner.diversify(candidates)
	assert.Equal(t, candidates, diversified)
}
