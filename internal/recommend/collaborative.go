package recommend

import (
	"context"
	"math"
	"sort"

	"github.com/campuslab/fyphub-backend/internal/catalog"
)

// minItemSimilarity gates which neighbor items contribute to a prediction.
const minItemSimilarity = 0.1

// minCommonRaters is the minimum overlap needed before two items are
// considered comparable at all.
const minCommonRaters = 2

// CollaborativeFilter predicts unseen-item affinity from the behaviour of
// users who rated the same items. It holds no state; every structure is
// request-scoped and rebuilt from the interaction log.
type CollaborativeFilter struct{}

func NewCollaborativeFilter() *CollaborativeFilter {
	return &CollaborativeFilter{}
}

// BuildMatrix groups interactions into a user x project weighted-score matrix.
// A later event for the same (user, project) pair overwrites the earlier
// score rather than accumulating.
func (f *CollaborativeFilter) BuildMatrix(interactions []*Interaction) UserItemMatrix {
	matrix := make(UserItemMatrix)

	for _, interaction := range interactions {
		row, ok := matrix[interaction.UserID]
		if !ok {
			row = make(map[int64]float64)
			matrix[interaction.UserID] = row
		}
		row[interaction.ProjectID] = interaction.WeightedScore()
	}

	return matrix
}

// ItemSimilarity computes the item-item cosine similarity table over users
// who interacted with both items. Pairs with fewer than two common raters
// score 0; self-pairs score 1.
//
// Cost is O(projects^2 * users), so the pass honors ctx cancellation
// between rows.
func (f *CollaborativeFilter) ItemSimilarity(ctx context.Context, projects []*catalog.Project, matrix UserItemMatrix) (SimilarityTable, error) {
	// Fixed user order keeps vector construction deterministic.
	userIDs := make([]string, 0, len(matrix))
	for userID := range matrix {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	table := make(SimilarityTable, len(projects))

	for _, projectA := range projects {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row := make(map[int64]float64, len(projects))
		table[projectA.ID] = row

		for _, projectB := range projects {
			if projectA.ID == projectB.ID {
				row[projectB.ID] = 1
				continue
			}

			var scoresA, scoresB []float64
			for _, userID := range userIDs {
				a := matrix[userID][projectA.ID]
				b := matrix[userID][projectB.ID]
				if a > 0 && b > 0 {
					scoresA = append(scoresA, a)
					scoresB = append(scoresB, b)
				}
			}

			if len(scoresA) < minCommonRaters {
				row[projectB.ID] = 0
				continue
			}

			row[projectB.ID] = cosineSimilarity(scoresA, scoresB)
		}
	}

	return table, nil
}

// Recommend predicts scores for projects the user has not interacted with,
// from the similarity-weighted scores of the items they have.
func (f *CollaborativeFilter) Recommend(userID string, projects []*catalog.Project, matrix UserItemMatrix, table SimilarityTable, n int) []*Recommendation {
	userScores := matrix[userID]

	// Fixed iteration order over the user's rated items
	ratedIDs := make([]int64, 0, len(userScores))
	for projectID := range userScores {
		ratedIDs = append(ratedIDs, projectID)
	}
	sort.Slice(ratedIDs, func(i, j int) bool { return ratedIDs[i] < ratedIDs[j] })

	var recommendations []*Recommendation

	for _, project := range projects {
		if userScores[project.ID] > 0 {
			continue
		}

		var weightedSum, similaritySum float64
		for _, ratedID := range ratedIDs {
			similarity := table[project.ID][ratedID]
			if similarity > minItemSimilarity {
				weightedSum += similarity * userScores[ratedID]
				similaritySum += math.Abs(similarity)
			}
		}

		if similaritySum <= 0 {
			continue
		}

		recommendations = append(recommendations, &Recommendation{
			Project:    project,
			Score:      weightedSum / similaritySum,
			Confidence: math.Min(similaritySum/5, 1),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > n {
		recommendations = recommendations[:n]
	}

	return recommendations
}

// cosineSimilarity returns the cosine of the angle between two equal-length
// vectors, or 0 when either magnitude is zero.
func cosineSimilarity(a, b []float64) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
