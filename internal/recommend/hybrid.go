package recommend

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/campuslab/fyphub-backend/internal/catalog"
)

// Top-level blend weights. Collaborative and content components only
// contribute when their filter produced the candidate, so a single entry's
// weights do not necessarily sum to 1.
const (
	weightCollaborative = 0.40
	weightContentBased  = 0.35
	weightPopularity    = 0.15
	weightRecency       = 0.10
)

// CombinerConfig tunes the hybrid pipeline.
type CombinerConfig struct {
	// MinInteractionsForCF gates the collaborative path: users with fewer
	// total events never reach it.
	MinInteractionsForCF int
	// DiversityFactor is the weight of category/department variety in the
	// re-ranking pass.
	DiversityFactor float64
}

// Combiner blends collaborative, content, popularity and recency signals
// into one ranked list, then re-ranks for diversity.
type Combiner struct {
	collaborative *CollaborativeFilter
	content       *ContentFilter
	scorer        *PopularityScorer
	tables        TableSource
	logger        *zap.Logger
	config        CombinerConfig
}

func NewCombiner(collaborative *CollaborativeFilter, content *ContentFilter, scorer *PopularityScorer, tables TableSource, logger *zap.Logger, config CombinerConfig) *Combiner {
	if config.MinInteractionsForCF <= 0 {
		config.MinInteractionsForCF = 5
	}
	if config.DiversityFactor == 0 {
		config.DiversityFactor = 0.2
	}

	return &Combiner{
		collaborative: collaborative,
		content:       content,
		scorer:        scorer,
		tables:        tables,
		logger:        logger,
		config:        config,
	}
}

// Recommend runs the full hybrid pipeline for one user. It always returns a
// ranked set: missing data degrades to fallback scoring, and an unexpected
// panic mid-pipeline recovers into a plain popularity ranking.
func (c *Combiner) Recommend(ctx context.Context, userID string, projects []*catalog.Project, interactions []*Interaction, n int) (result *RecommendationSet) {
	// Installed before any scoring so no stage can escape the safety net.
	// popularityFallback tolerates a nil map if the panic hit that early.
	var popularity map[int64]*ProjectStats
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("recommendation pipeline panicked, serving popularity fallback",
				zap.String("user_id", userID), zap.Any("panic", r))
			result = c.popularityFallback(projects, popularity, n)
		}
	}()

	popularity = c.scorer.PopularityScores(projects, interactions)

	var userInteractions []*Interaction
	for _, interaction := range interactions {
		if interaction.UserID == userID {
			userInteractions = append(userInteractions, interaction)
		}
	}

	degradation := DegradationNone

	// Collaborative path, gated on interaction volume
	var collaborativeRecs []*Recommendation
	if len(userInteractions) >= c.config.MinInteractionsForCF {
		matrix := c.collaborative.BuildMatrix(interactions)
		table, err := c.tables.Table(ctx, projects, matrix)
		if err != nil {
			c.logger.Warn("item similarity unavailable, skipping collaborative pass",
				zap.String("user_id", userID), zap.Error(err))
			degradation = DegradationPartial
		} else {
			collaborativeRecs = c.collaborative.Recommend(userID, projects, matrix, table, n*2)
		}
	}

	// Content path is always run; it is cold-start safe
	profile := c.content.BuildProfile(userInteractions, projects)
	interacted := make(map[int64]bool, len(userInteractions))
	for _, interaction := range userInteractions {
		interacted[interaction.ProjectID] = true
	}
	contentRecs := c.content.Recommend(profile, projects, interacted, n*2)

	recency := c.scorer.RecencyScores(projects)

	// Merge, preserving candidate order for stable tie-breaking
	merged := make(map[int64]*Recommendation)
	var order []int64

	for _, rec := range collaborativeRecs {
		id := rec.Project.ID
		pop := popularity[id].Score
		rce := recency[id]

		merged[id] = &Recommendation{
			Project:    rec.Project,
			Score:      rec.Score*weightCollaborative + pop*weightPopularity + rce*weightRecency,
			Confidence: rec.Confidence,
			Method:     MethodCollaborative,
			Components: &ScoreComponents{
				Collaborative: rec.Score,
				Popularity:    pop,
				Recency:       rce,
			},
		}
		order = append(order, id)
	}

	for _, rec := range contentRecs {
		id := rec.Project.ID
		pop := popularity[id].Score
		rce := recency[id]

		if existing, ok := merged[id]; ok {
			// Present in both paths: recombine from both partial sums
			existing.Score = existing.Components.Collaborative*weightCollaborative +
				rec.Score*weightContentBased +
				pop*weightPopularity +
				rce*weightRecency
			existing.Method = MethodHybrid
			existing.Components.ContentBased = rec.Score
			continue
		}

		merged[id] = &Recommendation{
			Project:    rec.Project,
			Score:      rec.Score*weightContentBased + pop*weightPopularity + rce*weightRecency,
			Confidence: rec.Confidence,
			Method:     MethodContentBased,
			Components: &ScoreComponents{
				ContentBased: rec.Score,
				Popularity:   pop,
				Recency:      rce,
			},
		}
		order = append(order, id)
	}

	// Nothing from either path: score everything untouched by the user
	if len(order) == 0 {
		degradation = DegradationFallback
		for _, project := range projects {
			if interacted[project.ID] {
				continue
			}

			pop := popularity[project.ID].Score
			rce := recency[project.ID]

			merged[project.ID] = &Recommendation{
				Project:    project,
				Score:      pop*0.7 + rce*0.3,
				Confidence: 0.3,
				Method:     MethodFallback,
				Components: &ScoreComponents{Popularity: pop, Recency: rce},
			}
			order = append(order, project.ID)
		}
	}

	ranked := make([]*Recommendation, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, merged[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	// Keep extra candidates so diversification has room to work
	limit := int(math.Ceil(float64(n) * 1.5))
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ranked = c.diversify(ranked)

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return &RecommendationSet{Recommendations: ranked, Degradation: degradation}
}

// diversify greedily re-ranks candidates, trading raw score for category
// and department variety. The top candidate always keeps its position.
func (c *Combiner) diversify(recommendations []*Recommendation) []*Recommendation {
	if len(recommendations) <= 3 {
		return recommendations
	}

	factor := c.config.DiversityFactor
	diversified := []*Recommendation{recommendations[0]}
	remaining := make([]*Recommendation, len(recommendations)-1)
	copy(remaining, recommendations[1:])

	for len(diversified) < len(recommendations) && len(remaining) > 0 {
		bestIndex := -1
		bestScore := -1.0

		for index, candidate := range remaining {
			var diversity float64
			for _, selected := range diversified {
				var categoryDiff, departmentDiff float64
				if candidate.Project.Category != selected.Project.Category {
					categoryDiff = 1
				}
				if candidate.Project.Department != selected.Project.Department {
					departmentDiff = 1
				}
				diversity += (categoryDiff + departmentDiff) / 2
			}
			diversity /= float64(len(diversified))

			finalScore := candidate.Score*(1-factor) + diversity*factor
			if finalScore > bestScore {
				bestScore = finalScore
				bestIndex = index
			}
		}

		if bestIndex < 0 {
			break
		}

		diversified = append(diversified, remaining[bestIndex])
		remaining = append(remaining[:bestIndex], remaining[bestIndex+1:]...)
	}

	return diversified
}

// popularityFallback is the last-resort ranking when the pipeline fails.
func (c *Combiner) popularityFallback(projects []*catalog.Project, popularity map[int64]*ProjectStats, n int) *RecommendationSet {
	recommendations := make([]*Recommendation, 0, len(projects))
	for _, project := range projects {
		if project == nil {
			continue
		}

		var score float64
		if stats, ok := popularity[project.ID]; ok {
			score = stats.Score
		}

		recommendations = append(recommendations, &Recommendation{
			Project:    project,
			Score:      score,
			Confidence: 0.2,
			Method:     MethodFallback,
			Components: &ScoreComponents{Popularity: score},
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > n {
		recommendations = recommendations[:n]
	}

	return &RecommendationSet{Recommendations: recommendations, Degradation: DegradationFallback}
}
