// internal/recommend/service.go

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campuslab/fyphub-backend/internal/catalog"
)

var (
	ErrUnknownKind = errors.New("unknown interaction kind")
)

// Engagement tier thresholds (event counts)
const (
	moderateEngagementAt = 3
	highEngagementAt     = 10
)

// Service is the only entry point external collaborators call. It owns
// interaction tracking, triggers the hybrid pipeline and exposes the
// similarity, insight and analytics queries.
type Service interface {
	TrackInteraction(ctx context.Context, userID string, dto *TrackInteractionDTO) error
	GetPersonalizedRecommendations(ctx context.Context, userID string, n int) (*RecommendationSet, error)
	GetSimilarProjects(ctx context.Context, projectID int64, n int) ([]*SimilarProject, error)
	GetUserInsights(ctx context.Context, userID string) (*UserInsights, error)
	GetAnalytics(ctx context.Context) (*Analytics, error)
	WarmSimilarityCache(ctx context.Context) error
}

type service struct {
	repo          Repository
	catalogRepo   catalog.Repository
	combiner      *Combiner
	collaborative *CollaborativeFilter
	content       *ContentFilter
	scorer        *PopularityScorer
	tables        TableSource
	logger        *zap.Logger
}

func NewService(repo Repository, catalogRepo catalog.Repository, combiner *Combiner, collaborative *CollaborativeFilter, content *ContentFilter, scorer *PopularityScorer, tables TableSource, logger *zap.Logger) Service {
	return &service{
		repo:          repo,
		catalogRepo:   catalogRepo,
		combiner:      combiner,
		collaborative: collaborative,
		content:       content,
		scorer:        scorer,
		tables:        tables,
		logger:        logger,
	}
}

// TrackInteraction appends one event to the log. Repeats append new events;
// the matrix builder decides how duplicates collapse.
func (s *service) TrackInteraction(ctx context.Context, userID string, dto *TrackInteractionDTO) error {
	interaction := &Interaction{
		ID:              uuid.New().String(),
		UserID:          userID,
		ProjectID:       dto.ProjectID,
		SessionDuration: dto.SessionDuration,
	}

	switch dto.Kind {
	case KindViewed:
		interaction.Viewed = true
	case KindBookmarked:
		interaction.Bookmarked = true
	case KindApplied:
		interaction.Applied = true
	case KindRated:
		interaction.Rating = dto.Rating
	default:
		return ErrUnknownKind
	}

	if err := s.repo.Append(ctx, interaction); err != nil {
		return fmt.Errorf("append interaction: %w", err)
	}

	if interaction.Viewed {
		if err := s.catalogRepo.IncrementViews(ctx, dto.ProjectID); err != nil {
			s.logger.Warn("failed to bump project view count",
				zap.Int64("project_id", dto.ProjectID), zap.Error(err))
		}
	}

	RecordInteraction(dto.Kind)
	s.logger.Debug("tracked interaction",
		zap.String("user_id", userID),
		zap.Int64("project_id", dto.ProjectID),
		zap.String("kind", dto.Kind))

	return nil
}

// GetPersonalizedRecommendations runs the hybrid pipeline and enriches the
// result with display metadata and human-readable explanations.
func (s *service) GetPersonalizedRecommendations(ctx context.Context, userID string, n int) (*RecommendationSet, error) {
	if n <= 0 {
		n = 5
	}

	projects, err := s.catalogRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	interactions, err := s.repo.GetAll(ctx)
	if err != nil {
		// The interaction log is unavailable but the catalog is not:
		// serve the popularity-by-views ranking instead of an error.
		s.logger.Warn("interaction log unavailable, serving popular fallback",
			zap.String("user_id", userID), zap.Error(err))
		return s.popularByViews(projects, n), nil
	}

	set := s.combiner.Recommend(ctx, userID, projects, interactions, n)

	var userInteractions []*Interaction
	for _, interaction := range interactions {
		if interaction.UserID == userID {
			userInteractions = append(userInteractions, interaction)
		}
	}
	profile := s.content.BuildProfile(userInteractions, projects)

	for _, rec := range set.Recommendations {
		rec.Department = rec.Project.Department
		rec.EstimatedMatch = int(math.Round(rec.Score * 100))
		if rec.Components != nil && rec.Components.Popularity > 0.6 {
			rec.Trending = true
		}
		rec.Explanation = explain(rec, profile)

		RecordRecommendation(rec.Method, rec.Score)
	}

	if set.Degradation != DegradationNone {
		RecordDegradedResponse(set.Degradation)
	}

	s.logger.Debug("generated recommendations",
		zap.String("user_id", userID),
		zap.Int("count", len(set.Recommendations)),
		zap.String("degradation", set.Degradation))

	return set, nil
}

// popularByViews ranks the catalog by aggregate view count. It is the
// service-boundary safety net when the pipeline cannot run at all.
func (s *service) popularByViews(projects []*catalog.Project, n int) *RecommendationSet {
	ranked := make([]*catalog.Project, len(projects))
	copy(ranked, projects)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	var maxViews float64 = 1
	for _, project := range projects {
		if v := float64(project.Views); v > maxViews {
			maxViews = v
		}
	}

	recommendations := make([]*Recommendation, 0, len(ranked))
	for _, project := range ranked {
		score := float64(project.Views) / maxViews
		recommendations = append(recommendations, &Recommendation{
			Project:        project,
			Score:          score,
			Confidence:     0.3,
			Method:         MethodPopular,
			Department:     project.Department,
			EstimatedMatch: int(math.Round(score * 100)),
			Trending:       true,
			Explanation:    []string{"Popular among students"},
		})
	}

	return &RecommendationSet{Recommendations: recommendations, Degradation: DegradationFallback}
}

// explain builds the ordered reason list for one recommendation.
func explain(rec *Recommendation, profile *UserProfile) []string {
	var reasons []string

	if rec.Method == MethodCollaborative || rec.Method == MethodHybrid {
		reasons = append(reasons, "Users with similar interests also liked this project")
	}

	if rec.Method == MethodContentBased || rec.Method == MethodHybrid {
		if profile != nil {
			if profile.PreferredCategories[rec.Project.Category] > 0 {
				reasons = append(reasons, fmt.Sprintf("Matches your interest in %s projects", rec.Project.Category))
			}
			if profile.PreferredDepartments[rec.Project.Department] > 0 {
				reasons = append(reasons, fmt.Sprintf("From your preferred %s department", rec.Project.Department))
			}
		}
	}

	if rec.Components != nil {
		if rec.Components.Popularity > 0.7 {
			reasons = append(reasons, "Highly popular among students")
		}
		if rec.Components.Recency > 0.8 {
			reasons = append(reasons, "Recently added project with modern technologies")
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Recommended based on overall preferences")
	}

	return reasons
}

// GetSimilarProjects is a pure content-similarity neighbor query,
// independent of any user.
func (s *service) GetSimilarProjects(ctx context.Context, projectID int64, n int) ([]*SimilarProject, error) {
	if n <= 0 {
		n = 3
	}

	target, err := s.catalogRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	projects, err := s.catalogRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	vocabulary := s.content.BuildVocabulary(projects)

	type scored struct {
		project    *catalog.Project
		similarity float64
	}

	var neighbors []scored
	for _, project := range projects {
		if project.ID == projectID {
			continue
		}
		neighbors = append(neighbors, scored{
			project:    project,
			similarity: s.content.Similarity(target, project, vocabulary),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].similarity > neighbors[j].similarity
	})

	if len(neighbors) > n {
		neighbors = neighbors[:n]
	}

	result := make([]*SimilarProject, 0, len(neighbors))
	for _, neighbor := range neighbors {
		result = append(result, &SimilarProject{
			Project:           neighbor.project,
			SimilarityPercent: int(math.Round(neighbor.similarity * 100)),
			Department:        neighbor.project.Department,
		})
	}

	return result, nil
}

// GetUserInsights aggregates a user's raw history into top categories,
// departments, mean rating and an engagement tier.
func (s *service) GetUserInsights(ctx context.Context, userID string) (*UserInsights, error) {
	interactions, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}

	insights := &UserInsights{
		TotalInteractions:    len(interactions),
		PreferredCategories:  []NameCount{},
		PreferredDepartments: []NameCount{},
		EngagementLevel:      engagementLevel(len(interactions)),
	}

	if len(interactions) == 0 {
		return insights, nil
	}

	projects, err := s.catalogRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	byID := make(map[int64]*catalog.Project, len(projects))
	for _, project := range projects {
		byID[project.ID] = project
	}

	categoryCount := make(map[string]int)
	departmentCount := make(map[string]int)
	var ratingSum float64
	var ratingCount int

	for _, interaction := range interactions {
		if interaction.Rating > 0 {
			ratingSum += interaction.Rating
			ratingCount++
		}

		project, ok := byID[interaction.ProjectID]
		if !ok {
			continue
		}

		if project.Category != "" {
			categoryCount[project.Category]++
		}
		if project.Department != "" {
			departmentCount[project.Department]++
		}
	}

	insights.PreferredCategories = topCounts(categoryCount, 3)
	insights.PreferredDepartments = topCounts(departmentCount, 3)
	if ratingCount > 0 {
		insights.AverageRating = ratingSum / float64(ratingCount)
	}

	return insights, nil
}

func engagementLevel(interactions int) string {
	switch {
	case interactions < moderateEngagementAt:
		return "new"
	case interactions < highEngagementAt:
		return "moderate"
	default:
		return "high"
	}
}

// topCounts returns the n most frequent entries, ties broken by name.
func topCounts(counts map[string]int, n int) []NameCount {
	entries := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, NameCount{Name: name, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > n {
		entries = entries[:n]
	}

	return entries
}

// GetAnalytics reports aggregate engine state.
func (s *service) GetAnalytics(ctx context.Context) (*Analytics, error) {
	interactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}

	projects, err := s.catalogRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	users := make(map[string]bool)
	for _, interaction := range interactions {
		users[interaction.UserID] = true
	}

	analytics := &Analytics{
		TotalUsers:        len(users),
		TotalInteractions: len(interactions),
		TotalProjects:     len(projects),
		ServiceStatus:     "active",
	}

	if len(users) > 0 {
		analytics.AverageInteractionsPerUser = float64(len(interactions)) / float64(len(users))
	}

	return analytics, nil
}

// WarmSimilarityCache precomputes the similarity table for the current
// catalog and log versions so the first request after a write stays fast.
func (s *service) WarmSimilarityCache(ctx context.Context) error {
	projects, err := s.catalogRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	interactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load interactions: %w", err)
	}

	matrix := s.collaborative.BuildMatrix(interactions)
	if _, err := s.tables.Table(ctx, projects, matrix); err != nil {
		return fmt.Errorf("warm similarity table: %w", err)
	}

	return nil
}
