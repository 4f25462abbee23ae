// internal/recommend/dto.go
package recommend

import "github.com/campuslab/fyphub-backend/internal/catalog"

// DTOs for API requests/responses

type TrackInteractionDTO struct {
	ProjectID       int64   `json:"project_id" validate:"required"`
	Kind            string  `json:"kind" validate:"required,oneof=viewed bookmarked applied rated"`
	Rating          float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	SessionDuration int     `json:"session_duration,omitempty" validate:"omitempty,gte=0"`
}

// SimilarProject pairs a catalog record with its content similarity percent.
type SimilarProject struct {
	Project           *catalog.Project `json:"project"`
	SimilarityPercent int              `json:"similarity_percent"`
	Department        string           `json:"department"`
}

// NameCount is a frequency entry in user insights.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// UserInsights summarizes a user's raw interaction history.
type UserInsights struct {
	TotalInteractions    int         `json:"total_interactions"`
	PreferredCategories  []NameCount `json:"preferred_categories"`
	PreferredDepartments []NameCount `json:"preferred_departments"`
	AverageRating        float64     `json:"average_rating"`
	EngagementLevel      string      `json:"engagement_level"`
}

// Analytics reports aggregate engine state.
type Analytics struct {
	TotalUsers                 int     `json:"total_users"`
	TotalInteractions          int     `json:"total_interactions"`
	AverageInteractionsPerUser float64 `json:"average_interactions_per_user"`
	TotalProjects              int     `json:"total_projects"`
	ServiceStatus              string  `json:"service_status"`
}
