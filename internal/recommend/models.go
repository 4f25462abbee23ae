package recommend

import (
	"time"

	"github.com/campuslab/fyphub-backend/internal/catalog"
)

// Interaction kinds accepted by the tracking API
const (
	KindViewed     = "viewed"
	KindBookmarked = "bookmarked"
	KindApplied    = "applied"
	KindRated      = "rated"
)

// Recommendation provenance tags
const (
	MethodCollaborative = "collaborative"
	MethodContentBased  = "content-based"
	MethodHybrid        = "hybrid"
	MethodFallback      = "fallback"
	MethodPopular       = "popular"
)

// Degradation levels carried on a recommendation set
const (
	DegradationNone     = "none"
	DegradationPartial  = "partial"
	DegradationFallback = "fallback"
)

// Interaction is one append-only signal linking a user to a project.
type Interaction struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	ProjectID       int64     `json:"project_id" db:"project_id"`
	Viewed          bool      `json:"viewed" db:"viewed"`
	Bookmarked      bool      `json:"bookmarked" db:"bookmarked"`
	Applied         bool      `json:"applied" db:"applied"`
	Rating          float64   `json:"rating" db:"rating"`
	SessionDuration int       `json:"session_duration" db:"session_duration"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// WeightedScore collapses an interaction into a single scalar.
// Ratings dominate, then applications, bookmarks and views.
func (i *Interaction) WeightedScore() float64 {
	score := i.Rating * 0.4
	if i.Applied {
		score += 3 * 0.3
	}
	if i.Bookmarked {
		score += 2 * 0.2
	}
	if i.Viewed {
		score += 1 * 0.1
	}
	return score
}

// UserItemMatrix maps userID -> projectID -> weighted interaction score.
// Rebuilt per request from the full interaction log.
type UserItemMatrix map[string]map[int64]float64

// SimilarityTable maps projectID -> projectID -> similarity in [0,1].
// Symmetric, self-similarity 1.
type SimilarityTable map[int64]map[int64]float64

// UserProfile aggregates content preferences from qualifying interactions.
// Nil profile means cold start.
type UserProfile struct {
	PreferredCategories  map[string]int `json:"preferred_categories"`
	PreferredTechs       map[string]int `json:"preferred_technologies"`
	PreferredDepartments map[string]int `json:"preferred_departments"`
	Keywords             map[string]int `json:"keywords"`
}

// ScoreComponents records the per-signal contributions behind a hybrid score.
type ScoreComponents struct {
	Collaborative float64 `json:"collaborative,omitempty"`
	ContentBased  float64 `json:"content_based,omitempty"`
	Popularity    float64 `json:"popularity"`
	Recency       float64 `json:"recency"`
}

// Recommendation is one ranked entry in the engine's output.
type Recommendation struct {
	Project        *catalog.Project `json:"project"`
	Score          float64          `json:"score"`
	Confidence     float64          `json:"confidence"`
	Method         string           `json:"method"`
	Components     *ScoreComponents `json:"components,omitempty"`
	Explanation    []string         `json:"explanation,omitempty"`
	Department     string           `json:"department,omitempty"`
	EstimatedMatch int              `json:"estimated_match,omitempty"`
	Trending       bool             `json:"trending,omitempty"`
}

// RecommendationSet is the pipeline result with an explicit degradation signal.
type RecommendationSet struct {
	Recommendations []*Recommendation `json:"recommendations"`
	Degradation     string            `json:"degradation"`
}

// ProjectStats aggregates per-project interaction counts for popularity scoring.
type ProjectStats struct {
	Views        int
	Applications int
	Bookmarks    int
	Ratings      []float64
	Score        float64
}
