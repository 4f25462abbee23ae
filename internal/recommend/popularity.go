package recommend

import (
	"math"
	"time"

	"github.com/campuslab/fyphub-backend/internal/catalog"
)

// PopularityScorer derives per-project popularity and recency scores from
// the aggregate interaction log, independent of any single user.
type PopularityScorer struct {
	nowFn func() time.Time
}

func NewPopularityScorer() *PopularityScorer {
	return &PopularityScorer{nowFn: time.Now}
}

// PopularityScores blends normalized views, applications, bookmarks and
// mean rating into one score per project. Maxima are guarded so an empty
// log never divides by zero.
func (s *PopularityScorer) PopularityScores(projects []*catalog.Project, interactions []*Interaction) map[int64]*ProjectStats {
	stats := make(map[int64]*ProjectStats, len(projects))
	for _, project := range projects {
		stats[project.ID] = &ProjectStats{}
	}

	for _, interaction := range interactions {
		st, ok := stats[interaction.ProjectID]
		if !ok {
			continue
		}

		if interaction.Viewed {
			st.Views++
		}
		if interaction.Applied {
			st.Applications++
		}
		if interaction.Bookmarked {
			st.Bookmarks++
		}
		if interaction.Rating > 0 {
			st.Ratings = append(st.Ratings, interaction.Rating)
		}
	}

	var maxViews, maxApplications int
	for _, st := range stats {
		if st.Views > maxViews {
			maxViews = st.Views
		}
		if st.Applications > maxApplications {
			maxApplications = st.Applications
		}
	}

	viewDenom := math.Max(float64(maxViews), 1)
	appDenom := math.Max(float64(maxApplications), 1)

	for _, st := range stats {
		var avgRating float64
		if len(st.Ratings) > 0 {
			var sum float64
			for _, rating := range st.Ratings {
				sum += rating
			}
			avgRating = sum / float64(len(st.Ratings))
		}

		st.Score = float64(st.Views)/viewDenom*0.3 +
			float64(st.Applications)/appDenom*0.4 +
			float64(st.Bookmarks)/viewDenom*0.2 +
			avgRating/5*0.1
	}

	return stats
}

// RecencyScores assigns exponentially decayed scores by project age with a
// one-year half-life approximation. Missing creation dates decay from now.
func (s *PopularityScorer) RecencyScores(projects []*catalog.Project) map[int64]float64 {
	now := s.nowFn()
	scores := make(map[int64]float64, len(projects))

	for _, project := range projects {
		created := project.CreatedAt
		if created.IsZero() {
			created = now
		}

		ageDays := now.Sub(created).Hours() / 24
		scores[project.ID] = math.Exp(-ageDays / 365)
	}

	return scores
}
