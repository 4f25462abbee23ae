package recommend

import (
	"fmt"
	"time"
)

// SeedInteractions returns a deterministic demo interaction log aligned
// with the seed catalog, used in development mode so recommendations are
// non-trivial on first boot.
func SeedInteractions() []*Interaction {
	base := time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)

	type row struct {
		user       string
		project    int64
		viewed     bool
		bookmarked bool
		applied    bool
		rating     float64
	}

	rows := []row{
		{"student001", 1, true, true, false, 5},
		{"student001", 4, true, false, true, 4},
		{"student001", 6, true, false, false, 0},
		{"student001", 7, true, true, false, 0},
		{"student001", 2, true, false, true, 3},
		{"student002", 1, true, false, true, 4},
		{"student002", 4, true, true, false, 5},
		{"student002", 6, true, false, false, 4},
		{"student002", 3, true, false, false, 0},
		{"student002", 8, true, false, false, 0},
		{"student003", 3, true, true, false, 4},
		{"student003", 5, true, false, true, 5},
		{"student003", 8, true, true, false, 3},
		{"student003", 1, true, false, false, 0},
		{"student004", 1, true, false, false, 5},
		{"student004", 4, true, false, false, 4},
		{"student004", 7, true, false, true, 0},
		{"student005", 2, true, true, false, 4},
		{"student005", 7, true, false, false, 3},
		{"student005", 8, true, false, false, 0},
	}

	interactions := make([]*Interaction, 0, len(rows))
	for i, r := range rows {
		interactions = append(interactions, &Interaction{
			ID:              fmt.Sprintf("seed-%03d", i+1),
			UserID:          r.user,
			ProjectID:       r.project,
			Viewed:          r.viewed,
			Bookmarked:      r.bookmarked,
			Applied:         r.applied,
			Rating:          r.rating,
			SessionDuration: 120,
			CreatedAt:       base.Add(time.Duration(i) * time.Hour),
		})
	}

	return interactions
}
