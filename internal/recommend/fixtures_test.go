package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campuslab/fyphub-backend/internal/catalog"
)

// testProjects builds an 8-project catalog across 4 categories and
// departments, mirroring the demo data shape.
func testProjects() []*catalog.Project {
	mk := func(id int64, title, category string, techs []string, difficulty string, deptID int64, dept, keywords string, views int64, created time.Time) *catalog.Project {
		return &catalog.Project{
			ID:           id,
			Title:        title,
			Category:     category,
			Technologies: techs,
			Difficulty:   difficulty,
			DepartmentID: deptID,
			Department:   dept,
			Keywords:     keywords,
			Year:         created.Year(),
			Views:        views,
			CreatedAt:    created,
		}
	}

	old := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	return []*catalog.Project{
		mk(1, "Fake News Detection", "Machine Learning", []string{"python", "tensorflow"}, "hard", 1, "Computer Science", "fake news detection learning", 300, old),
		mk(2, "Energy Monitoring IoT", "IoT", []string{"arduino", "mqtt"}, "medium", 1, "Computer Science", "iot energy monitoring sensors", 200, old),
		mk(3, "Supply Chain Ledger", "Blockchain", []string{"solidity", "ethereum"}, "hard", 2, "Software Engineering", "blockchain supply ledger", 150, old),
		mk(4, "Mental Health Chatbot", "Machine Learning", []string{"python", "pytorch"}, "hard", 1, "Computer Science", "chatbot health learning", 400, old),
		mk(5, "Campus AR Navigation", "AR/VR", []string{"unity", "arcore"}, "medium", 2, "Software Engineering", "unity augmented reality navigation", 120, recent),
		mk(6, "Threat Detection", "Machine Learning", []string{"python", "tensorflow"}, "hard", 4, "Cybersecurity", "threat detection learning", 250, old),
		mk(7, "Performance Dashboard", "Data Analytics", []string{"python", "pandas"}, "easy", 3, "Data Science", "analytics dashboard visualization", 100, recent),
		mk(8, "Food Delivery App", "Mobile", []string{"flutter", "dart"}, "easy", 2, "Software Engineering", "mobile delivery ordering", 90, recent),
	}
}

func event(user string, project int64, mutate func(*Interaction)) *Interaction {
	interaction := &Interaction{
		ID:        user + "-" + time.Now().Format("150405.000000000"),
		UserID:    user,
		ProjectID: project,
		CreatedAt: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(interaction)
	}
	return interaction
}

func viewed(user string, project int64) *Interaction {
	return event(user, project, func(i *Interaction) { i.Viewed = true })
}

func bookmarked(user string, project int64) *Interaction {
	return event(user, project, func(i *Interaction) { i.Viewed = true; i.Bookmarked = true })
}

func applied(user string, project int64, rating float64) *Interaction {
	return event(user, project, func(i *Interaction) {
		i.Viewed = true
		i.Applied = true
		i.Rating = rating
	})
}

func rated(user string, project int64, rating float64) *Interaction {
	return event(user, project, func(i *Interaction) { i.Viewed = true; i.Rating = rating })
}

// testNow pins the scorer clock so recency scores cannot drift between
// repeated pipeline runs.
var testNow = time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

func newTestScorer() *PopularityScorer {
	scorer := NewPopularityScorer()
	scorer.nowFn = func() time.Time { return testNow }
	return scorer
}

// newTestCombiner wires the pipeline with direct computation and no cache.
func newTestCombiner() *Combiner {
	collaborative := NewCollaborativeFilter()
	return NewCombiner(
		collaborative,
		NewContentFilter(),
		newTestScorer(),
		NewComputeTableSource(collaborative, 0),
		zap.NewNop(),
		CombinerConfig{MinInteractionsForCF: 5, DiversityFactor: 0.2},
	)
}

// newTestService builds the orchestrator on in-memory stores.
func newTestService(projects []*catalog.Project, interactions []*Interaction) (Service, *MemoryStore, *catalog.MemoryRepository) {
	store := NewMemoryStore()
	for _, interaction := range interactions {
		store.Append(context.Background(), interaction)
	}

	catalogRepo := catalog.NewMemoryRepository(projects)

	collaborative := NewCollaborativeFilter()
	content := NewContentFilter()
	scorer := newTestScorer()
	tables := NewComputeTableSource(collaborative, 0)
	combiner := NewCombiner(collaborative, content, scorer, tables, zap.NewNop(), CombinerConfig{
		MinInteractionsForCF: 5,
		DiversityFactor:      0.2,
	})

	service := NewService(store, catalogRepo, combiner, collaborative, content, scorer, tables, zap.NewNop())
	return service, store, catalogRepo
}
