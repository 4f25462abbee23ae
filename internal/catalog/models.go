package catalog

import (
	"time"

	"github.com/lib/pq"
)

// Project difficulty tiers
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Project is a catalog record scored by the recommendation engine.
// The engine only reads snapshots; projects are owned by the catalog.
type Project struct {
	ID           int64          `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Description  string         `json:"description,omitempty" db:"description"`
	Category     string         `json:"category" db:"category"`
	Technologies pq.StringArray `json:"technologies" db:"technologies"`
	Difficulty   string         `json:"difficulty" db:"difficulty"`
	DepartmentID int64          `json:"department_id" db:"department_id"`
	Department   string         `json:"department" db:"department"`
	Supervisor   string         `json:"supervisor,omitempty" db:"supervisor"`
	Keywords     string         `json:"keywords,omitempty" db:"keywords"`
	Year         int            `json:"year" db:"year"`
	Views        int64          `json:"views" db:"views"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// Department groups projects for display purposes
type Department struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"`
}
