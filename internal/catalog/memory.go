package catalog

import (
	"context"
	"sync"
)

// MemoryRepository is an in-process catalog used in development mode and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	projects []*Project
	version  int64
}

func NewMemoryRepository(projects []*Project) *MemoryRepository {
	return &MemoryRepository{
		projects: projects,
		version:  1,
	}
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]*Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Snapshot copy so callers can't mutate the shared slice
	out := make([]*Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrProjectNotFound
}

func (r *MemoryRepository) IncrementViews(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.projects {
		if p.ID == id {
			p.Views++
			r.version++
			return nil
		}
	}
	return ErrProjectNotFound
}

func (r *MemoryRepository) Version(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version, nil
}
