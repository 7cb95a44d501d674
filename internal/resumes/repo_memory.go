package resumes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repo preserving insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []string
	data  map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Resume)}
}

func (r *MemoryRepo) Insert(ctx context.Context, res Resume) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	res.ID = uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[res.ID] = res
	r.order = append(r.order, res.ID)
	return res.ID, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resume, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.data[id])
	}
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, patch Patch, now time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[id]
	if !ok {
		return false, nil
	}
	updated := patch.Apply(existing)
	updated.UpdatedAt = now
	r.data[id] = updated
	return true, nil
}

func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

var _ Repo = (*MemoryRepo)(nil)
