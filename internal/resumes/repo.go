package resumes

import (
	"context"
	"time"
)

// Repo defines persistence operations for résumé records.
type Repo interface {
	// Insert stores r and returns the identifier the store assigned.
	Insert(ctx context.Context, r Resume) (string, error)
	// List returns every record in the store's natural order.
	List(ctx context.Context) ([]Resume, error)
	// Update applies patch to the record with id. It reports false, with no
	// error, when no record matches, including ids the store cannot parse.
	Update(ctx context.Context, id string, patch Patch, now time.Time) (bool, error)
	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
}
