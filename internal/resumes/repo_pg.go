package resumes

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert lets Postgres assign the id via gen_random_uuid().
func (r *PGRepo) Insert(ctx context.Context, res Resume) (string, error) {
	const query = `
INSERT INTO resumes (filename, text, archive_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
RETURNING id::text`

	var id string
	err := r.DB.QueryRowContext(ctx, query,
		res.Filename,
		res.Text,
		nullString(res.ArchiveKey),
		res.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert resume: %w", err)
	}
	return id, nil
}

// List returns all records oldest first.
func (r *PGRepo) List(ctx context.Context) ([]Resume, error) {
	const query = `
SELECT id::text, filename, text, archive_key, created_at, updated_at
FROM resumes
ORDER BY created_at, id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		var res Resume
		var archiveKey sql.NullString
		if err := rows.Scan(
			&res.ID,
			&res.Filename,
			&res.Text,
			&archiveKey,
			&res.CreatedAt,
			&res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		if archiveKey.Valid {
			res.ArchiveKey = archiveKey.String
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update sets only the supplied columns. Ids that are not UUIDs cannot match
// any row and skip the round trip.
func (r *PGRepo) Update(ctx context.Context, id string, patch Patch, now time.Time) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	const query = `
UPDATE resumes
SET filename = COALESCE($2, filename),
    text = COALESCE($3, text),
    updated_at = $4
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, id, nullStringPtr(patch.Filename), nullStringPtr(patch.Text), now)
	if err != nil {
		return false, fmt.Errorf("update resume: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update resume rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *PGRepo) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
