package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/commpost"
)

// Compile-time interface verification.
var _ commpost.PostService = (*PostService)(nil)

// PostService implements commpost.PostService using SQLite.
// Each record is stored as its JSON encoding next to indexed columns.
type PostService struct {
	db *DB
}

// NewPostService creates a new PostService.
func NewPostService(db *DB) *PostService {
	return &PostService{db: db}
}

// SavePost stores a record, replacing any previous record of the same post.
func (s *PostService) SavePost(ctx context.Context, rec *commpost.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode post %s: %w", rec.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO posts (id, run_id, source_hash, processed_at, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			run_id = excluded.run_id,
			source_hash = excluded.source_hash,
			processed_at = excluded.processed_at,
			data = excluded.data
	`, rec.ID, nullString(rec.Meta.RunID), rec.Meta.SourceHash,
		rec.Meta.ProcessedAt.UTC().Format(timeFormat), string(data))

	return err
}

// FindPostByID retrieves a record by post ID.
func (s *PostService) FindPostByID(ctx context.Context, id string) (*commpost.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM posts WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, commpost.Errorf(commpost.ENOTFOUND, "post not found")
	}
	if err != nil {
		return nil, err
	}
	return decodeRecord(data)
}

// FindPosts retrieves records matching the filter, ordered by post ID.
func (s *PostService) FindPosts(ctx context.Context, filter commpost.PostFilter) ([]*commpost.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT data FROM posts WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}

	query.WriteString(" ORDER BY id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*commpost.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		rec, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeletePost permanently removes a record.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return commpost.Errorf(commpost.ENOTFOUND, "post not found")
	}

	return nil
}

func decodeRecord(data string) (*commpost.Record, error) {
	var rec commpost.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode post: %w", err)
	}
	return &rec, nil
}
