package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PGStore keeps the same path-addressed document model in a Postgres table,
// for deployments that would rather not depend on a hosted store. One row
// per leaf: path -> jsonb document.
type PGStore struct {
	db           *sqlx.DB
	pollInterval time.Duration
}

func NewPGStore(db *sqlx.DB, pollInterval time.Duration) *PGStore {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	return &PGStore{db: db, pollInterval: pollInterval}
}

func (s *PGStore) Get(ctx context.Context, path string, out any) error {
	raw, err := s.subtree(ctx, normalize(path))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *PGStore) subtree(ctx context.Context, path string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := s.db.GetContext(ctx, &raw, `SELECT doc FROM documents WHERE path=$1`, path)
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	rows, err := s.db.QueryxContext(ctx, `SELECT path, doc FROM documents WHERE path LIKE $1`, path+"/%")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()
	leaves := make(map[string]json.RawMessage)
	for rows.Next() {
		var p string
		var doc json.RawMessage
		if err := rows.Scan(&p, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		leaves[strings.TrimPrefix(p, path+"/")] = doc
	}
	if len(leaves) == 0 {
		return nil, ErrNotFound
	}
	return assembleTree(leaves)
}

func (s *PGStore) Put(ctx context.Context, path string, value any) error {
	raw, err := marshal(value)
	if err != nil {
		return err
	}
	path = normalize(path)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE path LIKE $1`, path+"/%"); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO documents (path, doc, updated_at) VALUES ($1, $2, NOW())
	                                 ON CONFLICT (path) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`, path, raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *PGStore) Post(ctx context.Context, path string, value any) (string, error) {
	raw, err := marshal(value)
	if err != nil {
		return "", err
	}
	key := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `INSERT INTO documents (path, doc, updated_at) VALUES ($1, $2, NOW())`,
		normalize(path)+"/"+key, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return key, nil
}

func (s *PGStore) Patch(ctx context.Context, path string, fields map[string]any) error {
	raw, err := marshal(fields)
	if err != nil {
		return err
	}
	// jsonb || merges top-level fields, matching the hosted store's PATCH.
	_, err = s.db.ExecContext(ctx, `INSERT INTO documents (path, doc, updated_at) VALUES ($1, $2, NOW())
	                                 ON CONFLICT (path) DO UPDATE SET doc = documents.doc || EXCLUDED.doc, updated_at = NOW()`,
		normalize(path), raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *PGStore) Watch(ctx context.Context, path string) <-chan json.RawMessage {
	ch := make(chan json.RawMessage, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		var last json.RawMessage
		for {
			raw, err := s.subtree(ctx, normalize(path))
			if err == nil && !bytes.Equal(raw, last) {
				last = raw
				select {
				case ch <- raw:
				default:
					select {
					case <-ch:
					default:
					}
					ch <- raw
				}
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return ch
}
