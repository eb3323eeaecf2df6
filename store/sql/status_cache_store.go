package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-assets/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StatusCacheStore persists version-control status answers keyed by asset
// path, one row per path.
type StatusCacheStore struct {
	db   *bun.DB
	repo repository.Repository[*statusCacheRecord]
}

func NewStatusCacheStore(db *bun.DB) (*StatusCacheStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*statusCacheRecord](db, statusCacheHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid status cache repository wiring: %w", err)
		}
	}
	return &StatusCacheStore{db: db, repo: repo}, nil
}

func (s *StatusCacheStore) Get(ctx context.Context, path string) (core.StatusEntry, bool, error) {
	if s == nil || s.db == nil {
		return core.StatusEntry{}, false, fmt.Errorf("sqlstore: status cache store is not configured")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return core.StatusEntry{}, false, fmt.Errorf("sqlstore: path is required")
	}

	record := &statusCacheRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.path = ?", path).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.StatusEntry{}, false, nil
		}
		return core.StatusEntry{}, false, err
	}
	return record.toDomain(), true, nil
}

func (s *StatusCacheStore) Upsert(ctx context.Context, entry core.StatusEntry) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: status cache store is not configured")
	}
	entry.Path = strings.TrimSpace(entry.Path)
	if entry.Path == "" {
		return fmt.Errorf("sqlstore: path is required")
	}
	now := time.Now().UTC()
	checkedAt := entry.CheckedAt.UTC()
	if checkedAt.IsZero() {
		checkedAt = now
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := findStatusCacheTx(ctx, tx, entry.Path)
		if err != nil {
			return err
		}
		if record == nil {
			record = &statusCacheRecord{
				ID:        uuid.NewString(),
				Path:      entry.Path,
				Editable:  entry.Editable,
				Reason:    entry.Reason,
				CheckedAt: checkedAt,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, insertErr := tx.NewInsert().Model(record).Exec(ctx); insertErr != nil {
				if isUniqueViolation(insertErr) {
					record, err = findStatusCacheTx(ctx, tx, entry.Path)
					if err != nil {
						return err
					}
					if record == nil {
						return insertErr
					}
				} else {
					return insertErr
				}
			} else {
				return nil
			}
		}

		record.Editable = entry.Editable
		record.Reason = entry.Reason
		record.CheckedAt = checkedAt
		record.UpdatedAt = now
		_, err = tx.NewUpdate().
			Model(record).
			WherePK().
			Exec(ctx)
		return err
	})
}

func (s *StatusCacheStore) DeleteStale(ctx context.Context, olderThan time.Time) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: status cache store is not configured")
	}
	if olderThan.IsZero() {
		return fmt.Errorf("sqlstore: stale cutoff is required")
	}
	_, err := s.db.NewDelete().
		Model((*statusCacheRecord)(nil)).
		Where("checked_at < ?", olderThan.UTC()).
		Exec(ctx)
	return err
}

func findStatusCacheTx(ctx context.Context, tx bun.Tx, path string) (*statusCacheRecord, error) {
	record := &statusCacheRecord{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.path = ?", path).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func isUniqueViolation(err error) bool {
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	return strings.Contains(message, "unique constraint failed") ||
		strings.Contains(message, "duplicate key value violates unique constraint")
}

var _ core.StatusCacheStore = (*StatusCacheStore)(nil)
