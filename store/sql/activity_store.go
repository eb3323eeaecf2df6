package sqlstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-assets/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ActivityStore persists the dispatch audit trail in the asset_activity table.
type ActivityStore struct {
	db   *bun.DB
	repo repository.Repository[*assetActivityRecord]
}

func NewActivityStore(db *bun.DB) (*ActivityStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*assetActivityRecord](db, assetActivityHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid activity repository wiring: %w", err)
		}
	}
	return &ActivityStore{db: db, repo: repo}, nil
}

func (s *ActivityStore) Record(ctx context.Context, entry core.AssetActivityEntry) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: activity store is not configured")
	}
	if strings.TrimSpace(entry.Event) == "" {
		return fmt.Errorf("sqlstore: activity entry requires an event")
	}

	record := newAssetActivityRecord(entry)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = record.CreatedAt.UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.Status == "" {
		record.Status = string(core.ActivityStatusSuccess)
	}

	_, err := s.repo.Create(ctx, record)
	return err
}

func (s *ActivityStore) List(ctx context.Context, filter core.AssetActivityFilter) (core.AssetActivityPage, error) {
	if s == nil || s.repo == nil {
		return core.AssetActivityPage{}, fmt.Errorf("sqlstore: activity store is not configured")
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 25
	}
	offset := (page - 1) * perPage

	selectors := []repository.SelectCriteria{
		repository.OrderBy("created_at DESC"),
		repository.SelectPaginate(perPage, offset),
	}
	if event := strings.TrimSpace(filter.Event); event != "" {
		selectors = append(selectors, repository.SelectBy("event", "=", event))
	}
	if status := strings.TrimSpace(string(filter.Status)); status != "" {
		selectors = append(selectors, repository.SelectBy("status", "=", status))
	}
	if filter.From != nil {
		selectors = append(selectors, repository.SelectByTimetz("created_at", ">=", filter.From.UTC()))
	}
	if filter.To != nil {
		selectors = append(selectors, repository.SelectByTimetz("created_at", "<=", filter.To.UTC()))
	}

	records, total, err := s.repo.List(ctx, selectors...)
	if err != nil {
		return core.AssetActivityPage{}, err
	}
	items := make([]core.AssetActivityEntry, 0, len(records))
	for _, record := range records {
		items = append(items, record.toDomain())
	}
	hasNext := offset+len(items) < total
	nextOffset := ""
	if hasNext {
		nextOffset = strconv.Itoa(offset + len(items))
	}
	return core.AssetActivityPage{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		HasNext:    hasNext,
		NextCursor: nextOffset,
	}, nil
}

// Prune removes audit rows older than olderThan so hosts can cap table growth.
func (s *ActivityStore) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlstore: activity store is not configured")
	}
	if olderThan.IsZero() {
		return 0, fmt.Errorf("sqlstore: prune cutoff is required")
	}
	res, err := s.db.NewDelete().
		Model((*assetActivityRecord)(nil)).
		Where("created_at < ?", olderThan.UTC()).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

var _ core.ActivityStore = (*ActivityStore)(nil)
