package query

import (
	"context"

	"github.com/goliatone/go-assets/core"
)

// EditabilityReader is the slice of the asset service the editability queries
// resolve through.
type EditabilityReader interface {
	IsOpenForEdit(ctx context.Context, path string, options core.StatusQueryOptions) (bool, string, error)
	FilterNotEditable(ctx context.Context, paths []string, options core.StatusQueryOptions) ([]string, error)
}

type AssetActivityReader interface {
	List(ctx context.Context, filter core.AssetActivityFilter) (core.AssetActivityPage, error)
}

type IsOpenForEditQuery struct {
	reader EditabilityReader
}

func NewIsOpenForEditQuery(reader EditabilityReader) *IsOpenForEditQuery {
	return &IsOpenForEditQuery{reader: reader}
}

func (q *IsOpenForEditQuery) Query(ctx context.Context, msg IsOpenForEditMessage) (core.EditabilityVerdict, error) {
	if q == nil || q.reader == nil {
		return core.EditabilityVerdict{}, queryDependencyError("query: editability reader is required")
	}
	editable, reason, err := q.reader.IsOpenForEdit(ctx, msg.Path, msg.Options)
	if err != nil {
		return core.EditabilityVerdict{}, err
	}
	return core.EditabilityVerdict{Path: msg.Path, Editable: editable, Reason: reason}, nil
}

type FilterNotEditableQuery struct {
	reader EditabilityReader
}

func NewFilterNotEditableQuery(reader EditabilityReader) *FilterNotEditableQuery {
	return &FilterNotEditableQuery{reader: reader}
}

func (q *FilterNotEditableQuery) Query(ctx context.Context, msg FilterNotEditableMessage) ([]string, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: editability reader is required")
	}
	return q.reader.FilterNotEditable(ctx, msg.Paths, msg.Options)
}

type ListAssetActivityQuery struct {
	reader AssetActivityReader
}

func NewListAssetActivityQuery(reader AssetActivityReader) *ListAssetActivityQuery {
	return &ListAssetActivityQuery{reader: reader}
}

func (q *ListAssetActivityQuery) Query(
	ctx context.Context,
	msg ListAssetActivityMessage,
) (core.AssetActivityPage, error) {
	if q == nil || q.reader == nil {
		return core.AssetActivityPage{}, queryDependencyError("query: asset activity reader is required")
	}
	return q.reader.List(ctx, msg.Filter)
}
