package query

import (
	"strings"

	"github.com/goliatone/go-assets/core"
)

const (
	TypeIsOpenForEdit     = "assets.query.editability.check"
	TypeFilterNotEditable = "assets.query.editability.filter"
	TypeListAssetActivity = "assets.query.activity.list"
)

type IsOpenForEditMessage struct {
	Path    string
	Options core.StatusQueryOptions
}

func (IsOpenForEditMessage) Type() string { return TypeIsOpenForEdit }

func (m IsOpenForEditMessage) Validate() error {
	if strings.TrimSpace(m.Path) == "" {
		return queryValidationError("path", "asset path is required")
	}
	return nil
}

type FilterNotEditableMessage struct {
	Paths   []string
	Options core.StatusQueryOptions
}

func (FilterNotEditableMessage) Type() string { return TypeFilterNotEditable }

func (FilterNotEditableMessage) Validate() error { return nil }

type ListAssetActivityMessage struct {
	Filter core.AssetActivityFilter
}

func (ListAssetActivityMessage) Type() string { return TypeListAssetActivity }

func (m ListAssetActivityMessage) Validate() error {
	if m.Filter.Page < 0 {
		return queryInvalidInputError("query: page must be >= 0")
	}
	if m.Filter.PerPage < 0 {
		return queryInvalidInputError("query: per_page must be >= 0")
	}
	return nil
}
