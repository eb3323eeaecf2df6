package query

import (
	"github.com/goliatone/go-assets/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[IsOpenForEditMessage, core.EditabilityVerdict]     = (*IsOpenForEditQuery)(nil)
	_ gocmd.Querier[FilterNotEditableMessage, []string]                = (*FilterNotEditableQuery)(nil)
	_ gocmd.Querier[ListAssetActivityMessage, core.AssetActivityPage]  = (*ListAssetActivityQuery)(nil)
)
