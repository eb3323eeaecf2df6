package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[CreateAssetMessage]   = (*CreateAssetCommand)(nil)
	_ gocmd.Commander[SaveAssetsMessage]    = (*SaveAssetsCommand)(nil)
	_ gocmd.Commander[MoveAssetMessage]     = (*MoveAssetCommand)(nil)
	_ gocmd.Commander[DeleteAssetMessage]   = (*DeleteAssetCommand)(nil)
	_ gocmd.Commander[RefreshStatusMessage] = (*RefreshStatusCommand)(nil)
)
