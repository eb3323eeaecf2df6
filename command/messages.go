package command

import (
	"strings"

	"github.com/goliatone/go-assets/core"
)

const (
	TypeCreateAsset   = "assets.command.asset.create"
	TypeSaveAssets    = "assets.command.asset.save"
	TypeMoveAsset     = "assets.command.asset.move"
	TypeDeleteAsset   = "assets.command.asset.delete"
	TypeRefreshStatus = "assets.command.status.refresh"
)

type CreateAssetMessage struct {
	Path string
}

func (CreateAssetMessage) Type() string { return TypeCreateAsset }

func (m CreateAssetMessage) Validate() error {
	if strings.TrimSpace(m.Path) == "" {
		return commandValidationError("path", "asset path is required")
	}
	return nil
}

type SaveAssetsMessage struct {
	Paths               []string
	ExplicitlySaveAsset bool
}

func (SaveAssetsMessage) Type() string { return TypeSaveAssets }

func (m SaveAssetsMessage) Validate() error {
	for _, path := range m.Paths {
		if strings.TrimSpace(path) != "" {
			return nil
		}
	}
	return commandValidationError("paths", "at least one asset path is required")
}

type MoveAssetMessage struct {
	FromPath string
	ToPath   string
}

func (MoveAssetMessage) Type() string { return TypeMoveAsset }

func (m MoveAssetMessage) Validate() error {
	from := strings.TrimSpace(m.FromPath)
	to := strings.TrimSpace(m.ToPath)
	if from == "" {
		return commandValidationError("from_path", "source path is required")
	}
	if to == "" {
		return commandValidationError("to_path", "destination path is required")
	}
	if from == to {
		return commandInvalidInputError("command: source and destination must differ")
	}
	return nil
}

type DeleteAssetMessage struct {
	Path    string
	Options core.RemoveOptions
}

func (DeleteAssetMessage) Type() string { return TypeDeleteAsset }

func (m DeleteAssetMessage) Validate() error {
	if strings.TrimSpace(m.Path) == "" {
		return commandValidationError("path", "asset path is required")
	}
	return nil
}

type RefreshStatusMessage struct{}

func (RefreshStatusMessage) Type() string { return TypeRefreshStatus }

func (RefreshStatusMessage) Validate() error { return nil }
