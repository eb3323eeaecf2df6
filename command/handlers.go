package command

import (
	"context"

	"github.com/goliatone/go-assets/core"
	gocmd "github.com/goliatone/go-command"
)

// MutatingService is the slice of the asset service the command handlers
// dispatch through.
type MutatingService interface {
	OnWillCreateAsset(ctx context.Context, path string) error
	OnWillSaveAssets(ctx context.Context, paths []string, explicitlySaveAsset bool) (core.SaveOutcome, error)
	OnWillMoveAsset(ctx context.Context, from, to string) (core.MoveResult, error)
	OnWillDeleteAsset(ctx context.Context, path string, options core.RemoveOptions) (core.DeleteResult, error)
	OnStatusUpdated(ctx context.Context) error
}

type CreateAssetCommand struct {
	service MutatingService
}

func NewCreateAssetCommand(service MutatingService) *CreateAssetCommand {
	return &CreateAssetCommand{service: service}
}

func (c *CreateAssetCommand) Execute(ctx context.Context, msg CreateAssetMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: create asset service is required")
	}
	return c.service.OnWillCreateAsset(ctx, msg.Path)
}

type SaveAssetsCommand struct {
	service MutatingService
}

func NewSaveAssetsCommand(service MutatingService) *SaveAssetsCommand {
	return &SaveAssetsCommand{service: service}
}

func (c *SaveAssetsCommand) Execute(ctx context.Context, msg SaveAssetsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: save assets service is required")
	}
	out, err := c.service.OnWillSaveAssets(ctx, msg.Paths, msg.ExplicitlySaveAsset)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type MoveAssetCommand struct {
	service MutatingService
}

func NewMoveAssetCommand(service MutatingService) *MoveAssetCommand {
	return &MoveAssetCommand{service: service}
}

func (c *MoveAssetCommand) Execute(ctx context.Context, msg MoveAssetMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: move asset service is required")
	}
	out, err := c.service.OnWillMoveAsset(ctx, msg.FromPath, msg.ToPath)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteAssetCommand struct {
	service MutatingService
}

func NewDeleteAssetCommand(service MutatingService) *DeleteAssetCommand {
	return &DeleteAssetCommand{service: service}
}

func (c *DeleteAssetCommand) Execute(ctx context.Context, msg DeleteAssetMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: delete asset service is required")
	}
	out, err := c.service.OnWillDeleteAsset(ctx, msg.Path, msg.Options)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RefreshStatusCommand struct {
	service MutatingService
}

func NewRefreshStatusCommand(service MutatingService) *RefreshStatusCommand {
	return &RefreshStatusCommand{service: service}
}

func (c *RefreshStatusCommand) Execute(ctx context.Context, msg RefreshStatusMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: status service is required")
	}
	return c.service.OnStatusUpdated(ctx)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
