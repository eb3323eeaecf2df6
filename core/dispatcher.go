package core

import (
	"context"
	"time"
)

// OnWillCreateAsset fans asset creation out to every create handler in
// registry order. A handler error is a fault in that handler and aborts the
// dispatch immediately; the pipeline does not swallow it.
func (s *Service) OnWillCreateAsset(ctx context.Context, path string) error {
	if s == nil {
		return nil
	}
	startedAt := time.Now()
	var err error
	defer func() {
		s.observeOperation(ctx, startedAt, "asset_create", err, map[string]any{"path": path})
		s.recordActivity(ctx, startedAt, EventWillCreateAsset, []string{path}, "", err)
	}()

	for _, binding := range s.registry.CreateHandlers() {
		if handlerErr := binding.Fn(path); handlerErr != nil {
			err = s.mapError(handlerFault(EventWillCreateAsset, binding.Module, handlerErr))
			return err
		}
	}
	return nil
}

// OnWillSaveAssets runs the save pipeline: optional user confirmation,
// sequential handler fan-out where each handler may replace the pending set
// wholesale, a forced editability pass, and checkout of whatever is not yet
// editable. Paths that cannot be made editable move to the reverted set
// unless the overwrite preference is on. Saved and Reverted always stay
// disjoint subsets of the input.
func (s *Service) OnWillSaveAssets(ctx context.Context, paths []string, explicitlySaveAsset bool) (SaveOutcome, error) {
	if s == nil {
		return SaveOutcome{Saved: []string{}, Reverted: []string{}}, nil
	}
	startedAt := time.Now()
	var err error
	outcome := SaveOutcome{Saved: []string{}, Reverted: []string{}}
	defer func() {
		s.observeOperation(ctx, startedAt, "asset_save", err, map[string]any{
			"requested": len(paths),
			"saved":     len(outcome.Saved),
			"reverted":  len(outcome.Reverted),
		})
		s.recordActivity(ctx, startedAt, EventWillSaveAssets, paths, "", err)
	}()

	input := copyPaths(paths)
	pending := copyPaths(paths)

	pending, err = s.confirmSaveSet(ctx, pending, explicitlySaveAsset)
	if err != nil {
		return outcome, err
	}

	for _, binding := range s.registry.SaveHandlers() {
		replaced, handlerErr := binding.Fn(copyPaths(pending))
		if handlerErr != nil {
			err = s.mapError(handlerFault(EventWillSaveAssets, binding.Module, handlerErr))
			return outcome, err
		}
		if replaced != nil {
			pending = replaced
		}
	}
	// Handlers may hand back anything; only paths from the original request
	// survive, in the order the last handler chose.
	pending = intersectPaths(pending, input)
	if len(pending) == 0 {
		return outcome, nil
	}

	notEditable, resolveErr := s.FilterNotEditable(ctx, pending, StatusForceUpdate)
	if resolveErr != nil {
		err = resolveErr
		return outcome, err
	}
	if len(notEditable) == 0 {
		outcome.Saved = pending
		return outcome, nil
	}

	failed := s.makeEditable(ctx, notEditable)
	if len(failed) == 0 {
		outcome.Saved = pending
		return outcome, nil
	}

	if s.preferences != nil && s.preferences.OverwriteFailedCheckout() {
		if s.versionControl != nil && s.versionControl.Enabled() {
			if modeErr := s.versionControl.SetFileMode(ctx, failed, FileModeText); modeErr != nil {
				s.logError(ctx, "set file mode failed", map[string]any{
					"paths": failed,
					"error": modeErr.Error(),
				})
			}
		}
		outcome.Saved = pending
		return outcome, nil
	}

	outcome.Reverted = intersectPaths(pending, failed)
	outcome.Saved = subtractPaths(pending, failed)
	return outcome, nil
}

// confirmSaveSet narrows the pending set through the save confirmer when the
// prompt preference is on. An explicit request for exactly one scene or
// prefab bypasses confirmation: the host already expressed intent for that
// asset.
func (s *Service) confirmSaveSet(ctx context.Context, pending []string, explicitlySaveAsset bool) ([]string, error) {
	if len(pending) == 0 || s.saveConfirmer == nil {
		return pending, nil
	}
	if s.preferences == nil || !s.preferences.PromptBeforeSaving() {
		return pending, nil
	}
	if explicitlySaveAsset && len(pending) == 1 && isSceneOrPrefab(pending[0]) {
		return pending, nil
	}
	confirmed, err := s.saveConfirmer.Confirm(ctx, copyPaths(pending))
	if err != nil {
		return nil, s.mapError(err)
	}
	return intersectPaths(pending, confirmed), nil
}

// makeEditable asks the backend to check the paths out and returns the
// subset that could not be made editable. Partial checkout failure is a
// recoverable condition here, not an error.
func (s *Service) makeEditable(ctx context.Context, paths []string) []string {
	if s.versionControl == nil || !s.versionControl.Enabled() {
		return copyPaths(paths)
	}
	allSucceeded, editable, err := s.versionControl.MakeEditable(ctx, paths)
	if err != nil {
		s.logError(ctx, "make editable failed", map[string]any{
			"paths": paths,
			"error": err.Error(),
		})
		return copyPaths(paths)
	}
	if allSucceeded {
		return nil
	}
	if len(editable) != len(paths) {
		return copyPaths(paths)
	}
	failed := make([]string, 0, len(paths))
	for i, path := range paths {
		if !editable[i] {
			failed = append(failed, path)
		}
	}
	return failed
}

// OnWillMoveAsset requires a license before any side effect, delegates to
// the version-control move hook first, then OR-combines handler results.
// A failed gate skips both the hook and the fan-out and reports the default
// did-not-move outcome alongside the license error.
func (s *Service) OnWillMoveAsset(ctx context.Context, from, to string) (MoveResult, error) {
	if s == nil {
		return MoveDidNotMove, nil
	}
	startedAt := time.Now()
	result := MoveDidNotMove
	var err error
	defer func() {
		s.observeOperation(ctx, startedAt, "asset_move", err, map[string]any{
			"from":   from,
			"to":     to,
			"result": result.String(),
		})
		s.recordActivity(ctx, startedAt, EventWillMoveAsset, []string{from, to}, result.String(), err)
	}()

	if gateErr := s.requireLicense(EventWillMoveAsset); gateErr != nil {
		err = s.mapError(gateErr)
		return MoveDidNotMove, err
	}

	if s.versionControl != nil && s.versionControl.Enabled() {
		hookResult, hookErr := s.versionControl.OnWillMoveAsset(ctx, from, to)
		if hookErr != nil {
			err = s.mapError(hookErr)
			return result, err
		}
		result = result.Combine(hookResult)
	}

	for _, binding := range s.registry.MoveHandlers() {
		handlerResult, handlerErr := binding.Fn(from, to)
		if handlerErr != nil {
			err = s.mapError(handlerFault(EventWillMoveAsset, binding.Module, handlerErr))
			return result, err
		}
		result = result.Combine(handlerResult)
	}
	return result, nil
}

// OnWillDeleteAsset requires a license, then lets handlers speak first: the
// version-control delete hook is only consulted when no handler reported any
// delete outcome.
func (s *Service) OnWillDeleteAsset(ctx context.Context, path string, options RemoveOptions) (DeleteResult, error) {
	if s == nil {
		return DeleteDidNotDelete, nil
	}
	startedAt := time.Now()
	result := DeleteDidNotDelete
	var err error
	defer func() {
		s.observeOperation(ctx, startedAt, "asset_delete", err, map[string]any{
			"path":   path,
			"result": result.String(),
		})
		s.recordActivity(ctx, startedAt, EventWillDeleteAsset, []string{path}, result.String(), err)
	}()

	if gateErr := s.requireLicense(EventWillDeleteAsset); gateErr != nil {
		err = s.mapError(gateErr)
		return DeleteDidNotDelete, err
	}

	for _, binding := range s.registry.DeleteHandlers() {
		handlerResult, handlerErr := binding.Fn(path, options)
		if handlerErr != nil {
			err = s.mapError(handlerFault(EventWillDeleteAsset, binding.Module, handlerErr))
			return result, err
		}
		result = result.Combine(handlerResult)
	}
	if result != DeleteDidNotDelete {
		return result, nil
	}

	if s.versionControl != nil && s.versionControl.Enabled() {
		hookResult, hookErr := s.versionControl.OnWillDeleteAsset(ctx, path, options)
		if hookErr != nil {
			err = s.mapError(hookErr)
			return result, err
		}
		result = result.Combine(hookResult)
	}
	return result, nil
}

// OnStatusUpdated notifies the pending-changes collaborator, then fans out
// to the zero-argument status handlers in registry order.
func (s *Service) OnStatusUpdated(ctx context.Context) error {
	if s == nil {
		return nil
	}
	startedAt := time.Now()
	var err error
	defer func() {
		s.observeOperation(ctx, startedAt, "status_updated", err, nil)
		s.recordActivity(ctx, startedAt, EventStatusUpdated, nil, "", err)
	}()

	if gateErr := s.requireLicense(EventStatusUpdated); gateErr != nil {
		err = s.mapError(gateErr)
		return err
	}

	if s.notifier != nil {
		if notifyErr := s.notifier.NotifyStatusChanged(ctx); notifyErr != nil {
			err = s.mapError(notifyErr)
			return err
		}
	}

	for _, binding := range s.registry.StatusHandlers() {
		binding.Fn()
	}
	return nil
}
