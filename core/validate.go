package core

import (
	"fmt"
	"reflect"
)

// Event names a module's callbacks may bind to. Exported callbacks use these
// exact keys in CallbackExporter.Callbacks.
const (
	EventWillCreateAsset = "OnWillCreateAsset"
	EventWillSaveAssets  = "OnWillSaveAssets"
	EventWillMoveAsset   = "OnWillMoveAsset"
	EventWillDeleteAsset = "OnWillDeleteAsset"
	EventStatusUpdated   = "OnStatusUpdated"
	EventIsOpenForEdit   = "IsOpenForEdit"
)

// EventSpec pins the exact shape a callback must have for one event kind.
// Matching is exact per position: no covariance, no widening.
type EventSpec struct {
	Name    string
	Params  []reflect.Type
	Results []reflect.Type
}

var (
	typeString       = reflect.TypeOf("")
	typeStringSlice  = reflect.TypeOf([]string(nil))
	typeBool         = reflect.TypeOf(false)
	typeError        = reflect.TypeOf((*error)(nil)).Elem()
	typeMoveResult   = reflect.TypeOf(MoveResult(0))
	typeDeleteResult = reflect.TypeOf(DeleteResult(0))
	typeRemoveOpts   = reflect.TypeOf(RemoveOptions(0))
)

var eventSpecs = map[string]EventSpec{
	EventWillCreateAsset: {
		Name:    EventWillCreateAsset,
		Params:  []reflect.Type{typeString},
		Results: []reflect.Type{typeError},
	},
	EventWillSaveAssets: {
		Name:    EventWillSaveAssets,
		Params:  []reflect.Type{typeStringSlice},
		Results: []reflect.Type{typeStringSlice, typeError},
	},
	EventWillMoveAsset: {
		Name:    EventWillMoveAsset,
		Params:  []reflect.Type{typeString, typeString},
		Results: []reflect.Type{typeMoveResult, typeError},
	},
	EventWillDeleteAsset: {
		Name:    EventWillDeleteAsset,
		Params:  []reflect.Type{typeString, typeRemoveOpts},
		Results: []reflect.Type{typeDeleteResult, typeError},
	},
	EventStatusUpdated: {
		Name:    EventStatusUpdated,
		Params:  nil,
		Results: nil,
	},
	EventIsOpenForEdit: {
		Name:    EventIsOpenForEdit,
		Params:  []reflect.Type{typeString},
		Results: []reflect.Type{typeBool, typeString},
	},
}

// EventSpecFor returns the expected callback shape for an event name.
func EventSpecFor(event string) (EventSpec, bool) {
	spec, ok := eventSpecs[event]
	return spec, ok
}

// ValidateCallback shape-checks candidate against spec. A non-nil return is a
// validation-category error naming the declaring module, the event, and the
// position that failed; callers log it and exclude the candidate, they never
// abort discovery over it.
func ValidateCallback(spec EventSpec, module string, candidate any) error {
	if candidate == nil {
		return validationMismatch(module, spec.Name, "callback is nil")
	}
	fnType := reflect.TypeOf(candidate)
	if fnType.Kind() != reflect.Func {
		return validationMismatch(module, spec.Name, fmt.Sprintf("expected func, got %s", fnType.Kind()))
	}
	if fnType.IsVariadic() {
		return validationMismatch(module, spec.Name, "variadic callbacks are not supported")
	}
	if fnType.NumIn() != len(spec.Params) {
		return validationMismatch(module, spec.Name,
			fmt.Sprintf("expected %d parameters, got %d", len(spec.Params), fnType.NumIn()))
	}
	for i, want := range spec.Params {
		if got := fnType.In(i); got != want {
			return validationMismatch(module, spec.Name,
				fmt.Sprintf("parameter %d: expected %s, got %s", i, want, got))
		}
	}
	if fnType.NumOut() != len(spec.Results) {
		return validationMismatch(module, spec.Name,
			fmt.Sprintf("expected %d results, got %d", len(spec.Results), fnType.NumOut()))
	}
	for i, want := range spec.Results {
		if got := fnType.Out(i); got != want {
			return validationMismatch(module, spec.Name,
				fmt.Sprintf("result %d: expected %s, got %s", i, want, got))
		}
	}
	return nil
}
