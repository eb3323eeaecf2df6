package core

import (
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestValidateCallbackAcceptsExactShapes(t *testing.T) {
	valid := map[string]any{
		EventWillCreateAsset: func(string) error { return nil },
		EventWillSaveAssets:  func([]string) ([]string, error) { return nil, nil },
		EventWillMoveAsset:   func(string, string) (MoveResult, error) { return MoveDidNotMove, nil },
		EventWillDeleteAsset: func(string, RemoveOptions) (DeleteResult, error) { return DeleteDidNotDelete, nil },
		EventStatusUpdated:   func() {},
		EventIsOpenForEdit:   func(string) (bool, string) { return true, "" },
	}
	for event, candidate := range valid {
		spec, ok := EventSpecFor(event)
		if !ok {
			t.Fatalf("no spec for %s", event)
		}
		if err := ValidateCallback(spec, "mod", candidate); err != nil {
			t.Fatalf("%s: expected valid callback, got %v", event, err)
		}
	}
}

func TestValidateCallbackRejectsWrongShapes(t *testing.T) {
	cases := []struct {
		name      string
		event     string
		candidate any
		detail    string
	}{
		{"nil callback", EventWillCreateAsset, nil, "callback is nil"},
		{"not a func", EventWillCreateAsset, "not-a-func", "expected func"},
		{"variadic", EventWillCreateAsset, func(...string) error { return nil }, "variadic"},
		{"missing param", EventWillMoveAsset, func(string) (MoveResult, error) { return MoveDidNotMove, nil }, "expected 2 parameters"},
		{"extra param", EventStatusUpdated, func(string) {}, "expected 0 parameters"},
		{"wrong param type", EventWillCreateAsset, func(int) error { return nil }, "parameter 0"},
		{"wrong result count", EventWillCreateAsset, func(string) {}, "expected 1 results"},
		{"wrong result type", EventWillMoveAsset, func(string, string) (DeleteResult, error) { return DeleteDidNotDelete, nil }, "result 0"},
		{"widened result", EventIsOpenForEdit, func(string) (bool, string, error) { return true, "", nil }, "expected 2 results"},
		{"underlying type alias", EventWillDeleteAsset, func(string, int) (DeleteResult, error) { return DeleteDidNotDelete, nil }, "parameter 1"},
	}

	for _, tc := range cases {
		spec, ok := EventSpecFor(tc.event)
		if !ok {
			t.Fatalf("%s: no spec for %s", tc.name, tc.event)
		}
		err := ValidateCallback(spec, "mod", tc.candidate)
		if err == nil {
			t.Fatalf("%s: expected rejection", tc.name)
		}
		if !strings.Contains(err.Error(), tc.detail) {
			t.Fatalf("%s: error %q missing detail %q", tc.name, err.Error(), tc.detail)
		}

		var richErr *goerrors.Error
		if !goerrors.As(err, &richErr) {
			t.Fatalf("%s: expected structured error, got %T", tc.name, err)
		}
		if richErr.Category != goerrors.CategoryValidation {
			t.Fatalf("%s: category = %s", tc.name, richErr.Category)
		}
		if richErr.TextCode != AssetsErrorValidationMismatch {
			t.Fatalf("%s: text code = %s", tc.name, richErr.TextCode)
		}
	}
}

func TestValidateCallbackNamesModuleAndEvent(t *testing.T) {
	spec, _ := EventSpecFor(EventWillSaveAssets)
	err := ValidateCallback(spec, "texture-importer", func(string) error { return nil })
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(err.Error(), "texture-importer") {
		t.Fatalf("error should name the module: %q", err.Error())
	}
	if !strings.Contains(err.Error(), EventWillSaveAssets) {
		t.Fatalf("error should name the event: %q", err.Error())
	}
}

func TestEventSpecForUnknownEvent(t *testing.T) {
	if _, ok := EventSpecFor("OnUnknownEvent"); ok {
		t.Fatal("unknown event should have no spec")
	}
}
