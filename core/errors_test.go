package core

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestAssetErrorMapperNil(t *testing.T) {
	if got := assetErrorMapper(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestAssetErrorMapperPreservesRichErrors(t *testing.T) {
	original := goerrors.New("bad input", goerrors.CategoryBadInput)
	mapped := assetErrorMapper(original)
	if mapped == nil {
		t.Fatal("expected mapped error")
	}
	if mapped.Category != goerrors.CategoryBadInput {
		t.Fatalf("category = %s", mapped.Category)
	}
	if mapped.Code != http.StatusBadRequest {
		t.Fatalf("code = %d", mapped.Code)
	}
	if mapped.TextCode != AssetsErrorBadInput {
		t.Fatalf("text code = %s", mapped.TextCode)
	}
}

func TestAssetErrorMapperClassifiesPlainErrors(t *testing.T) {
	cases := []struct {
		message  string
		textCode string
		category goerrors.Category
	}{
		{"a team license is required", AssetsErrorLicenseRequired, goerrors.CategoryAuthz},
		{"handler \"x\" failed during OnWillCreateAsset", AssetsErrorHandlerFault, goerrors.CategoryOperation},
		{"callback signature mismatch", AssetsErrorValidationMismatch, goerrors.CategoryValidation},
		{"path is required", AssetsErrorBadInput, goerrors.CategoryBadInput},
	}
	for _, tc := range cases {
		mapped := assetErrorMapper(errors.New(tc.message))
		if mapped == nil {
			t.Fatalf("%q: expected mapped error", tc.message)
		}
		if mapped.TextCode != tc.textCode {
			t.Fatalf("%q: text code = %s, want %s", tc.message, mapped.TextCode, tc.textCode)
		}
		if mapped.Category != tc.category {
			t.Fatalf("%q: category = %s, want %s", tc.message, mapped.Category, tc.category)
		}
	}
}

func TestLicenseErrorShape(t *testing.T) {
	err := licenseError(EventWillMoveAsset)
	if err.Category != goerrors.CategoryAuthz {
		t.Fatalf("category = %s", err.Category)
	}
	if err.Code != http.StatusForbidden {
		t.Fatalf("code = %d", err.Code)
	}
	if err.TextCode != AssetsErrorLicenseRequired {
		t.Fatalf("text code = %s", err.TextCode)
	}
	if err.Metadata["event"] != EventWillMoveAsset {
		t.Fatalf("metadata = %v", err.Metadata)
	}
	if !strings.Contains(err.Error(), "team license") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestHandlerFaultWrapsCause(t *testing.T) {
	cause := errors.New("importer exploded")
	err := handlerFault(EventWillCreateAsset, "importer", cause)
	if err.Category != goerrors.CategoryOperation {
		t.Fatalf("category = %s", err.Category)
	}
	if err.TextCode != AssetsErrorHandlerFault {
		t.Fatalf("text code = %s", err.TextCode)
	}
	if !errors.Is(err, cause) {
		t.Fatal("fault should wrap the handler error")
	}
	if err.Metadata["module"] != "importer" || err.Metadata["event"] != EventWillCreateAsset {
		t.Fatalf("metadata = %v", err.Metadata)
	}
}

func TestValidationMismatchShape(t *testing.T) {
	err := validationMismatch("mod", EventWillSaveAssets, "parameter 0: expected string, got int")
	if err.Category != goerrors.CategoryValidation {
		t.Fatalf("category = %s", err.Category)
	}
	if err.Code != http.StatusBadRequest {
		t.Fatalf("code = %d", err.Code)
	}
	if err.Metadata["detail"] == "" {
		t.Fatalf("metadata = %v", err.Metadata)
	}
}

func TestDefaultAssetTextCodeCoversCategories(t *testing.T) {
	cases := map[goerrors.Category]string{
		goerrors.CategoryBadInput:   AssetsErrorBadInput,
		goerrors.CategoryValidation: AssetsErrorValidationMismatch,
		goerrors.CategoryAuthz:      AssetsErrorLicenseRequired,
		goerrors.CategoryOperation:  AssetsErrorHandlerFault,
		goerrors.CategoryExternal:   AssetsErrorCollaborator,
		goerrors.CategoryInternal:   AssetsErrorInternal,
	}
	for category, want := range cases {
		if got := defaultAssetTextCode(category); got != want {
			t.Fatalf("%s: got %s, want %s", category, got, want)
		}
	}
}
