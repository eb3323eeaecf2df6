package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	AssetsErrorBadInput           = "ASSETS_BAD_INPUT"
	AssetsErrorValidationMismatch = "ASSETS_VALIDATION_MISMATCH"
	AssetsErrorLicenseRequired    = "ASSETS_LICENSE_REQUIRED"
	AssetsErrorHandlerFault       = "ASSETS_HANDLER_FAULT"
	AssetsErrorCollaborator       = "ASSETS_COLLABORATOR_FAILED"
	AssetsErrorInternal           = "ASSETS_INTERNAL_ERROR"
)

func assetErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureAssetErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "license"):
		return newAssetError(err.Error(), goerrors.CategoryAuthz, AssetsErrorLicenseRequired)
	case strings.Contains(msg, "handler") && strings.Contains(msg, "failed"):
		return newAssetError(err.Error(), goerrors.CategoryOperation, AssetsErrorHandlerFault)
	case strings.Contains(msg, "signature"), strings.Contains(msg, "mismatch"):
		return newAssetError(err.Error(), goerrors.CategoryValidation, AssetsErrorValidationMismatch)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newAssetError(err.Error(), goerrors.CategoryBadInput, AssetsErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureAssetErrorEnvelope(mapped)
}

func newAssetError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureAssetErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureAssetErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = assetHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultAssetTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultAssetTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput:
		return AssetsErrorBadInput
	case goerrors.CategoryValidation:
		return AssetsErrorValidationMismatch
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return AssetsErrorLicenseRequired
	case goerrors.CategoryOperation:
		return AssetsErrorHandlerFault
	case goerrors.CategoryExternal:
		return AssetsErrorCollaborator
	default:
		return AssetsErrorInternal
	}
}

func assetHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// licenseError is the fatal verdict of the license gate: the current
// operation aborts, the process keeps running.
func licenseError(event string) *goerrors.Error {
	return goerrors.New(
		fmt.Sprintf("core: %s requires a team license", event),
		goerrors.CategoryAuthz,
	).
		WithTextCode(AssetsErrorLicenseRequired).
		WithCode(http.StatusForbidden).
		WithMetadata(map[string]any{"event": event})
}

// handlerFault wraps an error raised inside a handler. Handler misbehavior is
// a programming error in that handler, so the fault propagates to the caller
// with enough context to name the offender.
func handlerFault(event string, module string, err error) *goerrors.Error {
	return goerrors.Wrap(
		err,
		goerrors.CategoryOperation,
		fmt.Sprintf("core: handler %q failed during %s", module, event),
	).
		WithTextCode(AssetsErrorHandlerFault).
		WithCode(http.StatusInternalServerError).
		WithMetadata(map[string]any{"event": event, "module": module})
}

func validationMismatch(module string, event string, detail string) *goerrors.Error {
	return goerrors.New(
		fmt.Sprintf("core: callback %s.%s signature mismatch: %s", module, event, detail),
		goerrors.CategoryValidation,
	).
		WithTextCode(AssetsErrorValidationMismatch).
		WithCode(http.StatusBadRequest).
		WithMetadata(map[string]any{"event": event, "module": module, "detail": detail})
}
