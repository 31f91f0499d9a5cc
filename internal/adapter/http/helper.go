package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	accountDomain "disaster-intake-api/internal/domain/account"
	reportDomain "disaster-intake-api/internal/domain/report"
	reportUC "disaster-intake-api/internal/usecase/report"
	"disaster-intake-api/pkg/imagecodec"
)

// Stable external error codes. Internal error strings never reach the
// client; they are logged here instead.
const (
	CodeValidationFailed  = "validation_failed"
	CodeNotFound          = "not_found"
	CodeInvalidTransition = "invalid_transition"
	CodeBadImage          = "bad_image"
	CodeStorageFailed     = "storage_failed"
	CodeDataCorruption    = "data_corruption"
	CodeUnauthorized      = "unauthorized"
	CodeUnsupportedMedia  = "unsupported_media_type"
	CodeInternal          = "internal"
)

func writeError(c echo.Context, err error) error {
	var ve *reportUC.ValidationError
	switch {
	case errors.As(err, &ve):
		details := make([]FieldError, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			details = append(details, FieldError{Field: f, Message: "is required or malformed"})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeValidationFailed, Details: details})
	case errors.Is(err, reportDomain.ErrNotFound), errors.Is(err, accountDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: CodeNotFound})
	case errors.Is(err, reportDomain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: CodeInvalidTransition})
	case errors.Is(err, imagecodec.ErrDecode):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeBadImage})
	case errors.Is(err, imagecodec.ErrStorage):
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: CodeStorageFailed})
	case errors.Is(err, reportDomain.ErrCorruptLocation):
		// persisted invariant violated; worth alerting on
		log.Printf("DATA CORRUPTION on %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: CodeDataCorruption})
	default:
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: CodeInternal})
	}
}
