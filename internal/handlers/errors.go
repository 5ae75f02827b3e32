package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"inkpost/internal/apperr"
	"inkpost/internal/logger"
	"inkpost/internal/services"
	"inkpost/internal/utils/helpers"
)

const maxBodyBytes = 1 << 20

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.WithCtx(r.Context())

	var ve *apperr.ValidationError
	var dup *apperr.DuplicateSlugError
	switch {
	case errors.As(err, &ve):
		helpers.FieldsError(w, http.StatusBadRequest, "validation failed", ve.Fields)
	case errors.As(err, &dup):
		helpers.Error(w, http.StatusConflict, dup.Error())
	case errors.Is(err, apperr.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrStoreUnavailable),
		errors.Is(err, services.ErrQueueFull),
		errors.Is(err, services.ErrContactDisabled):
		log.Warn("Service unavailable", zap.Error(err))
		helpers.Error(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		log.Error("Unhandled error", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid json: trailing data")
	}
	return nil
}
