package handler

import (
	"denizquiz/internal/model"
	"denizquiz/internal/transport/rest/middleware"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}

// writeServiceError maps the error taxonomy onto status codes. Store and other
// unexpected failures are logged with the request id and hidden behind a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	log = log.With(zap.String("request_id", middleware.GetRequestID(r.Context())))
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrInvalidEpisodeID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrUpstreamFetch):
		log.Error("upstream failure", zap.Error(err))
		writeError(w, http.StatusBadGateway, "catalog source unavailable")
	default:
		log.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return model.NewValidationError("body", "invalid request body")
	}
	return nil
}

func pathInt(raw, field string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidationError(field, field+" must be an integer")
	}
	return n, nil
}
