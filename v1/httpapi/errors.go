package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Aleph-Alpha/digitaltwin/v1/constructionstate"
	"github.com/Aleph-Alpha/digitaltwin/v1/minio"
	"github.com/Aleph-Alpha/digitaltwin/v1/mongodb"
	"github.com/Aleph-Alpha/digitaltwin/v1/postgres"
	"github.com/Aleph-Alpha/digitaltwin/v1/redis"
	"github.com/Aleph-Alpha/digitaltwin/v1/remoteaccess"
	"github.com/Aleph-Alpha/digitaltwin/v1/statequery"
	"github.com/Aleph-Alpha/digitaltwin/v1/statetree"
	"github.com/Aleph-Alpha/digitaltwin/v1/vehiclemanager"
)

// ErrInvalidParameter is returned for missing or malformed query parameters.
var ErrInvalidParameter = errors.New("httpapi: invalid query parameter")

// statusFor maps an error from any layer to the response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidParameter),
		errors.Is(err, ErrInvalidBody),
		errors.Is(err, statequery.ErrInvalidQuery),
		errors.Is(err, statequery.ErrMalformedJSON),
		errors.Is(err, statetree.ErrReservedField),
		errors.Is(err, constructionstate.ErrInvalidOwner),
		errors.Is(err, constructionstate.ErrInvalidPayload),
		errors.Is(err, constructionstate.ErrMissingVehicleID),
		errors.Is(err, mongodb.ErrInvalidLeafPath),
		errors.Is(err, minio.ErrInvalidObjectKey),
		errors.Is(err, minio.ErrUnknownAccount):
		return http.StatusBadRequest

	case errors.Is(err, constructionstate.ErrCommandRejected),
		errors.Is(err, mongodb.ErrStateNotFound),
		errors.Is(err, minio.ErrObjectNotFound),
		errors.Is(err, minio.ErrBucketNotFound),
		errors.Is(err, vehiclemanager.ErrNoUserID),
		errors.Is(err, vehiclemanager.ErrVehicleListUnavailable):
		return http.StatusNotFound

	case errors.Is(err, minio.ErrAccessDenied):
		return http.StatusForbidden

	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, mongodb.ErrTimeout),
		errors.Is(err, postgres.ErrTimeout):
		return http.StatusGatewayTimeout

	case errors.Is(err, remoteaccess.ErrTokenFetch),
		errors.Is(err, remoteaccess.ErrUnauthorized),
		errors.Is(err, remoteaccess.ErrUnexpectedStatus),
		errors.Is(err, remoteaccess.ErrInvalidResponse):
		return http.StatusBadGateway

	case errors.Is(err, mongodb.ErrUnavailable),
		errors.Is(err, postgres.ErrConnection),
		errors.Is(err, minio.ErrUnavailable),
		errors.Is(err, redis.ErrClosed),
		errors.Is(err, redis.ErrPoolTimeout):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: RequestIDFromContext(r.Context())})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// fail writes the response for err. Client errors carry the error text;
// server errors are logged and answered with the generic status text.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", err, map[string]interface{}{
			"path":       r.URL.Path,
			"status":     status,
			"request_id": RequestIDFromContext(r.Context()),
		})
		msg = http.StatusText(status)
	}
	writeError(w, r, status, msg)
}
