package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// relayCommand forwards the JSON body to the vehicle. Only an accepted
// command is reported as such; any other upstream status becomes 404.
func (h *Handler) relayCommand(kind string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vehicleID := r.PathValue("vehicleId")
		body, err := h.readBody(w, r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if !json.Valid(body) {
			h.fail(w, r, fmt.Errorf("%w: %s payload is not valid JSON", ErrInvalidBody, kind))
			return
		}

		status, err := h.commands.SendCommand(r.Context(), vehicleID, body)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.metrics.CommandSent(status)

		if status != http.StatusAccepted {
			writeError(w, r, http.StatusNotFound,
				fmt.Sprintf("enqueuing %s command for vehicle %q failed: %d %s", kind, vehicleID, status, http.StatusText(status)))
			return
		}
		writeMessage(w, http.StatusAccepted, fmt.Sprintf("enqueued %s command for vehicle %q", kind, vehicleID))
	})
}
