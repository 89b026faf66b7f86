package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Aleph-Alpha/digitaltwin/v1/postgres"
)

type vehicleListResponse struct {
	VehicleList []string `json:"vehicleList"`
}

type vehicleCountResponse struct {
	VehicleCount int64 `json:"vehicleCount"`
}

type historyResponse struct {
	VehicleID string                  `json:"vehicleId"`
	Inserts   []postgres.InsertRecord `json:"inserts"`
}

func requireQuery(r *http.Request, names ...string) ([]string, error) {
	q := r.URL.Query()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = q.Get(n)
		if out[i] == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidParameter, n)
		}
	}
	return out, nil
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return body, nil
}

func (h *Handler) getState(structured bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		args, err := requireQuery(r, "vehicleId")
		if err != nil {
			h.fail(w, r, err)
			return
		}

		state, err := h.state.Get(r.Context(), args[0], structured)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if len(state) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, state)
	})
}

func (h *Handler) listByKeyValue(w http.ResponseWriter, r *http.Request) {
	args, err := requireQuery(r, "key", "value")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ids, err := h.state.ListByKeyValue(r.Context(), args[0], args[1])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleListResponse{VehicleList: nonNil(ids)})
}

func (h *Handler) countByKeyValue(w http.ResponseWriter, r *http.Request) {
	args, err := requireQuery(r, "key", "value")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	n, err := h.state.CountByKeyValue(r.Context(), args[0], args[1])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleCountResponse{VehicleCount: n})
}

func (h *Handler) listByQuery(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ids, err := h.state.ListByQuery(r.Context(), body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleListResponse{VehicleList: nonNil(ids)})
}

func (h *Handler) countByQuery(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	n, err := h.state.CountByQuery(r.Context(), body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleCountResponse{VehicleCount: n})
}

func (h *Handler) insert(transform bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		args, err := requireQuery(r, "vehicleId")
		if err != nil {
			h.fail(w, r, err)
			return
		}
		body, err := h.readBody(w, r)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		owner := r.URL.Query().Get("owner")
		if err := h.state.Insert(r.Context(), owner, args[0], body, transform); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func (h *Handler) flush(w http.ResponseWriter, r *http.Request) {
	args, err := requireQuery(r, "vehicleId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.state.Flush(r.Context(), args[0]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	args, err := requireQuery(r, "vehicleId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.fail(w, r, fmt.Errorf("%w: limit must be a non-negative integer", ErrInvalidParameter))
			return
		}
	}

	recs, err := h.state.History(r.Context(), args[0], limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if recs == nil {
		recs = []postgres.InsertRecord{}
	}
	writeJSON(w, http.StatusOK, historyResponse{VehicleID: args[0], Inserts: recs})
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
