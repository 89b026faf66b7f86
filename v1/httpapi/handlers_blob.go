package httpapi

import (
	"net/http"
	"strconv"
)

func (h *Handler) largeFileDownload(w http.ResponseWriter, r *http.Request) {
	data, err := h.blobs.GetFile(r.Context(),
		r.PathValue("storageAccount"),
		r.PathValue("containerName"),
		r.PathValue("vehicleId"),
		r.PathValue("serviceId"),
		r.PathValue("blobId"),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(data) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write blob response", err, map[string]interface{}{
			"blob_id":    r.PathValue("blobId"),
			"request_id": RequestIDFromContext(r.Context()),
		})
	}
}
