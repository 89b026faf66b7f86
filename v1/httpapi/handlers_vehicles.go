package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Aleph-Alpha/digitaltwin/v1/vehiclemanager"
)

type vehicleItem struct {
	VehicleID string `json:"vehicleId"`
}

type topicItem struct {
	TopicName string  `json:"topicName"`
	Topic     *string `json:"topic"`
	Priority  int     `json:"priority"`
	TTL       int     `json:"ttl"`
}

func (t topicItem) topic() string {
	if t.Topic == nil {
		return ""
	}
	return *t.Topic
}

type topicListResponse struct {
	TopicList []vehiclemanager.TopicObject `json:"topicList"`
}

func (h *Handler) vehicleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, vehicleListResponse{VehicleList: nonNil(h.vehicles.VehicleList())})
}

func (h *Handler) addVehicle(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var item vehicleItem
	if err := h.schemas.decode(schemaVehicleItem, body, &item); err != nil {
		h.fail(w, r, err)
		return
	}

	if !h.vehicles.AddVehicle(r.Context(), item.VehicleID) {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("vehicle %q already exists", item.VehicleID))
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("vehicle %q added", item.VehicleID))
}

func (h *Handler) removeVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.PathValue("vehicleId")
	if !h.vehicles.RemoveVehicle(r.Context(), vehicleID) {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("vehicle %q does not exist", vehicleID))
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("vehicle %q deleted", vehicleID))
}

func (h *Handler) topicList(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.PathValue("vehicleId")
	topics, ok := h.vehicles.TopicList(vehicleID)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("vehicle %q not found", vehicleID))
		return
	}
	if topics == nil {
		topics = []vehiclemanager.TopicObject{}
	}
	writeJSON(w, http.StatusOK, topicListResponse{TopicList: topics})
}

func (h *Handler) topic(w http.ResponseWriter, r *http.Request) {
	vehicleID, name := r.PathValue("vehicleId"), r.PathValue("topicName")
	t, ok := h.vehicles.Topic(vehicleID, name)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("topic %q not found for vehicle %q", name, vehicleID))
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) addTopic(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.PathValue("vehicleId")
	body, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var item topicItem
	if err := h.schemas.decode(schemaTopicItem, body, &item); err != nil {
		h.fail(w, r, err)
		return
	}

	added := h.vehicles.AddTopic(r.Context(), vehicleID, vehiclemanager.TopicObject{
		Name:     item.TopicName,
		Topic:    item.topic(),
		Priority: item.Priority,
		TTL:      item.TTL,
	})
	if !added {
		writeError(w, r, http.StatusNotFound,
			fmt.Sprintf("vehicle %q does not exist or topic %q already exists", vehicleID, item.TopicName))
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("topic %q for vehicle %q created", item.TopicName, vehicleID))
}

func (h *Handler) updateTopic(w http.ResponseWriter, r *http.Request) {
	vehicleID, name := r.PathValue("vehicleId"), r.PathValue("topicName")
	body, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var item topicItem
	if err := h.schemas.decode(schemaTopicUpdate, body, &item); err != nil {
		h.fail(w, r, err)
		return
	}

	updated := h.vehicles.UpdateTopic(r.Context(), vehicleID, name, vehiclemanager.TopicUpdate{
		Topic:    item.topic(),
		Priority: item.Priority,
		TTL:      item.TTL,
	})
	if !updated {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("topic %q not found for vehicle %q", name, vehicleID))
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("topic %q for vehicle %q updated", name, vehicleID))
}

func (h *Handler) removeTopic(w http.ResponseWriter, r *http.Request) {
	vehicleID, name := r.PathValue("vehicleId"), r.PathValue("topicName")
	if !h.vehicles.RemoveTopic(r.Context(), vehicleID, name) {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("topic %q not found for vehicle %q", name, vehicleID))
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("topic %q for vehicle %q removed", name, vehicleID))
}

func (h *Handler) updateLists(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.UpdateLists(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "lists updated")
}
