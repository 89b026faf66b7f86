package vehiclemanager

import (
	"slices"
	"strings"
	"sync"
)

// TopicObject is one telemetry topic a vehicle publishes.
type TopicObject struct {
	Name     string `json:"name"`
	Topic    string `json:"topic"`
	Priority int    `json:"priority"`
	TTL      int    `json:"ttl"`
}

// TopicUpdate carries the fields of a topic update. Zero values leave the
// topic and priority unchanged; a zero TTL resets to DefaultTTL.
type TopicUpdate struct {
	Topic    string
	Priority int
	TTL      int
}

// Registry is the in-memory list of managed vehicles and their topics.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	vehicles []string
	topics   map[string][]TopicObject
}

func NewRegistry() *Registry {
	return &Registry{topics: make(map[string][]TopicObject)}
}

// Vehicles returns a copy of the vehicle list in insertion order.
func (r *Registry) Vehicles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.vehicles)
}

// Contains reports whether vehicleID is managed.
func (r *Registry) Contains(vehicleID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.topics[vehicleID]
	return ok
}

func (r *Registry) Topics(vehicleID string) ([]TopicObject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, ok := r.topics[vehicleID]
	if !ok {
		return nil, false
	}
	return slices.Clone(list), true
}

func (r *Registry) Topic(vehicleID, name string) (TopicObject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.topics[vehicleID]
	i := indexOf(list, name)
	if i < 0 {
		return TopicObject{}, false
	}
	return list[i], true
}

// AddVehicle returns false for a blank or already managed ID.
func (r *Registry) AddVehicle(vehicleID string) bool {
	if blank(vehicleID) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.topics[vehicleID]; ok {
		return false
	}
	r.vehicles = append(r.vehicles, vehicleID)
	r.topics[vehicleID] = []TopicObject{}
	return true
}

// RemoveVehicle drops the vehicle and all its topics.
func (r *Registry) RemoveVehicle(vehicleID string) bool {
	if blank(vehicleID) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.topics[vehicleID]; !ok {
		return false
	}
	r.vehicles = slices.DeleteFunc(r.vehicles, func(v string) bool { return v == vehicleID })
	delete(r.topics, vehicleID)
	return true
}

// AddTopic returns false if the name is blank, the vehicle is unknown or the
// vehicle already has a topic with that name.
func (r *Registry) AddTopic(vehicleID string, t TopicObject) bool {
	if blank(vehicleID) || blank(t.Name) {
		return false
	}
	if t.TTL == 0 {
		t.TTL = DefaultTTL
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	list, ok := r.topics[vehicleID]
	if !ok || indexOf(list, t.Name) >= 0 {
		return false
	}
	r.topics[vehicleID] = append(list, t)
	return true
}

func (r *Registry) UpdateTopic(vehicleID, name string, u TopicUpdate) bool {
	if blank(vehicleID) || blank(name) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.topics[vehicleID]
	i := indexOf(list, name)
	if i < 0 {
		return false
	}

	t := &list[i]
	if u.Topic != "" {
		t.Topic = u.Topic
	}
	if u.Priority != 0 {
		t.Priority = u.Priority
	}
	t.TTL = u.TTL
	if t.TTL == 0 {
		t.TTL = DefaultTTL
	}
	return true
}

func (r *Registry) RemoveTopic(vehicleID, name string) bool {
	if blank(vehicleID) || blank(name) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	list, ok := r.topics[vehicleID]
	if !ok {
		return false
	}
	i := indexOf(list, name)
	if i < 0 {
		return false
	}
	r.topics[vehicleID] = slices.Delete(list, i, i+1)
	return true
}

func indexOf(list []TopicObject, name string) int {
	return slices.IndexFunc(list, func(t TopicObject) bool { return t.Name == name })
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
