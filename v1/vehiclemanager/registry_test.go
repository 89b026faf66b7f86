package vehiclemanager

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Vehicles(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.AddVehicle("WVW1"))
	assert.True(t, r.AddVehicle("WVW2"))
	assert.False(t, r.AddVehicle("WVW1"), "duplicate")
	assert.False(t, r.AddVehicle("  "), "blank")

	assert.Equal(t, []string{"WVW1", "WVW2"}, r.Vehicles())
	assert.True(t, r.Contains("WVW2"))

	assert.True(t, r.RemoveVehicle("WVW1"))
	assert.False(t, r.RemoveVehicle("WVW1"))
	assert.Equal(t, []string{"WVW2"}, r.Vehicles())

	_, ok := r.Topics("WVW1")
	assert.False(t, ok)
}

func TestRegistry_AddTopic(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.AddVehicle("WVW1"))

	assert.True(t, r.AddTopic("WVW1", TopicObject{Name: "Heartbeat", Topic: "edgetwin/heartbeat"}))
	assert.False(t, r.AddTopic("WVW1", TopicObject{Name: "Heartbeat"}), "existing name")
	assert.False(t, r.AddTopic("WVW9", TopicObject{Name: "Heartbeat"}), "unknown vehicle")
	assert.False(t, r.AddTopic("WVW1", TopicObject{Name: ""}), "blank name")
	assert.True(t, r.AddTopic("WVW1", TopicObject{Name: "Level", Topic: "cso/level", Priority: 5, TTL: 200}))

	topics, ok := r.Topics("WVW1")
	require.True(t, ok)
	assert.Equal(t, []TopicObject{
		{Name: "Heartbeat", Topic: "edgetwin/heartbeat", TTL: DefaultTTL},
		{Name: "Level", Topic: "cso/level", Priority: 5, TTL: 200},
	}, topics)
}

func TestRegistry_UpdateTopic(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.AddVehicle("WVW1"))
	require.True(t, r.AddTopic("WVW1", TopicObject{Name: "Level", Topic: "cso/level", Priority: 5, TTL: 200}))

	assert.True(t, r.UpdateTopic("WVW1", "Level", TopicUpdate{Priority: 7}))
	got, _ := r.Topic("WVW1", "Level")
	assert.Equal(t, TopicObject{Name: "Level", Topic: "cso/level", Priority: 7, TTL: DefaultTTL}, got)

	assert.True(t, r.UpdateTopic("WVW1", "Level", TopicUpdate{Topic: "cso/level2", TTL: 30}))
	got, _ = r.Topic("WVW1", "Level")
	assert.Equal(t, TopicObject{Name: "Level", Topic: "cso/level2", Priority: 7, TTL: 30}, got)

	assert.False(t, r.UpdateTopic("WVW1", "Missing", TopicUpdate{}))
	assert.False(t, r.UpdateTopic("WVW9", "Level", TopicUpdate{}))
}

func TestRegistry_RemoveTopic(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.AddVehicle("WVW1"))
	require.True(t, r.AddTopic("WVW1", TopicObject{Name: "A"}))
	require.True(t, r.AddTopic("WVW1", TopicObject{Name: "B"}))

	assert.True(t, r.RemoveTopic("WVW1", "A"))
	assert.False(t, r.RemoveTopic("WVW1", "A"))
	assert.False(t, r.RemoveTopic("WVW9", "B"))

	topics, _ := r.Topics("WVW1")
	require.Len(t, topics, 1)
	assert.Equal(t, "B", topics[0].Name)
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.AddVehicle("WVW1"))
	require.True(t, r.AddTopic("WVW1", TopicObject{Name: "A"}))

	topics, _ := r.Topics("WVW1")
	topics[0].Name = "changed"
	vehicles := r.Vehicles()
	vehicles[0] = "changed"

	_, ok := r.Topic("WVW1", "A")
	assert.True(t, ok)
	assert.Equal(t, []string{"WVW1"}, r.Vehicles())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.AddVehicle("WVW1"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.AddTopic("WVW1", TopicObject{Name: string(rune('A' + i%26))})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = r.Topics("WVW1")
		}()
	}
	wg.Wait()

	topics, _ := r.Topics("WVW1")
	assert.Len(t, topics, 26)
}
