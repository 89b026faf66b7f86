package statequery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "color", "color"},
		{"slash path", "battery/highVoltage/chargingLevel0", "battery/highVoltage/chargingLevel0"},
		{"dot path", "battery.highVoltage.chargingLevel0", "battery/highVoltage/chargingLevel0"},
		{"encoded slash", "battery%2FhighVoltage%2FchargingLevel0", "battery/highVoltage/chargingLevel0"},
		{"encoded dot", "battery%2EhighVoltage", "battery/highVoltage"},
		{"double encoded", "api_cso%252Fheartbeat", "api_cso/heartbeat"},
		{"encoded space", "brand%20name", "brand name"},
		{"undecodable percent", "load%zz", "load%zz"},
		{"trailing percent", "charge100%", "charge100%"},
		{"mixed", "modules.EdgeTwin/status", "modules/EdgeTwin/status"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_DotAndSlashFormsAgree(t *testing.T) {
	pairs := [][2]string{
		{"a.b", "a/b"},
		{"battery.highVoltage.chargingState0", "battery/highVoltage/chargingState0"},
		{"modules.CommandModule.version", "modules%2FCommandModule%2Fversion"},
	}

	for _, p := range pairs {
		assert.Equal(t, Normalize(p[0]), Normalize(p[1]), "%s vs %s", p[0], p[1])
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"color",
		"a.b.c",
		"a/b/c",
		"a%2Eb",
		"a%252Eb",
		"100%25",
		"x%2E%25",
		"weird+name",
		"%2B",
		"load%zz",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestValueAndLastModifiedKeys(t *testing.T) {
	assert.Equal(t, "state.battery/level.value", ValueKey("battery/level"))
	assert.Equal(t, "state.battery/level.lastModified", LastModifiedKey("battery/level"))
}
