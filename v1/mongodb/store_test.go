package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEncodeLeafPath(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "color", want: "color"},
		{key: "battery.highVoltage.chargingLevel0", want: "battery/highVoltage/chargingLevel0"},
		{key: "modules/EdgeTwin/version", want: "modules/EdgeTwin/version"},
		{key: "", wantErr: true},
		{key: "$where", wantErr: true},
		{key: "a..b", wantErr: true},
		{key: "a/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := EncodeLeafPath(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLeafPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeafUpdatePipeline(t *testing.T) {
	at := time.Date(2022, 3, 11, 12, 41, 35, 0, time.UTC)

	pipeline, err := leafUpdatePipeline("fleet", map[string]any{
		"color":          "blue",
		"battery.charge": "$80",
	}, at)
	require.NoError(t, err)
	require.Len(t, pipeline, 1)

	stage := pipeline[0]
	require.Equal(t, "$set", stage[0].Key)
	set := stage[0].Value.(bson.D)
	require.Len(t, set, 2)

	// keys are sorted and encoded
	assert.Equal(t, "state.battery/charge", set[0].Key)
	assert.Equal(t, "state.color", set[1].Key)

	leaf := set[0].Value.(bson.D).Map()
	assert.Equal(t, bson.D{{Key: "$literal", Value: "$80"}}, leaf["value"])
	assert.Equal(t, bson.D{{Key: "$literal", Value: "fleet"}}, leaf["owner"])
	assert.Equal(t, at, leaf["lastModified"])
	assert.Contains(t, leaf, "hasConflict")
}

func TestLeafUpdatePipeline_RejectsCollidingKeys(t *testing.T) {
	_, err := leafUpdatePipeline("fleet", map[string]any{
		"a.b": "1",
		"a/b": "2",
	}, time.Now())

	assert.ErrorIs(t, err, ErrInvalidLeafPath)
}

func TestTranslateError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no documents", mongo.ErrNoDocuments, ErrStateNotFound},
		{"duplicate key", dup, ErrDuplicateKey},
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"disconnected", mongo.ErrClientDisconnected, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	other := errors.New("something else")
	assert.Same(t, other, TranslateError(other))
}
