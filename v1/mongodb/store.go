package mongodb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aleph-Alpha/digitaltwin/v1/statetree"
)

const (
	vehicleIDField = "vehicleId"
	stateField     = "state"
)

var _ StateStore = (*Mongo)(nil)

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// FindOne loads the state document of a vehicle.
func (m *Mongo) FindOne(ctx context.Context, vehicleID string) (*StateDocument, error) {
	var doc StateDocument
	err := m.collection().FindOne(ctx, bson.D{{Key: vehicleIDField, Value: vehicleID}}).Decode(&doc)
	if err != nil {
		return nil, TranslateError(err)
	}
	if doc.State == nil {
		doc.State = make(statetree.Flat)
	}
	return &doc, nil
}

// FindVehicleIDs runs filter and returns the vehicle IDs of the matches in
// store order.
func (m *Mongo) FindVehicleIDs(ctx context.Context, filter bson.D) ([]string, error) {
	if filter == nil {
		filter = bson.D{}
	}

	cursor, err := m.collection().Find(ctx, filter,
		options.Find().SetProjection(bson.D{{Key: vehicleIDField, Value: 1}, {Key: "_id", Value: 0}}))
	if err != nil {
		return nil, TranslateError(err)
	}
	defer cursor.Close(ctx)

	ids := make([]string, 0)
	for cursor.Next(ctx) {
		var row struct {
			VehicleID string `bson:"vehicleId"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, TranslateError(err)
		}
		ids = append(ids, row.VehicleID)
	}
	if err := cursor.Err(); err != nil {
		return nil, TranslateError(err)
	}
	return ids, nil
}

// Count returns the number of documents matching filter.
func (m *Mongo) Count(ctx context.Context, filter bson.D) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	n, err := m.collection().CountDocuments(ctx, filter)
	return n, TranslateError(err)
}

// UpsertLeaves writes leaves in one atomic update.
//
// Keys are stored with "." replaced by "/". Each leaf becomes
// {value, owner, lastModified, hasConflict} where hasConflict is true when the
// leaf already existed with a different owner and a different value.
func (m *Mongo) UpsertLeaves(ctx context.Context, vehicleID, owner string, leaves map[string]any) error {
	if len(leaves) == 0 {
		return nil
	}

	pipeline, err := leafUpdatePipeline(owner, leaves, now())
	if err != nil {
		return err
	}

	_, err = m.collection().UpdateOne(ctx,
		bson.D{{Key: vehicleIDField, Value: vehicleID}},
		pipeline,
		options.Update().SetUpsert(true))
	return TranslateError(err)
}

// EncodeLeafPath converts a client leaf key into its stored form.
func EncodeLeafPath(key string) (string, error) {
	path := strings.ReplaceAll(key, ".", "/")
	if path == "" || strings.HasPrefix(path, "$") {
		return "", fmt.Errorf("%w: %q", ErrInvalidLeafPath, key)
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			return "", fmt.Errorf("%w: %q has an empty segment", ErrInvalidLeafPath, key)
		}
	}
	return path, nil
}

func leafUpdatePipeline(owner string, leaves map[string]any, at time.Time) (mongo.Pipeline, error) {
	keys := make([]string, 0, len(leaves))
	for k := range leaves {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := make(bson.D, 0, len(keys))
	seen := make(map[string]string, len(keys))
	for _, k := range keys {
		path, err := EncodeLeafPath(k)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[path]; dup {
			return nil, fmt.Errorf("%w: %q and %q map to the same leaf", ErrInvalidLeafPath, other, k)
		}
		seen[path] = k

		field := stateField + "." + path
		previous := "$" + field
		value := bson.D{{Key: "$literal", Value: leaves[k]}}

		set = append(set, bson.E{Key: field, Value: bson.D{
			{Key: "value", Value: value},
			{Key: "owner", Value: bson.D{{Key: "$literal", Value: owner}}},
			{Key: "lastModified", Value: at},
			{Key: "hasConflict", Value: bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "$ne", Value: bson.A{bson.D{{Key: "$type", Value: previous}}, "missing"}}},
				bson.D{{Key: "$ne", Value: bson.A{previous + ".owner", bson.D{{Key: "$literal", Value: owner}}}}},
				bson.D{{Key: "$ne", Value: bson.A{previous + ".value", value}}},
			}}}},
		}})
	}

	return mongo.Pipeline{{{Key: "$set", Value: set}}}, nil
}
