package statetree

import "time"

// LeafValue is one stored leaf of a vehicle's state document.
// Only Value is client writable; the rest is maintained by the store.
type LeafValue struct {
	Value        any       `bson:"value" json:"value"`
	HasConflict  bool      `bson:"hasConflict" json:"hasConflict"`
	LastModified time.Time `bson:"lastModified" json:"lastModified"`
	Owner        string    `bson:"owner,omitempty" json:"owner,omitempty"`
}

// Flat is the stored representation of a vehicle's state: leaf path to leaf.
type Flat map[string]LeafValue

// TreeResult is the outcome of ToTree. Tree holds every leaf that could be
// placed; Failures lists the leaves that were skipped.
type TreeResult struct {
	Tree     map[string]any
	Built    int
	Failures []*PartialTreeBuildFailure
}

// Complete reports whether every leaf made it into the tree.
func (r TreeResult) Complete() bool {
	return len(r.Failures) == 0
}
