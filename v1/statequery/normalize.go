package statequery

import (
	"net/url"
	"strings"
)

const (
	// StatePrefix is the document field holding all leaves of a vehicle.
	StatePrefix = "state"

	// LastModifiedField is the store-managed timestamp of a leaf. Queries may
	// filter on it but it is never rewritten to a value key.
	LastModifiedField = "lastModified"

	valueField = "value"
)

// Normalize turns a client supplied field name into a leaf path.
//
// URL-encoded names are decoded first (repeatedly, until nothing changes),
// dotted names are converted to the slash convention and anything else is
// returned as is. The result of Normalize is a fixpoint of Normalize.
func Normalize(rawKey string) string {
	key := rawKey
	for strings.Contains(key, "%") {
		decoded, err := url.QueryUnescape(key)
		if err != nil || decoded == key {
			break
		}
		key = decoded
	}

	if strings.Contains(key, ".") {
		return strings.ReplaceAll(key, ".", "/")
	}
	return key
}

// ValueKey returns the store key of the value of the leaf at path.
func ValueKey(path string) string {
	return StatePrefix + "." + path + "." + valueField
}

// LastModifiedKey returns the store key of the modification time of the leaf at path.
func LastModifiedKey(path string) string {
	return StatePrefix + "." + path + "." + LastModifiedField
}
