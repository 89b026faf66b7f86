package statetree

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// PathSeparator joins the segments of a leaf path.
const PathSeparator = "/"

// ToTree rebuilds the nested client view of a flat state map.
//
// Paths are processed in lexicographic order. Each path becomes a chain of
// nested objects ending in the leaf value rendered as a string, and the chains
// are merged with Merge. When two paths collide on a non-object position the
// later path wins. Leaves that cannot be placed are reported in the result and
// left out; they never abort the build.
func ToTree(flat Flat) TreeResult {
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	res := TreeResult{Tree: make(map[string]any, len(paths))}
	for _, p := range paths {
		branch, err := buildBranch(p, flat[p].Value)
		if err != nil {
			res.Failures = append(res.Failures, &PartialTreeBuildFailure{Path: p, Err: err})
			continue
		}
		Merge(res.Tree, branch)
		res.Built++
	}
	return res
}

func buildBranch(path string, value any) (map[string]any, error) {
	segments := strings.Split(path, PathSeparator)
	for _, s := range segments {
		if s == "" {
			return nil, errEmptySegment
		}
	}

	rendered, err := renderValue(value)
	if err != nil {
		return nil, err
	}

	node := map[string]any{segments[len(segments)-1]: rendered}
	for i := len(segments) - 2; i >= 0; i-- {
		node = map[string]any{segments[i]: node}
	}
	return node, nil
}

// Merge deep-merges src into dst. Objects are combined key by key, two arrays
// at the same position are unioned without duplicates, anything else in src
// replaces what dst holds.
func Merge(dst, src map[string]any) {
	for k, sv := range src {
		dv, ok := dst[k]
		if !ok {
			dst[k] = sv
			continue
		}

		switch s := sv.(type) {
		case map[string]any:
			if d, ok := dv.(map[string]any); ok {
				Merge(d, s)
				continue
			}
		case []any:
			if d, ok := dv.([]any); ok {
				dst[k] = unionArrays(d, s)
				continue
			}
		}
		dst[k] = sv
	}
}

func unionArrays(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]any{a, b} {
		for _, v := range list {
			key := fmt.Sprintf("%T:%v", v, v)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// renderValue converts a stored leaf value into its client form: scalars
// become strings, arrays keep their shape with rendered elements.
func renderValue(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return renderArray(t)
	case bson.A:
		return renderArray(t)
	case map[string]any, bson.M, bson.D:
		return nil, errObjectValue
	default:
		return renderScalar(t), nil
	}
}

func renderArray(items []any) (any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		rendered, err := renderValue(item)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

func renderScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}

// ToFlat flattens a nested insert payload into leaf paths. Objects are
// descended into; every other value, arrays and null included, becomes a leaf
// at the slash-joined path. Paths are not normalized.
//
// The payload is rejected with a *ReservedFieldError if it sets a reserved
// field anywhere.
func ToFlat(nested map[string]any) (map[string]any, error) {
	if err := CheckReserved(nested); err != nil {
		return nil, err
	}

	flat := make(map[string]any)
	flatten("", nested, flat)
	return flat, nil
}

func flatten(prefix string, obj map[string]any, out map[string]any) {
	for k, v := range obj {
		path := k
		if prefix != "" {
			path = prefix + PathSeparator + k
		}

		if child, ok := v.(map[string]any); ok {
			flatten(path, child, out)
			continue
		}
		out[path] = v
	}
}

// CheckReserved walks a payload, arrays included, and returns a
// *ReservedFieldError for the first reserved property in key order.
func CheckReserved(payload map[string]any) error {
	return checkReserved("", payload)
}

func checkReserved(prefix string, v any) error {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			path := k
			if prefix != "" {
				path = prefix + PathSeparator + k
			}
			if isReserved(k) {
				return &ReservedFieldError{Path: path, Field: k}
			}
			if err := checkReserved(path, t[k]); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range t {
			if err := checkReserved(prefix+"["+strconv.Itoa(i)+"]", item); err != nil {
				return err
			}
		}
	}
	return nil
}

func isReserved(key string) bool {
	for _, r := range ReservedFields {
		if key == r {
			return true
		}
	}
	return false
}
