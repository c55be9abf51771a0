// Package schema turns raw embedded blobs into normalized, loosely-typed
// trees with stable accessors. Field lookup tolerates missing or renamed
// fields across upstream schema versions: each logical field is resolved
// through a prioritized list of alternate paths, first present wins.
package schema

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ytget/ytx/errs"
	"github.com/ytget/ytx/internal/logger"
	"github.com/ytget/ytx/youtube/blob"
)

var log = logger.WithComponent(logger.ComponentSchema)

// Tree is an immutable normalized view over a decoded blob. All accessors
// report absence instead of failing; only the Require variants return a
// typed error.
type Tree struct {
	kind  string
	value interface{}
}

// Normalize parses a located blob into a Tree. Unknown extra fields never
// fail; only undecodable JSON does.
func Normalize(raw *blob.Raw) (*Tree, error) {
	return NormalizeJSON(raw.Kind.String(), raw.Data)
}

// NormalizeJSON parses loose JSON bytes (for example a continuation
// response body) into a Tree tagged with the given kind.
func NormalizeJSON(kind string, data []byte) (*Tree, error) {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, &errs.BlobMalformedError{Kind: kind, Offset: 0}
	}
	log.Trace("Normalized blob", map[string]interface{}{"kind": kind, "bytes": len(data)})
	return &Tree{kind: kind, value: value}, nil
}

// Kind returns the blob kind this tree was normalized from.
func (t *Tree) Kind() string { return t.kind }

// lookup walks a dotted path. Numeric segments index into lists.
func (t *Tree) lookup(path string) (interface{}, bool) {
	cur := t.value
	if path == "" {
		return cur, cur != nil
	}
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]interface{}:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Sub returns the subtree at path.
func (t *Tree) Sub(path string) (*Tree, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return nil, false
	}
	return &Tree{kind: t.kind, value: v}, true
}

// Str returns the string at path. Numbers are coerced to their decimal
// representation; other types report absence.
func (t *Tree) Str(path string) (string, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10), true
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	}
	return "", false
}

// Int returns the integer at path. Numeric strings are coerced, matching
// upstream's habit of shipping counts and lengths as strings.
func (t *Tree) Int(path string) (int64, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// Bool returns the boolean at path.
func (t *Tree) Bool(path string) (bool, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// List returns the elements at path as subtrees.
func (t *Tree) List(path string) ([]*Tree, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return nil, false
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	trees := make([]*Tree, len(items))
	for i, item := range items {
		trees[i] = &Tree{kind: t.kind, value: item}
	}
	return trees, true
}

// StrList returns the string elements at path, skipping non-strings.
func (t *Tree) StrList(path string) ([]string, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return nil, false
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// FirstStr tries each path in priority order and returns the first string
// present.
func (t *Tree) FirstStr(paths ...string) (string, bool) {
	for _, p := range paths {
		if s, ok := t.Str(p); ok {
			return s, true
		}
	}
	return "", false
}

// FirstInt tries each path in priority order and returns the first integer
// present.
func (t *Tree) FirstInt(paths ...string) (int64, bool) {
	for _, p := range paths {
		if n, ok := t.Int(p); ok {
			return n, true
		}
	}
	return 0, false
}

// FirstList tries each path in priority order and returns the first list
// present.
func (t *Tree) FirstList(paths ...string) ([]*Tree, bool) {
	for _, p := range paths {
		if items, ok := t.List(p); ok {
			return items, true
		}
	}
	return nil, false
}

// FirstSub tries each path in priority order and returns the first subtree
// present.
func (t *Tree) FirstSub(paths ...string) (*Tree, bool) {
	for _, p := range paths {
		if sub, ok := t.Sub(p); ok {
			return sub, true
		}
	}
	return nil, false
}

// RequireStr is FirstStr for fields required by every known schema variant.
// Absence is a schema violation reported against the highest-priority path.
func (t *Tree) RequireStr(paths ...string) (string, error) {
	if s, ok := t.FirstStr(paths...); ok {
		return s, nil
	}
	return "", &errs.SchemaViolationError{Kind: t.kind, Path: paths[0]}
}

// RequireList is FirstList for required list fields.
func (t *Tree) RequireList(paths ...string) ([]*Tree, error) {
	if items, ok := t.FirstList(paths...); ok {
		return items, nil
	}
	return nil, &errs.SchemaViolationError{Kind: t.kind, Path: paths[0]}
}
