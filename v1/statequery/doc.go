// Package statequery compiles client construction-state queries into MongoDB filters.
//
// Clients query vehicle state with a small JSON language that mirrors the MongoDB
// query operators without the "$" prefix:
//
//	{"color": "blue"}
//	{"color": {"in": ["blue", "red"], "lastModified": {"gt": "2022-03-11T12:41:35Z"}}}
//	{"or": [{"color": "blue"}, {"brand_name": "Audi"}]}
//
// Field names address leaves of the state document and are rewritten to
// "state.<path>.value". Nested leaves are addressed with a dotted, slashed or
// URL-encoded path; Normalize maps all three forms onto the stored slash form.
//
// The lastModified keyword filters on the store-managed modification time of
// the enclosing field:
//
//	{"color": "blue", "lastModified": {"gt": "2022-03-11T12:41:35Z"}}
//
// compiles to
//
//	{"$and": [{"state.color.value": "blue"}, {"state.color.lastModified": {"$gt": "2022-03-11T12:41:35Z"}}]}
//
// Scalar operands are rendered as strings because leaf values are stored as
// strings. The operands of exists, type, size and mod keep their JSON type.
//
// Compile and Normalize are pure and safe for concurrent use.
package statequery
