// Package constructionstate serves a vehicle's construction state: reading it
// as flat leaves or as a nested tree, querying vehicles by key/value pairs or
// by JSON queries, inserting client payloads and flushing the state back to
// the vehicle.
//
// Inserts are audited in the postgres ledger and announced as kafka events.
// Neither side channel can fail an insert; their errors are logged.
package constructionstate
