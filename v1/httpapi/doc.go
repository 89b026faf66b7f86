// Package httpapi exposes the digital twin over HTTP.
//
// Every route requires an "Authorization: ApiKey <key>" header. The master key
// opens all routes; the API key opens all but flush, vehicle list mutations
// and topic removal. Errors are returned as
//
//	{"error": "...", "requestId": "..."}
//
// with the status chosen by the kind of failure: invalid input is 400, missing
// state or rejected commands are 404, upstream failures are 502 or 504 and
// unavailable stores are 503.
package httpapi
