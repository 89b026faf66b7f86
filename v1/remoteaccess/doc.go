// Package remoteaccess talks to the vehicle platform API: it relays commands
// to vehicles, checks vehicle registrations and lists a user's vehicles.
//
// Calls authenticate with client-credentials bearer tokens. Tokens are cached
// per scope in Redis and refreshed once when the platform answers 401.
package remoteaccess
