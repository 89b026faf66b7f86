// Package vehiclemanager keeps the list of managed vehicles and the telemetry
// topics offered for each of them. Every change is announced on the message
// bus so that edge components can follow the registry.
package vehiclemanager
