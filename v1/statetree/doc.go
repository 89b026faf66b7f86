// Package statetree converts vehicle construction state between its stored flat
// form and the nested JSON tree shown to clients.
//
// The store keeps one leaf per slash-delimited path:
//
//	"battery/highVoltage/chargingLevel0": {"value": "80", "hasConflict": false, "lastModified": ...}
//
// ToTree turns that into
//
//	{"battery": {"highVoltage": {"chargingLevel0": "80"}}}
//
// and ToFlat performs the reverse for insert payloads. Leaves that cannot be
// placed in a tree are reported per leaf in TreeResult.Failures instead of
// failing the whole conversion.
package statetree
