// Package mongodb stores vehicle construction state in MongoDB.
//
// Every vehicle has one document:
//
//	{
//	    "vehicleId": "WVW123",
//	    "state": {
//	        "battery/highVoltage/chargingLevel0": {
//	            "value": "80",
//	            "owner": "fleet",
//	            "hasConflict": false,
//	            "lastModified": ISODate("2022-03-11T12:41:35Z")
//	        }
//	    }
//	}
//
// Leaf keys never contain "." so that "state.<path>.value" addresses exactly
// one leaf in a filter. Filters come from statequery.Compile and are passed to
// the driver unchanged.
package mongodb
