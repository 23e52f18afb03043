package utils

import "go.mongodb.org/mongo-driver/v2/bson"

// ParseObjectID returns ok=false for anything that is not a 24 char hex id.
func ParseObjectID(hex string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, false
	}
	return oid, true
}
