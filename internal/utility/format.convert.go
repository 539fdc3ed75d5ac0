package utility

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// P2Int64 chuyển đổi chuỗi thành int64, trả về 0 nếu không hợp lệ
func P2Int64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// String2ObjectID chuyển đổi chuỗi hex thành ObjectID.
// Chuỗi không hợp lệ trả về NilObjectID.
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}

// ObjectID2String chuyển đổi ObjectID thành chuỗi hex
func ObjectID2String(id primitive.ObjectID) string {
	return id.Hex()
}

// StringArray2ObjectIDArray chuyển đổi mảng chuỗi thành mảng ObjectID
func StringArray2ObjectIDArray(ids []string) []primitive.ObjectID {
	var objectIDs []primitive.ObjectID
	for _, id := range ids {
		objectIDs = append(objectIDs, String2ObjectID(id))
	}
	return objectIDs
}
