package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// CustomBson dùng để tạo các bản đồ truy vấn mongo ($set, $unset, ...) từ struct.
type CustomBson struct{}

// BsonWrapper bao bọc các toán tử cập nhật cơ bản của mongo.
// Gán struct dữ liệu vào trường tương ứng rồi gọi ToMap để được bản đồ truy vấn,
// ví dụ gán vào Set sẽ cho ra { $set: {...} }.
type BsonWrapper struct {
	Set      interface{} `json:"$set,omitempty" bson:"$set,omitempty"`
	Unset    interface{} `json:"$unset,omitempty" bson:"$unset,omitempty"`
	Push     interface{} `json:"$push,omitempty" bson:"$push,omitempty"`
	AddToSet interface{} `json:"$addToSet,omitempty" bson:"$addToSet,omitempty"`
}

// ToMap chuyển đổi struct thành map[string]interface{} qua bson marshal/unmarshal,
// tôn trọng các bson tag của struct.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var result map[string]interface{}
	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	if err := bson.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return result, nil
}

// Set tạo truy vấn $set từ dữ liệu cho trước
func (customBson *CustomBson) Set(data interface{}) (map[string]interface{}, error) {
	return ToMap(BsonWrapper{Set: data})
}

// Unset tạo truy vấn $unset từ dữ liệu cho trước
func (customBson *CustomBson) Unset(data interface{}) (map[string]interface{}, error) {
	return ToMap(BsonWrapper{Unset: data})
}

// Push tạo truy vấn $push từ dữ liệu cho trước
func (customBson *CustomBson) Push(data interface{}) (map[string]interface{}, error) {
	return ToMap(BsonWrapper{Push: data})
}

// AddToSet tạo truy vấn $addToSet từ dữ liệu cho trước
func (customBson *CustomBson) AddToSet(data interface{}) (map[string]interface{}, error) {
	return ToMap(BsonWrapper{AddToSet: data})
}
