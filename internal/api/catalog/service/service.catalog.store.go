package catalogsvc

import (
	"context"
	"fmt"

	"exp_commerce/internal/api/events"
	catalogmodels "exp_commerce/internal/api/catalog/models"
	"exp_commerce/internal/common"
	"exp_commerce/internal/global"
	"exp_commerce/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// EntityStore là giao diện load/ghi raw document cho quy trình duyệt.
// Quy trình duyệt tính toàn bộ merge trên bản sao in-memory rồi ghi lại
// bằng đúng một lần gọi WriteBack.
type EntityStore interface {
	Load(ctx context.Context, entityType string, id primitive.ObjectID) (bson.M, error)
	WriteBack(ctx context.Context, entityType string, id primitive.ObjectID, doc bson.M) error
}

// MongoEntityStore là EntityStore trên MongoDB, resolve collection
// theo entityType qua registry
type MongoEntityStore struct{}

// NewMongoEntityStore tạo mới MongoEntityStore
func NewMongoEntityStore() *MongoEntityStore {
	return &MongoEntityStore{}
}

// collectionFor resolve entityType thành collection tương ứng
func (s *MongoEntityStore) collectionFor(entityType string) (*mongo.Collection, error) {
	var colName string
	switch entityType {
	case catalogmodels.EntityTypeVendor:
		colName = global.MongoDB_ColNames.Vendors
	case catalogmodels.EntityTypeAddon:
		colName = global.MongoDB_ColNames.Addons
	case catalogmodels.EntityTypeEvent:
		colName = global.MongoDB_ColNames.ExperienceEvents
	default:
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Loại entity '%s' không được hỗ trợ trong quy trình duyệt", entityType),
			common.StatusBadRequest,
			nil,
		)
	}

	collection, exist := global.RegistryCollections.Get(colName)
	if !exist {
		return nil, common.NewError(
			common.ErrCodeDatabase,
			fmt.Sprintf("Collection '%s' chưa được đăng ký", colName),
			common.StatusInternalServerError,
			nil,
		)
	}
	return collection, nil
}

// Load đọc raw document của entity theo ID
func (s *MongoEntityStore) Load(ctx context.Context, entityType string, id primitive.ObjectID) (bson.M, error) {
	collection, err := s.collectionFor(entityType)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}
	return doc, nil
}

// WriteBack ghi lại toàn bộ document sau khi merge.
// Đây là lần ghi duy nhất của một lượt submit/approve/reject.
func (s *MongoEntityStore) WriteBack(ctx context.Context, entityType string, id primitive.ObjectID, doc bson.M) error {
	collection, err := s.collectionFor(entityType)
	if err != nil {
		return err
	}

	doc["updatedAt"] = utility.CurrentTimeInMilli()
	delete(doc, "_id")

	result, err := collection.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 {
		return common.ErrNotFound
	}

	doc["_id"] = id
	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: collection.Name(),
		Operation:      events.OpUpdate,
		Document:       doc,
	})
	return nil
}
