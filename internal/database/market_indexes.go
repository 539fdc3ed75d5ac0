// Package database - Index cho các collection marketplace (compound, unique)
// không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"exp_commerce/internal/global"
)

// CreateMarketplaceIndexes tạo các index cho collection marketplace.
// Gọi một lần khi khởi động server, sau khi đăng ký collections vào registry.
func CreateMarketplaceIndexes(ctx context.Context, db *mongo.Database) error {
	// change_records: (entityId, timestamp desc), truy vấn lịch sử theo entity
	changeRecords := db.Collection(global.MongoDB_ColNames.ChangeRecords)
	if _, err := changeRecords.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entityId", Value: 1},
			{Key: "timestamp", Value: -1},
		},
		Options: options.Index().SetName("change_record_entity_time"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// change_records: (entityType, status), hàng đợi pending cho admin
	if _, err := changeRecords.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entityType", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("change_record_type_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// availabilities: vendorId unique, mỗi vendor chỉ có một bản ghi lịch
	availabilities := db.Collection(global.MongoDB_ColNames.Availabilities)
	if _, err := availabilities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "vendorId", Value: 1},
		},
		Options: options.Index().SetName("availability_vendor").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// vendors, addons, experience_events: workflowStatus, lọc hàng đợi duyệt
	for _, colName := range []string{
		global.MongoDB_ColNames.Vendors,
		global.MongoDB_ColNames.Addons,
		global.MongoDB_ColNames.ExperienceEvents,
	} {
		col := db.Collection(colName)
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "workflowStatus", Value: 1},
			},
			Options: options.Index().SetName(colName + "_workflow_status"),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}
	}

	// experience_events, addons: vendorId, truy vấn theo vendor sở hữu
	for _, colName := range []string{
		global.MongoDB_ColNames.Addons,
		global.MongoDB_ColNames.ExperienceEvents,
	} {
		col := db.Collection(colName)
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "vendorId", Value: 1},
			},
			Options: options.Index().SetName(colName + "_vendor"),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
