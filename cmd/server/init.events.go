package main

import (
	"context"

	"exp_commerce/internal/api/events"
	"exp_commerce/internal/logger"
	"exp_commerce/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitDataChangeAudit đăng ký subscriber ghi audit log cho mọi thay đổi
// dữ liệu phát ra từ tầng CRUD. Gọi một lần sau khi logger đã init.
func InitDataChangeAudit() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		details := map[string]interface{}{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		}

		entityID := ""
		if vendorID := events.GetVendorIDFromDocument(e.Document); vendorID != primitive.NilObjectID {
			entityID = utility.ObjectID2String(vendorID)
			details["vendorId"] = entityID
		}

		logger.LogBackground("data_change", e.CollectionName, entityID, details)
	})
}
