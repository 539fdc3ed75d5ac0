package approvalsvc

import (
	"context"
	"fmt"

	approvalmodels "exp_commerce/internal/api/approval/models"
	basesvc "exp_commerce/internal/api/base/service"
	"exp_commerce/internal/common"
	"exp_commerce/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeRecordService quản lý lịch sử duyệt thay đổi.
// Record chỉ được thêm mới, không bao giờ sửa hay xóa.
type ChangeRecordService struct {
	*basesvc.BaseServiceMongoImpl[approvalmodels.ChangeRecord]
}

// NewChangeRecordService tạo mới ChangeRecordService
func NewChangeRecordService() (*ChangeRecordService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ChangeRecords)
	if !exist {
		return nil, fmt.Errorf("failed to get change_records collection: %v", common.ErrNotFound)
	}
	return &ChangeRecordService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[approvalmodels.ChangeRecord](collection),
	}, nil
}

// GetHistory lấy toàn bộ lịch sử duyệt của một entity, mới nhất trước
func (s *ChangeRecordService) GetHistory(ctx context.Context, entityID primitive.ObjectID) ([]approvalmodels.ChangeRecord, error) {
	filter := map[string]interface{}{"entityId": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return s.Find(ctx, filter, opts)
}

// GetLastRejected lấy record rejected gần nhất cho từng entity trong danh sách.
// Entity chưa từng bị reject có giá trị nil trong map kết quả.
func (s *ChangeRecordService) GetLastRejected(ctx context.Context, entityIDs []primitive.ObjectID) (map[primitive.ObjectID]*approvalmodels.ChangeRecord, error) {
	result := make(map[primitive.ObjectID]*approvalmodels.ChangeRecord, len(entityIDs))
	if len(entityIDs) == 0 {
		return result, nil
	}

	filter := map[string]interface{}{
		"entityId": map[string]interface{}{"$in": entityIDs},
		"status":   approvalmodels.ChangeStatusRejected,
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	records, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	for _, id := range entityIDs {
		result[id] = nil
	}
	// Records đã sort mới nhất trước nên record đầu tiên của mỗi entity là bản gần nhất
	for i := range records {
		record := records[i]
		if existing, ok := result[record.EntityID]; ok && existing == nil {
			result[record.EntityID] = &record
		}
	}
	return result, nil
}

// GetLastRejectedOne lấy record rejected gần nhất của một entity,
// trả về common.ErrNotFound nếu entity chưa từng bị reject
func (s *ChangeRecordService) GetLastRejectedOne(ctx context.Context, entityID primitive.ObjectID) (approvalmodels.ChangeRecord, error) {
	filter := map[string]interface{}{
		"entityId": entityID,
		"status":   approvalmodels.ChangeStatusRejected,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return s.FindOne(ctx, filter, opts)
}
