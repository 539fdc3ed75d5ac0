package catalogsvc

import (
	"context"
	"fmt"

	basemodels "exp_commerce/internal/api/base/models"
	basesvc "exp_commerce/internal/api/base/service"
	catalogmodels "exp_commerce/internal/api/catalog/models"
	"exp_commerce/internal/common"
	"exp_commerce/internal/global"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExperienceEventService là service quản lý các sự kiện trải nghiệm
type ExperienceEventService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.ExperienceEvent]
}

// NewExperienceEventService tạo mới ExperienceEventService
func NewExperienceEventService() (*ExperienceEventService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ExperienceEvents)
	if !exist {
		return nil, fmt.Errorf("failed to get experience_events collection: %v", common.ErrNotFound)
	}
	return &ExperienceEventService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.ExperienceEvent](collection),
	}, nil
}

// FindByVendor lấy tất cả sự kiện của một vendor
func (s *ExperienceEventService) FindByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]catalogmodels.ExperienceEvent, error) {
	filter := map[string]interface{}{"vendorId": vendorID}
	return s.Find(ctx, filter, nil)
}

// FindPendingQueue lấy danh sách sự kiện đang chờ duyệt, phân trang cho màn hình admin
func (s *ExperienceEventService) FindPendingQueue(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[catalogmodels.ExperienceEvent], error) {
	filter := map[string]interface{}{"workflowStatus": catalogmodels.WorkflowStatusPending}
	return s.FindWithPagination(ctx, filter, page, limit, nil)
}
