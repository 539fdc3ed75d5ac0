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

// AddonService là service quản lý các dịch vụ bổ sung của vendor
type AddonService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Addon]
}

// NewAddonService tạo mới AddonService
func NewAddonService() (*AddonService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Addons)
	if !exist {
		return nil, fmt.Errorf("failed to get addons collection: %v", common.ErrNotFound)
	}
	return &AddonService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Addon](collection),
	}, nil
}

// FindByVendor lấy tất cả add-on của một vendor
func (s *AddonService) FindByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]catalogmodels.Addon, error) {
	filter := map[string]interface{}{"vendorId": vendorID}
	return s.Find(ctx, filter, nil)
}

// FindPendingQueue lấy danh sách add-on đang chờ duyệt, phân trang cho màn hình admin
func (s *AddonService) FindPendingQueue(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[catalogmodels.Addon], error) {
	filter := map[string]interface{}{"workflowStatus": catalogmodels.WorkflowStatusPending}
	return s.FindWithPagination(ctx, filter, page, limit, nil)
}
