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

// VendorProfileService là service quản lý hồ sơ vendor
type VendorProfileService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.VendorProfile]
}

// NewVendorProfileService tạo mới VendorProfileService
func NewVendorProfileService() (*VendorProfileService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Vendors)
	if !exist {
		return nil, fmt.Errorf("failed to get vendors collection: %v", common.ErrNotFound)
	}
	return &VendorProfileService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.VendorProfile](collection),
	}, nil
}

// FindByVendorID tìm hồ sơ theo tài khoản vendor sở hữu
func (s *VendorProfileService) FindByVendorID(ctx context.Context, vendorID primitive.ObjectID) (catalogmodels.VendorProfile, error) {
	filter := map[string]interface{}{"vendorId": vendorID}
	return s.FindOne(ctx, filter, nil)
}

// FindPendingQueue lấy danh sách hồ sơ đang chờ duyệt, phân trang cho màn hình admin
func (s *VendorProfileService) FindPendingQueue(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[catalogmodels.VendorProfile], error) {
	filter := map[string]interface{}{"workflowStatus": catalogmodels.WorkflowStatusPending}
	return s.FindWithPagination(ctx, filter, page, limit, nil)
}
