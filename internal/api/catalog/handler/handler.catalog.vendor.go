package cataloghdl

import (
	"fmt"

	basehdl "exp_commerce/internal/api/base/handler"
	catalogdto "exp_commerce/internal/api/catalog/dto"
	catalogmodels "exp_commerce/internal/api/catalog/models"
	catalogsvc "exp_commerce/internal/api/catalog/service"

	"github.com/gofiber/fiber/v3"
)

// VendorProfileHandler xử lý các request liên quan đến hồ sơ vendor
type VendorProfileHandler struct {
	*basehdl.BaseHandler[catalogmodels.VendorProfile, catalogdto.VendorProfileCreateInput, catalogdto.VendorProfileUpdateInput]
	VendorProfileService *catalogsvc.VendorProfileService
}

// NewVendorProfileHandler tạo mới VendorProfileHandler
func NewVendorProfileHandler() (*VendorProfileHandler, error) {
	vendorProfileService, err := catalogsvc.NewVendorProfileService()
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor profile service: %v", err)
	}
	hdl := &VendorProfileHandler{
		VendorProfileService: vendorProfileService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.VendorProfile, catalogdto.VendorProfileCreateInput, catalogdto.VendorProfileUpdateInput](vendorProfileService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash", "pendingChanges"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// HandlePendingQueue trả về danh sách hồ sơ đang chờ duyệt, phân trang
func (h *VendorProfileHandler) HandlePendingQueue(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		result, err := h.VendorProfileService.FindPendingQueue(c.Context(), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}
