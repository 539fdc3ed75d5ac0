package cataloghdl

import (
	"fmt"

	basehdl "exp_commerce/internal/api/base/handler"
	catalogdto "exp_commerce/internal/api/catalog/dto"
	catalogmodels "exp_commerce/internal/api/catalog/models"
	catalogsvc "exp_commerce/internal/api/catalog/service"

	"github.com/gofiber/fiber/v3"
)

// AddonHandler xử lý các request liên quan đến dịch vụ bổ sung
type AddonHandler struct {
	*basehdl.BaseHandler[catalogmodels.Addon, catalogdto.AddonCreateInput, catalogdto.AddonUpdateInput]
	AddonService *catalogsvc.AddonService
}

// NewAddonHandler tạo mới AddonHandler
func NewAddonHandler() (*AddonHandler, error) {
	addonService, err := catalogsvc.NewAddonService()
	if err != nil {
		return nil, fmt.Errorf("failed to create addon service: %v", err)
	}
	hdl := &AddonHandler{
		AddonService: addonService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.Addon, catalogdto.AddonCreateInput, catalogdto.AddonUpdateInput](addonService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash", "pendingChanges"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// HandlePendingQueue trả về danh sách addon đang chờ duyệt, phân trang
func (h *AddonHandler) HandlePendingQueue(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		result, err := h.AddonService.FindPendingQueue(c.Context(), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}
