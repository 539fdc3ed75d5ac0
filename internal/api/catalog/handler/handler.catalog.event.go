package cataloghdl

import (
	"fmt"

	basehdl "exp_commerce/internal/api/base/handler"
	catalogdto "exp_commerce/internal/api/catalog/dto"
	catalogmodels "exp_commerce/internal/api/catalog/models"
	catalogsvc "exp_commerce/internal/api/catalog/service"

	"github.com/gofiber/fiber/v3"
)

// ExperienceEventHandler xử lý các request liên quan đến sự kiện trải nghiệm
type ExperienceEventHandler struct {
	*basehdl.BaseHandler[catalogmodels.ExperienceEvent, catalogdto.ExperienceEventCreateInput, catalogdto.ExperienceEventUpdateInput]
	ExperienceEventService *catalogsvc.ExperienceEventService
}

// NewExperienceEventHandler tạo mới ExperienceEventHandler
func NewExperienceEventHandler() (*ExperienceEventHandler, error) {
	eventService, err := catalogsvc.NewExperienceEventService()
	if err != nil {
		return nil, fmt.Errorf("failed to create experience event service: %v", err)
	}
	hdl := &ExperienceEventHandler{
		ExperienceEventService: eventService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[catalogmodels.ExperienceEvent, catalogdto.ExperienceEventCreateInput, catalogdto.ExperienceEventUpdateInput](eventService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash", "pendingChanges"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// HandlePendingQueue trả về danh sách sự kiện đang chờ duyệt, phân trang
func (h *ExperienceEventHandler) HandlePendingQueue(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		result, err := h.ExperienceEventService.FindPendingQueue(c.Context(), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}
