package handler

import (
	"fmt"
	"time"

	availabilitydto "exp_commerce/internal/api/availability/dto"
	availabilitymodels "exp_commerce/internal/api/availability/models"
	availabilitysvc "exp_commerce/internal/api/availability/service"
	basehdl "exp_commerce/internal/api/base/handler"
	"exp_commerce/internal/common"
	"exp_commerce/internal/global"
	"exp_commerce/internal/logger"
	"exp_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AvailabilityHandler xử lý các request về lịch mở bán của vendor
type AvailabilityHandler struct {
	service *availabilitysvc.AvailabilityService
}

// NewAvailabilityHandler tạo AvailabilityHandler mới
func NewAvailabilityHandler() (*AvailabilityHandler, error) {
	service, err := availabilitysvc.NewAvailabilityService()
	if err != nil {
		return nil, err
	}
	return &AvailabilityHandler{service: service}, nil
}

// resolveTargetVendor xác định vendor bị tác động bởi một mutation.
// Vendor chỉ được thao tác trên lịch của chính mình; admin được chỉ
// định vendor khác qua trường vendorId.
func (h *AvailabilityHandler) resolveTargetVendor(c fiber.Ctx, requestedVendorID string) (primitive.ObjectID, error) {
	actor, err := basehdl.ActorFromContext(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !actor.IsAdmin() {
		if requestedVendorID != "" && requestedVendorID != actor.ID.Hex() {
			return primitive.NilObjectID, common.NewError(common.ErrCodeAuthRole, "Vendor không được thao tác trên lịch của vendor khác", common.StatusForbidden, nil)
		}
		return actor.ID, nil
	}
	if requestedVendorID == "" {
		return primitive.NilObjectID, common.ErrInvalidInput
	}
	vendorID, err := primitive.ObjectIDFromHex(requestedVendorID)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "VendorId không hợp lệ", common.StatusBadRequest, err)
	}
	return vendorID, nil
}

func parseInput(c fiber.Ctx, out interface{}) error {
	if err := c.Bind().Body(out); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Body không đúng định dạng JSON: %v", err), common.StatusBadRequest, err)
	}
	if err := global.Validate.Struct(out); err != nil {
		return common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("Dữ liệu đầu vào không hợp lệ: %v", err), common.StatusBadRequest, err)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	date, err := utility.ParseDateYMD(value)
	if err != nil {
		return time.Time{}, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Ngày %q không đúng định dạng YYYY-MM-DD", value), common.StatusBadRequest, err)
	}
	return date, nil
}

// HandleGetOwnSchedule trả về toàn bộ bản ghi lịch của vendor đang đăng nhập
func (h *AvailabilityHandler) HandleGetOwnSchedule(c fiber.Ctx) error {
	actor, err := basehdl.ActorFromContext(c)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	record, err := h.service.FindByVendorID(c.Context(), actor.ID)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	return basehdl.HandleSuccess(c, record)
}

// HandleSetWeeklyPattern thay lịch định kỳ hàng tuần
func (h *AvailabilityHandler) HandleSetWeeklyPattern(c fiber.Ctx) error {
	var input availabilitydto.WeeklyPatternInput
	if err := parseInput(c, &input); err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	vendorID, err := h.resolveTargetVendor(c, input.VendorID)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	record, err := h.service.SetWeeklyPattern(c.Context(), vendorID, input.Pattern, input.Slots)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	logger.LogAction("availability_set_weekly", c, map[string]interface{}{
		"vendorId": vendorID.Hex(),
		"pattern":  input.Pattern,
	})
	return basehdl.HandleSuccess(c, record)
}

// HandleAddOverride thêm ngoại lệ đơn ngày
func (h *AvailabilityHandler) HandleAddOverride(c fiber.Ctx) error {
	var input availabilitydto.OverrideInput
	if err := parseInput(c, &input); err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	vendorID, err := h.resolveTargetVendor(c, input.VendorID)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	date, err := parseDate(input.Date)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	record, err := h.service.AddOverride(c.Context(), vendorID, availabilitymodels.DateOverride{
		Date:        date,
		IsAvailable: input.IsAvailable,
		Slots:       input.Slots,
		Reason:      input.Reason,
	})
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	logger.LogAction("availability_add_override", c, map[string]interface{}{
		"vendorId":    vendorID.Hex(),
		"date":        input.Date,
		"isAvailable": input.IsAvailable,
	})
	return basehdl.HandleSuccess(c, record)
}

// HandleRemoveOverride xóa ngoại lệ của một ngày
func (h *AvailabilityHandler) HandleRemoveOverride(c fiber.Ctx) error {
	var input availabilitydto.RemoveOverrideInput
	if err := parseInput(c, &input); err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	vendorID, err := h.resolveTargetVendor(c, input.VendorID)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	date, err := parseDate(input.Date)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	record, err := h.service.RemoveOverride(c.Context(), vendorID, date)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	logger.LogAction("availability_remove_override", c, map[string]interface{}{
		"vendorId": vendorID.Hex(),
		"date":     input.Date,
	})
	return basehdl.HandleSuccess(c, record)
}

// HandleAddRange thêm ngoại lệ nhiều ngày
func (h *AvailabilityHandler) HandleAddRange(c fiber.Ctx) error {
	var input availabilitydto.RangeInput
	if err := parseInput(c, &input); err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	vendorID, err := h.resolveTargetVendor(c, input.VendorID)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	start, err := parseDate(input.StartDate)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	record, err := h.service.AddRange(c.Context(), vendorID, availabilitymodels.DateRange{
		StartDate:   start,
		EndDate:     end,
		IsAvailable: input.IsAvailable,
		Slots:       input.Slots,
		Reason:      input.Reason,
	})
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	logger.LogAction("availability_add_range", c, map[string]interface{}{
		"vendorId":    vendorID.Hex(),
		"startDate":   input.StartDate,
		"endDate":     input.EndDate,
		"isAvailable": input.IsAvailable,
	})
	return basehdl.HandleSuccess(c, record)
}

// HandleRemoveRange xóa range theo đúng cặp ngày
func (h *AvailabilityHandler) HandleRemoveRange(c fiber.Ctx) error {
	var input availabilitydto.RemoveRangeInput
	if err := parseInput(c, &input); err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	vendorID, err := h.resolveTargetVendor(c, input.VendorID)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	start, err := parseDate(input.StartDate)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	record, err := h.service.RemoveRange(c.Context(), vendorID, start, end)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	logger.LogAction("availability_remove_range", c, map[string]interface{}{
		"vendorId":  vendorID.Hex(),
		"startDate": input.StartDate,
		"endDate":   input.EndDate,
	})
	return basehdl.HandleSuccess(c, record)
}

// HandleResolveDate truy vấn trực tiếp trạng thái mở bán của một vendor
// cho một ngày. Vendor chưa cấu hình lịch trả về unavailable kèm reason.
func (h *AvailabilityHandler) HandleResolveDate(c fiber.Ctx) error {
	vendorID, err := primitive.ObjectIDFromHex(c.Params("vendorId"))
	if err != nil {
		basehdl.HandleError(c, common.NewError(common.ErrCodeValidationFormat, "VendorId không hợp lệ", common.StatusBadRequest, err))
		return nil
	}

	var query availabilitydto.ResolveQuery
	if err := c.Bind().Query(&query); err != nil || query.Date == "" {
		basehdl.HandleError(c, common.NewError(common.ErrCodeValidationInput, "Query date là bắt buộc, định dạng YYYY-MM-DD", common.StatusBadRequest, err))
		return nil
	}
	date, err := parseDate(query.Date)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	decision, err := h.service.ResolveVendorDate(c.Context(), vendorID, date)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	return basehdl.HandleSuccess(c, decision)
}

// HandleFilterBookable lọc danh sách vendor còn mở bán cho một ngày.
// Vendor chưa cấu hình lịch vẫn được giữ lại trong kết quả.
func (h *AvailabilityHandler) HandleFilterBookable(c fiber.Ctx) error {
	var input availabilitydto.BookableFilterInput
	if err := parseInput(c, &input); err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	date, err := parseDate(input.Date)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	vendorIDs := make([]primitive.ObjectID, 0, len(input.VendorIDs))
	for _, raw := range input.VendorIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			basehdl.HandleError(c, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("VendorId %q không hợp lệ", raw), common.StatusBadRequest, err))
			return nil
		}
		vendorIDs = append(vendorIDs, id)
	}

	bookable, err := h.service.FilterBookableVendors(c.Context(), vendorIDs, date)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	hexIDs := make([]string, 0, len(bookable))
	for _, id := range bookable {
		hexIDs = append(hexIDs, id.Hex())
	}
	return basehdl.HandleSuccess(c, map[string]interface{}{
		"date":      input.Date,
		"vendorIds": hexIDs,
	})
}
