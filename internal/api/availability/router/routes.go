// Package router đăng ký các route thuộc domain availability: lịch mở bán của vendor.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	availabilityhdl "exp_commerce/internal/api/availability/handler"
	"exp_commerce/internal/api/middleware"
	apirouter "exp_commerce/internal/api/router"
	"exp_commerce/internal/common"
)

// Register đăng ký tất cả route availability lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	availabilityHandler, err := availabilityhdl.NewAvailabilityHandler()
	if err != nil {
		return fmt.Errorf("tạo AvailabilityHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	authed := []fiber.Handler{authMiddleware}
	vendorOrAdmin := []fiber.Handler{authMiddleware, middleware.RequireRole(common.RoleVendor, common.RoleAdmin)}

	// GET /availability/me: toàn bộ bản ghi lịch của vendor đang đăng nhập
	apirouter.RegisterRouteWithMiddleware(v1, "/availability", "GET", "/me", vendorOrAdmin, availabilityHandler.HandleGetOwnSchedule)

	// PUT /availability/weekly: thay lịch định kỳ hàng tuần
	apirouter.RegisterRouteWithMiddleware(v1, "/availability", "PUT", "/weekly", vendorOrAdmin, availabilityHandler.HandleSetWeeklyPattern)

	// POST /availability/overrides: thêm ngoại lệ đơn ngày (thay thế nếu ngày đã có)
	apirouter.RegisterRouteWithMiddleware(v1, "/availability", "POST", "/overrides", vendorOrAdmin, availabilityHandler.HandleAddOverride)
	// DELETE /availability/overrides: xóa ngoại lệ của một ngày. Body: date
	apirouter.RegisterRouteWithMiddleware(v1, "/availability", "DELETE", "/overrides", vendorOrAdmin, availabilityHandler.HandleRemoveOverride)

	// POST /availability/ranges: thêm ngoại lệ nhiều ngày
	apirouter.RegisterRouteWithMiddleware(v1, "/availability", "POST", "/ranges", vendorOrAdmin, availabilityHandler.HandleAddRange)
	// DELETE /availability/ranges: xóa range theo đúng cặp ngày. Body: startDate, endDate
	apirouter.RegisterRouteWithMiddleware(v1, "/availability", "DELETE", "/ranges", vendorOrAdmin, availabilityHandler.HandleRemoveRange)

	// GET /availability/:vendorId/resolve?date=YYYY-MM-DD: truy vấn trực tiếp một ngày
	apirouter.RegisterRouteWithMiddleware(v1, "/availability", "GET", "/:vendorId/resolve", authed, availabilityHandler.HandleResolveDate)

	// POST /availability/bookable: lọc danh sách vendor còn mở bán cho một ngày
	apirouter.RegisterRouteWithMiddleware(v1, "/availability", "POST", "/bookable", authed, availabilityHandler.HandleFilterBookable)

	return nil
}
