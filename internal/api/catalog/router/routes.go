// Package router đăng ký các route thuộc domain catalog: vendors, addons, events.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "exp_commerce/internal/api/catalog/handler"
	"exp_commerce/internal/api/middleware"
	apirouter "exp_commerce/internal/api/router"
	"exp_commerce/internal/common"
)

// catalogCRUDConfig: vendor được tạo và xóa entity của mình, nhưng không
// được update trực tiếp. Mọi chỉnh sửa field managed đi qua luồng duyệt,
// route update riêng bên dưới chỉ dành cho admin.
var catalogCRUDConfig = apirouter.CRUDConfig{
	InsOne: true, InsMany: true,
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: true,
	UpdOne: false, UpdMany: false, UpdById: false,
	FindUpd: false,
	DelOne:  true, DelMany: true, DelById: true,
	Count: true, Distinct: true,
	Upsert: false, Exists: true,
}

// Register đăng ký tất cả route catalog lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	vendorHandler, err := cataloghdl.NewVendorProfileHandler()
	if err != nil {
		return fmt.Errorf("tạo VendorProfileHandler: %w", err)
	}
	addonHandler, err := cataloghdl.NewAddonHandler()
	if err != nil {
		return fmt.Errorf("tạo AddonHandler: %w", err)
	}
	eventHandler, err := cataloghdl.NewExperienceEventHandler()
	if err != nil {
		return fmt.Errorf("tạo ExperienceEventHandler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/vendors", vendorHandler, catalogCRUDConfig, false)
	r.RegisterCRUDRoutes(v1, "/addons", addonHandler, catalogCRUDConfig, false)
	r.RegisterCRUDRoutes(v1, "/events", eventHandler, catalogCRUDConfig, false)

	authMiddleware := middleware.AuthMiddleware()
	adminOnly := []fiber.Handler{authMiddleware, middleware.RequireRole(common.RoleAdmin)}

	// PUT <prefix>/update-by-id/:id: admin sửa trực tiếp, bỏ qua luồng duyệt
	apirouter.RegisterRouteWithMiddleware(v1, "/vendors", "PUT", "/update-by-id/:id", adminOnly, vendorHandler.UpdateById)
	apirouter.RegisterRouteWithMiddleware(v1, "/addons", "PUT", "/update-by-id/:id", adminOnly, addonHandler.UpdateById)
	apirouter.RegisterRouteWithMiddleware(v1, "/events", "PUT", "/update-by-id/:id", adminOnly, eventHandler.UpdateById)

	// GET <prefix>/pending-queue: hàng đợi chờ duyệt cho màn hình admin
	apirouter.RegisterRouteWithMiddleware(v1, "/vendors", "GET", "/pending-queue", adminOnly, vendorHandler.HandlePendingQueue)
	apirouter.RegisterRouteWithMiddleware(v1, "/addons", "GET", "/pending-queue", adminOnly, addonHandler.HandlePendingQueue)
	apirouter.RegisterRouteWithMiddleware(v1, "/events", "GET", "/pending-queue", adminOnly, eventHandler.HandlePendingQueue)

	return nil
}
