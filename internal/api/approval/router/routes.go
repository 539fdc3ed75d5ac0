// Package router đăng ký các route của luồng duyệt thay đổi catalog.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	approvalhdl "exp_commerce/internal/api/approval/handler"
	"exp_commerce/internal/api/middleware"
	apirouter "exp_commerce/internal/api/router"
	"exp_commerce/internal/common"
)

// Register đăng ký tất cả route workflow lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	approvalHandler, err := approvalhdl.NewApprovalHandler()
	if err != nil {
		return fmt.Errorf("tạo ApprovalHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	authed := []fiber.Handler{authMiddleware}
	adminOnly := []fiber.Handler{authMiddleware, middleware.RequireRole(common.RoleAdmin)}

	// POST /workflow/:entityType/:id/submit: vendor đề xuất thay đổi. Body: các field managed + removeBanners
	apirouter.RegisterRouteWithMiddleware(v1, "/workflow", "POST", "/:entityType/:id/submit", authed, approvalHandler.HandleSubmit)

	// POST /workflow/:entityType/:id/approve: admin duyệt, merge pending vào live
	apirouter.RegisterRouteWithMiddleware(v1, "/workflow", "POST", "/:entityType/:id/approve", adminOnly, approvalHandler.HandleApprove)

	// POST /workflow/:entityType/:id/reject: admin từ chối. Body: reason
	apirouter.RegisterRouteWithMiddleware(v1, "/workflow", "POST", "/:entityType/:id/reject", adminOnly, approvalHandler.HandleReject)

	// GET /workflow/:entityType/:id/edit: bản resolved cho form sửa của vendor
	apirouter.RegisterRouteWithMiddleware(v1, "/workflow", "GET", "/:entityType/:id/edit", authed, approvalHandler.HandleGetForEdit)

	// GET /workflow/:entityType/:id/history: lịch sử duyệt, mới nhất trước
	apirouter.RegisterRouteWithMiddleware(v1, "/workflow", "GET", "/:entityType/:id/history", authed, approvalHandler.HandleGetHistory)

	// POST /workflow/last-rejected: record bị từ chối gần nhất cho một loạt entity. Body: ids
	apirouter.RegisterRouteWithMiddleware(v1, "/workflow", "POST", "/last-rejected", authed, approvalHandler.HandleGetLastRejected)

	return nil
}
