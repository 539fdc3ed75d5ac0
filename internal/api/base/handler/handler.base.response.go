package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"exp_commerce/internal/common"
	"exp_commerce/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// để đảm bảo nội dung tiếng Việt được encode đúng cách
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler bọc handler với recover để bắt panic và xử lý lỗi an toàn.
// Server luôn trả về response cho client, kể cả khi có panic xảy ra.
func (h *BaseHandler[T, CreateInput, UpdateInput]) SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
				"path":  c.Path(),
				"stack": string(debug.Stack()),
			}).Error("Panic trong handler")

			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// HandleResponse chuẩn hóa response trả về cho client theo format thống nhất:
// thành công: {code, message, data, status: "success"}
// lỗi: {code, message, details, status: "error"}
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		HandleError(c, err)
		return
	}

	JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// HandleError trả về lỗi theo envelope thống nhất, dùng được bởi
// các domain handler không embed BaseHandler
func HandleError(c fiber.Ctx, err error) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": customErr.Details,
			"status":  "error",
		})
		return
	}

	JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": err.Error(),
		"status":  "error",
	})
}

// HandleSuccess trả về dữ liệu thành công theo envelope thống nhất,
// dùng được bởi các domain handler không embed BaseHandler
func HandleSuccess(c fiber.Ctx, data interface{}) error {
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}
