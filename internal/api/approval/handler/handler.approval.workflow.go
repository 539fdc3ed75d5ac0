package handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	approvaldto "exp_commerce/internal/api/approval/dto"
	approvalsvc "exp_commerce/internal/api/approval/service"
	basehdl "exp_commerce/internal/api/base/handler"
	mediasvc "exp_commerce/internal/api/media"
	"exp_commerce/internal/common"
	"exp_commerce/internal/global"
	"exp_commerce/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovalHandler xử lý các request của luồng duyệt thay đổi catalog
type ApprovalHandler struct {
	workflow *approvalsvc.ApprovalService
	history  *approvalsvc.ChangeRecordService
}

// NewApprovalHandler tạo ApprovalHandler mới
func NewApprovalHandler() (*ApprovalHandler, error) {
	media := mediasvc.NewCloudinaryDeleter(global.ServerConfig)
	workflow, err := approvalsvc.NewApprovalService(media)
	if err != nil {
		return nil, err
	}
	history, err := approvalsvc.NewChangeRecordService()
	if err != nil {
		return nil, err
	}
	return &ApprovalHandler{workflow: workflow, history: history}, nil
}

// parseEntityParams lấy entityType và entityID từ URI params
func parseEntityParams(c fiber.Ctx) (string, primitive.ObjectID, error) {
	var params approvaldto.EntityParams
	if err := c.Bind().URI(&params); err != nil {
		return "", primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Params không hợp lệ: %v", err), common.StatusBadRequest, err)
	}
	if err := global.Validate.Struct(&params); err != nil {
		return "", primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("Params không hợp lệ: %v", err), common.StatusBadRequest, err)
	}
	entityID, err := primitive.ObjectIDFromHex(params.ID)
	if err != nil {
		return "", primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "Id không hợp lệ", common.StatusBadRequest, err)
	}
	return params.EntityType, entityID, nil
}

// parseCandidateBody parse body thành map giữ nguyên các field tự do.
// Dùng UseNumber để không mất precision với số lớn.
func parseCandidateBody(c fiber.Ctx) (map[string]interface{}, error) {
	body := c.Body()
	if len(body) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Body của request không được để trống", common.StatusBadRequest, nil)
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var candidate map[string]interface{}
	if err := decoder.Decode(&candidate); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Body không đúng định dạng JSON: %v", err), common.StatusBadRequest, err)
	}
	return candidate, nil
}

// HandleSubmit nhận bản đề xuất thay đổi của vendor cho một entity.
// Body là các field managed cần sửa, kèm removeBanners nếu muốn gỡ ảnh.
func (h *ApprovalHandler) HandleSubmit(c fiber.Ctx) error {
	entityType, entityID, err := parseEntityParams(c)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	actor, err := basehdl.ActorFromContext(c)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	candidate, err := parseCandidateBody(c)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	doc, err := h.workflow.SubmitChange(c.Context(), entityType, entityID, candidate, actor)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	logger.LogWorkflow("workflow_submit", entityType, entityID.Hex(), c, map[string]interface{}{
		"actorRole": actor.Role,
	})
	return basehdl.HandleSuccess(c, doc)
}

// HandleApprove duyệt pendingChanges của một entity, merge vào live
func (h *ApprovalHandler) HandleApprove(c fiber.Ctx) error {
	entityType, entityID, err := parseEntityParams(c)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	actor, err := basehdl.ActorFromContext(c)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	doc, err := h.workflow.ApproveChange(c.Context(), entityType, entityID, actor)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	logger.LogWorkflow("workflow_approve", entityType, entityID.Hex(), c, nil)
	return basehdl.HandleSuccess(c, doc)
}

// HandleReject từ chối pendingChanges của một entity, lưu bản nháp vào lịch sử
func (h *ApprovalHandler) HandleReject(c fiber.Ctx) error {
	entityType, entityID, err := parseEntityParams(c)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	actor, err := basehdl.ActorFromContext(c)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	var input approvaldto.RejectInput
	if err := c.Bind().Body(&input); err != nil {
		basehdl.HandleError(c, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Body không đúng định dạng JSON: %v", err), common.StatusBadRequest, err))
		return nil
	}
	if err := global.Validate.Struct(&input); err != nil {
		basehdl.HandleError(c, common.NewError(common.ErrCodeValidationInput, "Lý do từ chối là bắt buộc", common.StatusBadRequest, err))
		return nil
	}

	doc, err := h.workflow.RejectChange(c.Context(), entityType, entityID, input.Reason, actor)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	logger.LogWorkflow("workflow_reject", entityType, entityID.Hex(), c, map[string]interface{}{
		"reason": input.Reason,
	})
	return basehdl.HandleSuccess(c, doc)
}

// HandleGetForEdit trả về bản resolved cho form sửa của vendor:
// live làm nền, đè pendingChanges nếu đang pending, đè bản nháp bị
// từ chối gần nhất nếu đang rejected
func (h *ApprovalHandler) HandleGetForEdit(c fiber.Ctx) error {
	entityType, entityID, err := parseEntityParams(c)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	resolved, err := h.workflow.GetForEdit(c.Context(), entityType, entityID)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	return basehdl.HandleSuccess(c, resolved)
}

// HandleGetHistory trả về toàn bộ lịch sử duyệt của một entity, mới nhất trước
func (h *ApprovalHandler) HandleGetHistory(c fiber.Ctx) error {
	_, entityID, err := parseEntityParams(c)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	records, err := h.history.GetHistory(c.Context(), entityID)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}
	return basehdl.HandleSuccess(c, records)
}

// HandleGetLastRejected tra cứu record bị từ chối gần nhất cho một loạt
// entity. Entity chưa từng bị từ chối có giá trị null trong kết quả.
func (h *ApprovalHandler) HandleGetLastRejected(c fiber.Ctx) error {
	var input approvaldto.LastRejectedInput
	if err := c.Bind().Body(&input); err != nil {
		basehdl.HandleError(c, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Body không đúng định dạng JSON: %v", err), common.StatusBadRequest, err))
		return nil
	}
	if err := global.Validate.Struct(&input); err != nil {
		basehdl.HandleError(c, common.NewError(common.ErrCodeValidationInput, "Danh sách ids là bắt buộc", common.StatusBadRequest, err))
		return nil
	}

	entityIDs := make([]primitive.ObjectID, 0, len(input.IDs))
	for _, raw := range input.IDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			basehdl.HandleError(c, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Id %q không hợp lệ", raw), common.StatusBadRequest, err))
			return nil
		}
		entityIDs = append(entityIDs, id)
	}

	byEntity, err := h.history.GetLastRejected(c.Context(), entityIDs)
	if err != nil {
		basehdl.HandleError(c, err)
		return nil
	}

	result := make(map[string]interface{}, len(byEntity))
	for id, record := range byEntity {
		if record == nil {
			result[id.Hex()] = nil
			continue
		}
		result[id.Hex()] = record
	}
	return basehdl.HandleSuccess(c, result)
}
