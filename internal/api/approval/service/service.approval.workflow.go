package approvalsvc

import (
	"context"

	approvalmodels "exp_commerce/internal/api/approval/models"
	catalogmodels "exp_commerce/internal/api/catalog/models"
	catalogsvc "exp_commerce/internal/api/catalog/service"
	"exp_commerce/internal/common"
	"exp_commerce/internal/logger"
	"exp_commerce/internal/utility"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryStore là phần ChangeRecordService mà workflow cần,
// tách interface để test với store in-memory
type HistoryStore interface {
	InsertOne(ctx context.Context, record approvalmodels.ChangeRecord) (approvalmodels.ChangeRecord, error)
	GetLastRejectedOne(ctx context.Context, entityID primitive.ObjectID) (approvalmodels.ChangeRecord, error)
}

// MediaDeleter xóa media bên ngoài theo kiểu best-effort
type MediaDeleter interface {
	DeleteAllAsync(urls []string)
}

// ApprovalService điều phối quy trình duyệt thay đổi:
// submit → diff → gộp vào pending; approve → merge vào live; reject → lưu lịch sử.
// Mọi merge được tính trên bản sao in-memory của document và ghi lại một lần.
type ApprovalService struct {
	store   catalogsvc.EntityStore
	history HistoryStore
	media   MediaDeleter
}

// NewApprovalService tạo ApprovalService với các store MongoDB thật
func NewApprovalService(media MediaDeleter) (*ApprovalService, error) {
	history, err := NewChangeRecordService()
	if err != nil {
		return nil, err
	}
	return &ApprovalService{
		store:   catalogsvc.NewMongoEntityStore(),
		history: history,
		media:   media,
	}, nil
}

// NewApprovalServiceWithStores tạo ApprovalService với store tùy ý
func NewApprovalServiceWithStores(store catalogsvc.EntityStore, history HistoryStore, media MediaDeleter) *ApprovalService {
	return &ApprovalService{store: store, history: history, media: media}
}

// SubmitChange nhận bản đề xuất thay đổi từ owner của entity.
// Baseline của diff là pending hiện có nếu field đã có bản nháp, ngược lại
// là giá trị live, để các lần sửa nhỏ liên tiếp gộp vào đúng một bản nháp.
func (s *ApprovalService) SubmitChange(ctx context.Context, entityType string, entityID primitive.ObjectID, candidate map[string]interface{}, actor common.Actor) (bson.M, error) {
	specs := catalogmodels.ManagedFields(entityType)
	if specs == nil {
		return nil, common.ErrInvalidInput
	}

	doc, err := s.store.Load(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if err := ensureOwnership(doc, actor); err != nil {
		return nil, err
	}

	pending := AsMap(doc["pendingChanges"])
	if pending == nil {
		pending = map[string]interface{}{}
	}

	// Side channel: gỡ banner khỏi cả live lẫn pending, media xóa fire-and-forget
	removedBanners := s.pruneBanners(doc, pending, AsStringSlice(candidate["removeBanners"]))

	baseline := make(map[string]interface{}, len(specs))
	for _, spec := range specs {
		if v, ok := pending[spec.Name]; ok {
			baseline[spec.Name] = v
		} else {
			baseline[spec.Name] = doc[spec.Name]
		}
	}

	changes := Diff(candidate, baseline, specs)
	if len(changes) == 0 && len(removedBanners) == 0 {
		return nil, common.ErrNoChangesDetected
	}

	for field, change := range changes {
		pending[field] = change.New
	}
	if len(pending) > 0 {
		doc["pendingChanges"] = pending
		doc["workflowStatus"] = catalogmodels.WorkflowStatusPending
	}

	if err := s.store.WriteBack(ctx, entityType, entityID, doc); err != nil {
		return nil, err
	}

	if len(removedBanners) > 0 && s.media != nil {
		s.media.DeleteAllAsync(removedBanners)
	}

	// Chỉ lượt submit của vendor được ghi lịch sử audit
	if actor.Role == common.RoleVendor && len(changes) > 0 {
		s.appendRecord(ctx, approvalmodels.ChangeRecord{
			AuditID:       uuid.NewString(),
			EntityType:    entityType,
			EntityID:      entityID,
			ActorID:       actor.ID,
			ActorRole:     actor.Role,
			ChangedFields: changes,
			Status:        approvalmodels.ChangeStatusPending,
			Timestamp:     utility.CurrentTimeInMilli(),
		})
	}

	return doc, nil
}

// ApproveChange merge pendingChanges vào live document.
// Scalar ghi đè, keyed array reconcile theo key, banner union.
// Chỉ được gọi khi entity đang ở trạng thái pending.
func (s *ApprovalService) ApproveChange(ctx context.Context, entityType string, entityID primitive.ObjectID, actor common.Actor) (bson.M, error) {
	specs := catalogmodels.ManagedFields(entityType)
	if specs == nil {
		return nil, common.ErrInvalidInput
	}

	doc, err := s.store.Load(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if status, _ := doc["workflowStatus"].(string); status != catalogmodels.WorkflowStatusPending {
		return nil, common.ErrInvalidWorkflowState
	}

	pending := AsMap(doc["pendingChanges"])
	if len(pending) == 0 {
		return nil, common.ErrNoPendingChanges
	}

	// Snapshot giá trị live của các field sắp bị merge, dùng cho lịch sử
	oldData := make(map[string]interface{}, len(pending))
	for field := range pending {
		if _, ok := catalogmodels.FieldStrategy(entityType, field); ok {
			oldData[field] = doc[field]
		}
	}

	for field, value := range pending {
		strategy, ok := catalogmodels.FieldStrategy(entityType, field)
		if !ok {
			continue
		}
		switch strategy {
		case catalogmodels.StrategyKeyedArray:
			doc[field] = ReconcileKeyed(AsSlice(doc[field]), AsSlice(value))
		case catalogmodels.StrategySetUnion:
			doc[field] = UnionStrings(AsStringSlice(doc[field]), AsStringSlice(value))
		default:
			doc[field] = value
		}
	}

	delete(doc, "pendingChanges")
	doc["workflowStatus"] = catalogmodels.WorkflowStatusApproved
	doc["isVerified"] = true

	if err := s.store.WriteBack(ctx, entityType, entityID, doc); err != nil {
		return nil, err
	}

	s.appendRecord(ctx, approvalmodels.ChangeRecord{
		AuditID:    uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		OldData:    oldData,
		NewData:    pending,
		Status:     approvalmodels.ChangeStatusApproved,
		Timestamp:  utility.CurrentTimeInMilli(),
	})

	return doc, nil
}

// RejectChange từ chối pendingChanges với lý do.
// Bản nháp được lưu nguyên văn vào lịch sử trước khi xóa khỏi entity
// nên không bao giờ mất dữ liệu khi reject.
func (s *ApprovalService) RejectChange(ctx context.Context, entityType string, entityID primitive.ObjectID, reason string, actor common.Actor) (bson.M, error) {
	if !catalogmodels.IsValidEntityType(entityType) {
		return nil, common.ErrInvalidInput
	}

	doc, err := s.store.Load(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if status, _ := doc["workflowStatus"].(string); status != catalogmodels.WorkflowStatusPending {
		return nil, common.ErrInvalidWorkflowState
	}

	pending := AsMap(doc["pendingChanges"])
	if len(pending) == 0 {
		return nil, common.ErrNoPendingChanges
	}

	// Lưu lịch sử trước khi xóa bản nháp khỏi entity
	if _, err := s.history.InsertOne(ctx, approvalmodels.ChangeRecord{
		AuditID:    uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		NewData:    pending,
		Status:     approvalmodels.ChangeStatusRejected,
		Reason:     reason,
		Timestamp:  utility.CurrentTimeInMilli(),
	}); err != nil {
		return nil, err
	}

	delete(doc, "pendingChanges")
	doc["workflowStatus"] = catalogmodels.WorkflowStatusRejected

	if err := s.store.WriteBack(ctx, entityType, entityID, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// GetForEdit trả về field map dùng để điền form sửa của owner:
// approved trả về live; pending trả về live phủ pending; rejected trả về
// live phủ bản nháp bị từ chối gần nhất để owner sửa tiếp từ đó.
func (s *ApprovalService) GetForEdit(ctx context.Context, entityType string, entityID primitive.ObjectID) (map[string]interface{}, error) {
	specs := catalogmodels.ManagedFields(entityType)
	if specs == nil {
		return nil, common.ErrInvalidInput
	}

	doc, err := s.store.Load(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	status, _ := doc["workflowStatus"].(string)

	resolved := map[string]interface{}{
		"_id":            doc["_id"],
		"workflowStatus": status,
	}
	for _, spec := range specs {
		resolved[spec.Name] = doc[spec.Name]
	}

	switch status {
	case catalogmodels.WorkflowStatusPending:
		for field, value := range AsMap(doc["pendingChanges"]) {
			if _, ok := catalogmodels.FieldStrategy(entityType, field); ok {
				resolved[field] = value
			}
		}
	case catalogmodels.WorkflowStatusRejected:
		record, err := s.history.GetLastRejectedOne(ctx, entityID)
		if err != nil {
			if err == common.ErrNotFound {
				return resolved, nil
			}
			return nil, err
		}
		for field, value := range record.NewData {
			if _, ok := catalogmodels.FieldStrategy(entityType, field); ok {
				resolved[field] = value
			}
		}
	}

	return resolved, nil
}

// ensureOwnership chặn vendor thao tác trên entity của vendor khác
func ensureOwnership(doc bson.M, actor common.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	ownerID, ok := doc["vendorId"].(primitive.ObjectID)
	if !ok || ownerID != actor.ID {
		return common.NewError(common.ErrCodeAuthRole, "Vendor không được thao tác trên entity của vendor khác", common.StatusForbidden, nil)
	}
	return nil
}

// pruneBanners gỡ các URL khỏi banner live và banner pending.
// Trả về danh sách URL thực sự bị gỡ để dispatch xóa media.
func (s *ApprovalService) pruneBanners(doc bson.M, pending map[string]interface{}, removals []string) []string {
	if len(removals) == 0 {
		return nil
	}
	removeSet := map[string]bool{}
	for _, url := range removals {
		removeSet[url] = true
	}

	var removed []string
	liveBanners := AsStringSlice(doc["banners"])
	keptLive := make([]string, 0, len(liveBanners))
	for _, url := range liveBanners {
		if removeSet[url] {
			removed = append(removed, url)
			continue
		}
		keptLive = append(keptLive, url)
	}
	if len(removed) > 0 || len(liveBanners) > 0 {
		doc["banners"] = keptLive
	}

	if pendingBanners, ok := pending["banners"]; ok {
		kept := make([]string, 0)
		for _, url := range AsStringSlice(pendingBanners) {
			if removeSet[url] {
				if !utility.Contains(removed, url) {
					removed = append(removed, url)
				}
				continue
			}
			kept = append(kept, url)
		}
		pending["banners"] = kept
	}

	return removed
}

// appendRecord ghi record lịch sử, lỗi được log chứ không làm hỏng lượt gọi
// vì entity đã được ghi thành công
func (s *ApprovalService) appendRecord(ctx context.Context, record approvalmodels.ChangeRecord) {
	if _, err := s.history.InsertOne(ctx, record); err != nil {
		logger.GetErrorLogger().WithFields(map[string]interface{}{
			"entityId":   record.EntityID.Hex(),
			"entityType": record.EntityType,
			"status":     record.Status,
			"error":      err.Error(),
		}).Error("Không ghi được record lịch sử duyệt")
	}
}
