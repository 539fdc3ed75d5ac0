package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChangeStatus định nghĩa trạng thái của một bản ghi lịch sử duyệt
const (
	ChangeStatusPending  = "pending"  // Vendor gửi thay đổi chờ duyệt
	ChangeStatusApproved = "approved" // Admin đã duyệt
	ChangeStatusRejected = "rejected" // Admin từ chối
)

// FieldChange là cặp giá trị cũ/mới của một field trong change-set
type FieldChange struct {
	Old interface{} `json:"old" bson:"old"` // Giá trị baseline tại thời điểm diff
	New interface{} `json:"new" bson:"new"` // Giá trị đề xuất
}

// ChangeRecord là bản ghi lịch sử duyệt, append-only và bất biến sau khi ghi.
// Mỗi lượt submit của vendor và mỗi lượt approve/reject của admin tạo một record.
type ChangeRecord struct {
	ID      primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của record
	AuditID string             `json:"auditId" bson:"auditId"`            // UUID để đối soát log bên ngoài

	EntityType string             `json:"entityType" bson:"entityType" index:"single:1"` // vendor, addon, experienceEvent
	EntityID   primitive.ObjectID `json:"entityId" bson:"entityId" index:"single:1"`     // Entity chịu thay đổi
	ActorID    primitive.ObjectID `json:"actorId" bson:"actorId"`                        // Người thực hiện
	ActorRole  string             `json:"actorRole" bson:"actorRole"`                    // vendor hoặc admin

	ChangedFields map[string]FieldChange `json:"changedFields,omitempty" bson:"changedFields,omitempty"` // Change-set của lượt submit
	OldData       map[string]interface{} `json:"oldData,omitempty" bson:"oldData,omitempty"`             // Snapshot managed fields trước khi merge (approve)
	NewData       map[string]interface{} `json:"newData,omitempty" bson:"newData,omitempty"`             // pendingChanges nguyên văn (approve/reject)

	Status    string `json:"status" bson:"status" index:"single:1"` // pending, approved, rejected
	Reason    string `json:"reason,omitempty" bson:"reason,omitempty"` // Lý do từ chối
	Timestamp int64  `json:"timestamp" bson:"timestamp"`               // Thời điểm sự kiện (UnixMilli)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
