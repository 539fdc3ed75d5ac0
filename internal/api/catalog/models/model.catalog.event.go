package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExperienceEvent là một trải nghiệm bookable do vendor tổ chức
type ExperienceEvent struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`         // ID của sự kiện
	VendorID primitive.ObjectID `json:"vendorId" bson:"vendorId" index:"single:1"` // Vendor tổ chức sự kiện

	// ===== MANAGED FIELDS (chịu quy trình duyệt) =====
	Title       string               `json:"title" bson:"title" index:"text"`                    // Tên sự kiện
	Description string               `json:"description,omitempty" bson:"description,omitempty"` // Mô tả
	Tiers       []Tier               `json:"tiers,omitempty" bson:"tiers,omitempty"`             // Các hạng vé (keyed theo name)
	Cities      []City               `json:"cities,omitempty" bson:"cities,omitempty"`           // Địa điểm tổ chức (keyed theo name)
	Banners     []string             `json:"banners,omitempty" bson:"banners,omitempty"`         // URL ảnh banner (set union)
	Categories  []primitive.ObjectID `json:"categories,omitempty" bson:"categories,omitempty"`   // Tham chiếu danh mục

	// ===== WORKFLOW =====
	WorkflowStatus string                 `json:"workflowStatus" bson:"workflowStatus" default:"none" index:"single:1"` // none, pending, approved, rejected
	PendingChanges map[string]interface{} `json:"pendingChanges,omitempty" bson:"pendingChanges,omitempty"`             // Bản nháp thay đổi đang chờ duyệt
	IsVerified     bool                   `json:"isVerified" bson:"isVerified"`                                         // Đã được admin duyệt ít nhất một lần

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
