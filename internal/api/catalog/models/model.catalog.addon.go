package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Addon là dịch vụ bổ sung một vendor bán kèm trải nghiệm
type Addon struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`         // ID của add-on
	VendorID primitive.ObjectID `json:"vendorId" bson:"vendorId" index:"single:1"` // Vendor sở hữu add-on

	// ===== MANAGED FIELDS (chịu quy trình duyệt) =====
	Title       string   `json:"title" bson:"title" index:"text"`                    // Tên add-on
	Description string   `json:"description,omitempty" bson:"description,omitempty"` // Mô tả
	Tiers       []Tier   `json:"tiers,omitempty" bson:"tiers,omitempty"`             // Các hạng giá (keyed theo name)
	Banners     []string `json:"banners,omitempty" bson:"banners,omitempty"`         // URL ảnh banner (set union)

	// ===== WORKFLOW =====
	WorkflowStatus string                 `json:"workflowStatus" bson:"workflowStatus" default:"none" index:"single:1"` // none, pending, approved, rejected
	PendingChanges map[string]interface{} `json:"pendingChanges,omitempty" bson:"pendingChanges,omitempty"`             // Bản nháp thay đổi đang chờ duyệt
	IsVerified     bool                   `json:"isVerified" bson:"isVerified"`                                         // Đã được admin duyệt ít nhất một lần

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
