package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VendorProfile là hồ sơ kinh doanh của một vendor trên marketplace.
// Các trường managed (title, description, cities, banners, categories) không được
// sửa trực tiếp mà phải đi qua quy trình duyệt pendingChanges.
type VendorProfile struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`       // ID của hồ sơ
	VendorID primitive.ObjectID `json:"vendorId" bson:"vendorId" index:"single:1"` // Tài khoản vendor sở hữu hồ sơ (phân quyền)

	// ===== MANAGED FIELDS (chịu quy trình duyệt) =====
	Title       string               `json:"title" bson:"title" index:"text"`                        // Tên kinh doanh hiển thị
	Description string               `json:"description,omitempty" bson:"description,omitempty"`     // Mô tả kinh doanh
	Cities      []City               `json:"cities,omitempty" bson:"cities,omitempty"`               // Các địa điểm phục vụ (keyed theo name)
	Banners     []string             `json:"banners,omitempty" bson:"banners,omitempty"`             // URL ảnh banner (set union)
	Categories  []primitive.ObjectID `json:"categories,omitempty" bson:"categories,omitempty"`       // Tham chiếu danh mục

	// ===== WORKFLOW =====
	WorkflowStatus string                 `json:"workflowStatus" bson:"workflowStatus" default:"none" index:"single:1"` // none, pending, approved, rejected
	PendingChanges map[string]interface{} `json:"pendingChanges,omitempty" bson:"pendingChanges,omitempty"`             // Bản nháp thay đổi đang chờ duyệt (field → giá trị đề xuất)
	IsVerified     bool                   `json:"isVerified" bson:"isVerified"`                                         // Đã được admin duyệt ít nhất một lần

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
