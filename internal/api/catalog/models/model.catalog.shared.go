package models

// WorkflowStatus định nghĩa trạng thái duyệt của entity trong catalog
const (
	WorkflowStatusNone     = "none"     // Chưa có thay đổi nào được gửi duyệt
	WorkflowStatusPending  = "pending"  // Có thay đổi đang chờ admin duyệt
	WorkflowStatusApproved = "approved" // Thay đổi gần nhất đã được duyệt
	WorkflowStatusRejected = "rejected" // Thay đổi gần nhất bị từ chối
)

// EntityType định nghĩa các loại entity chịu quy trình duyệt
const (
	EntityTypeVendor = "vendor"          // Hồ sơ vendor
	EntityTypeAddon  = "addon"           // Dịch vụ bổ sung
	EntityTypeEvent  = "experienceEvent" // Sự kiện trải nghiệm
)

// Tier là một hạng giá trong danh sách tiers của entity.
// Được định danh theo Name (so sánh không phân biệt hoa thường, bỏ khoảng trắng thừa).
type Tier struct {
	Name        string  `json:"name" bson:"name" validate:"required"`
	Price       float64 `json:"price" bson:"price" validate:"gte=0"`
	Capacity    int     `json:"capacity,omitempty" bson:"capacity,omitempty"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
}

// City là một địa điểm phục vụ trong danh sách cities của entity.
// Được định danh theo Name giống Tier.
type City struct {
	Name  string `json:"name" bson:"name" validate:"required"`
	State string `json:"state,omitempty" bson:"state,omitempty"`
	Note  string `json:"note,omitempty" bson:"note,omitempty"`
}
