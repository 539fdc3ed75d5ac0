package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateOverride là một ngoại lệ lịch cho đúng một ngày.
// Mỗi ngày chỉ có tối đa một override; thêm override cho ngày đã có
// sẽ thay thế bản cũ.
type DateOverride struct {
	Date        time.Time `json:"date" bson:"date"`                         // Ngày (chuẩn hóa UTC midnight)
	IsAvailable bool      `json:"isAvailable" bson:"isAvailable"`           // Mở hay đóng ngày này
	Slots       []string  `json:"slots,omitempty" bson:"slots,omitempty"`   // Slot riêng cho ngày này
	Reason      string    `json:"reason,omitempty" bson:"reason,omitempty"` // Lý do (nghỉ lễ, bảo trì...)
}

// DateRange là một ngoại lệ lịch kéo dài nhiều ngày, hai đầu bao gồm.
// Hai range chỉ được chồng lấn khi cùng giá trị isAvailable.
type DateRange struct {
	StartDate   time.Time `json:"startDate" bson:"startDate"`               // Ngày bắt đầu (chuẩn hóa UTC midnight)
	EndDate     time.Time `json:"endDate" bson:"endDate"`                   // Ngày kết thúc, bao gồm
	IsAvailable bool      `json:"isAvailable" bson:"isAvailable"`           // Mở hay đóng trong khoảng này
	Slots       []string  `json:"slots,omitempty" bson:"slots,omitempty"`   // Slot riêng cho khoảng này
	Reason      string    `json:"reason,omitempty" bson:"reason,omitempty"` // Lý do
}

// AvailabilityRecord là lịch mở bán của một vendor, mỗi vendor đúng một document.
// WeeklySlots có key là weekday dạng chuỗi "0".."6" (0 = Chủ nhật) vì key
// của map bson phải là chuỗi.
type AvailabilityRecord struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	VendorID primitive.ObjectID `json:"vendorId" bson:"vendorId" index:"single:1"` // Vendor sở hữu lịch

	WeeklyPattern []int               `json:"weeklyPattern,omitempty" bson:"weeklyPattern,omitempty"` // Các weekday mở bán định kỳ (0..6)
	WeeklySlots   map[string][]string `json:"weeklySlots,omitempty" bson:"weeklySlots,omitempty"`     // Slot theo từng weekday
	Overrides     []DateOverride      `json:"overrides,omitempty" bson:"overrides,omitempty"`         // Ngoại lệ đơn ngày
	Ranges        []DateRange         `json:"ranges,omitempty" bson:"ranges,omitempty"`               // Ngoại lệ nhiều ngày

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// AvailabilityDecision là kết quả resolve lịch cho một vendor và một ngày,
// kèm provenance cho biết tầng nào quyết định
type AvailabilityDecision struct {
	IsAvailable bool     `json:"isAvailable"`      // Có mở bán ngày này không
	Slots       []string `json:"slots"`            // Slot khả dụng (rỗng nếu không cấu hình)
	Source      string   `json:"source"`           // override, range, weekly, default
	Reason      string   `json:"reason,omitempty"` // Lý do nếu có
}

// Source của AvailabilityDecision theo thứ tự ưu tiên giảm dần
const (
	SourceOverride = "override" // Ngoại lệ đơn ngày thắng tất cả
	SourceRange    = "range"    // Ngoại lệ nhiều ngày
	SourceWeekly   = "weekly"   // Lịch định kỳ hàng tuần
	SourceDefault  = "default"  // Không có record hoặc không có cấu hình nào khớp
)
