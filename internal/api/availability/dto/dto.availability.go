package dto

// WeeklyPatternInput là input thay lịch định kỳ hàng tuần.
// VendorID chỉ dành cho admin thao tác hộ vendor, vendor tự thao tác
// thì bỏ trống.
type WeeklyPatternInput struct {
	VendorID string              `json:"vendorId,omitempty"`
	Pattern  []int               `json:"pattern" validate:"required,dive,gte=0,lte=6"` // Các weekday 0..6 (0 = Chủ nhật)
	Slots    map[string][]string `json:"slots,omitempty"`                              // Slot theo weekday, key "0".."6"
}

// OverrideInput là input thêm ngoại lệ đơn ngày
type OverrideInput struct {
	VendorID    string   `json:"vendorId,omitempty"`
	Date        string   `json:"date" validate:"required,date_ymd"` // Định dạng YYYY-MM-DD
	IsAvailable bool     `json:"isAvailable"`
	Slots       []string `json:"slots,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

// RemoveOverrideInput là input xóa ngoại lệ của một ngày
type RemoveOverrideInput struct {
	VendorID string `json:"vendorId,omitempty"`
	Date     string `json:"date" validate:"required,date_ymd"`
}

// RangeInput là input thêm ngoại lệ nhiều ngày
type RangeInput struct {
	VendorID    string   `json:"vendorId,omitempty"`
	StartDate   string   `json:"startDate" validate:"required,date_ymd"` // Định dạng YYYY-MM-DD
	EndDate     string   `json:"endDate" validate:"required,date_ymd"`
	IsAvailable bool     `json:"isAvailable"`
	Slots       []string `json:"slots,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

// RemoveRangeInput là input xóa range theo đúng cặp ngày
type RemoveRangeInput struct {
	VendorID  string `json:"vendorId,omitempty"`
	StartDate string `json:"startDate" validate:"required,date_ymd"`
	EndDate   string `json:"endDate" validate:"required,date_ymd"`
}

// ResolveQuery là query truy vấn trực tiếp trạng thái một ngày
type ResolveQuery struct {
	Date string `query:"date" validate:"required"`
}

// BookableFilterInput là input lọc danh sách vendor còn mở bán cho
// một ngày, dùng cho trang catalog
type BookableFilterInput struct {
	VendorIDs []string `json:"vendorIds" validate:"required,min=1"`
	Date      string   `json:"date" validate:"required,date_ymd"`
}
