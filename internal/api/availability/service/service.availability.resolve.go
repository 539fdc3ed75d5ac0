package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	models "exp_commerce/internal/api/availability/models"
	"exp_commerce/internal/common"
	"exp_commerce/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resolve tính trạng thái mở bán của một record cho một ngày.
// Thứ tự ưu tiên: override đúng ngày, rồi range chứa ngày, rồi lịch
// định kỳ hàng tuần. Không tầng nào khớp thì coi như không mở bán.
func Resolve(record models.AvailabilityRecord, date time.Time) models.AvailabilityDecision {
	date = utility.NormalizeDate(date)

	// Tầng 1: override đúng ngày
	for _, override := range record.Overrides {
		if utility.NormalizeDate(override.Date).Equal(date) {
			return models.AvailabilityDecision{
				IsAvailable: override.IsAvailable,
				Slots:       override.Slots,
				Source:      models.SourceOverride,
				Reason:      override.Reason,
			}
		}
	}

	// Tầng 2: range chứa ngày
	for _, dateRange := range record.Ranges {
		if utility.DateInRange(date, utility.NormalizeDate(dateRange.StartDate), utility.NormalizeDate(dateRange.EndDate)) {
			return models.AvailabilityDecision{
				IsAvailable: dateRange.IsAvailable,
				Slots:       dateRange.Slots,
				Source:      models.SourceRange,
				Reason:      dateRange.Reason,
			}
		}
	}

	// Tầng 3: lịch định kỳ hàng tuần
	weekday := utility.WeekdayIndex(date)
	for _, day := range record.WeeklyPattern {
		if day == weekday {
			return models.AvailabilityDecision{
				IsAvailable: true,
				Slots:       record.WeeklySlots[strconv.Itoa(weekday)],
				Source:      models.SourceWeekly,
			}
		}
	}

	return models.AvailabilityDecision{
		IsAvailable: false,
		Source:      models.SourceDefault,
	}
}

// ResolveVendorDate trả lời truy vấn trực tiếp "vendor này có mở bán
// ngày này không". Vendor chưa cấu hình lịch được coi là không mở bán,
// kèm lý do rõ ràng để client phân biệt với ngày bị đóng chủ động.
func (s *AvailabilityService) ResolveVendorDate(ctx context.Context, vendorID primitive.ObjectID, date time.Time) (models.AvailabilityDecision, error) {
	record, err := s.FindByVendorID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.AvailabilityDecision{
				IsAvailable: false,
				Source:      models.SourceDefault,
				Reason:      common.ReasonNoAvailabilitySettings,
			}, nil
		}
		return models.AvailabilityDecision{}, err
	}
	return Resolve(record, date), nil
}

// IsBookableForListing trả lời câu hỏi lọc catalog "vendor này có nên
// xuất hiện cho ngày này không". Khác với ResolveVendorDate, vendor
// chưa cấu hình lịch vẫn được hiển thị.
func (s *AvailabilityService) IsBookableForListing(ctx context.Context, vendorID primitive.ObjectID, date time.Time) (bool, error) {
	record, err := s.FindByVendorID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return Resolve(record, date).IsAvailable, nil
}

// FilterBookableVendors lọc danh sách vendor còn mở bán cho một ngày,
// dùng cho trang catalog. Vendor chưa cấu hình lịch được giữ lại.
func (s *AvailabilityService) FilterBookableVendors(ctx context.Context, vendorIDs []primitive.ObjectID, date time.Time) ([]primitive.ObjectID, error) {
	if len(vendorIDs) == 0 {
		return []primitive.ObjectID{}, nil
	}

	filter := map[string]interface{}{
		"vendorId": map[string]interface{}{"$in": vendorIDs},
	}
	records, err := s.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	byVendor := make(map[primitive.ObjectID]models.AvailabilityRecord, len(records))
	for _, record := range records {
		byVendor[record.VendorID] = record
	}

	bookable := make([]primitive.ObjectID, 0, len(vendorIDs))
	for _, vendorID := range vendorIDs {
		record, exist := byVendor[vendorID]
		if !exist {
			bookable = append(bookable, vendorID)
			continue
		}
		if Resolve(record, date).IsAvailable {
			bookable = append(bookable, vendorID)
		}
	}
	return bookable, nil
}
