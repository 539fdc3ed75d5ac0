package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	models "exp_commerce/internal/api/availability/models"
	basesvc "exp_commerce/internal/api/base/service"
	"exp_commerce/internal/common"
	"exp_commerce/internal/global"
	"exp_commerce/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AvailabilityService quản lý lịch mở bán của vendor.
// Mỗi vendor có đúng một AvailabilityRecord, mọi mutation đều upsert
// theo vendorId.
type AvailabilityService struct {
	*basesvc.BaseServiceMongoImpl[models.AvailabilityRecord]
}

// NewAvailabilityService tạo AvailabilityService mới
func NewAvailabilityService() (*AvailabilityService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Availabilities)
	if !exist {
		return nil, fmt.Errorf("failed to get availabilities collection: %v", common.ErrNotFound)
	}
	return &AvailabilityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.AvailabilityRecord](collection),
	}, nil
}

// FindByVendorID lấy lịch của một vendor.
// Trả về common.ErrNotFound nếu vendor chưa cấu hình lịch.
func (s *AvailabilityService) FindByVendorID(ctx context.Context, vendorID primitive.ObjectID) (models.AvailabilityRecord, error) {
	return s.FindOne(ctx, bson.M{"vendorId": vendorID}, nil)
}

// loadOrEmpty lấy record hiện tại, hoặc record rỗng nếu vendor chưa có
func (s *AvailabilityService) loadOrEmpty(ctx context.Context, vendorID primitive.ObjectID) (models.AvailabilityRecord, error) {
	record, err := s.FindByVendorID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.AvailabilityRecord{VendorID: vendorID}, nil
		}
		return models.AvailabilityRecord{}, err
	}
	return record, nil
}

// saveRecord ghi lại toàn bộ phần lịch của record theo vendorId
func (s *AvailabilityService) saveRecord(ctx context.Context, record models.AvailabilityRecord) (models.AvailabilityRecord, error) {
	set := map[string]interface{}{
		"vendorId":      record.VendorID,
		"weeklyPattern": record.WeeklyPattern,
		"weeklySlots":   record.WeeklySlots,
		"overrides":     record.Overrides,
		"ranges":        record.Ranges,
	}
	return s.Upsert(ctx, bson.M{"vendorId": record.VendorID}, basesvc.UpdateData{Set: set})
}

// SetWeeklyPattern thay toàn bộ lịch định kỳ hàng tuần của vendor.
// pattern chứa các weekday 0..6 (0 = Chủ nhật), slots có key là weekday
// dạng chuỗi. Weekday ngoài khoảng hợp lệ bị từ chối.
func (s *AvailabilityService) SetWeeklyPattern(ctx context.Context, vendorID primitive.ObjectID, pattern []int, slots map[string][]string) (models.AvailabilityRecord, error) {
	for _, day := range pattern {
		if day < 0 || day > 6 {
			return models.AvailabilityRecord{}, common.NewError(common.ErrCodeValidationInput, "Weekday phải nằm trong khoảng 0 đến 6", common.StatusBadRequest, nil)
		}
	}
	cleaned := utility.Dedupe(pattern)

	record, err := s.loadOrEmpty(ctx, vendorID)
	if err != nil {
		return models.AvailabilityRecord{}, err
	}
	record.WeeklyPattern = cleaned
	record.WeeklySlots = slots
	return s.saveRecord(ctx, record)
}

// AddOverride thêm ngoại lệ đơn ngày.
// Ngày được chuẩn hóa về UTC midnight; override cũ cho cùng ngày (nếu có)
// bị thay thế.
func (s *AvailabilityService) AddOverride(ctx context.Context, vendorID primitive.ObjectID, override models.DateOverride) (models.AvailabilityRecord, error) {
	override.Date = utility.NormalizeDate(override.Date)

	record, err := s.loadOrEmpty(ctx, vendorID)
	if err != nil {
		return models.AvailabilityRecord{}, err
	}

	kept := make([]models.DateOverride, 0, len(record.Overrides)+1)
	for _, existing := range record.Overrides {
		if !utility.NormalizeDate(existing.Date).Equal(override.Date) {
			kept = append(kept, existing)
		}
	}
	record.Overrides = append(kept, override)
	return s.saveRecord(ctx, record)
}

// RemoveOverride xóa ngoại lệ của một ngày.
// Trả về common.ErrNotFound nếu ngày đó không có override.
func (s *AvailabilityService) RemoveOverride(ctx context.Context, vendorID primitive.ObjectID, date time.Time) (models.AvailabilityRecord, error) {
	date = utility.NormalizeDate(date)

	record, err := s.FindByVendorID(ctx, vendorID)
	if err != nil {
		return models.AvailabilityRecord{}, err
	}

	kept := make([]models.DateOverride, 0, len(record.Overrides))
	for _, existing := range record.Overrides {
		if !utility.NormalizeDate(existing.Date).Equal(date) {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(record.Overrides) {
		return models.AvailabilityRecord{}, common.ErrNotFound
	}
	record.Overrides = kept
	return s.saveRecord(ctx, record)
}

// AddRange thêm ngoại lệ nhiều ngày.
// Range trùng hoàn toàn (cả hai mốc ngày lẫn isAvailable) bị từ chối bằng
// ErrDuplicateRange. Range chồng lấn với range đã có chỉ bị từ chối khi
// hai bên khác isAvailable (ErrOverlappingRange); chồng lấn cùng chiều
// được chấp nhận.
func (s *AvailabilityService) AddRange(ctx context.Context, vendorID primitive.ObjectID, dateRange models.DateRange) (models.AvailabilityRecord, error) {
	dateRange.StartDate = utility.NormalizeDate(dateRange.StartDate)
	dateRange.EndDate = utility.NormalizeDate(dateRange.EndDate)
	if dateRange.EndDate.Before(dateRange.StartDate) {
		return models.AvailabilityRecord{}, common.NewError(common.ErrCodeValidationInput, "Ngày kết thúc phải không sớm hơn ngày bắt đầu", common.StatusBadRequest, nil)
	}

	record, err := s.loadOrEmpty(ctx, vendorID)
	if err != nil {
		return models.AvailabilityRecord{}, err
	}

	if err := CheckRangeConflict(record.Ranges, dateRange); err != nil {
		return models.AvailabilityRecord{}, err
	}

	record.Ranges = append(record.Ranges, dateRange)
	return s.saveRecord(ctx, record)
}

// CheckRangeConflict kiểm tra một range mới với danh sách range hiện có.
// candidate phải đã được chuẩn hóa về UTC midnight. Duplicate nghĩa là
// trùng cả hai mốc ngày lẫn isAvailable; trùng mốc ngày nhưng ngược
// isAvailable là chồng lấn xung đột.
func CheckRangeConflict(existing []models.DateRange, candidate models.DateRange) error {
	for _, r := range existing {
		start := utility.NormalizeDate(r.StartDate)
		end := utility.NormalizeDate(r.EndDate)
		if start.Equal(candidate.StartDate) && end.Equal(candidate.EndDate) &&
			r.IsAvailable == candidate.IsAvailable {
			return common.ErrDuplicateRange
		}
		if utility.RangesOverlap(start, end, candidate.StartDate, candidate.EndDate) &&
			r.IsAvailable != candidate.IsAvailable {
			return common.ErrOverlappingRange
		}
	}
	return nil
}

// RemoveRange xóa range theo đúng cặp ngày bắt đầu và kết thúc.
// Trả về common.ErrNotFound nếu không có range nào khớp.
func (s *AvailabilityService) RemoveRange(ctx context.Context, vendorID primitive.ObjectID, start, end time.Time) (models.AvailabilityRecord, error) {
	start = utility.NormalizeDate(start)
	end = utility.NormalizeDate(end)

	record, err := s.FindByVendorID(ctx, vendorID)
	if err != nil {
		return models.AvailabilityRecord{}, err
	}

	kept := make([]models.DateRange, 0, len(record.Ranges))
	for _, existing := range record.Ranges {
		if utility.NormalizeDate(existing.StartDate).Equal(start) && utility.NormalizeDate(existing.EndDate).Equal(end) {
			continue
		}
		kept = append(kept, existing)
	}
	if len(kept) == len(record.Ranges) {
		return models.AvailabilityRecord{}, common.ErrNotFound
	}
	record.Ranges = kept
	return s.saveRecord(ctx, record)
}
