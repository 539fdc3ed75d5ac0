// Package service - Test resolver lịch mở bán: override > range > weekly.
package service

import (
	"errors"
	"testing"
	"time"

	models "exp_commerce/internal/api/availability/models"
	"exp_commerce/internal/common"
	"exp_commerce/internal/utility"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Lịch mẫu: mở bán T7 hàng tuần, đóng 10-20/06, override riêng ngày 14/06
func sampleRecord() models.AvailabilityRecord {
	return models.AvailabilityRecord{
		WeeklyPattern: []int{6}, // thứ Bảy
		WeeklySlots:   map[string][]string{"6": {"09:00", "14:00"}},
		Ranges: []models.DateRange{
			{StartDate: day(2024, 6, 10), EndDate: day(2024, 6, 20), IsAvailable: false, Reason: "bảo trì"},
		},
		Overrides: []models.DateOverride{
			{Date: day(2024, 6, 14), IsAvailable: true, Slots: []string{"19:00"}, Reason: "suất đặc biệt"},
		},
	}
}

func TestResolve_OverrideWinsOverRange(t *testing.T) {
	// 14/06/2024 nằm trong range đóng nhưng có override mở
	decision := Resolve(sampleRecord(), day(2024, 6, 14))
	if decision.Source != models.SourceOverride {
		t.Fatalf("source = %q, muốn %q", decision.Source, models.SourceOverride)
	}
	if !decision.IsAvailable {
		t.Error("override mở bán phải thắng range đóng")
	}
	if len(decision.Slots) != 1 || decision.Slots[0] != "19:00" {
		t.Errorf("slots phải lấy từ override, nhận: %v", decision.Slots)
	}
}

func TestResolve_RangeWinsOverWeekly(t *testing.T) {
	// 15/06/2024 là thứ Bảy (weekly mở) nhưng nằm trong range đóng
	decision := Resolve(sampleRecord(), day(2024, 6, 15))
	if decision.Source != models.SourceRange {
		t.Fatalf("source = %q, muốn %q", decision.Source, models.SourceRange)
	}
	if decision.IsAvailable {
		t.Error("range đóng phải thắng lịch weekly")
	}
	if decision.Reason != "bảo trì" {
		t.Errorf("reason = %q, muốn %q", decision.Reason, "bảo trì")
	}
}

func TestResolve_WeeklyFallback(t *testing.T) {
	// 01/06/2024 là thứ Bảy, ngoài mọi override và range
	decision := Resolve(sampleRecord(), day(2024, 6, 1))
	if decision.Source != models.SourceWeekly {
		t.Fatalf("source = %q, muốn %q", decision.Source, models.SourceWeekly)
	}
	if !decision.IsAvailable {
		t.Error("thứ Bảy nằm trong weekly pattern phải mở bán")
	}
	if len(decision.Slots) != 2 || decision.Slots[0] != "09:00" {
		t.Errorf("slots phải lấy từ weeklySlots của thứ Bảy, nhận: %v", decision.Slots)
	}
}

func TestResolve_DefaultUnavailable(t *testing.T) {
	// 03/06/2024 là thứ Hai, không tầng nào khớp
	decision := Resolve(sampleRecord(), day(2024, 6, 3))
	if decision.Source != models.SourceDefault {
		t.Fatalf("source = %q, muốn %q", decision.Source, models.SourceDefault)
	}
	if decision.IsAvailable {
		t.Error("ngày không khớp tầng nào phải coi là không mở bán")
	}
}

func TestResolve_TimeOfDayIgnored(t *testing.T) {
	// Giờ phút trong ngày không được ảnh hưởng kết quả
	noon := time.Date(2024, 6, 14, 12, 30, 45, 0, time.UTC)
	decision := Resolve(sampleRecord(), noon)
	if decision.Source != models.SourceOverride {
		t.Errorf("ngày phải được chuẩn hóa về midnight trước khi so sánh, source = %q", decision.Source)
	}
}

func TestResolve_RangeBoundariesInclusive(t *testing.T) {
	record := sampleRecord()
	for _, d := range []time.Time{day(2024, 6, 10), day(2024, 6, 20)} {
		decision := Resolve(record, d)
		if decision.Source != models.SourceRange {
			t.Errorf("ngày biên %s phải thuộc range, source = %q", d.Format("2006-01-02"), decision.Source)
		}
	}
	if Resolve(record, day(2024, 6, 21)).Source == models.SourceRange {
		t.Error("ngày 21/06 nằm ngoài range, không được khớp range")
	}
}

func TestResolve_WeekdayIndexSundayIsZero(t *testing.T) {
	record := models.AvailabilityRecord{
		WeeklyPattern: []int{0},
		WeeklySlots:   map[string][]string{"0": {"10:00"}},
	}
	// 02/06/2024 là Chủ nhật
	decision := Resolve(record, day(2024, 6, 2))
	if !decision.IsAvailable || decision.Source != models.SourceWeekly {
		t.Fatalf("Chủ nhật với pattern [0] phải mở bán, nhận: %+v", decision)
	}
	if utility.WeekdayIndex(day(2024, 6, 2)) != 0 {
		t.Error("WeekdayIndex của Chủ nhật phải bằng 0")
	}
}

func TestCheckRangeConflict_ExactDuplicate(t *testing.T) {
	existing := []models.DateRange{
		{StartDate: day(2024, 7, 10), EndDate: day(2024, 7, 20), IsAvailable: true},
	}
	candidate := models.DateRange{StartDate: day(2024, 7, 10), EndDate: day(2024, 7, 20), IsAvailable: true}

	err := CheckRangeConflict(existing, candidate)
	if !errors.Is(err, common.ErrDuplicateRange) {
		t.Errorf("range trùng cả mốc ngày lẫn isAvailable phải bị từ chối bằng ErrDuplicateRange, nhận: %v", err)
	}
}

func TestCheckRangeConflict_SameBoundsOppositePolarity(t *testing.T) {
	existing := []models.DateRange{
		{StartDate: day(2024, 7, 10), EndDate: day(2024, 7, 20), IsAvailable: true},
	}
	candidate := models.DateRange{StartDate: day(2024, 7, 10), EndDate: day(2024, 7, 20), IsAvailable: false}

	err := CheckRangeConflict(existing, candidate)
	if !errors.Is(err, common.ErrOverlappingRange) {
		t.Errorf("trùng mốc ngày nhưng ngược isAvailable là chồng lấn xung đột, muốn ErrOverlappingRange, nhận: %v", err)
	}
}

func TestCheckRangeConflict_OverlapOppositePolarity(t *testing.T) {
	existing := []models.DateRange{
		{StartDate: day(2024, 7, 10), EndDate: day(2024, 7, 20), IsAvailable: true},
	}
	candidate := models.DateRange{StartDate: day(2024, 7, 15), EndDate: day(2024, 7, 25), IsAvailable: false}

	err := CheckRangeConflict(existing, candidate)
	if !errors.Is(err, common.ErrOverlappingRange) {
		t.Errorf("chồng lấn khác isAvailable phải bị từ chối bằng ErrOverlappingRange, nhận: %v", err)
	}
}

func TestCheckRangeConflict_OverlapSamePolarityAllowed(t *testing.T) {
	existing := []models.DateRange{
		{StartDate: day(2024, 7, 10), EndDate: day(2024, 7, 20), IsAvailable: true},
	}
	candidate := models.DateRange{StartDate: day(2024, 7, 15), EndDate: day(2024, 7, 25), IsAvailable: true}

	if err := CheckRangeConflict(existing, candidate); err != nil {
		t.Errorf("chồng lấn cùng isAvailable phải được chấp nhận, nhận: %v", err)
	}
}

func TestCheckRangeConflict_DisjointAllowed(t *testing.T) {
	existing := []models.DateRange{
		{StartDate: day(2024, 7, 10), EndDate: day(2024, 7, 20), IsAvailable: true},
	}
	candidate := models.DateRange{StartDate: day(2024, 7, 21), EndDate: day(2024, 7, 30), IsAvailable: false}

	if err := CheckRangeConflict(existing, candidate); err != nil {
		t.Errorf("hai range rời nhau không được coi là xung đột, nhận: %v", err)
	}
}
