package utility

import (
	"fmt"
	"time"
)

// DateLayout là định dạng chuẩn cho ngày lịch trong toàn hệ thống (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// NormalizeDate chuẩn hóa thời gian về 00:00:00 UTC của cùng ngày lịch.
// Không chuyển đổi timezone: lấy nguyên năm/tháng/ngày của t.
// Mọi phép so sánh ngày trong lịch mở bán đều dùng dạng chuẩn hóa này.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDateYMD parse chuỗi YYYY-MM-DD thành calendar date chuẩn hóa UTC
func ParseDateYMD(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("ngày không đúng định dạng YYYY-MM-DD: %w", err)
	}
	return NormalizeDate(t), nil
}

// FormatDateYMD format calendar date thành chuỗi YYYY-MM-DD
func FormatDateYMD(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekdayIndex trả về thứ trong tuần của ngày cho trước theo quy ước 0..6
// (0 = Chủ nhật, 6 = Thứ bảy), tính trên calendar date đã chuẩn hóa.
func WeekdayIndex(t time.Time) int {
	return int(NormalizeDate(t).Weekday())
}

// SameCalendarDate kiểm tra hai thời điểm có cùng ngày lịch hay không
func SameCalendarDate(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}

// DateInRange kiểm tra date có nằm trong [start, end] hay không (bao gồm hai đầu)
func DateInRange(date, start, end time.Time) bool {
	d := NormalizeDate(date)
	return !d.Before(NormalizeDate(start)) && !d.After(NormalizeDate(end))
}

// RangesOverlap kiểm tra hai khoảng ngày [aStart, aEnd] và [bStart, bEnd]
// có giao nhau hay không (chạm đầu mút cũng tính là giao)
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !NormalizeDate(aStart).After(NormalizeDate(bEnd)) &&
		!NormalizeDate(bStart).After(NormalizeDate(aEnd))
}
