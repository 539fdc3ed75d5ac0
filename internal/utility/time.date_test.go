// Package utility - Test các hàm calendar date.
package utility

import (
	"testing"
	"time"
)

func TestNormalizeDate_KeepsCalendarDate(t *testing.T) {
	input := time.Date(2024, 6, 14, 23, 59, 58, 123, time.UTC)
	got := NormalizeDate(input)
	want := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NormalizeDate = %v, muốn %v", got, want)
	}
}

func TestParseDateYMD(t *testing.T) {
	got, err := ParseDateYMD("2024-06-14")
	if err != nil {
		t.Fatalf("ParseDateYMD trả về lỗi: %v", err)
	}
	if !got.Equal(time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDateYMD = %v", got)
	}

	if _, err := ParseDateYMD("14/06/2024"); err == nil {
		t.Error("định dạng DD/MM/YYYY phải bị từ chối")
	}
	if _, err := ParseDateYMD("2024-13-01"); err == nil {
		t.Error("tháng 13 phải bị từ chối")
	}
}

func TestWeekdayIndex(t *testing.T) {
	// 02/06/2024 là Chủ nhật, 08/06/2024 là thứ Bảy
	if got := WeekdayIndex(time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)); got != 0 {
		t.Errorf("WeekdayIndex(Chủ nhật) = %d, muốn 0", got)
	}
	if got := WeekdayIndex(time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)); got != 6 {
		t.Errorf("WeekdayIndex(thứ Bảy) = %d, muốn 6", got)
	}
}

func TestDateInRange_Inclusive(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		date time.Time
		want bool
	}{
		{start, true},
		{end, true},
		{time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC), false},
	}
	for _, c := range cases {
		if got := DateInRange(c.date, start, end); got != c.want {
			t.Errorf("DateInRange(%s) = %v, muốn %v", FormatDateYMD(c.date), got, c.want)
		}
	}
}

func TestRangesOverlap(t *testing.T) {
	d := func(day int) time.Time {
		return time.Date(2024, 7, day, 0, 0, 0, 0, time.UTC)
	}

	if !RangesOverlap(d(10), d(20), d(15), d(25)) {
		t.Error("hai range giao nhau phải trả về true")
	}
	if !RangesOverlap(d(10), d(20), d(20), d(25)) {
		t.Error("chạm đầu mút cũng tính là giao")
	}
	if RangesOverlap(d(10), d(20), d(21), d(25)) {
		t.Error("hai range rời nhau phải trả về false")
	}
}
