// Package utility - Test các helper slice.
package utility

import (
	"reflect"
	"testing"
)

func TestContains(t *testing.T) {
	if !Contains([]string{"a", "b"}, "b") {
		t.Error("Contains phải tìm thấy phần tử có trong slice")
	}
	if Contains([]int{1, 2}, 3) {
		t.Error("Contains không được tìm thấy phần tử vắng mặt")
	}
}

func TestDedupe_KeepsFirstOccurrenceOrder(t *testing.T) {
	got := Dedupe([]int{6, 0, 6, 3, 0})
	want := []int{6, 0, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedupe = %v, muốn %v", got, want)
	}

	empty := Dedupe([]string{})
	if len(empty) != 0 {
		t.Errorf("Dedupe slice rỗng phải trả về slice rỗng, nhận: %v", empty)
	}
}
