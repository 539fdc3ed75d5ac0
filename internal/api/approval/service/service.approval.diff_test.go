// Package approvalsvc - Test diff và reconcile trên managed fields.
package approvalsvc

import (
	"reflect"
	"testing"

	catalogmodels "exp_commerce/internal/api/catalog/models"
)

func tier(name string, price float64) map[string]interface{} {
	return map[string]interface{}{"name": name, "price": price}
}

func TestItemKey_TrimLowercase(t *testing.T) {
	cases := map[string]string{
		"Gold":     "gold",
		"  Gold  ": "gold",
		"SILVER":   "silver",
		"":         "",
	}
	for input, want := range cases {
		got := ItemKey(map[string]interface{}{"name": input})
		if got != want {
			t.Errorf("ItemKey(%q) = %q, muốn %q", input, got, want)
		}
	}
}

func TestReconcileKeyed_ReplaceAndAppend(t *testing.T) {
	existing := []interface{}{tier("Gold", 100), tier("Silver", 50)}
	incoming := []interface{}{tier("gold", 120), tier("Bronze", 20)}

	result := ReconcileKeyed(existing, incoming)
	if len(result) != 3 {
		t.Fatalf("ReconcileKeyed trả về %d items, muốn 3", len(result))
	}

	first := AsMap(result[0])
	if first["name"] != "gold" || first["price"] != float64(120) {
		t.Errorf("item trùng key phải bị thay thế toàn bộ bởi bản incoming, nhận: %v", first)
	}
	second := AsMap(result[1])
	if second["name"] != "Silver" {
		t.Errorf("item không bị động đến phải giữ nguyên vị trí, nhận: %v", second)
	}
	third := AsMap(result[2])
	if third["name"] != "Bronze" {
		t.Errorf("key mới phải append cuối danh sách, nhận: %v", third)
	}
}

func TestReconcileKeyed_Idempotent(t *testing.T) {
	existing := []interface{}{tier("Gold", 100)}
	incoming := []interface{}{tier("gold", 120), tier("Silver", 50)}

	once := ReconcileKeyed(existing, incoming)
	twice := ReconcileKeyed(once, incoming)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("ReconcileKeyed không idempotent:\nlần 1: %v\nlần 2: %v", once, twice)
	}
}

func TestReconcileKeyed_NoDuplicateKeys(t *testing.T) {
	existing := []interface{}{tier("Gold", 100), tier("GOLD", 90)}
	incoming := []interface{}{tier("gold", 120)}

	result := ReconcileKeyed(existing, incoming)
	seen := map[string]bool{}
	for _, item := range result {
		key := ItemKey(AsMap(item))
		if seen[key] {
			t.Fatalf("kết quả có hai item trùng key %q: %v", key, result)
		}
		seen[key] = true
	}
}

func TestUnionStrings_DedupeKeepOrder(t *testing.T) {
	existing := []string{"a.jpg", "b.jpg"}
	incoming := []string{"b.jpg", "c.jpg", "", "a.jpg"}

	got := UnionStrings(existing, incoming)
	want := []string{"a.jpg", "b.jpg", "c.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnionStrings = %v, muốn %v", got, want)
	}
}

func TestDiff_ScalarChange(t *testing.T) {
	specs := catalogmodels.ManagedFields(catalogmodels.EntityTypeVendor)
	baseline := map[string]interface{}{"title": "Tour cũ", "description": "Mô tả"}
	candidate := map[string]interface{}{"title": "Tour mới", "description": "Mô tả"}

	changes := Diff(candidate, baseline, specs)
	if len(changes) != 1 {
		t.Fatalf("Diff trả về %d changes, muốn 1: %v", len(changes), changes)
	}
	change, ok := changes["title"]
	if !ok {
		t.Fatal("Diff thiếu change cho field title")
	}
	if change.Old != "Tour cũ" || change.New != "Tour mới" {
		t.Errorf("FieldChange sai: old=%v new=%v", change.Old, change.New)
	}
}

func TestDiff_FieldAbsentInCandidateIgnored(t *testing.T) {
	specs := catalogmodels.ManagedFields(catalogmodels.EntityTypeVendor)
	baseline := map[string]interface{}{"title": "Tour", "description": "Mô tả"}
	candidate := map[string]interface{}{"title": "Tour"}

	changes := Diff(candidate, baseline, specs)
	if len(changes) != 0 {
		t.Errorf("field vắng mặt trong candidate không được tạo change, nhận: %v", changes)
	}
}

func TestDiff_UnmanagedFieldIgnored(t *testing.T) {
	specs := catalogmodels.ManagedFields(catalogmodels.EntityTypeVendor)
	baseline := map[string]interface{}{"title": "Tour"}
	candidate := map[string]interface{}{"title": "Tour", "isVerified": true, "vendorId": "abc"}

	changes := Diff(candidate, baseline, specs)
	if len(changes) != 0 {
		t.Errorf("field ngoài allow-list phải bị bỏ qua, nhận: %v", changes)
	}
}

func TestDiff_KeyedArrayCaseOnlyRename_NoChange(t *testing.T) {
	specs := catalogmodels.ManagedFields(catalogmodels.EntityTypeAddon)
	baseline := map[string]interface{}{
		"tiers": []interface{}{tier("Gold", 100)},
	}
	candidate := map[string]interface{}{
		"tiers": []interface{}{tier("gold", 100)},
	}

	changes := Diff(candidate, baseline, specs)
	if len(changes) != 0 {
		t.Errorf("đổi hoa thường của name không được tính là thay đổi, nhận: %v", changes)
	}
}

func TestDiff_KeyedArrayPriceChange(t *testing.T) {
	specs := catalogmodels.ManagedFields(catalogmodels.EntityTypeAddon)
	baseline := map[string]interface{}{
		"tiers": []interface{}{tier("Gold", 100), tier("Silver", 50)},
	}
	candidate := map[string]interface{}{
		"tiers": []interface{}{tier("gold", 120)},
	}

	changes := Diff(candidate, baseline, specs)
	change, ok := changes["tiers"]
	if !ok {
		t.Fatalf("Diff thiếu change cho tiers, nhận: %v", changes)
	}
	merged := AsSlice(change.New)
	if len(merged) != 2 {
		t.Fatalf("change.New phải là danh sách đã reconcile (2 items), nhận: %v", merged)
	}
	if AsMap(merged[0])["price"] != float64(120) {
		t.Errorf("tier gold phải có giá mới 120, nhận: %v", merged[0])
	}
	if AsMap(merged[1])["name"] != "Silver" {
		t.Errorf("tier Silver phải được giữ lại, nhận: %v", merged[1])
	}
}

func TestDiff_BannersSetUnion(t *testing.T) {
	specs := catalogmodels.ManagedFields(catalogmodels.EntityTypeVendor)
	baseline := map[string]interface{}{
		"banners": []interface{}{"a.jpg", "b.jpg"},
	}
	candidate := map[string]interface{}{
		"banners": []interface{}{"c.jpg", "a.jpg"},
	}

	changes := Diff(candidate, baseline, specs)
	change, ok := changes["banners"]
	if !ok {
		t.Fatalf("Diff thiếu change cho banners, nhận: %v", changes)
	}
	got, _ := change.New.([]string)
	want := []string{"a.jpg", "b.jpg", "c.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("banners phải là union giữ thứ tự: %v, muốn %v", got, want)
	}
}

func TestDiff_BannersSubsetNoChange(t *testing.T) {
	specs := catalogmodels.ManagedFields(catalogmodels.EntityTypeVendor)
	baseline := map[string]interface{}{
		"banners": []interface{}{"a.jpg", "b.jpg"},
	}
	candidate := map[string]interface{}{
		"banners": []interface{}{"b.jpg"},
	}

	changes := Diff(candidate, baseline, specs)
	if len(changes) != 0 {
		t.Errorf("banner đã có sẵn không tạo change (xóa đi qua kênh riêng), nhận: %v", changes)
	}
}

func TestDiff_NumericTypesEqual(t *testing.T) {
	specs := []catalogmodels.FieldSpec{{Name: "title", Strategy: catalogmodels.StrategyScalar}}
	baseline := map[string]interface{}{"title": int64(5)}
	candidate := map[string]interface{}{"title": float64(5)}

	changes := Diff(candidate, baseline, specs)
	if len(changes) != 0 {
		t.Errorf("int64(5) và float64(5) phải được coi là bằng nhau, nhận: %v", changes)
	}
}
