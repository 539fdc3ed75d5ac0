package approvalsvc

import (
	"encoding/json"
	"reflect"

	approvalmodels "exp_commerce/internal/api/approval/models"
	catalogmodels "exp_commerce/internal/api/catalog/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Diff tính change-set giữa candidate và baseline trên các managed field.
// Chỉ field có mặt trong candidate và khác baseline (so sánh cấu trúc sâu
// sau khi chuẩn hóa) mới xuất hiện trong kết quả. Field không nằm trong
// specs bị bỏ qua. Hàm thuần, không side effect; trả về map rỗng khi
// không có gì thay đổi.
func Diff(candidate, baseline map[string]interface{}, specs []catalogmodels.FieldSpec) map[string]approvalmodels.FieldChange {
	changes := map[string]approvalmodels.FieldChange{}

	for _, spec := range specs {
		candidateValue, present := candidate[spec.Name]
		if !present {
			continue
		}
		baselineValue := baseline[spec.Name]

		switch spec.Strategy {
		case catalogmodels.StrategyKeyedArray:
			reconciled := ReconcileKeyed(AsSlice(baselineValue), AsSlice(candidateValue))
			if keyedArraysEqual(AsSlice(baselineValue), reconciled) {
				continue
			}
			changes[spec.Name] = approvalmodels.FieldChange{Old: baselineValue, New: reconciled}

		case catalogmodels.StrategySetUnion:
			union := UnionStrings(AsStringSlice(baselineValue), AsStringSlice(candidateValue))
			if stringSlicesEqual(AsStringSlice(baselineValue), union) {
				continue
			}
			changes[spec.Name] = approvalmodels.FieldChange{Old: baselineValue, New: union}

		default: // StrategyScalar
			if structurallyEqual(candidateValue, baselineValue) {
				continue
			}
			changes[spec.Name] = approvalmodels.FieldChange{Old: baselineValue, New: candidateValue}
		}
	}

	return changes
}

// structurallyEqual so sánh cấu trúc sâu sau khi chuẩn hóa hai giá trị
func structurallyEqual(a, b interface{}) bool {
	return reflect.DeepEqual(normalizeValue(a), normalizeValue(b))
}

// keyedArraysEqual so sánh hai keyed array theo vị trí: cùng độ dài,
// từng cặp item trùng key và trùng nội dung sau chuẩn hóa.
// Key so sánh không phân biệt hoa thường nên đổi hoa thường của name
// không tính là thay đổi.
func keyedArraysEqual(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		itemA := AsMap(a[i])
		itemB := AsMap(b[i])
		if itemA == nil || itemB == nil {
			return false
		}
		if ItemKey(itemA) != ItemKey(itemB) {
			return false
		}
		if !reflect.DeepEqual(normalizeItem(itemA), normalizeItem(itemB)) {
			return false
		}
	}
	return true
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// normalizeItem chuẩn hóa một keyed item để so sánh: bỏ field name
// (đã so sánh qua key) và các định danh storage
func normalizeItem(item map[string]interface{}) interface{} {
	stripped := make(map[string]interface{}, len(item))
	for k, v := range item {
		if k == "name" {
			continue
		}
		stripped[k] = v
	}
	return normalizeValue(stripped)
}

// normalizeValue đưa một giá trị về dạng chuẩn để so sánh cấu trúc:
// số về float64, ObjectID về chuỗi hex, slice/map đệ quy, bỏ các giá trị
// rỗng (nil, chuỗi rỗng, slice/map rỗng) và các định danh storage (id, _id)
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return val
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return f
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case bool:
		return val
	case primitive.ObjectID:
		return val.Hex()
	case primitive.A:
		return normalizeSlice([]interface{}(val))
	case []interface{}:
		return normalizeSlice(val)
	case []string:
		return normalizeSlice(AsSlice(val))
	case bson.M:
		return normalizeMap(map[string]interface{}(val))
	case bson.D:
		return normalizeMap(val.Map())
	case map[string]interface{}:
		return normalizeMap(val)
	default:
		// Struct (Tier, City, ...) đi qua bson roundtrip để về dạng map
		if m := structToMap(v); m != nil {
			return normalizeMap(m)
		}
		return v
	}
}

func normalizeSlice(items []interface{}) interface{} {
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		normalized := normalizeValue(item)
		if normalized == nil {
			continue
		}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeMap(m map[string]interface{}) interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if k == "id" || k == "_id" {
			continue
		}
		normalized := normalizeValue(v)
		if normalized == nil {
			continue
		}
		out[k] = normalized
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// structToMap chuyển struct về map qua bson roundtrip, trả về nil nếu không phải struct
func structToMap(v interface{}) map[string]interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice {
		return nil
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
