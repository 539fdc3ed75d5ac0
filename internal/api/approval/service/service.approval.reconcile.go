package approvalsvc

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemKey trả về natural key của một item trong keyed array:
// field name sau khi trim và lowercase. Item không có name trả về chuỗi rỗng.
func ItemKey(item map[string]interface{}) string {
	name, _ := item["name"].(string)
	return strings.ToLower(strings.TrimSpace(name))
}

// ReconcileKeyed merge hai danh sách keyed item theo natural key.
// Item trùng key: bản incoming thay thế toàn bộ bản existing.
// Key mới: append vào cuối theo thứ tự trong incoming.
// Kết quả giữ nguyên thứ tự của existing, không bao giờ có hai item trùng key.
// Hàm này idempotent: reconcile(reconcile(e, i), i) == reconcile(e, i).
func ReconcileKeyed(existing, incoming []interface{}) []interface{} {
	result := make([]interface{}, 0, len(existing)+len(incoming))
	position := map[string]int{}

	for _, item := range existing {
		m := AsMap(item)
		if m == nil {
			continue
		}
		key := ItemKey(m)
		if _, seen := position[key]; seen {
			continue
		}
		position[key] = len(result)
		result = append(result, m)
	}

	for _, item := range incoming {
		m := AsMap(item)
		if m == nil {
			continue
		}
		key := ItemKey(m)
		if idx, seen := position[key]; seen {
			result[idx] = m
		} else {
			position[key] = len(result)
			result = append(result, m)
		}
	}

	return result
}

// UnionStrings union hai danh sách URL có dedupe, giữ thứ tự:
// existing trước, các URL mới của incoming append sau
func UnionStrings(existing, incoming []string) []string {
	result := make([]string, 0, len(existing)+len(incoming))
	seen := map[string]bool{}
	for _, s := range existing {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	for _, s := range incoming {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	return result
}

// AsMap chuyển một item về map[string]interface{}.
// Trả về nil nếu giá trị không phải dạng map.
func AsMap(v interface{}) map[string]interface{} {
	switch m := v.(type) {
	case map[string]interface{}:
		return m
	case bson.M:
		return map[string]interface{}(m)
	case bson.D:
		return m.Map()
	default:
		return nil
	}
}

// AsSlice chuyển một giá trị về []interface{}.
// Trả về nil nếu giá trị không phải dạng slice.
func AsSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case primitive.A:
		return []interface{}(s)
	case []map[string]interface{}:
		out := make([]interface{}, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out
	case []string:
		out := make([]interface{}, len(s))
		for i, str := range s {
			out[i] = str
		}
		return out
	default:
		return nil
	}
}

// AsStringSlice chuyển một giá trị về []string, bỏ qua phần tử không phải string
func AsStringSlice(v interface{}) []string {
	items := AsSlice(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
