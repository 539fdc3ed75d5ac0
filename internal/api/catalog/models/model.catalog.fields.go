package models

// MergeStrategy định nghĩa cách một managed field được diff và merge
// trong quy trình duyệt
type MergeStrategy string

const (
	StrategyScalar     MergeStrategy = "scalar"     // Ghi đè toàn bộ giá trị
	StrategyKeyedArray MergeStrategy = "keyedArray" // Reconcile theo key name (tiers, cities)
	StrategySetUnion   MergeStrategy = "setUnion"   // Union có dedupe, giữ thứ tự (banners)
)

// FieldSpec khai báo một managed field và chiến lược merge của nó.
// Đây là allow-list duy nhất cho diff/merge: field không nằm trong
// danh sách này bị quy trình duyệt bỏ qua.
type FieldSpec struct {
	Name     string        // Tên field trong document (bson key)
	Strategy MergeStrategy // Cách diff và merge field này
}

// managedFieldsByEntityType khai báo managed fields một lần cho mỗi loại entity
var managedFieldsByEntityType = map[string][]FieldSpec{
	EntityTypeVendor: {
		{Name: "title", Strategy: StrategyScalar},
		{Name: "description", Strategy: StrategyScalar},
		{Name: "cities", Strategy: StrategyKeyedArray},
		{Name: "banners", Strategy: StrategySetUnion},
		{Name: "categories", Strategy: StrategyScalar},
	},
	EntityTypeAddon: {
		{Name: "title", Strategy: StrategyScalar},
		{Name: "description", Strategy: StrategyScalar},
		{Name: "tiers", Strategy: StrategyKeyedArray},
		{Name: "banners", Strategy: StrategySetUnion},
	},
	EntityTypeEvent: {
		{Name: "title", Strategy: StrategyScalar},
		{Name: "description", Strategy: StrategyScalar},
		{Name: "tiers", Strategy: StrategyKeyedArray},
		{Name: "cities", Strategy: StrategyKeyedArray},
		{Name: "banners", Strategy: StrategySetUnion},
		{Name: "categories", Strategy: StrategyScalar},
	},
}

// ManagedFields trả về danh sách managed fields của một loại entity.
// Trả về nil nếu entityType không được hỗ trợ.
func ManagedFields(entityType string) []FieldSpec {
	return managedFieldsByEntityType[entityType]
}

// IsValidEntityType kiểm tra entityType có chịu quy trình duyệt không
func IsValidEntityType(entityType string) bool {
	_, ok := managedFieldsByEntityType[entityType]
	return ok
}

// FieldStrategy tra cứu chiến lược merge của một field trong entityType.
// ok=false nghĩa là field không phải managed field.
func FieldStrategy(entityType, field string) (MergeStrategy, bool) {
	for _, spec := range managedFieldsByEntityType[entityType] {
		if spec.Name == field {
			return spec.Strategy, true
		}
	}
	return "", false
}
