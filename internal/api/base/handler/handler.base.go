package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	basesvc "exp_commerce/internal/api/base/service"
	"exp_commerce/internal/common"
	"exp_commerce/internal/global"
	"exp_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// FilterOptions cấu hình giới hạn cho filter từ client
type FilterOptions struct {
	DeniedFields     []string // Các trường không được phép filter
	AllowedOperators []string // Các MongoDB operator được phép
	MaxFields        int      // Số lượng trường tối đa trong một filter
}

// BaseHandler cung cấp các hàm xử lý request dùng chung cho mọi handler.
// T là kiểu Model, CreateInput và UpdateInput là các DTO tương ứng.
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T]
	filterOptions FilterOptions
}

// NewBaseHandler khởi tạo BaseHandler với cấu hình filter mặc định
func NewBaseHandler[T any, CreateInput any, UpdateInput any](svc basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: svc,
		filterOptions: FilterOptions{
			DeniedFields: []string{
				"password",
				"token",
				"secret",
				"key",
				"hash",
			},
			AllowedOperators: []string{
				"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists",
			},
			MaxFields: 10,
		},
	}
}

// SetFilterOptions ghi đè cấu hình filter của handler
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetFilterOptions(opts FilterOptions) {
	h.filterOptions = opts
}

// ActorFromContext lấy thông tin actor đã xác thực từ context.
// Middleware xác thực phải set actorID và actorRole vào Locals trước đó.
func ActorFromContext(c fiber.Ctx) (common.Actor, error) {
	id, ok := c.Locals("actorID").(primitive.ObjectID)
	if !ok || id.IsZero() {
		return common.Actor{}, common.ErrTokenMissing
	}
	role, _ := c.Locals("actorRole").(string)
	return common.Actor{ID: id, Role: role}, nil
}

// GetActor lấy thông tin actor đã xác thực từ context
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetActor(c fiber.Ctx) (common.Actor, error) {
	return ActorFromContext(c)
}

// ValidateInput kiểm tra dữ liệu đầu vào theo các validate tag đã đăng ký
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if input == nil {
		return common.NewError(common.ErrCodeValidationInput, "Dữ liệu đầu vào không được để trống", common.StatusBadRequest, nil)
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("Dữ liệu đầu vào không hợp lệ: %v", err), common.StatusBadRequest, err)
	}
	return nil
}

// ParseRequestBody parse body JSON của request vào struct đích.
// Dùng json.Decoder với UseNumber để không mất precision với số lớn.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return common.NewError(common.ErrCodeValidationInput, "Body của request không được để trống", common.StatusBadRequest, nil)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Body không đúng định dạng JSON: %v", err), common.StatusBadRequest, err)
	}

	return h.ValidateInput(out)
}

// ParseRequestParams parse URI params của request vào struct đích
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestParams(c fiber.Ctx, out interface{}) error {
	if err := c.Bind().URI(out); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Params không hợp lệ: %v", err), common.StatusBadRequest, err)
	}
	return h.ValidateInput(out)
}

// ParseRequestQuery parse query string của request vào struct đích
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestQuery(c fiber.Ctx, out interface{}) error {
	if err := c.Bind().Query(out); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Query không hợp lệ: %v", err), common.StatusBadRequest, err)
	}
	return h.ValidateInput(out)
}

// GetIDFromContext lấy ID từ URI params của request
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}

// ParsePagination parse thông tin phân trang từ query string.
// page mặc định 1, limit mặc định 10.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page := utility.P2Int64(c.Query("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit := utility.P2Int64(c.Query("limit", "10"))
	if limit <= 0 {
		limit = 10
	}

	return page, limit
}

// ProcessFilter parse và chuẩn hóa filter từ query string `filter` (JSON).
// Trả về filter rỗng nếu client không truyền filter.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	filterStr := c.Query("filter", "")
	if filterStr == "" {
		return map[string]interface{}{}, nil
	}

	var filter map[string]interface{}
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Filter không đúng định dạng JSON: %v", err), common.StatusBadRequest, err)
	}

	filter = h.normalizeFilter(filter)
	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}
	return filter, nil
}

// normalizeFilter chuẩn hóa filter: chuyển các chuỗi hex trong trường ID
// thành ObjectID, hỗ trợ cú pháp extended JSON {"$oid": "..."} và mảng $in/$nin
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(filter))
	for key, value := range filter {
		normalized[key] = h.normalizeFilterValue(key, value)
	}
	return normalized
}

func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilterValue(key string, value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		if isIDField(key) {
			if oid, err := primitive.ObjectIDFromHex(v); err == nil {
				return oid
			}
		}
		return v
	case map[string]interface{}:
		// Extended JSON: {"$oid": "..."}
		if oidStr, ok := v["$oid"].(string); ok && len(v) == 1 {
			if oid, err := primitive.ObjectIDFromHex(oidStr); err == nil {
				return oid
			}
			return v
		}
		// Các operator lồng nhau: {"$in": [...]}, {"$gt": ...}
		nested := make(map[string]interface{}, len(v))
		for op, opValue := range v {
			nested[op] = h.normalizeFilterValue(key, opValue)
		}
		return nested
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = h.normalizeFilterValue(key, item)
		}
		return items
	default:
		return v
	}
}

// isIDField nhận biết trường chứa ObjectID theo hậu tố tên trường
func isIDField(key string) bool {
	return key == "_id" || strings.HasSuffix(key, "Id") || strings.HasSuffix(key, "ID") || strings.HasSuffix(key, "id")
}

// validateFilter kiểm tra filter theo cấu hình FilterOptions
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	if len(filter) > h.filterOptions.MaxFields {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Filter không được vượt quá %d trường", h.filterOptions.MaxFields),
			common.StatusBadRequest,
			nil,
		)
	}

	for field, value := range filter {
		if utility.Contains(h.filterOptions.DeniedFields, field) {
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Trường '%s' không được phép sử dụng trong filter vì lý do bảo mật", field),
				common.StatusBadRequest,
				nil,
			)
		}

		if nested, ok := value.(map[string]interface{}); ok {
			for op := range nested {
				if strings.HasPrefix(op, "$") && !utility.Contains(h.filterOptions.AllowedOperators, op) {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Operator '%s' không được hỗ trợ trong filter", op),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}
	return nil
}

// ProcessFindOptions parse query string `options` (JSON) thành options cho Find.
// Hỗ trợ projection, sort, limit, skip.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFindOptions(c fiber.Ctx) (*mongoopts.FindOptions, error) {
	rawOptions, optionsStr, err := h.parseRawOptions(c)
	if err != nil {
		return nil, err
	}
	if rawOptions == nil {
		return nil, nil
	}

	opts := mongoopts.Find()
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		opts.SetProjection(projection)
	}
	if _, ok := rawOptions["sort"]; ok {
		opts.SetSort(parseSortOrdered(optionsStr))
	}
	if limit, ok := rawOptions["limit"].(float64); ok {
		opts.SetLimit(int64(limit))
	}
	if skip, ok := rawOptions["skip"].(float64); ok {
		opts.SetSkip(int64(skip))
	}
	return opts, nil
}

// ProcessFindOneOptions parse query string `options` (JSON) thành options cho FindOne
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFindOneOptions(c fiber.Ctx) (*mongoopts.FindOneOptions, error) {
	rawOptions, optionsStr, err := h.parseRawOptions(c)
	if err != nil {
		return nil, err
	}
	if rawOptions == nil {
		return nil, nil
	}

	opts := mongoopts.FindOne()
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		opts.SetProjection(projection)
	}
	if _, ok := rawOptions["sort"]; ok {
		opts.SetSort(parseSortOrdered(optionsStr))
	}
	return opts, nil
}

func (h *BaseHandler[T, CreateInput, UpdateInput]) parseRawOptions(c fiber.Ctx) (map[string]interface{}, string, error) {
	optionsStr := c.Query("options", "")
	if optionsStr == "" {
		return nil, "", nil
	}

	var rawOptions map[string]interface{}
	if err := json.Unmarshal([]byte(optionsStr), &rawOptions); err != nil {
		return nil, "", common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Options không đúng định dạng JSON: %v", err), common.StatusBadRequest, err)
	}
	if err := h.validateMongoOptions(rawOptions); err != nil {
		return nil, "", err
	}
	return rawOptions, optionsStr, nil
}

// parseSortOrdered parse phần sort từ JSON gốc bằng json.Decoder
// để giữ nguyên thứ tự các trường sort như client truyền lên
func parseSortOrdered(optionsJSON string) bson.D {
	sortBson := bson.D{}

	var tempOptions map[string]json.RawMessage
	if err := json.Unmarshal([]byte(optionsJSON), &tempOptions); err != nil {
		return sortBson
	}
	sortRaw, ok := tempOptions["sort"]
	if !ok {
		return sortBson
	}

	decoder := json.NewDecoder(bytes.NewReader(sortRaw))
	decoder.UseNumber()
	if token, err := decoder.Token(); err != nil || token != json.Delim('{') {
		return sortBson
	}

	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			break
		}
		field, ok := keyToken.(string)
		if !ok {
			continue
		}

		valueToken, err := decoder.Token()
		if err != nil {
			break
		}
		num, ok := valueToken.(json.Number)
		if !ok {
			continue
		}
		sortValue, err := num.Int64()
		if err != nil || (sortValue != 1 && sortValue != -1) {
			continue
		}
		sortBson = append(sortBson, bson.E{Key: field, Value: int(sortValue)})
	}

	return sortBson
}

// validateMongoOptions kiểm tra tính hợp lệ của các options từ client
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateMongoOptions(options map[string]interface{}) error {
	allowedOptions := map[string]bool{
		"projection": true,
		"sort":       true,
		"limit":      true,
		"skip":       true,
	}
	for key := range options {
		if !allowedOptions[key] {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Option '%s' không được hỗ trợ. Các options được phép: projection, sort, limit, skip", key),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	if projection, ok := options["projection"].(map[string]interface{}); ok {
		for field := range projection {
			if utility.Contains(h.filterOptions.DeniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép sử dụng trong projection vì lý do bảo mật", field),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if sort, ok := options["sort"].(map[string]interface{}); ok {
		for field, value := range sort {
			if utility.Contains(h.filterOptions.DeniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép sử dụng trong sort vì lý do bảo mật", field),
					common.StatusBadRequest,
					nil,
				)
			}
			if v, ok := value.(float64); !ok || (v != 1 && v != -1) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Giá trị sort cho trường '%s' phải là 1 (tăng dần) hoặc -1 (giảm dần)", field),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if limit, ok := options["limit"].(float64); ok {
		if limit <= 0 || limit > 1000 {
			return common.NewError(common.ErrCodeValidationFormat, "Giá trị limit phải trong khoảng 1 đến 1000", common.StatusBadRequest, nil)
		}
	}
	if skip, ok := options["skip"].(float64); ok && skip < 0 {
		return common.NewError(common.ErrCodeValidationFormat, "Giá trị skip không được âm", common.StatusBadRequest, nil)
	}

	return nil
}

// TransformToModel chuyển DTO sang Model bằng reflection theo tên trường.
// Trường string trong DTO được tự động chuyển thành ObjectID nếu trường
// tương ứng trong Model có kiểu primitive.ObjectID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformToModel(input interface{}) (*T, error) {
	model := new(T)

	inputVal := reflect.ValueOf(input)
	if inputVal.Kind() == reflect.Ptr {
		inputVal = inputVal.Elem()
	}
	if inputVal.Kind() != reflect.Struct {
		return nil, common.NewError(common.ErrCodeValidationInput, "Dữ liệu đầu vào phải là struct", common.StatusBadRequest, nil)
	}

	modelVal := reflect.ValueOf(model).Elem()
	modelType := modelVal.Type()
	inputType := inputVal.Type()

	objectIDType := reflect.TypeOf(primitive.ObjectID{})

	for i := 0; i < inputVal.NumField(); i++ {
		inputField := inputVal.Field(i)
		inputFieldType := inputType.Field(i)
		if !inputField.CanInterface() {
			continue
		}

		if _, found := modelType.FieldByName(inputFieldType.Name); !found {
			continue
		}
		modelField := modelVal.FieldByName(inputFieldType.Name)
		if !modelField.IsValid() || !modelField.CanSet() {
			continue
		}

		// string → ObjectID cho các trường tham chiếu
		if inputField.Kind() == reflect.String && modelField.Type() == objectIDType {
			hex := inputField.String()
			if hex == "" {
				continue
			}
			oid, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				return nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không phải là ObjectID hợp lệ", inputFieldType.Name),
					common.StatusBadRequest,
					err,
				)
			}
			modelField.Set(reflect.ValueOf(oid))
			continue
		}

		if inputField.Type().AssignableTo(modelField.Type()) {
			modelField.Set(inputField)
		} else if inputField.Type().ConvertibleTo(modelField.Type()) {
			modelField.Set(inputField.Convert(modelField.Type()))
		}
	}

	return model, nil
}

// BuildUpdateSet chuyển DTO update thành map $set chỉ chứa các trường khác zero value
func (h *BaseHandler[T, CreateInput, UpdateInput]) BuildUpdateSet(input interface{}) (map[string]interface{}, error) {
	model, err := h.TransformToModel(input)
	if err != nil {
		return nil, err
	}

	fullMap, err := utility.ToMap(model)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển dữ liệu cập nhật sang map", common.StatusBadRequest, err)
	}

	modelVal := reflect.ValueOf(model).Elem()
	modelType := modelVal.Type()
	setFields := map[string]interface{}{}
	for i := 0; i < modelVal.NumField(); i++ {
		field := modelVal.Field(i)
		if field.IsZero() {
			continue
		}
		bsonKey := bsonKeyOf(modelType.Field(i))
		if bsonKey == "" || bsonKey == "_id" {
			continue
		}
		if v, ok := fullMap[bsonKey]; ok {
			setFields[bsonKey] = v
		}
	}
	return setFields, nil
}

// bsonKeyOf lấy tên trường bson từ struct tag
func bsonKeyOf(field reflect.StructField) string {
	tag := field.Tag.Get("bson")
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		return tag[:idx]
	}
	return tag
}

// GetVendorIDFromModel lấy VendorID từ model bằng reflection.
// Trả về NilObjectID nếu model không có trường VendorID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetVendorIDFromModel(model *T) primitive.ObjectID {
	if model == nil {
		return primitive.NilObjectID
	}
	val := reflect.ValueOf(model).Elem()
	if val.Kind() != reflect.Struct {
		return primitive.NilObjectID
	}
	field := val.FieldByName("VendorID")
	if !field.IsValid() {
		return primitive.NilObjectID
	}
	if oid, ok := field.Interface().(primitive.ObjectID); ok {
		return oid
	}
	return primitive.NilObjectID
}

// SetVendorIDOnModel gán VendorID vào model nếu model có trường này
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetVendorIDOnModel(model *T, vendorID primitive.ObjectID) {
	if model == nil {
		return
	}
	val := reflect.ValueOf(model).Elem()
	if val.Kind() != reflect.Struct {
		return
	}
	field := val.FieldByName("VendorID")
	if !field.IsValid() || !field.CanSet() {
		return
	}
	if field.Type() == reflect.TypeOf(primitive.ObjectID{}) {
		field.Set(reflect.ValueOf(vendorID))
	}
}

// ApplyVendorScope giới hạn filter theo vendor đang đăng nhập.
// Admin thấy toàn bộ dữ liệu, vendor chỉ thấy dữ liệu của chính mình.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ApplyVendorScope(c fiber.Ctx, filter map[string]interface{}) map[string]interface{} {
	actor, err := h.GetActor(c)
	if err != nil || actor.IsAdmin() {
		return filter
	}
	if filter == nil {
		filter = map[string]interface{}{}
	}
	filter["vendorId"] = actor.ID
	return filter
}

// ValidateVendorAccess kiểm tra actor có quyền thao tác trên model không.
// Vendor chỉ được thao tác trên dữ liệu gắn với VendorID của mình.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateVendorAccess(c fiber.Ctx, model *T) error {
	actor, err := h.GetActor(c)
	if err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}

	vendorID := h.GetVendorIDFromModel(model)
	if vendorID.IsZero() {
		// Model không gắn với vendor nào, chỉ admin được thao tác
		return common.ErrForbidden
	}
	if vendorID != actor.ID {
		return common.NewError(common.ErrCodeAuthRole, "Bạn không có quyền thao tác trên dữ liệu của vendor khác", common.StatusForbidden, nil)
	}
	return nil
}
