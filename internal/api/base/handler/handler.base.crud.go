package basehdl

// Package basehdl - base CRUD handlers.
// Package này cung cấp các chức năng CRUD cơ bản và các tiện ích để xử lý request/response.

import (
	"encoding/json"
	"fmt"

	basesvc "exp_commerce/internal/api/base/service"
	"exp_commerce/internal/common"
	"exp_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsertOne thêm mới một document vào database.
// Dữ liệu được parse từ request body (DTO CreateInput) và transform sang Model trước khi thêm vào DB.
// Vendor chỉ được tạo document gắn với chính mình, admin được chỉ định vendorId tùy ý.
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input CreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actor, err := h.GetActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !actor.IsAdmin() {
			// Vendor không được tạo hộ vendor khác
			vendorID := h.GetVendorIDFromModel(model)
			if !vendorID.IsZero() && vendorID != actor.ID {
				h.HandleResponse(c, nil, common.ErrForbidden)
				return nil
			}
			h.SetVendorIDOnModel(model, actor.ID)
		}

		data, err := h.BaseService.InsertOne(c.Context(), *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// InsertMany thêm nhiều document vào database.
// Dữ liệu được parse từ request body dưới dạng mảng DTO và transform từng phần tử.
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var inputs []CreateInput
		if err := h.ParseRequestBody(c, &inputs); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên phải là một mảng JSON và các phần tử phải khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		actor, err := h.GetActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		models := make([]T, 0, len(inputs))
		for i := range inputs {
			if err := h.ValidateInput(&inputs[i]); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			model, err := h.TransformToModel(&inputs[i])
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Lỗi transform dữ liệu item %d: %v", i+1, err),
					common.StatusBadRequest,
					err,
				))
				return nil
			}
			if !actor.IsAdmin() {
				vendorID := h.GetVendorIDFromModel(model)
				if !vendorID.IsZero() && vendorID != actor.ID {
					h.HandleResponse(c, nil, common.ErrForbidden)
					return nil
				}
				h.SetVendorIDOnModel(model, actor.ID)
			}
			models = append(models, *model)
		}

		data, err := h.BaseService.InsertMany(c.Context(), models)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindOne tìm một document theo điều kiện filter.
// Filter và options được truyền qua query string dưới dạng JSON.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		options, err := h.ProcessFindOneOptions(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOne(c.Context(), filter, options)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindOneById tìm một document theo ID truyền qua URI params
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.requireObjectID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOneById(c.Context(), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateVendorAccess(c, &data); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, data, nil)
		return nil
	})
}

// FindManyByIds tìm nhiều document theo danh sách ID.
// Danh sách ID được truyền qua query string dưới dạng mảng JSON.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindManyByIds(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var ids []string
		idsStr := c.Query("ids", "[]")
		if err := json.Unmarshal([]byte(idsStr), &ids); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Danh sách ID phải là một mảng JSON. Giá trị nhận được: %s", idsStr),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		for i, id := range ids {
			if !primitive.IsValidObjectID(id) {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("ID '%s' tại vị trí %d không đúng định dạng MongoDB ObjectID", id, i),
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
		}
		objectIds := utility.StringArray2ObjectIDArray(ids)

		data, err := h.BaseService.FindManyByIds(c.Context(), objectIds)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Find tìm nhiều document theo điều kiện filter.
// Filter và options được truyền qua query string dưới dạng JSON.
func (h *BaseHandler[T, CreateInput, UpdateInput]) Find(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		options, err := h.ProcessFindOptions(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.Find(c.Context(), filter, options)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindWithPagination tìm nhiều document với phân trang.
// Hỗ trợ filter, options và phân trang với page và limit từ query string.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		options, err := h.ProcessFindOptions(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)

		data, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, options)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateOne cập nhật một document theo điều kiện filter.
// Filter truyền qua query string, dữ liệu cập nhật trong request body.
// Chỉ update các trường có giá trị trong input, giữ nguyên các trường khác.
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		updateData, err := h.parseUpdateBody(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.UpdateOne(c.Context(), filter, updateData, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateMany cập nhật nhiều document theo điều kiện filter
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		updateData, err := h.parseUpdateBody(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.BaseService.UpdateMany(c.Context(), filter, updateData, nil)
		h.HandleResponse(c, count, err)
		return nil
	})
}

// UpdateById cập nhật một document theo ID.
// ID truyền qua URI params, dữ liệu cập nhật trong request body.
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.requireObjectID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Kiểm tra quyền trên document hiện tại trước khi update
		existing, err := h.BaseService.FindOneById(c.Context(), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateVendorAccess(c, &existing); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		updateData, err := h.parseUpdateBody(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.UpdateById(c.Context(), id, updateData)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DeleteOne xóa một document theo điều kiện filter
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		err = h.BaseService.DeleteOne(c.Context(), filter)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// DeleteMany xóa nhiều document theo điều kiện filter, trả về số lượng đã xóa
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		count, err := h.BaseService.DeleteMany(c.Context(), filter)
		h.HandleResponse(c, count, err)
		return nil
	})
}

// DeleteById xóa một document theo ID truyền qua URI params
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.requireObjectID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		existing, err := h.BaseService.FindOneById(c.Context(), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateVendorAccess(c, &existing); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.BaseService.DeleteById(c.Context(), id)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// FindOneAndUpdate tìm và cập nhật một document, trả về document sau khi cập nhật
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneAndUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		updateData, err := h.parseUpdateBody(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOneAndUpdate(c.Context(), filter, updateData, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// CountDocuments đếm số lượng document theo điều kiện filter
func (h *BaseHandler[T, CreateInput, UpdateInput]) CountDocuments(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		count, err := h.BaseService.CountDocuments(c.Context(), filter)
		h.HandleResponse(c, count, err)
		return nil
	})
}

// Distinct lấy danh sách giá trị duy nhất của một trường.
// Tên trường truyền qua URI params, filter qua query string.
func (h *BaseHandler[T, CreateInput, UpdateInput]) Distinct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		field := c.Params("field")
		if field == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tên trường không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		if utility.Contains(h.filterOptions.DeniedFields, field) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Trường '%s' không được phép truy vấn", field), common.StatusBadRequest, nil))
			return nil
		}

		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		data, err := h.BaseService.Distinct(c.Context(), field, filter)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Upsert thêm mới hoặc cập nhật một document.
// Filter truyền qua query string, dữ liệu trong request body (DTO CreateInput).
// Nếu không tìm thấy document thỏa mãn filter sẽ tạo mới, ngược lại sẽ cập nhật.
func (h *BaseHandler[T, CreateInput, UpdateInput]) Upsert(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		var input CreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actor, err := h.GetActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !actor.IsAdmin() {
			vendorID := h.GetVendorIDFromModel(model)
			if !vendorID.IsZero() && vendorID != actor.ID {
				h.HandleResponse(c, nil, common.ErrForbidden)
				return nil
			}
			h.SetVendorIDOnModel(model, actor.ID)
		}

		updateData := &basesvc.UpdateData{Set: map[string]interface{}{}}
		setFields, err := h.buildSetFromModel(model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		updateData.Set = setFields

		data, err := h.BaseService.Upsert(c.Context(), filter, updateData)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DocumentExists kiểm tra document có tồn tại theo điều kiện filter không
func (h *BaseHandler[T, CreateInput, UpdateInput]) DocumentExists(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyVendorScope(c, filter)

		exists, err := h.BaseService.DocumentExists(c.Context(), filter)
		h.HandleResponse(c, exists, err)
		return nil
	})
}

// requireObjectID lấy và validate ID từ URI params
func (h *BaseHandler[T, CreateInput, UpdateInput]) requireObjectID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	if id == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"ID không được để trống trong URL params",
			common.StatusBadRequest,
			nil,
		)
	}
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}

// parseUpdateBody parse body thành UpdateInput và build UpdateData với $set
// chỉ chứa các trường khác zero value (partial update)
func (h *BaseHandler[T, CreateInput, UpdateInput]) parseUpdateBody(c fiber.Ctx) (*basesvc.UpdateData, error) {
	var input UpdateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return nil, err
	}

	setFields, err := h.BuildUpdateSet(&input)
	if err != nil {
		return nil, err
	}
	if len(setFields) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không có trường nào để cập nhật", common.StatusBadRequest, nil)
	}

	return &basesvc.UpdateData{Set: setFields}, nil
}

// buildSetFromModel chuyển model sang map $set, loại bỏ zero values
func (h *BaseHandler[T, CreateInput, UpdateInput]) buildSetFromModel(model *T) (map[string]interface{}, error) {
	fullMap, err := utility.ToMap(model)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Lỗi convert model sang map: %v", err), common.StatusInternalServerError, err)
	}
	delete(fullMap, "_id")
	return fullMap, nil
}
