package dto

import (
	catalogmodels "exp_commerce/internal/api/catalog/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VendorProfileCreateInput là input tạo hồ sơ vendor.
// VendorID chỉ dành cho admin tạo hộ, vendor tự tạo thì bỏ trống.
type VendorProfileCreateInput struct {
	VendorID    primitive.ObjectID   `json:"vendorId,omitempty"`
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description,omitempty"`
	Cities      []catalogmodels.City `json:"cities,omitempty" validate:"omitempty,dive"`
	Banners     []string             `json:"banners,omitempty"`
	Categories  []primitive.ObjectID `json:"categories,omitempty"`
}

// VendorProfileUpdateInput là input sửa trực tiếp hồ sơ vendor, chỉ admin
// dùng được. Vendor sửa qua luồng duyệt thay đổi.
type VendorProfileUpdateInput struct {
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	Cities      []catalogmodels.City `json:"cities,omitempty" validate:"omitempty,dive"`
	Banners     []string             `json:"banners,omitempty"`
	Categories  []primitive.ObjectID `json:"categories,omitempty"`
	IsVerified  bool                 `json:"isVerified,omitempty"`
}
