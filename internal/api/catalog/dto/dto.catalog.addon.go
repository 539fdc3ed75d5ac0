package dto

import (
	catalogmodels "exp_commerce/internal/api/catalog/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddonCreateInput là input tạo dịch vụ bổ sung
type AddonCreateInput struct {
	VendorID    primitive.ObjectID   `json:"vendorId,omitempty"`
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description,omitempty"`
	Tiers       []catalogmodels.Tier `json:"tiers,omitempty" validate:"omitempty,dive"`
	Banners     []string             `json:"banners,omitempty"`
}

// AddonUpdateInput là input sửa trực tiếp addon, chỉ admin dùng được
type AddonUpdateInput struct {
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	Tiers       []catalogmodels.Tier `json:"tiers,omitempty" validate:"omitempty,dive"`
	Banners     []string             `json:"banners,omitempty"`
	IsVerified  bool                 `json:"isVerified,omitempty"`
}
