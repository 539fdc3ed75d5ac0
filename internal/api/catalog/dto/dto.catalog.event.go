package dto

import (
	catalogmodels "exp_commerce/internal/api/catalog/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExperienceEventCreateInput là input tạo sự kiện trải nghiệm
type ExperienceEventCreateInput struct {
	VendorID    primitive.ObjectID   `json:"vendorId,omitempty"`
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description,omitempty"`
	Tiers       []catalogmodels.Tier `json:"tiers,omitempty" validate:"omitempty,dive"`
	Cities      []catalogmodels.City `json:"cities,omitempty" validate:"omitempty,dive"`
	Banners     []string             `json:"banners,omitempty"`
	Categories  []primitive.ObjectID `json:"categories,omitempty"`
}

// ExperienceEventUpdateInput là input sửa trực tiếp sự kiện, chỉ admin dùng được
type ExperienceEventUpdateInput struct {
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	Tiers       []catalogmodels.Tier `json:"tiers,omitempty" validate:"omitempty,dive"`
	Cities      []catalogmodels.City `json:"cities,omitempty" validate:"omitempty,dive"`
	Banners     []string             `json:"banners,omitempty"`
	Categories  []primitive.ObjectID `json:"categories,omitempty"`
	IsVerified  bool                 `json:"isVerified,omitempty"`
}
