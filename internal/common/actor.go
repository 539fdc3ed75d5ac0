package common

import "go.mongodb.org/mongo-driver/bson/primitive"

// Vai trò của người thực hiện request trong hệ thống marketplace
const (
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// Actor đại diện cho người thực hiện request sau khi xác thực token
type Actor struct {
	ID   primitive.ObjectID `json:"id"`
	Role string             `json:"role"`
}

// IsAdmin kiểm tra actor có quyền quản trị không
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
