package dto

// EntityParams định danh entity đích của một thao tác workflow qua URI
type EntityParams struct {
	EntityType string `uri:"entityType" validate:"required,oneof=vendor addon experienceEvent"`
	ID         string `uri:"id" validate:"required"`
}

// RejectInput là input từ chối thay đổi, lý do là bắt buộc
type RejectInput struct {
	Reason string `json:"reason" validate:"required"`
}

// LastRejectedInput là input tra cứu record bị từ chối gần nhất
// cho một loạt entity, phục vụ màn hình danh sách của vendor
type LastRejectedInput struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}
