// Package approvalsvc - Test quy trình submit/approve/reject trên store in-memory.
package approvalsvc

import (
	"context"
	"testing"

	approvalmodels "exp_commerce/internal/api/approval/models"
	catalogmodels "exp_commerce/internal/api/catalog/models"
	"exp_commerce/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeEntityStore giữ documents trong memory và đếm số lần write-back
type fakeEntityStore struct {
	docs       map[string]bson.M
	writeCount int
}

func newFakeEntityStore() *fakeEntityStore {
	return &fakeEntityStore{docs: map[string]bson.M{}}
}

func (s *fakeEntityStore) put(id primitive.ObjectID, doc bson.M) {
	s.docs[id.Hex()] = doc
}

func (s *fakeEntityStore) Load(ctx context.Context, entityType string, id primitive.ObjectID) (bson.M, error) {
	doc, ok := s.docs[id.Hex()]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := bson.M{}
	for k, v := range doc {
		copied[k] = v
	}
	return copied, nil
}

func (s *fakeEntityStore) WriteBack(ctx context.Context, entityType string, id primitive.ObjectID, doc bson.M) error {
	s.writeCount++
	s.docs[id.Hex()] = doc
	return nil
}

// fakeHistoryStore lưu record theo thứ tự insert
type fakeHistoryStore struct {
	records []approvalmodels.ChangeRecord
}

func (s *fakeHistoryStore) InsertOne(ctx context.Context, record approvalmodels.ChangeRecord) (approvalmodels.ChangeRecord, error) {
	s.records = append(s.records, record)
	return record, nil
}

func (s *fakeHistoryStore) GetLastRejectedOne(ctx context.Context, entityID primitive.ObjectID) (approvalmodels.ChangeRecord, error) {
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].EntityID == entityID && s.records[i].Status == approvalmodels.ChangeStatusRejected {
			return s.records[i], nil
		}
	}
	return approvalmodels.ChangeRecord{}, common.ErrNotFound
}

type fakeMediaDeleter struct {
	deleted []string
}

func (d *fakeMediaDeleter) DeleteAllAsync(urls []string) {
	d.deleted = append(d.deleted, urls...)
}

func newWorkflowFixture(t *testing.T) (*ApprovalService, *fakeEntityStore, *fakeHistoryStore, *fakeMediaDeleter, primitive.ObjectID, common.Actor, common.Actor) {
	t.Helper()
	store := newFakeEntityStore()
	history := &fakeHistoryStore{}
	media := &fakeMediaDeleter{}
	svc := NewApprovalServiceWithStores(store, history, media)

	vendorID := primitive.NewObjectID()
	entityID := primitive.NewObjectID()
	store.put(entityID, bson.M{
		"_id":            entityID,
		"vendorId":       vendorID,
		"title":          "Tour Hà Nội",
		"description":    "Mô tả gốc",
		"tiers":          []interface{}{tier("Gold", 100), tier("Silver", 50)},
		"banners":        []string{"a.jpg", "b.jpg"},
		"workflowStatus": catalogmodels.WorkflowStatusApproved,
	})

	vendor := common.Actor{ID: vendorID, Role: common.RoleVendor}
	admin := common.Actor{ID: primitive.NewObjectID(), Role: common.RoleAdmin}
	return svc, store, history, media, entityID, vendor, admin
}

func TestSubmitApprove_MergesIntoLive(t *testing.T) {
	svc, store, history, _, entityID, vendor, admin := newWorkflowFixture(t)
	ctx := context.Background()

	candidate := map[string]interface{}{
		"title": "Tour Hà Nội Mới",
		"tiers": []interface{}{tier("gold", 120)},
	}
	doc, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, candidate, vendor)
	require.NoError(t, err)
	assert.Equal(t, catalogmodels.WorkflowStatusPending, doc["workflowStatus"])

	pending := AsMap(doc["pendingChanges"])
	require.NotNil(t, pending)
	assert.Equal(t, "Tour Hà Nội Mới", pending["title"])
	// Live chưa được đụng đến trước khi admin approve
	assert.Equal(t, "Tour Hà Nội", store.docs[entityID.Hex()]["title"])

	// Lượt submit của vendor được ghi lịch sử
	require.Len(t, history.records, 1)
	assert.Equal(t, approvalmodels.ChangeStatusPending, history.records[0].Status)
	assert.Equal(t, vendor.ID, history.records[0].ActorID)

	merged, err := svc.ApproveChange(ctx, catalogmodels.EntityTypeAddon, entityID, admin)
	require.NoError(t, err)
	assert.Equal(t, "Tour Hà Nội Mới", merged["title"])
	assert.Equal(t, catalogmodels.WorkflowStatusApproved, merged["workflowStatus"])
	assert.Equal(t, true, merged["isVerified"])
	_, hasPending := merged["pendingChanges"]
	assert.False(t, hasPending, "pendingChanges phải bị xóa sau khi approve")

	tiers := AsSlice(merged["tiers"])
	require.Len(t, tiers, 2, "tiers phải được reconcile, không ghi đè")
	assert.Equal(t, float64(120), AsMap(tiers[0])["price"])
	assert.Equal(t, "Silver", AsMap(tiers[1])["name"])

	// Record approve lưu snapshot live cũ
	require.Len(t, history.records, 2)
	approveRecord := history.records[1]
	assert.Equal(t, approvalmodels.ChangeStatusApproved, approveRecord.Status)
	assert.Equal(t, "Tour Hà Nội", approveRecord.OldData["title"])
}

func TestSubmit_BaselineIsPendingDraft(t *testing.T) {
	svc, _, _, _, entityID, vendor, _ := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "Bản nháp 1"}, vendor)
	require.NoError(t, err)

	// Gửi lại đúng nội dung đang nằm trong bản nháp: không có gì thay đổi
	_, err = svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "Bản nháp 1"}, vendor)
	assert.ErrorIs(t, err, common.ErrNoChangesDetected)

	// Sửa tiếp bản nháp thì gộp vào cùng một pendingChanges
	doc, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "Bản nháp 2"}, vendor)
	require.NoError(t, err)
	assert.Equal(t, "Bản nháp 2", AsMap(doc["pendingChanges"])["title"])
}

func TestSubmit_NoChanges(t *testing.T) {
	svc, store, history, _, entityID, vendor, _ := newWorkflowFixture(t)

	_, err := svc.SubmitChange(context.Background(), catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{
		"title": "Tour Hà Nội",
	}, vendor)
	assert.ErrorIs(t, err, common.ErrNoChangesDetected)
	assert.Zero(t, store.writeCount, "không được write-back khi không có thay đổi")
	assert.Empty(t, history.records)
}

func TestSubmit_BannerRemovalOnly(t *testing.T) {
	svc, store, history, media, entityID, vendor, _ := newWorkflowFixture(t)

	doc, err := svc.SubmitChange(context.Background(), catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{
		"removeBanners": []interface{}{"a.jpg", "khong-ton-tai.jpg"},
	}, vendor)
	require.NoError(t, err, "chỉ gỡ banner vẫn là một lượt submit hợp lệ")

	assert.Equal(t, []string{"b.jpg"}, AsStringSlice(doc["banners"]))
	assert.Equal(t, []string{"a.jpg"}, media.deleted, "chỉ URL thực sự bị gỡ mới được dispatch xóa media")
	assert.Equal(t, 1, store.writeCount)
	assert.Empty(t, history.records, "gỡ banner không tạo record lịch sử")
}

func TestSubmit_BannerRemovalPrunesPendingDraft(t *testing.T) {
	svc, _, _, media, entityID, vendor, _ := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{
		"banners": []interface{}{"c.jpg"},
	}, vendor)
	require.NoError(t, err)

	doc, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{
		"removeBanners": []interface{}{"c.jpg"},
	}, vendor)
	require.NoError(t, err)

	pending := AsMap(doc["pendingChanges"])
	assert.NotContains(t, AsStringSlice(pending["banners"]), "c.jpg", "URL bị gỡ phải biến mất khỏi bản nháp")
	assert.Contains(t, media.deleted, "c.jpg")
}

func TestSubmit_VendorCannotTouchOtherVendorEntity(t *testing.T) {
	svc, _, _, _, entityID, _, _ := newWorkflowFixture(t)
	stranger := common.Actor{ID: primitive.NewObjectID(), Role: common.RoleVendor}

	_, err := svc.SubmitChange(context.Background(), catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{
		"title": "Chiếm quyền",
	}, stranger)
	require.Error(t, err)
	appErr, ok := err.(*common.Error)
	require.True(t, ok)
	assert.Equal(t, common.StatusForbidden, appErr.StatusCode)
}

func TestSubmit_UnknownEntityType(t *testing.T) {
	svc, _, _, _, entityID, vendor, _ := newWorkflowFixture(t)

	_, err := svc.SubmitChange(context.Background(), "booking", entityID, map[string]interface{}{"title": "X"}, vendor)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestApprove_RequiresPendingState(t *testing.T) {
	svc, _, _, _, entityID, _, admin := newWorkflowFixture(t)

	_, err := svc.ApproveChange(context.Background(), catalogmodels.EntityTypeAddon, entityID, admin)
	assert.ErrorIs(t, err, common.ErrInvalidWorkflowState)
}

func TestReject_ArchivesDraftBeforeClearing(t *testing.T) {
	svc, store, history, _, entityID, vendor, admin := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "Bị từ chối"}, vendor)
	require.NoError(t, err)

	doc, err := svc.RejectChange(ctx, catalogmodels.EntityTypeAddon, entityID, "Thiếu thông tin giá", admin)
	require.NoError(t, err)
	assert.Equal(t, catalogmodels.WorkflowStatusRejected, doc["workflowStatus"])
	_, hasPending := doc["pendingChanges"]
	assert.False(t, hasPending)

	// Bản nháp nằm nguyên văn trong lịch sử
	record, err := history.GetLastRejectedOne(ctx, entityID)
	require.NoError(t, err)
	assert.Equal(t, "Bị từ chối", record.NewData["title"])
	assert.Equal(t, "Thiếu thông tin giá", record.Reason)
	assert.Equal(t, admin.ID, record.ActorID)

	// Live không bị ảnh hưởng
	assert.Equal(t, "Tour Hà Nội", store.docs[entityID.Hex()]["title"])
}

func TestReject_RequiresPendingState(t *testing.T) {
	svc, _, _, _, entityID, _, admin := newWorkflowFixture(t)

	_, err := svc.RejectChange(context.Background(), catalogmodels.EntityTypeAddon, entityID, "lý do", admin)
	assert.ErrorIs(t, err, common.ErrInvalidWorkflowState)
}

func TestGetForEdit_PendingOverlaysLive(t *testing.T) {
	svc, _, _, _, entityID, vendor, _ := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "Bản nháp"}, vendor)
	require.NoError(t, err)

	resolved, err := svc.GetForEdit(ctx, catalogmodels.EntityTypeAddon, entityID)
	require.NoError(t, err)
	assert.Equal(t, "Bản nháp", resolved["title"], "form edit phải hiện giá trị pending")
	assert.Equal(t, "Mô tả gốc", resolved["description"], "field không có bản nháp hiện giá trị live")
	assert.Equal(t, catalogmodels.WorkflowStatusPending, resolved["workflowStatus"])
}

func TestGetForEdit_RejectedOverlaysLastDraft(t *testing.T) {
	svc, _, _, _, entityID, vendor, admin := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "Bản nháp hỏng"}, vendor)
	require.NoError(t, err)
	_, err = svc.RejectChange(ctx, catalogmodels.EntityTypeAddon, entityID, "sửa lại", admin)
	require.NoError(t, err)

	resolved, err := svc.GetForEdit(ctx, catalogmodels.EntityTypeAddon, entityID)
	require.NoError(t, err)
	assert.Equal(t, "Bản nháp hỏng", resolved["title"], "vendor phải sửa tiếp từ bản nháp bị từ chối")
}

func TestGetForEdit_ApprovedShowsMergedLive(t *testing.T) {
	svc, _, _, _, entityID, vendor, admin := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "Đã duyệt"}, vendor)
	require.NoError(t, err)
	_, err = svc.ApproveChange(ctx, catalogmodels.EntityTypeAddon, entityID, admin)
	require.NoError(t, err)

	resolved, err := svc.GetForEdit(ctx, catalogmodels.EntityTypeAddon, entityID)
	require.NoError(t, err)
	assert.Equal(t, "Đã duyệt", resolved["title"])
	_, hasPending := resolved["pendingChanges"]
	assert.False(t, hasPending)
}

func TestSubmitAfterReject_BaselineIsLive(t *testing.T) {
	svc, _, _, _, entityID, vendor, admin := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "Bản nháp hỏng"}, vendor)
	require.NoError(t, err)
	_, err = svc.RejectChange(ctx, catalogmodels.EntityTypeAddon, entityID, "làm lại", admin)
	require.NoError(t, err)

	// Bản nháp đã bị xóa: gửi lại nội dung cũ của live thì không có thay đổi
	_, err = svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "Tour Hà Nội"}, vendor)
	assert.ErrorIs(t, err, common.ErrNoChangesDetected)

	// Gửi nội dung mới thì diff tính trên live, không dính bản nháp cũ
	doc, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "Bản nháp mới"}, vendor)
	require.NoError(t, err)
	assert.Equal(t, "Bản nháp mới", AsMap(doc["pendingChanges"])["title"])
}

func TestWorkflow_SingleWriteBackPerCall(t *testing.T) {
	svc, store, _, _, entityID, vendor, admin := newWorkflowFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitChange(ctx, catalogmodels.EntityTypeAddon, entityID, map[string]interface{}{"title": "A"}, vendor)
	require.NoError(t, err)
	assert.Equal(t, 1, store.writeCount)

	_, err = svc.ApproveChange(ctx, catalogmodels.EntityTypeAddon, entityID, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, store.writeCount)
}
