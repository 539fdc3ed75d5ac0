// Package events - Test phát/nhận event thay đổi dữ liệu và trích vendorId.
package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEmitDataChanged_InvokesRegisteredHandler(t *testing.T) {
	var (
		mu       sync.Mutex
		received []DataChangeEvent
		done     = make(chan struct{})
	)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
		close(done)
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "vendors",
		Operation:      OpUpsert,
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler đã đăng ký không được gọi sau khi emit")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("handler nhận %d event, muốn 1", len(received))
	}
	if received[0].CollectionName != "vendors" || received[0].Operation != OpUpsert {
		t.Errorf("event nhận được sai nội dung: %+v", received[0])
	}
}

func TestGetVendorIDFromDocument(t *testing.T) {
	vendorID := primitive.NewObjectID()

	type withVendor struct {
		VendorID primitive.ObjectID
	}
	type withoutVendor struct {
		Name string
	}

	if got := GetVendorIDFromDocument(withVendor{VendorID: vendorID}); got != vendorID {
		t.Errorf("struct có VendorID: nhận %s, muốn %s", got.Hex(), vendorID.Hex())
	}
	if got := GetVendorIDFromDocument(&withVendor{VendorID: vendorID}); got != vendorID {
		t.Errorf("con trỏ struct có VendorID: nhận %s, muốn %s", got.Hex(), vendorID.Hex())
	}
	if got := GetVendorIDFromDocument(withoutVendor{Name: "x"}); got != primitive.NilObjectID {
		t.Errorf("struct không có VendorID phải trả về NilObjectID, nhận %s", got.Hex())
	}
	if got := GetVendorIDFromDocument(nil); got != primitive.NilObjectID {
		t.Errorf("document nil phải trả về NilObjectID, nhận %s", got.Hex())
	}
	var nilPtr *withVendor
	if got := GetVendorIDFromDocument(nilPtr); got != primitive.NilObjectID {
		t.Errorf("con trỏ nil phải trả về NilObjectID, nhận %s", got.Hex())
	}
}
