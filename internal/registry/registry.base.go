// Package registry cung cấp một generic registry pattern thread-safe.
// Dùng để quản lý các singleton instances (collections, services) theo tên.
package registry

import (
	"fmt"
	"sync"

	"exp_commerce/internal/common"
)

// Registry quản lý items theo key, an toàn khi truy cập đồng thời.
// Type parameter T cho phép tái sử dụng cho nhiều loại đối tượng.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewRegistry tạo một registry rỗng.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký item vào registry, ghi đè nếu name đã tồn tại.
// Trả về true nếu là item mới.
func (r *Registry[T]) Register(name string, item T) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên. Trả về zero value và false nếu không tồn tại.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists := r.items[name]
	return item, exists
}

// GetOrCreate lấy item theo tên, nếu chưa có thì tạo mới qua creator.
// Creator được gọi trong lúc giữ lock nên không được gọi ngược lại registry.
func (r *Registry[T]) GetOrCreate(name string, creator func() (T, error)) (item T, err error) {
	if name == "" {
		return item, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.items[name]; exists {
		return existing, nil
	}

	created, err := creator()
	if err != nil {
		return item, fmt.Errorf("failed to create item: %w", err)
	}

	r.items[name] = created
	return created, nil
}

// Names trả về danh sách tên các items đang được đăng ký.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}

// Clear xóa item khỏi registry. Cleanup (nếu có) được gọi trước khi xóa
// để giải phóng tài nguyên.
func (r *Registry[T]) Clear(name string, cleanup func(T) error) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[name]
	if !exists {
		return false, nil
	}

	if cleanup != nil {
		if err := cleanup(item); err != nil {
			return false, fmt.Errorf("failed to cleanup item %s: %w", name, err)
		}
	}

	delete(r.items, name)
	return true, nil
}

// ClearAll xóa toàn bộ items, gọi cleanup cho từng item nếu được cung cấp.
// Trả về số lượng items đã xóa.
func (r *Registry[T]) ClearAll(cleanup func(T) error) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.items)
	if count == 0 {
		return 0, nil
	}

	if cleanup != nil {
		var errs []error
		for name, item := range r.items {
			if err := cleanup(item); err != nil {
				errs = append(errs, fmt.Errorf("failed to cleanup %s: %w", name, err))
			}
		}
		if len(errs) > 0 {
			return 0, fmt.Errorf("cleanup errors occurred: %v", errs)
		}
	}

	r.items = make(map[string]T)
	return count, nil
}
