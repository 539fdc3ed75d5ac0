package utility

import (
	"fmt"
	"time"

	"exp_commerce/internal/logger"
)

// GoProtect bao bọc một hàm để bắt panic, tránh làm chương trình dừng hẳn.
// Dùng cho các goroutine chạy nền (emit event, dọn dẹp media).
func GoProtect(f func()) {
	defer func() {
		if err := recover(); err != nil {
			LogWarning("Đã bắt lỗi panic trong goroutine nền", "panic", fmt.Sprintf("%v", err))
		}
	}()
	f()
}

// CurrentTimeInMilli trả về timestamp hiện tại tính bằng mili giây.
// Toàn bộ các trường createdAt/updatedAt trong hệ thống dùng đơn vị này.
func CurrentTimeInMilli() int64 {
	return time.Now().UnixMilli()
}

// LogWarning ghi log cảnh báo, args là các cặp key/value
func LogWarning(msg string, args ...interface{}) {
	fields := make(map[string]interface{})
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			if key, ok := args[i].(string); ok {
				fields[key] = args[i+1]
			}
		}
	}
	logger.GetAppLogger().WithFields(fields).Warn(msg)
}
