// Package mediasvc xóa media trên Cloudinary theo kiểu best-effort.
// Lỗi xóa được log, không retry và không bao giờ chặn thao tác metadata.
package mediasvc

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"exp_commerce/config"
	"exp_commerce/internal/common"
	"exp_commerce/internal/logger"
	"exp_commerce/internal/utility"
)

// Deleter xóa một media theo URL
type Deleter interface {
	Delete(ctx context.Context, mediaURL string) error
}

// CloudinaryDeleter là Deleter gọi Cloudinary destroy API với chữ ký sha1
type CloudinaryDeleter struct {
	cloudName string
	apiKey    string
	apiSecret string
	client    *http.Client
}

// NewCloudinaryDeleter tạo CloudinaryDeleter từ cấu hình server
func NewCloudinaryDeleter(cfg *config.Configuration) *CloudinaryDeleter {
	return &CloudinaryDeleter{
		cloudName: cfg.CloudinaryCloudName,
		apiKey:    cfg.CloudinaryAPIKey,
		apiSecret: cfg.CloudinaryAPISecret,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Delete gọi destroy API cho một URL media
func (d *CloudinaryDeleter) Delete(ctx context.Context, mediaURL string) error {
	if d.cloudName == "" || d.apiKey == "" || d.apiSecret == "" {
		return common.NewError(common.ErrCodeBusinessOperation, "Cloudinary chưa được cấu hình", common.StatusInternalServerError, nil)
	}

	publicID := ExtractPublicID(mediaURL)
	if publicID == "" {
		return common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Không nhận ra public id từ URL media: %s", mediaURL), common.StatusBadRequest, nil)
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := d.sign(publicID, timestamp)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", timestamp)
	form.Set("api_key", d.apiKey)
	form.Set("signature", signature)

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", d.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Cloudinary destroy trả về status %d cho public id %s", resp.StatusCode, publicID),
			common.StatusInternalServerError,
			nil,
		)
	}
	return nil
}

// DeleteAllAsync dispatch xóa từng URL trong goroutine riêng, fire-and-forget.
// Lỗi của từng URL được ghi vào audit log, không retry.
func (d *CloudinaryDeleter) DeleteAllAsync(urls []string) {
	for _, mediaURL := range urls {
		mediaURL := mediaURL
		go utility.GoProtect(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := d.Delete(ctx, mediaURL); err != nil {
				logger.LogBackground("media_delete_failed", "banner", mediaURL, map[string]interface{}{
					"error": err.Error(),
				})
			}
		})
	}
}

// sign tạo chữ ký sha1 theo quy tắc của Cloudinary:
// sha1("public_id=<id>&timestamp=<ts>" + apiSecret)
func (d *CloudinaryDeleter) sign(publicID, timestamp string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, d.apiSecret)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// ExtractPublicID lấy public id từ một delivery URL của Cloudinary:
// bỏ phần host và "/upload/", bỏ tiền tố version "v123/" và phần mở rộng file
func ExtractPublicID(mediaURL string) string {
	idx := strings.Index(mediaURL, "/upload/")
	if idx < 0 {
		return ""
	}
	path := mediaURL[idx+len("/upload/"):]

	// Bỏ tiền tố version nếu có
	if len(path) > 1 && path[0] == 'v' {
		if slash := strings.Index(path, "/"); slash > 0 {
			if isDigits(path[1:slash]) {
				path = path[slash+1:]
			}
		}
	}

	// Bỏ phần mở rộng file
	if dot := strings.LastIndex(path, "."); dot > strings.LastIndex(path, "/") {
		path = path[:dot]
	}
	return path
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
