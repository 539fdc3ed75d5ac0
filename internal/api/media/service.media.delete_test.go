// Package mediasvc - Test trích public id từ delivery URL của Cloudinary.
package mediasvc

import "testing"

func TestExtractPublicID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/vendors/banner1.jpg", "vendors/banner1"},
		{"https://res.cloudinary.com/demo/image/upload/vendors/banner1.jpg", "vendors/banner1"},
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/banner.png", "banner"},
		{"https://res.cloudinary.com/demo/image/upload/video-clip", "video-clip"},
		// Folder bắt đầu bằng 'v' nhưng không phải version thì giữ nguyên
		{"https://res.cloudinary.com/demo/image/upload/vendors2024/banner.jpg", "vendors2024/banner"},
		{"https://example.com/khong-phai-cloudinary.jpg", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ExtractPublicID(c.url); got != c.want {
			t.Errorf("ExtractPublicID(%q) = %q, muốn %q", c.url, got, c.want)
		}
	}
}
