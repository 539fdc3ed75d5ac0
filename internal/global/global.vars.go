package global

import (
	"exp_commerce/config"
	"exp_commerce/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Marketplace_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Marketplace_CollectionName struct {
	Vendors          string // Tên collection cho hồ sơ vendor
	Addons           string // Tên collection cho dịch vụ bổ sung (addon)
	ExperienceEvents string // Tên collection cho sự kiện trải nghiệm
	ChangeRecords    string // Tên collection cho lịch sử duyệt thay đổi
	Availabilities   string // Tên collection cho lịch mở bán của vendor
}

// Các biến toàn cục
var Validate *validator.Validate                                                                       // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                                                      // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                                                 // Cấu hình của server
var MongoDB_ColNames MongoDB_Marketplace_CollectionName = *new(MongoDB_Marketplace_CollectionName)     // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases

// InitColNames gán tên thực tế cho các collection. Gọi một lần khi khởi động server.
func InitColNames() {
	MongoDB_ColNames.Vendors = "vendors"
	MongoDB_ColNames.Addons = "addons"
	MongoDB_ColNames.ExperienceEvents = "experience_events"
	MongoDB_ColNames.ChangeRecords = "change_records"
	MongoDB_ColNames.Availabilities = "availabilities"
}

// ColNameList trả về danh sách tên toàn bộ collection, dùng khi đăng ký registry.
func ColNameList() []string {
	return []string{
		MongoDB_ColNames.Vendors,
		MongoDB_ColNames.Addons,
		MongoDB_ColNames.ExperienceEvents,
		MongoDB_ColNames.ChangeRecords,
		MongoDB_ColNames.Availabilities,
	}
}
