package global

import (
	"database/sql"

	"agri_holding/config"
	"agri_holding/internal/notify"
	"agri_holding/internal/recordview"
	"agri_holding/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB (DATA_SOURCE=mongodb)
var SQL_Session *sql.DB                        // Kết nối SQL (DATA_SOURCE=mysql|sqlite)
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var RecordSource recordview.Fetcher            // Nguồn dữ liệu dùng chung cho các màn hình xem bản ghi
var Notices *notify.Center                     // Trung tâm thông báo (toast) theo công ty con

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]()    // Registry chứa các collections
var RegistryEntities = registry.NewRegistry[recordview.EntityConfig]() // Registry chứa cấu hình các loại bản ghi
