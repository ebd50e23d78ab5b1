package main

import (
	"agri_holding/config"
	"agri_holding/internal/database"
	"agri_holding/internal/datasource"
	"agri_holding/internal/global"
	"agri_holding/internal/notify"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()    // Khởi tạo validator
	initConfig()       // Khởi tạo cấu hình server
	initDatabase()     // Khởi tạo kết nối database theo DATA_SOURCE
	initRecordSource() // Khởi tạo nguồn dữ liệu cho màn hình xem bản ghi
	initNotices()      // Khởi tạo trung tâm thông báo
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, field_name)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	if err := global.MongoDB_ServerConfig.Validate(); err != nil {
		logrus.Fatalf("Invalid config: %v", err)
	}
	logrus.WithField("data_source", global.MongoDB_ServerConfig.DataSource).Info("Initialized server config")
}

// Hàm khởi tạo kết nối database theo DATA_SOURCE
func initDatabase() {
	cfg := global.MongoDB_ServerConfig
	var err error

	switch cfg.DataSource {
	case config.SourceMongoDB:
		global.MongoDB_Session, err = database.GetInstance(cfg)
		if err != nil {
			logrus.Fatalf("Failed to get database instance: %v", err)
		}
		logrus.Info("Connected to MongoDB")
	case config.SourceMySQL, config.SourceSQLite:
		global.SQL_Session, err = database.OpenSQLFromConfig(cfg)
		if err != nil {
			logrus.Fatalf("Failed to open SQL database: %v", err)
		}
		logrus.Infof("Connected to %s", cfg.DataSource)
	default:
		logrus.Warn("DATA_SOURCE=fixtures, không kết nối database")
	}
}

// Hàm khởi tạo nguồn dữ liệu dùng chung
func initRecordSource() {
	src, err := datasource.FromConfig(global.MongoDB_ServerConfig, global.MongoDB_Session, global.SQL_Session)
	if err != nil {
		logrus.Fatalf("Failed to initialize record source: %v", err)
	}
	global.RecordSource = src
	logrus.Info("Initialized record source")
}

// Hàm khởi tạo trung tâm thông báo
func initNotices() {
	cfg := global.MongoDB_ServerConfig
	global.Notices = notify.NewCenter(cfg.NoticeLimit, cfg.NoticeTTL)
	logrus.Info("Initialized notice center")
}
