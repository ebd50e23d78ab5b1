package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"agri_holding/internal/database"
	"agri_holding/internal/global"
	"agri_holding/internal/logger"
	"agri_holding/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc biến môi trường LOG_* để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// resolvePath resolve đường dẫn tương đối theo thư mục chứa config/env
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "config", "env")); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(app *fiber.App) {
	cfg := global.MongoDB_ServerConfig
	address := cfg.Address
	log := logger.GetAppLogger()
	log.Info("Starting Fiber server...")

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			log.Fatalf("TLS certificate file not found: %s (resolved from: %s)", certPath, cfg.TLSCertFile)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			log.Fatalf("TLS key file not found: %s (resolved from: %s)", keyPath, cfg.TLSKeyFile)
		}

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}
		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
			"key":     keyPath,
		}).Info("Starting server with HTTPS/TLS")
		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
		return
	}

	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting server with HTTP")
	if err := app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// startWorkers chạy các background worker, dừng khi ctx bị hủy
func startWorkers(ctx context.Context) {
	if global.Notices != nil {
		go worker.NewNoticeCleanupWorker(global.Notices, global.MongoDB_ServerConfig.NoticeSweepInterval).Start(ctx)
	}
}

// waitForShutdown dừng server khi nhận SIGINT/SIGTERM, đóng Viewer và kết nối database
func waitForShutdown(app *fiber.App, stopWorkers context.CancelFunc, done chan<- struct{}) {
	defer close(done)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log := logger.GetAppLogger()
	log.Info("Shutting down server...")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.WithError(err).Error("Không thể dừng server đúng hạn")
	}

	if recordService != nil {
		log.WithField("viewers", recordService.CloseAll()).Info("Đã đóng các màn hình xem bản ghi")
	}
	if global.MongoDB_Session != nil {
		_ = database.CloseInstance(global.MongoDB_Session)
	}
	_ = database.CloseSQL(global.SQL_Session)
	logger.Close()
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục (config, validator, database, nguồn dữ liệu)
	InitGlobal()

	// Khởi tạo registry (loại bản ghi, collections)
	InitRegistry()

	// Seed dữ liệu mẫu khi INITMODE=true
	InitDefaultData()

	app := InitFiberApp()

	// Khởi động background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	startWorkers(workerCtx)
	shutdownDone := make(chan struct{})
	go waitForShutdown(app, stopWorkers, shutdownDone)

	// Chạy Fiber server trên main thread
	main_thread(app)

	// Listen chỉ trả về khi server đã dừng, chờ đóng xong kết nối
	<-shutdownDone
}
