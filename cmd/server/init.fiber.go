package main

import (
	"strings"
	"time"

	"agri_holding/config"
	noticerouter "agri_holding/internal/api/notices/router"
	recordrouter "agri_holding/internal/api/records/router"
	recordsvc "agri_holding/internal/api/records/service"
	"agri_holding/internal/api/router"
	"agri_holding/internal/common"
	"agri_holding/internal/export"
	"agri_holding/internal/global"
	"agri_holding/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

const appName = "Muheesi Records API"

// recordService dùng chung cho HTTP handlers, được đóng khi server dừng
var recordService *recordsvc.RecordService

// statusErrorCodes mã lỗi nghiệp vụ tương ứng với *fiber.Error do framework trả về
var statusErrorCodes = map[int]string{
	fiber.StatusBadRequest:   common.ErrCodeValidationInput.Code,
	fiber.StatusUnauthorized: common.ErrCodeTenant.Code,
	fiber.StatusForbidden:    common.ErrCodeTenant.Code,
	fiber.StatusNotFound:     common.ErrCodeSourceEntity.Code,
	fiber.StatusConflict:     common.ErrCodeDatabaseQuery.Code,
}

// InitFiberApp khởi tạo ứng dụng Fiber, middleware và routes
func InitFiberApp() *fiber.App {
	cfg := global.MongoDB_ServerConfig

	app := fiber.New(fiber.Config{
		AppName:       appName,
		ServerHeader:  appName,
		StrictRouting: true,
		CaseSensitive: true,
		UnescapePath:  true,

		BodyLimit:       10 * 1024 * 1024, // 10MB
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // file PDF/XLSX lớn cần thời gian ghi
		IdleTimeout:  120 * time.Second,

		ErrorHandler: errorHandler,
	})

	// Thứ tự: request ID -> CORS (preflight) -> security headers -> rate limit -> recover
	app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}))
	app.Use(corsMiddleware(cfg))
	app.Use(securityHeaders)
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(rateLimiter(cfg))
		logger.GetAppLogger().Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		logger.GetAppLogger().Info("Rate limiting disabled")
	}
	app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: onPanic,
		Next:              skipInfraPaths,
	}))

	// Mailer tắt khi SMTP_HOST rỗng
	mailer := export.NewMailer(export.MailConfig{
		Host:     cfg.SMTP_Host,
		Port:     cfg.SMTP_Port,
		Username: cfg.SMTP_Username,
		Password: cfg.SMTP_Password,
		From:     cfg.SMTP_From,
	})
	svc, err := recordsvc.NewRecordServiceFromGlobal(mailer)
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize record service: %v", err)
	}
	recordService = svc

	if err := router.SetupRoutes(app,
		recordrouter.Register(svc),
		noticerouter.Register(global.Notices),
	); err != nil {
		logger.GetAppLogger().Fatalf("Failed to setup routes: %v", err)
	}
	return app
}

// errorHandler trả lỗi của framework (404 route, body quá lớn, ...) theo envelope chung
func errorHandler(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal Server Error"
	errorCode := common.ErrCodeInternalServer.Code

	if e, ok := err.(*fiber.Error); ok {
		status, message = e.Code, e.Message
		if code, ok := statusErrorCodes[status]; ok {
			errorCode = code
		}
	}

	// Client gọi https:// vào server HTTP: không log, trả hướng dẫn
	if isTLSHandshake(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    common.ErrCodeValidationInput.Code,
			"message": "Server chỉ hỗ trợ HTTP. Vui lòng sử dụng http:// thay vì https://",
			"status":  "error",
			"details": fiber.Map{
				"protocol":   "HTTP only",
				"suggestion": "Sử dụng URL: http://localhost" + global.MongoDB_ServerConfig.Address,
			},
		})
	}

	logger.WithRequest(c).WithFields(map[string]interface{}{
		"code":      status,
		"errorCode": errorCode,
		"message":   message,
	}).Error("Request error")

	return c.Status(status).JSON(fiber.Map{
		"code":    errorCode,
		"message": message,
		"status":  "error",
	})
}

// isTLSHandshake nhận ra bản ghi ClientHello (0x16 0x03 0x01) bị fasthttp đọc như method HTTP
func isTLSHandshake(err error) bool {
	msg := err.Error()
	if !strings.Contains(msg, "unsupported http request method") {
		return false
	}
	return strings.Contains(msg, `\x16\x03\x01`) ||
		strings.Contains(msg, "\x16\x03\x01") ||
		strings.Contains(msg, "error when reading request headers")
}

// corsMiddleware CORS_ORIGINS="*" cho phép mọi origin, ngược lại là danh sách phân cách bởi dấu phẩy
func corsMiddleware(cfg *config.Configuration) fiber.Handler {
	origins := []string{"*"}
	if cfg.CORS_Origins != "*" {
		origins = origins[:0]
		for _, o := range strings.Split(cfg.CORS_Origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Request-ID",
			"X-Requested-With",
			"X-Organization-ID", // chọn công ty con
		},
		AllowCredentials: cfg.CORS_AllowCredentials,
		// Client đọc tên file và trạng thái dữ liệu của lần xuất
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
			"X-Request-ID",
			"X-Export-ID",
			"X-Export-Rows",
			"X-Data-State",
		},
		MaxAge: 24 * 60 * 60,
	})
}

func securityHeaders(c fiber.Ctx) error {
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-Frame-Options", "DENY")
	c.Set("X-XSS-Protection", "1; mode=block")
	c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	return c.Next()
}

// rateLimiter giới hạn theo IP; request lỗi không tính vào hạn mức
func rateLimiter(cfg *config.Configuration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.RateLimit_Max,
		Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":    common.ErrCodeBusinessOperation.Code,
				"message": common.MsgTooManyRequests,
				"status":  "error",
			})
		},
		SkipFailedRequests: true,
		Next:               skipInfraPaths,
	})
}

// onPanic panic ngoài SafeHandler vẫn trả về envelope lỗi chuẩn
func onPanic(c fiber.Ctx, e interface{}) {
	logger.WithRequestInfo(c, "http", c.Params("entity")).WithField("panic", e).Error("Panic recovered")
	_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.MsgInternalError,
		"status":  "error",
	})
}

// skipInfraPaths bỏ qua health check và preflight
func skipInfraPaths(c fiber.Ctx) bool {
	return c.Path() == "/api/v1/system/health" || c.Method() == fiber.MethodOptions
}
