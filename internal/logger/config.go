package logger

import (
	"os"
	"strconv"
	"strings"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	// Log Level: trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Log Format: json, text
	Format string `env:"LOG_FORMAT" envDefault:"text"`

	// Log Output: file, stdout, both
	Output string `env:"LOG_OUTPUT" envDefault:"both"`

	// Log Rotation
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`   // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"`  // Số file cũ giữ lại
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"`      // Số ngày giữ lại
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`  // Nén file cũ

	// Log Paths
	LogPath    string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile    string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile  string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`
	ExportFile string `env:"LOG_EXPORT_FILE" envDefault:"export.log"`

	// Bộ lọc (phân cách bởi dấu phẩy, rỗng hoặc "*" = tất cả)
	FilterModules     string `env:"LOG_FILTER_MODULES" envDefault:"*"`
	FilterCollections string `env:"LOG_FILTER_COLLECTIONS" envDefault:"*"`
	FilterEndpoints   string `env:"LOG_FILTER_ENDPOINTS" envDefault:"*"`
	FilterMethods     string `env:"LOG_FILTER_METHODS" envDefault:"*"`
	FilterLogTypes    string `env:"LOG_FILTER_LOG_TYPES" envDefault:"*"`
}

// DefaultConfig trả về cấu hình mặc định, có thể override bằng environment variables
func DefaultConfig() *LogConfig {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	config := &LogConfig{
		Level:             "info",
		Format:            "json",
		Output:            "both",
		MaxSize:           100,
		MaxBackups:        7,
		MaxAge:            7,
		Compress:          true,
		LogPath:           "./logs",
		AppFile:           "app.log",
		AuditFile:         "audit.log",
		ExportFile:        "export.log",
		FilterModules:     "*",
		FilterCollections: "*",
		FilterEndpoints:   "*",
		FilterMethods:     "*",
		FilterLogTypes:    "*",
	}

	// Development: log chi tiết hơn và dễ đọc
	if env == "development" {
		config.Level = "debug"
		config.Format = "text"
	}

	stringOverrides := map[string]*string{
		"LOG_PATH":               &config.LogPath,
		"LOG_APP_FILE":           &config.AppFile,
		"LOG_AUDIT_FILE":         &config.AuditFile,
		"LOG_EXPORT_FILE":        &config.ExportFile,
		"LOG_FILTER_MODULES":     &config.FilterModules,
		"LOG_FILTER_COLLECTIONS": &config.FilterCollections,
		"LOG_FILTER_ENDPOINTS":   &config.FilterEndpoints,
		"LOG_FILTER_METHODS":     &config.FilterMethods,
		"LOG_FILTER_LOG_TYPES":   &config.FilterLogTypes,
	}
	for key, target := range stringOverrides {
		if value := os.Getenv(key); value != "" {
			*target = value
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = strings.ToLower(level)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Format = strings.ToLower(format)
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		config.Output = strings.ToLower(output)
	}

	if v, err := strconv.Atoi(os.Getenv("LOG_MAX_SIZE")); err == nil && v > 0 {
		config.MaxSize = v
	}
	if v, err := strconv.Atoi(os.Getenv("LOG_MAX_BACKUPS")); err == nil && v >= 0 {
		config.MaxBackups = v
	}
	if v, err := strconv.Atoi(os.Getenv("LOG_MAX_AGE")); err == nil && v > 0 {
		config.MaxAge = v
	}
	if v, err := strconv.ParseBool(os.Getenv("LOG_COMPRESS")); err == nil {
		config.Compress = v
	}

	return config
}
