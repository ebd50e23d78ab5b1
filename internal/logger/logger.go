package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampLayout = "2006-01-02 15:04:05.000"

var (
	loggersMu sync.Mutex
	loggers   = make(map[string]*logrus.Logger) // theo tên: app, audit, export
	hooks     []*AsyncHook                      // flush khi Close

	config  *LogConfig
	rootDir string // thư mục gốc để tính LogPath tương đối
)

// Init khởi tạo hệ thống logging. cfg nil = DefaultConfig().
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if rootDir == "" {
		dir, err := findRootDir()
		if err != nil {
			return fmt.Errorf("failed to initialize root directory: %w", err)
		}
		rootDir = dir
	}

	if writesFile() {
		if err := os.MkdirAll(getLogPath(), 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}
	return nil
}

// findRootDir ưu tiên LOG_ROOT_DIR; nếu không có thì đi lên tối đa 5 cấp từ working directory
// tìm thư mục chứa logs/ hoặc config/, không thấy thì dùng chính working directory
func findRootDir() (string, error) {
	if dir := os.Getenv("LOG_ROOT_DIR"); dir != "" {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return resolved, nil
		}
		return dir, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not get working directory: %v", err)
	}
	for dir, i := wd, 0; i < 5; i++ {
		for _, marker := range []string{"logs", "config"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return wd, nil
}

func writesFile() bool   { return config.Output == "file" || config.Output == "both" }
func writesStdout() bool { return config.Output == "stdout" || config.Output == "both" }

func getLogPath() string {
	if filepath.IsAbs(config.LogPath) {
		return config.LogPath
	}
	return filepath.Join(rootDir, config.LogPath)
}

// GetLogger trả về logger theo tên, tạo mới ở lần gọi đầu. Chưa Init thì dùng cấu hình mặc định.
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("Failed to initialize logger: %v", err))
		}
	}

	if l, ok := loggers[name]; ok {
		return l
	}
	l := createLogger(name)
	loggers[name] = l
	return l
}

func newFormatter() logrus.Formatter {
	if config.Format == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: timestampLayout,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyFunc: "function",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampLayout,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			fn := f.Function[strings.LastIndex(f.Function, ".")+1:]
			return fn, fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	}
}

// newWriters các đích ghi của một logger: file xoay vòng bằng lumberjack và/hoặc stdout
func newWriters(name string) []io.Writer {
	var writers []io.Writer
	if writesFile() {
		writers = append(writers, &lumberjack.Logger{
			Filename:   getLogFilePath(name),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if writesStdout() {
		writers = append(writers, os.Stdout)
	}
	return writers
}

func createLogger(name string) *logrus.Logger {
	l := logrus.New()
	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(newFormatter())
	l.SetReportCaller(true)

	// FilterHook đánh dấu entry trước khi AsyncHook nhận
	l.AddHook(NewFilterHook(config))

	// Mọi ghi đều qua AsyncHook, output gốc bị bỏ
	if writers := newWriters(name); len(writers) > 0 {
		h := NewAsyncHookWithWriters(writers, 1000)
		l.AddHook(h)
		hooks = append(hooks, h)
		l.SetOutput(io.Discard)
	}

	l.WithFields(logrus.Fields{
		"logger": name,
		"level":  level.String(),
		"output": config.Output,
	}).Debug("Logger initialized")
	return l
}

func getLogFilePath(name string) string {
	files := map[string]string{
		"app":    config.AppFile,
		"audit":  config.AuditFile,
		"export": config.ExportFile,
	}
	filename, ok := files[name]
	if !ok {
		filename = name + ".log"
	}
	return filepath.Join(getLogPath(), filename)
}

// Close flush tất cả async hooks, gọi trước khi process kết thúc (CLI, shutdown)
func Close() {
	loggersMu.Lock()
	pending := hooks
	hooks = nil
	loggers = make(map[string]*logrus.Logger)
	loggersMu.Unlock()

	for _, h := range pending {
		_ = h.Close()
	}
}

// GetAppLogger logger chính của ứng dụng
func GetAppLogger() *logrus.Logger { return GetLogger("app") }

// GetAuditLogger logger audit (hành động của người dùng)
func GetAuditLogger() *logrus.Logger { return GetLogger("audit") }

// GetExportLogger logger của các lần xuất file
func GetExportLogger() *logrus.Logger { return GetLogger("export") }
