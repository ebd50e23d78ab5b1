package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FilterHook lọc log entries theo module, collection, endpoint, method và level.
// Entry không khớp được đánh dấu "_filtered" để AsyncHook bỏ qua.
type FilterHook struct {
	allowedModules     map[string]bool
	allowedCollections map[string]bool
	allowedEndpoints   map[string]bool
	allowedMethods     map[string]bool
	allowedLogTypes    map[string]bool

	mu sync.RWMutex
}

// NewFilterHook tạo một filter hook mới với cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	hook := &FilterHook{}
	hook.UpdateFilters(cfg)
	return hook
}

// UpdateFilters cập nhật filters từ config mới (có thể gọi runtime)
func (h *FilterHook) UpdateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.allowedModules = parseFilter(cfg.FilterModules)
	h.allowedCollections = parseFilter(cfg.FilterCollections)
	h.allowedEndpoints = parseFilter(cfg.FilterEndpoints)
	h.allowedMethods = parseFilter(cfg.FilterMethods)
	h.allowedLogTypes = parseFilter(cfg.FilterLogTypes)
}

// parseFilter parse "a,b,c" thành set (lowercase). Rỗng hoặc "*" trả về nil = cho phép tất cả.
func parseFilter(filterStr string) map[string]bool {
	filterStr = strings.TrimSpace(filterStr)
	if filterStr == "" || filterStr == "*" {
		return nil
	}

	result := make(map[string]bool)
	for _, v := range strings.Split(filterStr, ",") {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "*" {
			return nil
		}
		if v != "" {
			result[v] = true
		}
	}
	return result
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry bị filter. Entry không có field tương ứng thì không bị lọc bởi field đó.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.allowedLogTypes != nil && !h.allowedLogTypes[strings.ToLower(entry.Level.String())] {
		entry.Data["_filtered"] = true
		return nil
	}

	if !matchField(h.allowedModules, entry.Data["module"]) ||
		!matchField(h.allowedCollections, entry.Data["collection"]) ||
		!matchField(h.allowedMethods, entry.Data["method"]) {
		entry.Data["_filtered"] = true
		return nil
	}

	if h.allowedEndpoints != nil {
		endpoint, _ := entry.Data["endpoint"].(string)
		if endpoint == "" {
			endpoint, _ = entry.Data["path"].(string)
		}
		if endpoint != "" && !matchPrefix(h.allowedEndpoints, strings.ToLower(endpoint)) {
			entry.Data["_filtered"] = true
		}
	}

	return nil
}

// matchField trả về true nếu không có filter, field không có, hoặc field nằm trong set
func matchField(allowed map[string]bool, value interface{}) bool {
	if allowed == nil {
		return true
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return true
	}
	return allowed[strings.ToLower(s)]
}

// matchPrefix cho phép endpoint khớp chính xác hoặc theo prefix
func matchPrefix(allowed map[string]bool, endpoint string) bool {
	for prefix := range allowed {
		if strings.HasPrefix(endpoint, prefix) {
			return true
		}
	}
	return false
}
