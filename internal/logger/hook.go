package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log bất đồng bộ: Fire chỉ đẩy entry vào channel,
// một goroutine riêng format và ghi ra các writers (file, stdout).
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHook tạo async hook với một writer
func NewAsyncHook(writer io.Writer, bufferSize int) *AsyncHook {
	return NewAsyncHookWithWriters([]io.Writer{writer}, bufferSize)
}

// NewAsyncHookWithWriters tạo async hook với nhiều writers.
// bufferSize <= 0 dùng mặc định 1000 entries.
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire không bao giờ block: channel đầy thì bỏ entry
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		// Hook đã đóng: ghi đồng bộ
		h.write(entry)
		return nil
	}

	select {
	case h.entries <- entry:
	default:
	}
	return nil
}

// processEntries chạy trong goroutine riêng, có recover để logger không làm crash server
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Không dùng logger ở đây để tránh vòng lặp
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] Logger goroutine panic recovered: %v\n", r)
					debug.PrintStack()
				}
			}()
			h.write(entry)
		}()
	}
}

// write bỏ qua entry đã bị FilterHook đánh dấu, sau đó format và ghi ra tất cả writers
func (h *AsyncHook) write(entry *logrus.Entry) {
	if filtered, ok := entry.Data["_filtered"].(bool); ok && filtered {
		return
	}
	if _, ok := entry.Data["_filtered"]; ok {
		clean := *entry
		clean.Data = make(logrus.Fields, len(entry.Data))
		for k, v := range entry.Data {
			if k != "_filtered" {
				clean.Data[k] = v
			}
		}
		entry = &clean
	}

	var data []byte
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		formatted, err := entry.Logger.Formatter.Format(entry)
		if err != nil {
			return
		}
		data = formatted
	} else {
		line, err := entry.String()
		if err != nil {
			return
		}
		data = []byte(line)
	}

	for _, writer := range h.writers {
		_, _ = writer.Write(data)
	}
}

// Close đóng hook và đợi tất cả entries trong queue được ghi xong
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}
