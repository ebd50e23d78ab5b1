// Package worker chứa các background worker của API server.
package worker

import (
	"context"
	"time"

	"agri_holding/internal/logger"
)

// NoticeSweeper loại các thông báo đã hết hạn
type NoticeSweeper interface {
	Sweep() int
}

// NoticeCleanupWorker worker dọn thông báo hết hạn của mọi công ty con.
// Thông báo cũng bị loại khi đọc, worker giải phóng bộ nhớ của tenant không còn ai đọc.
type NoticeCleanupWorker struct {
	sweeper  NoticeSweeper
	interval time.Duration // Khoảng thời gian giữa các lần chạy
}

// NewNoticeCleanupWorker tạo mới NoticeCleanupWorker (interval mặc định 1 phút)
func NewNoticeCleanupWorker(sweeper NoticeSweeper, interval time.Duration) *NoticeCleanupWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &NoticeCleanupWorker{sweeper: sweeper, interval: interval}
}

// Start bắt đầu background worker, dừng khi ctx bị hủy
func (w *NoticeCleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithField("interval", w.interval.String()).Info("🧹 [NOTICE_CLEANUP] Starting Notice Cleanup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🧹 [NOTICE_CLEANUP] Notice Cleanup Worker stopped")
			return
		case <-ticker.C:
			// Nếu removed = 0, không log (giảm log noise)
			if removed := w.sweeper.Sweep(); removed > 0 {
				log.WithField("removed", removed).Debug("🧹 [NOTICE_CLEANUP] Đã dọn thông báo hết hạn")
			}
		}
	}
}
