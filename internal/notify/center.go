package notify

import (
	"sync"
	"time"

	"agri_holding/internal/logger"

	"github.com/sirupsen/logrus"
)

// Center lưu thông báo trong bộ nhớ theo từng công ty con.
// Mỗi công ty con giữ tối đa limit thông báo, thông báo quá ttl bị loại khi đọc.
type Center struct {
	mu      sync.Mutex
	limit   int
	ttl     time.Duration
	now     func() time.Time
	notices map[string][]Notice
}

// NewCenter tạo Center. limit <= 0 dùng 50, ttl <= 0 nghĩa là không hết hạn.
func NewCenter(limit int, ttl time.Duration) *Center {
	if limit <= 0 {
		limit = 50
	}
	return &Center{
		limit:   limit,
		ttl:     ttl,
		now:     time.Now,
		notices: make(map[string][]Notice),
	}
}

// Push thêm một thông báo cho tenant và ghi log
func (c *Center) Push(tenant string, level Level, message string) Notice {
	c.mu.Lock()
	n := newNotice(tenant, level, message, c.now())
	list := append(c.prune(c.notices[tenant]), n)
	if len(list) > c.limit {
		list = list[len(list)-c.limit:]
	}
	c.notices[tenant] = list
	c.mu.Unlock()

	entry := logger.WithModule("notify").WithFields(logrus.Fields{
		"tenant":    tenant,
		"notice_id": n.ID,
	})
	if level == LevelError {
		entry.Warn(message)
	} else {
		entry.Info(message)
	}
	return n
}

// List trả về các thông báo còn hiệu lực của tenant, cũ nhất trước
func (c *Center) List(tenant string) []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.prune(c.notices[tenant])
	c.notices[tenant] = list
	out := make([]Notice, len(list))
	copy(out, list)
	return out
}

// Dismiss xóa một thông báo theo id, trả về false nếu không tìm thấy
func (c *Center) Dismiss(tenant, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.notices[tenant]
	for i, n := range list {
		if n.ID == id {
			c.notices[tenant] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Sweep loại thông báo hết hạn của mọi tenant, trả về số thông báo đã loại
func (c *Center) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for tenant, list := range c.notices {
		kept := c.prune(list)
		removed += len(list) - len(kept)
		if len(kept) == 0 {
			delete(c.notices, tenant)
			continue
		}
		c.notices[tenant] = kept
	}
	return removed
}

// Scoped trả về Notifier gắn với một tenant
func (c *Center) Scoped(tenant string) Notifier {
	return scoped{center: c, tenant: tenant}
}

// prune bỏ các thông báo hết hạn. Gọi khi đang giữ mu.
func (c *Center) prune(list []Notice) []Notice {
	if c.ttl <= 0 || len(list) == 0 {
		return list
	}
	cutoff := c.now().Add(-c.ttl)
	kept := list[:0:0]
	for _, n := range list {
		if n.CreatedAt.After(cutoff) {
			kept = append(kept, n)
		}
	}
	return kept
}

type scoped struct {
	center *Center
	tenant string
}

func (s scoped) Success(message string) Notice {
	return s.center.Push(s.tenant, LevelSuccess, message)
}

func (s scoped) Error(message string) Notice {
	return s.center.Push(s.tenant, LevelError, message)
}

func (s scoped) Dismiss(id string) bool {
	return s.center.Dismiss(s.tenant, id)
}
