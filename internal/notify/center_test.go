package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_PushListDismissPerTenant(t *testing.T) {
	c := NewCenter(10, 0)

	ok := c.Scoped("kashari").Success("Đã xuất 3 bản ghi")
	failed := c.Scoped("kashari").Error("Không thể tải dữ liệu")
	c.Scoped("bwera").Success("khác công ty")

	list := c.List("kashari")
	require.Len(t, list, 2)
	assert.Equal(t, ok.ID, list[0].ID)
	assert.Equal(t, LevelError, list[1].Level)
	assert.Equal(t, "kashari", list[1].Tenant)

	assert.False(t, c.Scoped("bwera").Dismiss(failed.ID), "không được xóa thông báo của công ty khác")
	assert.True(t, c.Scoped("kashari").Dismiss(failed.ID))
	assert.False(t, c.Dismiss("kashari", failed.ID))
	assert.Len(t, c.List("kashari"), 1)
	assert.Len(t, c.List("bwera"), 1)
}

func TestCenter_LimitKeepsNewest(t *testing.T) {
	c := NewCenter(2, 0)
	c.Push("muheesi", LevelSuccess, "1")
	c.Push("muheesi", LevelSuccess, "2")
	c.Push("muheesi", LevelSuccess, "3")

	list := c.List("muheesi")
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].Message)
	assert.Equal(t, "3", list[1].Message)
}

func TestCenter_TTLExpiresNotices(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := NewCenter(10, time.Minute)
	c.now = func() time.Time { return now }

	c.Push("muheesi", LevelError, "cũ")
	now = now.Add(2 * time.Minute)
	c.Push("muheesi", LevelSuccess, "mới")

	list := c.List("muheesi")
	require.Len(t, list, 1)
	assert.Equal(t, "mới", list[0].Message)
}

func TestRecorder_CollectsAndForwards(t *testing.T) {
	c := NewCenter(10, 0)
	r := NewRecorder(c.Scoped("muheesi"))

	r.Success("ok")
	n := r.Error("lỗi")

	assert.Len(t, r.Notices(), 2)
	assert.Len(t, r.Errors(), 1)
	assert.Len(t, c.List("muheesi"), 2)

	assert.True(t, r.Dismiss(n.ID))
	assert.Len(t, r.Notices(), 1)
	assert.Len(t, c.List("muheesi"), 1)

	nop := NewRecorder(nil)
	nop.Error("x")
	assert.Len(t, nop.Errors(), 1)
}

func TestCenter_SweepDropsExpiredTenants(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	c := NewCenter(10, time.Minute)
	c.now = func() time.Time { return now }
	c.Push("kashari", LevelError, "Không thể tải Farm Records")
	c.Push("bwera", LevelSuccess, "Đã xuất CSV")

	now = now.Add(30 * time.Second)
	c.Push("bwera", LevelSuccess, "Đã xuất PDF")
	assert.Equal(t, 0, c.Sweep())

	now = now.Add(45 * time.Second)
	assert.Equal(t, 2, c.Sweep())
	assert.NotContains(t, c.notices, "kashari")
	assert.Len(t, c.List("bwera"), 1)
}
