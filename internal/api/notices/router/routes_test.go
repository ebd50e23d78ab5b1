package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agri_holding/config"
	apirouter "agri_holding/internal/api/router"
	"agri_holding/internal/global"
	"agri_holding/internal/notify"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeRoutes_ListAndDismissPerTenant(t *testing.T) {
	global.MongoDB_ServerConfig = &config.Configuration{Tenants: "muheesi,kashari", DefaultTenant: "muheesi"}
	center := notify.NewCenter(10, 0)
	n := center.Scoped("kashari").Error("Không thể tải Farm Records")
	center.Scoped("muheesi").Success("Đã xuất 3 bản ghi")

	app := fiber.New()
	require.NoError(t, apirouter.SetupRoutes(app, Register(center)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notices", nil)
	req.Header.Set("X-Organization-ID", "kashari")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []notify.Notice `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, n.ID, body.Data[0].ID)

	// Công ty con khác không tắt được thông báo của kashari
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/notices/"+n.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/notices/"+n.ID, nil)
	req.Header.Set("X-Organization-ID", "kashari")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, center.List("kashari"))
}
