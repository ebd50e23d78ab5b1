package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestInfo_Fields(t *testing.T) {
	require.NoError(t, Init(&LogConfig{Level: "info", Format: "text", Output: "stdout"}))
	defer Close()

	var data logrus.Fields
	app := fiber.New()
	app.Get("/records/:entity", func(c fiber.Ctx) error {
		c.Locals("active_organization_id", "kashari")
		data = WithRequestInfo(c, "records", c.Params("entity")).Data
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/records/farm-records", nil)
	req.Header.Set("X-Request-ID", "req-1")
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "req-1", data["request_id"])
	assert.Equal(t, "kashari", data["organization_id"])
	assert.Equal(t, "records", data["module"])
	assert.Equal(t, "farm-records", data["collection"])
	assert.Equal(t, http.MethodGet, data["method"])
	assert.Equal(t, "/records/farm-records", data["path"])

	assert.NotContains(t, WithModule("export").Data, "collection")
	assert.Equal(t, "farm_records", WithModuleAndCollection("datasource", "farm_records").Data["collection"])
}
