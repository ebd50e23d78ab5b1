package basehdl

import (
	"errors"
	"fmt"

	"agri_holding/internal/common"
	"agri_holding/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler bọc handler với recover để luôn trả về response cho client, kể cả khi có panic
func SafeHandler(c fiber.Ctx, handler func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("panic", r).Error("Handler bị panic")
			err = HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// SafeHandlerWrapper wrapper để xử lý errors (dùng bởi domain handler)
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) error {
	return SafeHandler(c, fn)
}

// ErrorBody chuẩn hóa body lỗi {code, message, details, status}
func ErrorBody(err error) (int, fiber.Map) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		details := customErr.Details
		if detailErr, ok := details.(error); ok {
			details = detailErr.Error()
		}
		return customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": details,
			"status":  "error",
		}
	}
	// Nếu không phải custom error, trả về internal server error
	return common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": err.Error(),
		"status":  "error",
	}
}

// HandleResponse chuẩn hóa response: lỗi theo ErrorBody, thành công {code, message, data, status}
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		status, body := ErrorBody(err)
		return JSONResponse(c, status, body)
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}
