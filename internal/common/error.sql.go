package common

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Mã lỗi MySQL thường gặp khi đọc dữ liệu
const (
	MySQLErrAccessDenied = 1045 // Sai thông tin đăng nhập
	MySQLErrBadDatabase  = 1049 // Database không tồn tại
	MySQLErrNoSuchTable  = 1146 // Bảng không tồn tại
	MySQLErrBadField     = 1054 // Cột không tồn tại
)

// SQL Error Messages
const (
	MsgSQLConnection = "Lỗi kết nối cơ sở dữ liệu SQL"
	MsgSQLAuth       = "Lỗi xác thực cơ sở dữ liệu SQL"
	MsgSQLQuery      = "Lỗi truy vấn cơ sở dữ liệu SQL"
	MsgSQLTimeout    = "Truy vấn cơ sở dữ liệu SQL bị timeout"
)

// SQL Specific Errors
var (
	ErrSQLConnection = NewError(ErrCodeDatabaseConnection, MsgSQLConnection, StatusServiceUnavailable, nil)
	ErrSQLAuth       = NewError(ErrCodeDatabaseConnection, MsgSQLAuth, StatusServiceUnavailable, nil)
	ErrSQLQuery      = NewError(ErrCodeDatabaseQuery, MsgSQLQuery, StatusInternalServerError, nil)
	ErrSQLTimeout    = NewError(ErrCodeDatabaseConnection, MsgSQLTimeout, StatusServiceUnavailable, nil)
)

// ConvertSQLError chuyển đổi lỗi database/sql (MySQL, SQLite) sang lỗi hệ thống
func ConvertSQLError(err error) error {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return ErrSQLTimeout
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, mysql.ErrInvalidConn), errors.Is(err, sql.ErrConnDone):
		return ErrSQLConnection
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case MySQLErrAccessDenied:
			return ErrSQLAuth
		case MySQLErrBadDatabase:
			return ErrSQLConnection
		case MySQLErrNoSuchTable:
			return ErrCollectionNotFound
		default:
			return NewError(ErrCodeDatabaseQuery, MsgSQLQuery, StatusInternalServerError, err)
		}
	}

	// SQLite (modernc) không export mã lỗi ổn định qua database/sql, nhận diện bằng message
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such table"):
		return ErrCollectionNotFound
	case strings.Contains(msg, "unable to open database"), strings.Contains(msg, "connection refused"):
		return ErrSQLConnection
	}

	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
