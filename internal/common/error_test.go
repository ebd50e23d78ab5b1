package common

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIs_WrappedAndDetailed(t *testing.T) {
	wrapped := fmt.Errorf("xuất farm-records: %w", ErrNothingToExport)
	assert.True(t, errors.Is(wrapped, ErrNothingToExport), "errors.Is phải nhận ra lỗi đã bọc")

	detailed := WithDetails(ErrExportFailed, errors.New("boom"))
	assert.True(t, errors.Is(detailed, ErrExportFailed), "WithDetails phải giữ mã lỗi")
	assert.False(t, errors.Is(detailed, ErrNothingToExport))

	var customErr *Error
	assert.True(t, errors.As(detailed, &customErr))
	assert.Equal(t, StatusInternalServerError, customErr.StatusCode)
	assert.EqualError(t, errors.Unwrap(detailed), "boom")
}

func TestConvertMongoError(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil))
	assert.Equal(t, ErrNotFound, ConvertMongoError(mongo.ErrNoDocuments))
	assert.Equal(t, ErrNotFound, ConvertMongoError(ErrNotFound))
	assert.Equal(t, ErrMongoQuery, ConvertMongoError(mongo.CommandError{Code: 301}))

	generic := ConvertMongoError(errors.New("lạ"))
	var customErr *Error
	assert.True(t, errors.As(generic, &customErr))
	assert.Equal(t, ErrCodeDatabase.Code, customErr.Code.Code)
}

func TestConvertSQLError(t *testing.T) {
	assert.Nil(t, ConvertSQLError(nil))
	assert.Equal(t, ErrNotFound, ConvertSQLError(sql.ErrNoRows))
	assert.Equal(t, ErrCollectionNotFound, ConvertSQLError(&mysql.MySQLError{Number: MySQLErrNoSuchTable, Message: "Table 'x' doesn't exist"}))
	assert.Equal(t, ErrSQLAuth, ConvertSQLError(&mysql.MySQLError{Number: MySQLErrAccessDenied}))
	assert.Equal(t, ErrCollectionNotFound, ConvertSQLError(errors.New("SQL logic error: no such table: farm_records (1)")))
	assert.Equal(t, ErrSQLConnection, ConvertSQLError(mysql.ErrInvalidConn))
}
