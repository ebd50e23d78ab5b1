// Package datasource cung cấp boundary "lấy collection theo tên" cho các màn hình xem bản ghi.
// Mỗi nguồn (MongoDB, MySQL, SQLite, bộ nhớ) trả về bản ghi giữ nguyên thứ tự field.
package datasource

import (
	"database/sql"
	"fmt"
	"regexp"

	"agri_holding/config"
	"agri_holding/internal/common"
	"agri_holding/internal/database"
	"agri_holding/internal/recordview"

	"go.mongodb.org/mongo-driver/mongo"
)

// Scope giới hạn bản ghi theo công ty con
type Scope = recordview.Scope

// Source là nguồn dữ liệu trả về toàn bộ collection theo tên
type Source interface {
	recordview.Fetcher
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// ValidIdentifier kiểm tra tên collection/bảng/cột trước khi đưa vào truy vấn
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// checkScope kiểm tra tên collection và field công ty con
func checkScope(name string, scope Scope) error {
	if !ValidIdentifier(name) {
		return common.WithDetails(common.ErrInvalidCollection, name)
	}
	if scope.TenantField != "" && !ValidIdentifier(scope.TenantField) {
		return common.WithDetails(common.ErrInvalidCollection, fmt.Sprintf("tenant field %q", scope.TenantField))
	}
	return nil
}

// FromConfig chọn nguồn dữ liệu theo DATA_SOURCE.
// mongoClient chỉ cần khi DATA_SOURCE=mongodb, db chỉ cần khi DATA_SOURCE=mysql|sqlite.
func FromConfig(c *config.Configuration, mongoClient *mongo.Client, db *sql.DB) (Source, error) {
	switch c.DataSource {
	case config.SourceMongoDB:
		if mongoClient == nil {
			return nil, common.WithDetails(common.ErrConnection, "mongo client is nil")
		}
		return NewMongoSource(mongoClient.Database(c.MongoDB_DBName_Data)), nil
	case config.SourceMySQL:
		if db == nil {
			return nil, common.WithDetails(common.ErrConnection, "sql db is nil")
		}
		return NewSQLSource(db, database.DriverMySQL), nil
	case config.SourceSQLite:
		if db == nil {
			return nil, common.WithDetails(common.ErrConnection, "sql db is nil")
		}
		return NewSQLSource(db, database.DriverSQLite), nil
	case config.SourceFixtures:
		return NewStaticSource(), nil
	default:
		return nil, common.WithDetails(common.ErrUnsupportedSource, c.DataSource)
	}
}
