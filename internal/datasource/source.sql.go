package datasource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"agri_holding/internal/common"
	"agri_holding/internal/database"
	"agri_holding/internal/logger"
	"agri_holding/internal/recordview"
)

// dialect khác biệt giữa MySQL và SQLite khi sinh câu lệnh
type dialect struct {
	quote     func(string) string
	textType  string
	intType   string
	floatType string
	boolType  string
}

var dialects = map[string]dialect{
	database.DriverMySQL: {
		quote:     func(s string) string { return "`" + s + "`" },
		textType:  "TEXT",
		intType:   "BIGINT",
		floatType: "DOUBLE",
		boolType:  "BOOLEAN",
	},
	database.DriverSQLite: {
		quote:     func(s string) string { return `"` + s + `"` },
		textType:  "TEXT",
		intType:   "INTEGER",
		floatType: "REAL",
		boolType:  "INTEGER",
	},
}

// SQLSource đọc bảng từ MySQL hoặc SQLite qua database/sql
type SQLSource struct {
	db      *sql.DB
	driver  string
	dialect dialect
}

// NewSQLSource tạo SQLSource. driver là database.DriverMySQL hoặc database.DriverSQLite.
func NewSQLSource(db *sql.DB, driver string) *SQLSource {
	d, ok := dialects[driver]
	if !ok {
		d = dialects[database.DriverSQLite]
	}
	return &SQLSource{db: db, driver: driver, dialect: d}
}

// FetchCollection trả về mọi dòng của bảng theo thứ tự cột, giới hạn theo công ty con nếu có scope
func (s *SQLSource) FetchCollection(ctx context.Context, name string, scope Scope) ([]recordview.Record, error) {
	if err := checkScope(name, scope); err != nil {
		return nil, err
	}

	query := "SELECT * FROM " + s.dialect.quote(name)
	var args []any
	if scope.TenantField != "" && scope.Tenant != "" {
		query += " WHERE " + s.dialect.quote(scope.TenantField) + " = ?"
		args = append(args, scope.Tenant)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.WithModuleAndCollection("datasource", name).WithField("driver", s.driver).WithError(err).Error("Không thể đọc bảng SQL")
		return nil, common.ConvertSQLError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, common.ConvertSQLError(err)
	}

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, common.ConvertSQLError(err)
	}

	records := []recordview.Record{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, common.ConvertSQLError(err)
		}

		var r recordview.Record
		for i, col := range columns {
			r.Set(col, sqlValue(values[i], colTypes[i].DatabaseTypeName()))
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, common.ConvertSQLError(err)
	}
	return records, nil
}

// sqlValue chuẩn hóa giá trị driver trả về. []byte của cột số (DECIMAL của MySQL) thành số,
// còn lại thành chuỗi.
func sqlValue(v any, dbType string) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	s := string(b)

	switch numericKind(dbType) {
	case "float":
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case "int":
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// numericKind phân loại tên kiểu cột: "float", "int" hoặc "" nếu không phải cột số.
// Bỏ tiền tố UNSIGNED và phần tham số, ví dụ "DECIMAL(12,2)".
func numericKind(dbType string) string {
	t := strings.ToUpper(strings.TrimSpace(dbType))
	t = strings.TrimPrefix(t, "UNSIGNED ")
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	switch t {
	case "DECIMAL", "NUMERIC", "NEWDECIMAL", "FLOAT", "DOUBLE", "REAL":
		return "float"
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT":
		return "int"
	}
	return ""
}

// SeedSQL tạo bảng (nếu chưa có) với cột theo thứ tự key của bản ghi rồi ghi bản ghi mẫu khi bảng rỗng.
// Trả về số dòng đã ghi.
func SeedSQL(ctx context.Context, db *sql.DB, driver, table string, records []recordview.Record) (int, error) {
	if err := checkScope(table, Scope{}); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	d, ok := dialects[driver]
	if !ok {
		return 0, common.WithDetails(common.ErrUnsupportedSource, driver)
	}

	columns, types := seedColumns(records, d)
	for _, col := range columns {
		if !ValidIdentifier(col) {
			return 0, common.WithDetails(common.ErrInvalidCollection, fmt.Sprintf("column %q", col))
		}
	}

	defs := make([]string, len(columns))
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = d.quote(col)
		defs[i] = quoted[i] + " " + types[i]
		marks[i] = "?"
	}

	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.quote(table), strings.Join(defs, ", "))
	if _, err := db.ExecContext(ctx, create); err != nil {
		return 0, common.ConvertSQLError(err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+d.quote(table)).Scan(&count); err != nil {
		return 0, common.ConvertSQLError(err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, common.ConvertSQLError(err)
	}
	defer tx.Rollback()

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", d.quote(table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, common.ConvertSQLError(err)
	}
	defer stmt.Close()

	for _, r := range records {
		args := make([]any, len(columns))
		for i, col := range columns {
			v, _ := r.Get(col)
			args[i] = seedValue(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, common.ConvertSQLError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, common.ConvertSQLError(err)
	}

	logger.WithModuleAndCollection("datasource", table).WithField("count", len(records)).Info("Đã seed dữ liệu mẫu")
	return len(records), nil
}

// seedColumns trả về hợp các key theo thứ tự xuất hiện và kiểu cột suy từ giá trị khác nil đầu tiên
func seedColumns(records []recordview.Record, d dialect) ([]string, []string) {
	var columns []string
	kinds := map[string]string{}
	for _, r := range records {
		for _, k := range r.Keys() {
			v, _ := r.Get(k)
			if _, seen := kinds[k]; !seen {
				columns = append(columns, k)
				kinds[k] = ""
			}
			if kinds[k] == "" && v != nil {
				kinds[k] = columnType(v, d)
			}
		}
	}
	types := make([]string, len(columns))
	for i, col := range columns {
		types[i] = kinds[col]
		if types[i] == "" {
			types[i] = d.textType
		}
	}
	return columns, types
}

func columnType(v any, d dialect) string {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return d.intType
	case float32, float64:
		return d.floatType
	case bool:
		return d.boolType
	default:
		return d.textType
	}
}

// seedValue chuyển giá trị bản ghi sang giá trị driver chấp nhận:
// thời gian thành chuỗi RFC3339, object/mảng lồng nhau thành JSON
func seedValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case recordview.Record, []any, map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return recordview.Text(t)
		}
		return string(b)
	default:
		return v
	}
}
