// Command exporter xuất bản ghi của màn hình xem bản ghi ra file CSV/XLSX/PDF từ dòng lệnh,
// dùng chung nguồn dữ liệu và cấu hình loại bản ghi với API server.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"agri_holding/config"
	recordmodels "agri_holding/internal/api/records/models"
	recordsvc "agri_holding/internal/api/records/service"
	"agri_holding/internal/database"
	"agri_holding/internal/datasource"
	"agri_holding/internal/logger"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

// app các phụ thuộc dùng chung giữa các lệnh, khởi tạo trong PersistentPreRunE
type app struct {
	cfg     *config.Configuration
	svc     *recordsvc.RecordService
	mongo   *mongo.Client
	sqlDB   *sql.DB
	envFile string
	tenant  string
}

var state = &app{}

var rootCmd = &cobra.Command{
	Use:           "exporter",
	Short:         "Xuất bản ghi Muheesi ra CSV, Excel hoặc PDF",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return state.open()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&state.envFile, "env", "", "File env (mặc định config/env/$GO_ENV.env)")
	rootCmd.PersistentFlags().StringVar(&state.tenant, "tenant", "", "Công ty con (mặc định DEFAULT_TENANT)")

	rootCmd.AddCommand(entitiesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(exportAllCmd)
}

// open đọc cấu hình, kết nối nguồn dữ liệu và tạo RecordService
func (a *app) open() error {
	if err := logger.Init(nil); err != nil {
		return fmt.Errorf("khởi tạo logger: %w", err)
	}

	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	a.cfg = config.NewConfig(files...)
	if a.cfg == nil {
		return fmt.Errorf("không đọc được cấu hình")
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	if a.tenant == "" {
		a.tenant = a.cfg.DefaultTenant
	}

	var err error
	switch a.cfg.DataSource {
	case config.SourceMongoDB:
		if a.mongo, err = database.GetInstance(a.cfg); err != nil {
			return err
		}
	case config.SourceMySQL, config.SourceSQLite:
		if a.sqlDB, err = database.OpenSQLFromConfig(a.cfg); err != nil {
			return err
		}
	}

	src, err := datasource.FromConfig(a.cfg, a.mongo, a.sqlDB)
	if err != nil {
		return err
	}
	entities, err := recordmodels.LoadEntities(a.cfg.EntitiesFile)
	if err != nil {
		return err
	}
	a.svc, err = recordsvc.NewRecordService(recordsvc.Options{
		Entities:      entities,
		Source:        src,
		Fallback:      a.cfg.FixtureFallback,
		DefaultTenant: a.cfg.DefaultTenant,
	})
	return err
}

func (a *app) close() {
	if a.svc != nil {
		a.svc.CloseAll()
	}
	if a.mongo != nil {
		_ = database.CloseInstance(a.mongo)
	}
	_ = database.CloseSQL(a.sqlDB)
	logger.Close()
}

func main() {
	err := rootCmd.Execute()
	state.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Lỗi:", err)
		os.Exit(1)
	}
}
