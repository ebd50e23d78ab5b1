package main

import (
	"context"
	"time"

	"agri_holding/config"
	"agri_holding/internal/database"
	"agri_holding/internal/datasource"
	"agri_holding/internal/global"
	"agri_holding/internal/logger"
	rv "agri_holding/internal/recordview"
)

// InitDefaultData seed dữ liệu mẫu của mọi loại bản ghi vào nguồn dữ liệu khi INITMODE=true.
// Collection/bảng đã có dữ liệu được giữ nguyên.
func InitDefaultData() {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()
	if !cfg.InitMode {
		return
	}
	log.Info("[INIT] Seeding sample records...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range global.RegistryEntities.Names() {
		e, _ := global.RegistryEntities.Get(name)
		n, err := seedEntity(ctx, cfg, e)
		if err != nil {
			log.WithError(err).WithField("entity", name).Error("[INIT] Không thể seed dữ liệu mẫu")
			continue
		}
		log.WithField("entity", name).WithField("count", n).Info("[INIT] Seeded")
	}
	log.Info("[INIT] Seeding completed")
}

func seedEntity(ctx context.Context, cfg *config.Configuration, e rv.EntityConfig) (int, error) {
	switch cfg.DataSource {
	case config.SourceMongoDB:
		return datasource.SeedMongo(ctx, global.MongoDB_Session.Database(cfg.MongoDB_DBName_Data), e.Collection, e.Fixtures)
	case config.SourceMySQL:
		return datasource.SeedSQL(ctx, global.SQL_Session, database.DriverMySQL, e.Collection, e.Fixtures)
	case config.SourceSQLite:
		return datasource.SeedSQL(ctx, global.SQL_Session, database.DriverSQLite, e.Collection, e.Fixtures)
	case config.SourceFixtures:
		if static, ok := global.RecordSource.(*datasource.StaticSource); ok {
			static.Set(e.Collection, e.Fixtures)
			return len(e.Fixtures), nil
		}
	}
	return 0, nil
}
