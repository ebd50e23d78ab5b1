package datasource

import (
	"context"

	basesvc "agri_holding/internal/api/base/service"
	"agri_holding/internal/global"
	"agri_holding/internal/logger"
	"agri_holding/internal/recordview"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSource đọc collection từ một database MongoDB
type MongoSource struct {
	db *mongo.Database
}

// NewMongoSource tạo MongoSource
func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{db: db}
}

// service trả về base service cho collection, collection được cache trong RegistryCollections
func (s *MongoSource) service(name string) (basesvc.BaseServiceMongo[bson.D], error) {
	key := s.db.Name() + "." + name
	coll, err := global.RegistryCollections.GetOrCreate(key, func() (*mongo.Collection, error) {
		return s.db.Collection(name), nil
	})
	if err != nil {
		return nil, err
	}
	return basesvc.NewBaseServiceMongo[bson.D](coll), nil
}

// FetchCollection trả về mọi document của collection, giới hạn theo công ty con nếu có scope
func (s *MongoSource) FetchCollection(ctx context.Context, name string, scope Scope) ([]recordview.Record, error) {
	if err := checkScope(name, scope); err != nil {
		return nil, err
	}
	svc, err := s.service(name)
	if err != nil {
		return nil, err
	}

	filter := bson.D{}
	if scope.TenantField != "" && scope.Tenant != "" {
		filter = append(filter, bson.E{Key: scope.TenantField, Value: scope.Tenant})
	}

	docs, err := svc.Find(ctx, filter, options.Find())
	if err != nil {
		logger.WithModuleAndCollection("datasource", name).WithError(err).Error("Không thể đọc collection MongoDB")
		return nil, err
	}

	records := make([]recordview.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, recordview.FromBSON(doc))
	}
	return records, nil
}

// SeedMongo ghi bản ghi mẫu vào collection nếu collection đang rỗng. Trả về số document đã ghi.
func SeedMongo(ctx context.Context, db *mongo.Database, name string, records []recordview.Record) (int, error) {
	if err := checkScope(name, Scope{}); err != nil {
		return 0, err
	}
	svc := basesvc.NewBaseServiceMongo[bson.D](db.Collection(name))

	exists, err := svc.DocumentExists(ctx, nil)
	if err != nil {
		return 0, err
	}
	if exists || len(records) == 0 {
		return 0, nil
	}

	docs := make([]bson.D, 0, len(records))
	for _, r := range records {
		docs = append(docs, r.ToBSON())
	}
	created, err := svc.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	logger.WithModuleAndCollection("datasource", name).WithField("count", len(created)).Info("Đã seed dữ liệu mẫu")
	return len(created), nil
}
