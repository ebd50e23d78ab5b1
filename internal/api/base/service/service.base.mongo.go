// package basesvc cung cấp các service cơ bản cho việc đọc/ghi collection MongoDB
package basesvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agri_holding/internal/common"
)

// BaseServiceMongo các phương thức cơ bản trên một collection
// Type Parameters:
//   - Model: Kiểu dữ liệu của document (struct hoặc bson.D)
type BaseServiceMongo[Model any] interface {
	InsertMany(ctx context.Context, data []Model) ([]Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
}

// BaseServiceMongoImpl triển khai BaseServiceMongo trên một *mongo.Collection
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo mới một BaseServiceMongoImpl
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// InsertMany tạo nhiều document, tự thêm createdAt/updatedAt (Unix milliseconds) nếu document chưa có
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return []T{}, nil
	}

	now := time.Now().UnixMilli()
	documents := make([]interface{}, 0, len(data))
	for _, item := range data {
		doc, err := toDocument(item)
		if err != nil {
			return nil, common.WithDetails(common.ErrInvalidFormat, err)
		}
		doc = withTimestamp(doc, "createdAt", now)
		doc = withTimestamp(doc, "updatedAt", now)
		documents = append(documents, doc)
	}

	result, err := s.collection.InsertMany(ctx, documents)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	// Lấy lại các documents vừa tạo
	var created []T
	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": result.InsertedIDs}})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &created); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return created, nil
}

// Find tìm tất cả document theo điều kiện lọc, luôn trả về slice khác nil
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	} else if filterMap, ok := filter.(map[string]interface{}); ok && len(filterMap) == 0 {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []T
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// DocumentExists kiểm tra có ít nhất một document khớp điều kiện
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	if filter == nil {
		filter = bson.D{}
	}

	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}

// toDocument chuyển model bất kỳ thành bson.D qua marshal BSON
func toDocument(item interface{}) (bson.D, error) {
	if doc, ok := item.(bson.D); ok {
		return doc, nil
	}
	raw, err := bson.Marshal(item)
	if err != nil {
		return nil, err
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// withTimestamp thêm field thời gian nếu document chưa có
func withTimestamp(doc bson.D, key string, now int64) bson.D {
	for _, e := range doc {
		if e.Key == key {
			return doc
		}
	}
	return append(doc, bson.E{Key: key, Value: now})
}
