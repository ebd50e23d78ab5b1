package database

import (
	"context"
	"fmt"
	"time"

	"agri_holding/config"
	"agri_holding/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetInstance kết nối tới MongoDB theo MONGODB_CONNECTION_URI và ping thử trước khi trả về client
func GetInstance(c *config.Configuration) (*mongo.Client, error) {
	if c.MongoDB_ConnectionURI == "" {
		return nil, fmt.Errorf("database connection URL is empty")
	}

	clientOptions := options.Client().ApplyURI(c.MongoDB_ConnectionURI).
		SetMaxPoolSize(20).                 // Màn hình xem bản ghi chỉ đọc, pool nhỏ là đủ
		SetMinPoolSize(2).                  // Giữ sẵn vài connection cho lần tải đầu
		SetConnectTimeout(5 * time.Second). // Timeout khi kết nối
		SetSocketTimeout(10 * time.Second)  // Timeout khi gửi nhận dữ liệu

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelPing()

	if err := client.Ping(ctxPing, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.WithModule("database").WithField("db", c.MongoDB_DBName_Data).Info("Đã kết nối MongoDB")
	return client, nil
}

// CloseInstance đóng kết nối MongoDB
func CloseInstance(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(context.TODO()); err != nil {
		logger.WithModule("database").WithError(err).Error("Không thể đóng kết nối MongoDB")
		return err
	}
	logger.WithModule("database").Info("Đã đóng kết nối MongoDB")
	return nil
}
