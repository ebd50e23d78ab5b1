package main

import (
	"agri_holding/config"
	recordmodels "agri_holding/internal/api/records/models"
	"agri_holding/internal/global"
	rv "agri_holding/internal/recordview"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {
	entities, err := recordmodels.LoadEntities(global.MongoDB_ServerConfig.EntitiesFile)
	if err != nil {
		logrus.Fatalf("Failed to load entities: %v", err)
	}
	if err := InitEntities(entities); err != nil {
		logrus.Fatalf("Failed to initialize entity registry: %v", err)
	}
	logrus.Infof("Initialized entity registry (%d entities)", global.RegistryEntities.Len())

	if global.MongoDB_Session != nil {
		if err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig, entities); err != nil {
			logrus.Fatalf("Failed to initialize collections: %v", err)
		}
		logrus.Info("Initialized collection registry")
	}
}

// InitEntities đăng ký cấu hình các loại bản ghi
func InitEntities(entities []rv.EntityConfig) error {
	for _, e := range entities {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, err := global.RegistryEntities.Register(e.Name, e); err != nil {
			return err
		}
	}
	return nil
}

// InitCollections đăng ký collection MongoDB của từng loại bản ghi
func InitCollections(client *mongo.Client, cfg *config.Configuration, entities []rv.EntityConfig) error {
	db := client.Database(cfg.MongoDB_DBName_Data)
	for _, e := range entities {
		key := db.Name() + "." + e.Collection
		registered, err := global.RegistryCollections.Register(key, db.Collection(e.Collection))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", e.Collection, err)
			return err
		}
		if !registered {
			logrus.Warnf("Collection %s already registered", e.Collection)
		}
	}
	return nil
}
