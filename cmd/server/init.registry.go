package main

import (
	"exp_commerce/config"
	"exp_commerce/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {
	if err := InitCollections(global.MongoDB_Session, global.ServerConfig); err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections đăng ký database và các collection marketplace vào registry
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	if _, err := global.RegistryDatabase.Register(cfg.MongoDB_DBName, db); err != nil {
		return err
	}

	for _, name := range global.ColNameList() {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		}
	}

	return nil
}
