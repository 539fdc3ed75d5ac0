package main

import (
	"context"
	"time"

	"exp_commerce/config"
	availabilitymodels "exp_commerce/internal/api/availability/models"
	catalogmodels "exp_commerce/internal/api/catalog/models"
	"exp_commerce/internal/database"
	"exp_commerce/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	global.InitColNames()  // Khởi tạo tên các collection trong database
	global.InitValidator() // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatal("Failed to load configuration")
	}
	logrus.Info("Loaded server configuration")
}

// Hàm khởi tạo kết nối database và index cho các collection
func initDatabase_MongoDB() {
	client, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	global.MongoDB_Session = client
	logrus.Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbName := global.ServerConfig.MongoDB_DBName
	db := client.Database(dbName)

	// Index đơn field từ struct tag của model
	indexTargets := []struct {
		colName string
		model   interface{}
	}{
		{global.MongoDB_ColNames.Vendors, catalogmodels.VendorProfile{}},
		{global.MongoDB_ColNames.Addons, catalogmodels.Addon{}},
		{global.MongoDB_ColNames.ExperienceEvents, catalogmodels.ExperienceEvent{}},
		{global.MongoDB_ColNames.Availabilities, availabilitymodels.AvailabilityRecord{}},
	}
	for _, target := range indexTargets {
		if err := database.CreateIndexes(ctx, db.Collection(target.colName), target.model); err != nil {
			logrus.Fatalf("Failed to create indexes for %s: %v", target.colName, err)
		}
	}

	// Index compound và unique của marketplace
	if err := database.CreateMarketplaceIndexes(ctx, db); err != nil {
		logrus.Fatalf("Failed to create marketplace indexes: %v", err)
	}
	logrus.Info("Created MongoDB indexes")
}
