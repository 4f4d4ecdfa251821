package main

import (
	"strings"

	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/database"
	"github.com/SeakMengs/CourseCert/internal/env"
	"github.com/SeakMengs/CourseCert/internal/model"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database driver: %s, database: %s", cfg.DB.DRIVER, cfg.DB.DB_DATABASE)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	if !strings.EqualFold(cfg.DB.DRIVER, database.DriverSqlite) {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS citext`).Error; err != nil {
			logger.Panic(err)
		}
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		logger.Panic(err)
	}

	logger.Info("Migration finished")
}
