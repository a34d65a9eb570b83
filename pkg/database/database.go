package database

import (
	"campus_backend/internal/config"
	"campus_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.Manual{},
		&model.QuizResult{},
		&model.TrainerCredential{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the built-in manual library on first boot. Idempotent: only runs
	// against an empty catalog.
	var manualCount int64
	db.Model(&model.Manual{}).Count(&manualCount)
	if manualCount == 0 {
		for _, m := range model.DefaultManuals() {
			db.Create(&m)
		}
		log.Println("Default manual catalog seeded")
	}

	var credCount int64
	db.Model(&model.TrainerCredential{}).Count(&credCount)
	if credCount == 0 {
		db.Create(&model.TrainerCredential{ID: 1, Password: model.DefaultTrainerPassword})
	}

	return db, nil
}
