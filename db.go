package main

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenDB(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&LearningPath{},
		&DeckRecord{},
		&CardRecord{},
	)
}

func IsDeckTableEmpty(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&DeckRecord{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
