package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 执行全部模型迁移.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Collection{},
		&CollectionAccess{},
		&Image{},
		&AnalyticsEvent{},
	)
}
