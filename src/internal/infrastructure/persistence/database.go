package persistence

import (
	"fmt"

	persistencecustomer "github.com/retailops/retail_crm/src/internal/infrastructure/persistence/customer"
	persistencefollowup "github.com/retailops/retail_crm/src/internal/infrastructure/persistence/followup"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ===========================
// 資料庫初始化
// ===========================

// OpenDatabase 打開 SQLite 資料庫並執行遷移
//
// 參數：
//   path - SQLite 檔案路徑（":memory:" 表示記憶體資料庫，測試用）
func OpenDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 執行資料表遷移
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&persistencecustomer.CustomerGORM{},
		&persistencecustomer.LogEntryGORM{},
		&persistencecustomer.ImpressionGORM{},
		&persistencefollowup.TaskGORM{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
