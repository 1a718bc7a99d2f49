package customer

import (
	"errors"
	"strings"
	"time"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
	"gorm.io/gorm"
)

// gormTransactionContext GORM 事務上下文
type gormTransactionContext interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// ===========================
// CustomerRepositoryImpl
// ===========================

// CustomerRepositoryImpl 客戶倉儲實現（GORM）
//
// 設計原則：
// - 實作 customer.CustomerRepository 接口
// - 處理 Domain 與 GORM 模型轉換
// - 將 GORM 錯誤轉換為 Domain 錯誤
// - 聚合整體持久化：每次寫入替換整個聚合
//   （歷史條目與印象為 insert-only 子表，Update 時整批重寫）
type CustomerRepositoryImpl struct {
	db *gorm.DB
}

// NewCustomerRepository 創建新的客戶倉儲實例
func NewCustomerRepository(db *gorm.DB) customer.CustomerRepository {
	return &CustomerRepositoryImpl{db: db}
}

// Save 保存新客戶
//
// 錯誤處理：
// - UNIQUE constraint 違反（phone 重複）→ ErrCustomerAlreadyExists
// - 其他資料庫錯誤 → 原始錯誤
func (r *CustomerRepositoryImpl) Save(ctx shared.TransactionContext, c *customer.Customer) error {
	db := r.getDB(ctx)

	// 1. 寫入主表
	if result := db.Create(toGORM(c)); result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return customer.ErrCustomerAlreadyExists.WithContext(
				"phone", c.Phone().String(),
			)
		}
		return result.Error
	}

	// 2. 寫入子表（新客戶通常為空，保持一致性仍執行）
	return r.insertChildren(db, c)
}

// FindByID 根據客戶 ID 查找客戶（含完整歷史記錄與印象）
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → customer.ErrCustomerNotFound
func (r *CustomerRepositoryImpl) FindByID(ctx shared.TransactionContext, customerID customer.CustomerID) (*customer.Customer, error) {
	db := r.getDB(ctx)

	var gormModel CustomerGORM
	result := db.Where("customer_id = ?", customerID.String()).First(&gormModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound.WithContext(
				"customer_id", customerID.String(),
			)
		}
		return nil, result.Error
	}

	return r.loadAggregate(db, &gormModel)
}

// FindByPhone 根據手機號碼查找客戶
//
// 業務規則：一個手機號碼對應一個客戶（unique index 保證）
func (r *CustomerRepositoryImpl) FindByPhone(ctx shared.TransactionContext, phone customer.PhoneNumber) (*customer.Customer, error) {
	db := r.getDB(ctx)

	var gormModel CustomerGORM
	result := db.Where("phone = ?", phone.String()).First(&gormModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound.WithContext(
				"phone", phone.String(),
			)
		}
		return nil, result.Error
	}

	return r.loadAggregate(db, &gormModel)
}

// Update 更新客戶聚合（整體替換，樂觀鎖版本保護）
//
// 實作邏輯：
// 1. 帶版本條件的主表更新（WHERE customer_id = ? AND version = ?）
// 2. RowsAffected == 0 時區分「客戶不存在」與「版本衝突」
// 3. 整批重寫子表（外部存儲每次保存替換整個聚合）
//
// 注意：使用 map 更新以正確寫入零值欄位（積分可能降為 0）
func (r *CustomerRepositoryImpl) Update(ctx shared.TransactionContext, c *customer.Customer, expectedVersion int) error {
	db := r.getDB(ctx)
	gormModel := toGORM(c)

	// 1. 帶版本條件的主表更新
	result := db.Model(&CustomerGORM{}).
		Where("customer_id = ? AND version = ?", gormModel.CustomerID, expectedVersion).
		Updates(map[string]interface{}{
			"name":                gormModel.Name,
			"phone":               gormModel.Phone,
			"email":               gormModel.Email,
			"governorate":         gormModel.Governorate,
			"customer_type":       gormModel.CustomerType,
			"classification":      gormModel.Classification,
			"points":              gormModel.Points,
			"total_points_earned": gormModel.TotalPointsEarned,
			"total_points_used":   gormModel.TotalPointsUsed,
			"total_purchases":     gormModel.TotalPurchases,
			"purchase_count":      gormModel.PurchaseCount,
			"last_purchase_date":  gormModel.LastPurchaseDate,
			"has_bad_reputation":  gormModel.HasBadReputation,
			"version":             expectedVersion + 1,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}

	// 2. 區分「客戶不存在」與「版本衝突」
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&CustomerGORM{}).
			Where("customer_id = ?", gormModel.CustomerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return customer.ErrCustomerNotFound.WithContext(
				"customer_id", gormModel.CustomerID,
			)
		}
		return customer.ErrVersionConflict.WithContext(
			"customer_id", gormModel.CustomerID,
			"expected_version", expectedVersion,
		)
	}

	// 3. 整批重寫子表
	if err := db.Where("customer_id = ?", gormModel.CustomerID).
		Delete(&LogEntryGORM{}).Error; err != nil {
		return err
	}
	if err := db.Where("customer_id = ?", gormModel.CustomerID).
		Delete(&ImpressionGORM{}).Error; err != nil {
		return err
	}

	return r.insertChildren(db, c)
}

// Delete 刪除客戶聚合（唯一銷毀路徑，歷史記錄與印象一併刪除）
func (r *CustomerRepositoryImpl) Delete(ctx shared.TransactionContext, customerID customer.CustomerID) error {
	db := r.getDB(ctx)

	// 1. 先刪子表
	if err := db.Where("customer_id = ?", customerID.String()).
		Delete(&LogEntryGORM{}).Error; err != nil {
		return err
	}
	if err := db.Where("customer_id = ?", customerID.String()).
		Delete(&ImpressionGORM{}).Error; err != nil {
		return err
	}

	// 2. 刪主表
	result := db.Where("customer_id = ?", customerID.String()).Delete(&CustomerGORM{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound.WithContext(
			"customer_id", customerID.String(),
		)
	}

	return nil
}

// ===========================
// Helper Methods
// ===========================

// loadAggregate 載入子表並重建聚合
func (r *CustomerRepositoryImpl) loadAggregate(db *gorm.DB, gormModel *CustomerGORM) (*customer.Customer, error) {
	// 歷史條目按自增主鍵升序 = 寫入順序（最舊在前）
	var logRows []LogEntryGORM
	if err := db.Where("customer_id = ?", gormModel.CustomerID).
		Order("id ASC").
		Find(&logRows).Error; err != nil {
		return nil, err
	}

	var impressionRows []ImpressionGORM
	if err := db.Where("customer_id = ?", gormModel.CustomerID).
		Order("date ASC").
		Find(&impressionRows).Error; err != nil {
		return nil, err
	}

	return toDomain(gormModel, logRows, impressionRows)
}

// insertChildren 寫入歷史條目與印象子表
func (r *CustomerRepositoryImpl) insertChildren(db *gorm.DB, c *customer.Customer) error {
	if rows := logEntriesToGORM(c); len(rows) > 0 {
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}
	if rows := impressionsToGORM(c); len(rows) > 0 {
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// getDB 獲取 GORM DB 實例
//
// 行為：
// - ctx != nil: 使用事務中的 DB（從 TransactionContext 獲取）
// - ctx == nil: 使用預設 DB（auto-commit 模式）
func (r *CustomerRepositoryImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(gormTransactionContext); ok {
			return txCtx.GetDB()
		}
	}
	return r.db
}

// isUniqueConstraintError 判斷是否為唯一約束錯誤
//
// 支持的資料庫：
// - PostgreSQL: "duplicate key value violates unique constraint"
// - SQLite: "UNIQUE constraint failed"
// - MySQL: "Duplicate entry"
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())

	// PostgreSQL
	if strings.Contains(errMsg, "duplicate key value violates unique constraint") {
		return true
	}

	// SQLite
	if strings.Contains(errMsg, "unique constraint failed") {
		return true
	}

	// MySQL
	if strings.Contains(errMsg, "duplicate entry") {
		return true
	}

	return false
}
