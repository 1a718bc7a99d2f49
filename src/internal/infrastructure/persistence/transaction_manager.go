package persistence

import (
	"github.com/retailops/retail_crm/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionManager 實作
// ===========================

// GORMTransactionManager GORM 事務管理器
//
// 保證：
// 1. fn 返回 nil → 提交事務
// 2. fn 返回 error → 回滾事務
// 3. fn panic → 回滾事務後重新拋出（GORM Transaction 內建行為）
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建事務管理器實例
func NewGORMTransactionManager(db *gorm.DB) shared.TransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在事務中執行 fn
//
// fn 收到的 TransactionContext 封裝了事務中的 *gorm.DB，
// Repository 透過它參與同一事務
func (m *GORMTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMTransactionContext(tx))
	})
}
