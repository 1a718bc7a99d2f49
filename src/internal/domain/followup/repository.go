package followup

import (
	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
)

// ===========================
// Task Repository 介面
// ===========================

// TaskRepository 跟進任務倉儲介面
//
// 設計原則：
// 1. 依賴倒置原則（DIP）：Domain Layer 定義介面，Infrastructure Layer 實作
// 2. 事務支持：使用 TransactionContext 封裝事務
type TaskRepository interface {
	// Save 保存新任務
	Save(ctx shared.TransactionContext, task *Task) error

	// FindByID 根據任務 ID 查找任務
	// 返回：找到的任務，或 ErrTaskNotFound
	FindByID(ctx shared.TransactionContext, taskID TaskID) (*Task, error)

	// FindPendingByCustomerID 查找指定客戶的所有待處理任務
	// 排序：創建時間升序（最早的任務優先處理）
	FindPendingByCustomerID(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*Task, error)

	// Update 更新任務狀態
	// 錯誤：ErrTaskNotFound（如果任務不存在）
	Update(ctx shared.TransactionContext, task *Task) error
}
