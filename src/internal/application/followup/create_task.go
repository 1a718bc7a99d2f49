package followup

import (
	"fmt"

	"github.com/retailops/retail_crm/src/internal/application/notify"
	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/followup"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
)

// ===========================
// CreateFollowUpTask Use Case
// ===========================

// CreateTaskCommand 創建跟進任務指令
type CreateTaskCommand struct {
	CustomerID string // 客戶 ID（UUID 字串）
	Reason     string // 跟進原因（必填）
	Details    string // 詳情（可選）
}

// CreateTaskResult 創建跟進任務結果
type CreateTaskResult struct {
	TaskID       string
	CustomerID   string
	CustomerName string
	Status       string
	Notification notify.Notification
}

// CreateTaskUseCase 創建跟進任務 Use Case
//
// 職責：
// 1. 驗證輸入並確認客戶存在
// 2. 創建 Task 聚合（初始狀態 Pending）
// 3. 在事務中保存到 Repository
type CreateTaskUseCase struct {
	taskRepo     followup.TaskRepository
	customerRepo customer.CustomerRepository
	txManager    shared.TransactionManager
}

// NewCreateTaskUseCase 創建 Use Case 實例
func NewCreateTaskUseCase(
	taskRepo followup.TaskRepository,
	customerRepo customer.CustomerRepository,
	txManager shared.TransactionManager,
) *CreateTaskUseCase {
	return &CreateTaskUseCase{
		taskRepo:     taskRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
	}
}

// Execute 執行創建跟進任務
//
// 錯誤處理：
// - ErrInvalidCustomerID: CustomerID 格式無效
// - ErrCustomerNotFound: 客戶不存在
// - ErrInvalidTask: 原因為空
func (uc *CreateTaskUseCase) Execute(cmd CreateTaskCommand) (*CreateTaskResult, error) {
	// 1. 驗證並轉換 CustomerID
	customerID, err := customer.CustomerIDFromString(cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse customer ID: %w", err)
	}

	// 2. 在事務中執行業務邏輯
	var result *CreateTaskResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		// 2a. 確認客戶存在（任務必須掛在真實客戶下）
		c, err := uc.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		// 2b. 創建 Task 聚合
		task, err := followup.NewTask(customerID, c.Name(), cmd.Reason, cmd.Details)
		if err != nil {
			return err
		}

		// 2c. 保存到資料庫
		if err := uc.taskRepo.Save(ctx, task); err != nil {
			return err
		}

		result = &CreateTaskResult{
			TaskID:       task.TaskID().String(),
			CustomerID:   task.CustomerID().String(),
			CustomerName: task.CustomerName(),
			Status:       string(task.Status()),
			Notification: notify.Success("تم إنشاء مهمة المتابعة بنجاح."),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
