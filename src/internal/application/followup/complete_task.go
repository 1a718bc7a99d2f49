package followup

import (
	"fmt"

	"github.com/retailops/retail_crm/src/internal/application/notify"
	"github.com/retailops/retail_crm/src/internal/domain/followup"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
)

// ===========================
// CompleteFollowUpTask Use Case
// ===========================

// CompleteTaskCommand 完成跟進任務指令
type CompleteTaskCommand struct {
	TaskID          string // 任務 ID（UUID 字串）
	ResolutionNotes string // 結案備註（可選）
}

// CompleteTaskResult 完成跟進任務結果
type CompleteTaskResult struct {
	TaskID       string
	Status       string
	Notification notify.Notification
}

// CompleteTaskUseCase 完成跟進任務 Use Case
type CompleteTaskUseCase struct {
	taskRepo  followup.TaskRepository
	txManager shared.TransactionManager
}

// NewCompleteTaskUseCase 創建 Use Case 實例
func NewCompleteTaskUseCase(
	taskRepo followup.TaskRepository,
	txManager shared.TransactionManager,
) *CompleteTaskUseCase {
	return &CompleteTaskUseCase{
		taskRepo:  taskRepo,
		txManager: txManager,
	}
}

// Execute 執行完成跟進任務
//
// 錯誤處理：
// - ErrInvalidTaskID: TaskID 格式無效
// - ErrTaskNotFound: 任務不存在
// - ErrTaskAlreadyDone: 任務已完成（狀態轉移單向，不可重複完成）
func (uc *CompleteTaskUseCase) Execute(cmd CompleteTaskCommand) (*CompleteTaskResult, error) {
	// 1. 驗證並轉換 TaskID
	taskID, err := followup.TaskIDFromString(cmd.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse task ID: %w", err)
	}

	// 2. 在事務中執行業務邏輯
	var result *CompleteTaskResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		// 2a. 讀取任務
		task, err := uc.taskRepo.FindByID(ctx, taskID)
		if err != nil {
			return err
		}

		// 2b. 完成任務（狀態轉移在聚合內）
		if err := task.Complete(cmd.ResolutionNotes); err != nil {
			return err
		}

		// 2c. 持久化
		if err := uc.taskRepo.Update(ctx, task); err != nil {
			return err
		}

		result = &CompleteTaskResult{
			TaskID:       task.TaskID().String(),
			Status:       string(task.Status()),
			Notification: notify.Success("تم إغلاق مهمة المتابعة بنجاح."),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
