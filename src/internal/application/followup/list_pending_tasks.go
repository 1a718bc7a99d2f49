package followup

import (
	"fmt"
	"time"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/followup"
)

// ===========================
// ListPendingTasks Use Case
// ===========================

// ListPendingTasksQuery 查詢客戶待處理任務的查詢
type ListPendingTasksQuery struct {
	CustomerID string
}

// TaskDTO 跟進任務（Output DTO）
type TaskDTO struct {
	TaskID       string
	CustomerID   string
	CustomerName string
	Reason       string
	Details      string
	Status       string
	AssignedTo   string
	CreatedAt    time.Time
}

// ListPendingTasksResult 查詢結果
//
// Tasks 按創建時間升序（最早的任務優先處理）
type ListPendingTasksResult struct {
	Tasks []TaskDTO
}

// ListPendingTasksUseCase 查詢客戶待處理任務 Use Case
//
// 讀操作：獨立查詢時傳 nil context（auto-commit 模式）
type ListPendingTasksUseCase struct {
	taskRepo followup.TaskRepository
}

// NewListPendingTasksUseCase 創建 Use Case 實例
func NewListPendingTasksUseCase(taskRepo followup.TaskRepository) *ListPendingTasksUseCase {
	return &ListPendingTasksUseCase{
		taskRepo: taskRepo,
	}
}

// Execute 執行查詢待處理任務
func (uc *ListPendingTasksUseCase) Execute(query ListPendingTasksQuery) (*ListPendingTasksResult, error) {
	// 1. 驗證並轉換 CustomerID
	customerID, err := customer.CustomerIDFromString(query.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse customer ID: %w", err)
	}

	// 2. 查詢待處理任務（獨立讀操作，auto-commit 模式）
	tasks, err := uc.taskRepo.FindPendingByCustomerID(nil, customerID)
	if err != nil {
		return nil, err
	}

	// 3. 返回結果（DTO 轉換）
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, TaskDTO{
			TaskID:       task.TaskID().String(),
			CustomerID:   task.CustomerID().String(),
			CustomerName: task.CustomerName(),
			Reason:       task.Reason(),
			Details:      task.Details(),
			Status:       string(task.Status()),
			AssignedTo:   task.AssignedTo(),
			CreatedAt:    task.CreatedAt(),
		})
	}

	return &ListPendingTasksResult{Tasks: dtos}, nil
}
