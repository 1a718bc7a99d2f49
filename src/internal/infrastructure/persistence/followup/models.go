package followup

import (
	"time"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/followup"
)

// ===========================
// GORM Models
// ===========================

// TaskGORM 跟進任務資料表模型
//
// 資料庫約束：
// - task_id: 主鍵（UUID）
// - customer_id: 索引（查詢某客戶的待處理任務）
// - version: 樂觀鎖版本號
type TaskGORM struct {
	TaskID       string `gorm:"column:task_id;type:varchar(36);primaryKey"`
	CustomerID   string `gorm:"column:customer_id;type:varchar(36);index;not null"`
	CustomerName string `gorm:"column:customer_name;not null"`

	Reason  string `gorm:"column:reason;not null"`
	Details string `gorm:"column:details"`

	Status          string `gorm:"column:status;not null"`
	AssignedTo      string `gorm:"column:assigned_to"`
	ResolutionNotes string `gorm:"column:resolution_notes"`

	Version   int       `gorm:"column:version;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (TaskGORM) TableName() string {
	return "follow_up_tasks"
}

// ===========================
// Mapper Functions
// ===========================

// toDomain 將 GORM 模型轉換為 Domain 聚合
func toDomain(g *TaskGORM) (*followup.Task, error) {
	taskID, err := followup.TaskIDFromString(g.TaskID)
	if err != nil {
		return nil, err
	}

	customerID, err := customer.CustomerIDFromString(g.CustomerID)
	if err != nil {
		return nil, err
	}

	return followup.ReconstructTask(
		taskID,
		customerID,
		g.CustomerName,
		g.Reason,
		g.Details,
		followup.TaskStatus(g.Status),
		g.AssignedTo,
		g.ResolutionNotes,
		g.CreatedAt,
		g.UpdatedAt,
		g.Version,
	)
}

// toGORM 將 Domain 聚合轉換為 GORM 模型
func toGORM(task *followup.Task) *TaskGORM {
	return &TaskGORM{
		TaskID:          task.TaskID().String(),
		CustomerID:      task.CustomerID().String(),
		CustomerName:    task.CustomerName(),
		Reason:          task.Reason(),
		Details:         task.Details(),
		Status:          string(task.Status()),
		AssignedTo:      task.AssignedTo(),
		ResolutionNotes: task.ResolutionNotes(),
		Version:         task.Version(),
		CreatedAt:       task.CreatedAt(),
		UpdatedAt:       task.UpdatedAt(),
	}
}
