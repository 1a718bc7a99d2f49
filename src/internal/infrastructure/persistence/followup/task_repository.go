package followup

import (
	"errors"
	"time"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/followup"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
	"gorm.io/gorm"
)

// gormTransactionContext GORM 事務上下文
type gormTransactionContext interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// ===========================
// TaskRepositoryImpl
// ===========================

// TaskRepositoryImpl 跟進任務倉儲實現（GORM）
type TaskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository 創建新的任務倉儲實例
func NewTaskRepository(db *gorm.DB) followup.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

// Save 保存新任務
func (r *TaskRepositoryImpl) Save(ctx shared.TransactionContext, task *followup.Task) error {
	db := r.getDB(ctx)
	return db.Create(toGORM(task)).Error
}

// FindByID 根據任務 ID 查找任務
func (r *TaskRepositoryImpl) FindByID(ctx shared.TransactionContext, taskID followup.TaskID) (*followup.Task, error) {
	db := r.getDB(ctx)

	var gormModel TaskGORM
	result := db.Where("task_id = ?", taskID.String()).First(&gormModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, followup.ErrTaskNotFound.WithContext(
				"task_id", taskID.String(),
			)
		}
		return nil, result.Error
	}

	return toDomain(&gormModel)
}

// FindPendingByCustomerID 查找指定客戶的所有待處理任務
//
// 排序：創建時間升序（最早的任務優先處理）
func (r *TaskRepositoryImpl) FindPendingByCustomerID(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*followup.Task, error) {
	db := r.getDB(ctx)

	var gormModels []TaskGORM
	result := db.
		Where("customer_id = ? AND status = ?", customerID.String(), string(followup.TaskStatusPending)).
		Order("created_at ASC").
		Find(&gormModels)
	if result.Error != nil {
		return nil, result.Error
	}

	tasks := make([]*followup.Task, 0, len(gormModels))
	for i := range gormModels {
		task, err := toDomain(&gormModels[i])
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Update 更新任務狀態
//
// 注意：使用 map 更新以正確寫入零值欄位
func (r *TaskRepositoryImpl) Update(ctx shared.TransactionContext, task *followup.Task) error {
	db := r.getDB(ctx)
	gormModel := toGORM(task)

	result := db.Model(&TaskGORM{}).
		Where("task_id = ?", gormModel.TaskID).
		Updates(map[string]interface{}{
			"status":           gormModel.Status,
			"assigned_to":      gormModel.AssignedTo,
			"resolution_notes": gormModel.ResolutionNotes,
			"version":          gormModel.Version + 1,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return followup.ErrTaskNotFound.WithContext(
			"task_id", gormModel.TaskID,
		)
	}

	return nil
}

// getDB 獲取 GORM DB 實例
//
// 行為：
// - ctx != nil: 使用事務中的 DB
// - ctx == nil: 使用預設 DB（auto-commit 模式）
func (r *TaskRepositoryImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(gormTransactionContext); ok {
			return txCtx.GetDB()
		}
	}
	return r.db
}
