package followup

import (
	"time"

	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
)

// ===========================
// TaskID 類型定義
// ===========================

// TaskMarker 是 TaskID 的標記類型
type TaskMarker struct{}

// TaskID 跟進任務的唯一標識符
type TaskID = shared.EntityID[TaskMarker]

// NewTaskID 生成新的任務 ID（UUID v4）
func NewTaskID() TaskID {
	return shared.NewEntityID[TaskMarker]()
}

// TaskIDFromString 從字串解析任務 ID
func TaskIDFromString(s string) (TaskID, error) {
	return shared.EntityIDFromString[TaskMarker](s, ErrInvalidTaskID)
}

// ===========================
// TaskStatus 任務狀態
// ===========================

// TaskStatus 跟進任務狀態
type TaskStatus string

// 任務狀態常量
const (
	TaskStatusPending TaskStatus = "Pending"
	TaskStatusDone    TaskStatus = "Done"
)

// ===========================
// Task 聚合根
// ===========================

// Task 購後跟進任務聚合根
//
// 聚合邊界：
// - 任務基本信息（關聯客戶、原因、詳情）
// - 處理狀態（Pending → Done，單向）
// - 指派與結案備註
//
// 不變量（Invariants）：
// 1. Reason 不能為空
// 2. 狀態只能從 Pending 轉為 Done（不可逆、不可重複完成）
// 3. CreatedAt 不可變更
type Task struct {
	// 識別欄位
	taskID       TaskID
	customerID   customer.CustomerID
	customerName string

	// 任務內容
	reason  string
	details string

	// 處理狀態
	status          TaskStatus
	assignedTo      string
	resolutionNotes string

	// 審計欄位
	createdAt time.Time
	updatedAt time.Time
	version   int // 樂觀鎖版本號
}

// NewTask 創建新的跟進任務
//
// 業務規則：
// 1. Reason 不能為空
// 2. 初始狀態為 Pending
// 3. 初始版本為 1
func NewTask(
	customerID customer.CustomerID,
	customerName string,
	reason string,
	details string,
) (*Task, error) {
	if customerID.IsEmpty() {
		return nil, ErrInvalidTask.WithContext(
			"field", "customerID",
			"reason", "customerID cannot be empty",
		)
	}
	if reason == "" {
		return nil, ErrInvalidTask.WithContext(
			"field", "reason",
			"reason", "reason cannot be empty",
		)
	}

	now := time.Now()

	return &Task{
		taskID:       NewTaskID(),
		customerID:   customerID,
		customerName: customerName,
		reason:       reason,
		details:      details,
		status:       TaskStatusPending,
		createdAt:    now,
		updatedAt:    now,
		version:      1,
	}, nil
}

// ReconstructTask 從持久化存儲重建任務聚合
//
// 使用場景：Repository 從資料庫載入任務，不執行完整業務驗證
func ReconstructTask(
	taskID TaskID,
	customerID customer.CustomerID,
	customerName string,
	reason string,
	details string,
	status TaskStatus,
	assignedTo string,
	resolutionNotes string,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Task, error) {
	if reason == "" {
		return nil, ErrInvalidTask.WithContext(
			"field", "reason",
			"reason", "reason cannot be empty",
		)
	}

	return &Task{
		taskID:          taskID,
		customerID:      customerID,
		customerName:    customerName,
		reason:          reason,
		details:         details,
		status:          status,
		assignedTo:      assignedTo,
		resolutionNotes: resolutionNotes,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		version:         version,
	}, nil
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// Assign 指派任務給處理人員
func (t *Task) Assign(assignee string) {
	t.assignedTo = assignee
	t.updatedAt = time.Now()
}

// Complete 完成任務
//
// 業務規則：
// 1. 只能完成 Pending 狀態的任務
// 2. 重複完成返回 ErrTaskAlreadyDone
func (t *Task) Complete(resolutionNotes string) error {
	if t.status == TaskStatusDone {
		return ErrTaskAlreadyDone.WithContext(
			"task_id", t.taskID.String(),
		)
	}

	t.status = TaskStatusDone
	t.resolutionNotes = resolutionNotes
	t.updatedAt = time.Now()

	return nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// TaskID 獲取任務 ID
func (t *Task) TaskID() TaskID {
	return t.taskID
}

// CustomerID 獲取關聯客戶 ID
func (t *Task) CustomerID() customer.CustomerID {
	return t.customerID
}

// CustomerName 獲取關聯客戶姓名
func (t *Task) CustomerName() string {
	return t.customerName
}

// Reason 獲取任務原因
func (t *Task) Reason() string {
	return t.reason
}

// Details 獲取任務詳情
func (t *Task) Details() string {
	return t.details
}

// Status 獲取任務狀態
func (t *Task) Status() TaskStatus {
	return t.status
}

// IsDone 是否已完成
func (t *Task) IsDone() bool {
	return t.status == TaskStatusDone
}

// AssignedTo 獲取指派人員
func (t *Task) AssignedTo() string {
	return t.assignedTo
}

// ResolutionNotes 獲取結案備註
func (t *Task) ResolutionNotes() string {
	return t.resolutionNotes
}

// CreatedAt 獲取創建時間
func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt 獲取最後更新時間
func (t *Task) UpdatedAt() time.Time {
	return t.updatedAt
}

// Version 獲取樂觀鎖版本號
func (t *Task) Version() int {
	return t.version
}
