package customer

import "github.com/retailops/retail_crm/src/internal/domain/shared"

// ===========================
// Customer Repository 介面
// ===========================

// CustomerRepository 客戶倉儲介面（核心操作）
//
// 設計原則：
// 1. 依賴倒置原則（DIP）：Domain Layer 定義介面，Infrastructure Layer 實作
// 2. 聚合整體持久化：每次寫入替換整個聚合（含歷史記錄與印象）
// 3. 樂觀並發：Update 帶 expectedVersion，版本不匹配時返回 ErrVersionConflict，
//    由調用者決定重新讀取重試或放棄（此核心不做自動重試）
// 4. 事務支持：使用 TransactionContext 封裝事務，避免基礎設施洩漏
//
// 事務使用範例：
//   txManager.InTransaction(func(ctx shared.TransactionContext) error {
//       c, _ := repo.FindByID(ctx, customerID)
//       entry, _ := c.GrantPoints(amount, reason)
//       return repo.Update(ctx, c, c.Version())
//   })
type CustomerRepository interface {
	// Save 保存新客戶
	// 前置條件：客戶不存在（PhoneNumber 唯一）
	// 錯誤：ErrCustomerAlreadyExists（如果手機號碼已註冊）
	Save(ctx shared.TransactionContext, c *Customer) error

	// FindByID 根據客戶 ID 查找客戶（含完整歷史記錄與印象）
	// 返回：找到的客戶，或 ErrCustomerNotFound
	FindByID(ctx shared.TransactionContext, customerID CustomerID) (*Customer, error)

	// FindByPhone 根據手機號碼查找客戶
	// 業務規則：一個手機號碼對應一個客戶（unique index 保證）
	// 返回：找到的客戶，或 ErrCustomerNotFound
	FindByPhone(ctx shared.TransactionContext, phone PhoneNumber) (*Customer, error)

	// Update 更新客戶聚合（整體替換，含歷史記錄與印象）
	//
	// 樂觀並發：
	// - 只在存儲中的版本等於 expectedVersion 時寫入，並將版本遞增為 expectedVersion+1
	// - 版本不匹配 → ErrVersionConflict（與一般持久化錯誤區分）
	//
	// 錯誤：ErrCustomerNotFound、ErrVersionConflict
	Update(ctx shared.TransactionContext, c *Customer, expectedVersion int) error

	// Delete 刪除客戶聚合（唯一銷毀路徑）
	// 後置條件：歷史記錄與印象一併刪除
	// 錯誤：ErrCustomerNotFound
	Delete(ctx shared.TransactionContext, customerID CustomerID) error
}

// ===========================
// Repository 錯誤定義
// ===========================

// Repository 相關錯誤代碼
const (
	ErrCodeCustomerNotFound      ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrCodeCustomerAlreadyExists ErrorCode = "CUSTOMER_ALREADY_EXISTS"
	ErrCodeVersionConflict       ErrorCode = "VERSION_CONFLICT"
	ErrCodeRepositoryError       ErrorCode = "REPOSITORY_ERROR"
)

// Repository 錯誤實例
var (
	// ErrCustomerNotFound 客戶不存在
	ErrCustomerNotFound = &DomainError{
		Code:    ErrCodeCustomerNotFound,
		Message: "客戶不存在",
	}

	// ErrCustomerAlreadyExists 客戶已存在
	ErrCustomerAlreadyExists = &DomainError{
		Code:    ErrCodeCustomerAlreadyExists,
		Message: "客戶已存在（手機號碼重複）",
	}

	// ErrVersionConflict 樂觀鎖版本衝突
	//
	// 觸發條件：兩個操作對同一客戶快照競爭寫入，後寫者版本過期
	// 處理建議：調用者重新讀取最新快照後重試，或放棄本次操作
	ErrVersionConflict = &DomainError{
		Code:    ErrCodeVersionConflict,
		Message: "版本衝突（客戶已被其他操作更新）",
	}

	// ErrRepositoryError 倉儲操作錯誤（通用）
	ErrRepositoryError = &DomainError{
		Code:    ErrCodeRepositoryError,
		Message: "倉儲操作失敗",
	}
)
