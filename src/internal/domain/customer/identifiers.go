package customer

import (
	"github.com/retailops/retail_crm/src/internal/domain/shared"
)

// ===========================
// 實體 ID 類型定義
// ===========================

// 設計原則：使用泛型 EntityID[T] 消除重複代碼
//
// 類型安全保證：
// - CustomerID 與其他 bounded context 的 ID 是不同類型（編譯器強制檢查）
// - 不能將 CustomerID 賦值給 followup.TaskID 變量

// CustomerMarker 是 CustomerID 的標記類型
type CustomerMarker struct{}

// CustomerID 客戶的唯一標識符
//
// 實現：EntityID[CustomerMarker] 的類型別名
// 使用：id := NewCustomerID() 或 CustomerIDFromString(s)
type CustomerID = shared.EntityID[CustomerMarker]

// NewCustomerID 生成新的客戶 ID（UUID v4）
//
// 使用場景：客戶註冊時
func NewCustomerID() CustomerID {
	return shared.NewEntityID[CustomerMarker]()
}

// CustomerIDFromString 從字串解析客戶 ID
//
// 返回：
//   CustomerID - 解析成功的 ID
//   error - 解析失敗（返回 ErrInvalidCustomerID）
//
// 使用場景：
// - 從數據庫讀取 ID
// - 從外部請求解析 ID
func CustomerIDFromString(s string) (CustomerID, error) {
	return shared.EntityIDFromString[CustomerMarker](s, ErrInvalidCustomerID)
}
