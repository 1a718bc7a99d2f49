package customer

import (
	"fmt"
	"time"

	"github.com/retailops/retail_crm/src/internal/application/notify"
	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
)

// ===========================
// RegisterCustomer Use Case
// ===========================

// RegisterCustomerCommand 註冊客戶指令（Input DTO）
//
// 設計原則：
// - 只包含外部輸入數據（不包含內部邏輯）
// - 使用原始類型（string），由 Use Case 轉換為 Value Object
type RegisterCustomerCommand struct {
	Name         string // 客戶姓名（必填）
	Phone        string // 手機號碼（11位數字，以 01 開頭）
	Email        string // 電子郵件（可選）
	Governorate  string // 省份（必填）
	CustomerType string // 客戶類型（Normal / Corporate）
}

// RegisterCustomerResult 註冊客戶結果（Output DTO）
type RegisterCustomerResult struct {
	CustomerID   string
	Name         string
	Phone        string
	JoinDate     time.Time
	Notification notify.Notification
}

// RegisterCustomerUseCase 註冊客戶 Use Case
//
// 職責：
// 1. 驗證輸入（轉換為 Value Object）
// 2. 創建 Customer 聚合（積分為 0 的初始帳本）
// 3. 在事務中保存到 Repository
//
// 並發安全：
// - 不使用 check-then-insert 模式（避免競爭條件）
// - 依賴資料庫手機號碼 UNIQUE 約束保證唯一性
type RegisterCustomerUseCase struct {
	customerRepo customer.CustomerRepository
	txManager    shared.TransactionManager
}

// NewRegisterCustomerUseCase 創建 Use Case 實例
func NewRegisterCustomerUseCase(
	repo customer.CustomerRepository,
	txManager shared.TransactionManager,
) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{
		customerRepo: repo,
		txManager:    txManager,
	}
}

// Execute 執行註冊客戶
//
// 錯誤處理：
// - 輸入驗證失敗 → Domain 錯誤（ErrValidation / ErrInvalidPhoneNumber）
// - 手機號碼已註冊 → customer.ErrCustomerAlreadyExists（由資料庫唯一約束保證）
func (uc *RegisterCustomerUseCase) Execute(cmd RegisterCustomerCommand) (*RegisterCustomerResult, error) {
	// Step 1: 驗證輸入並轉換為 Value Object
	phone, err := customer.NewPhoneNumber(cmd.Phone)
	if err != nil {
		return nil, err
	}

	customerType, err := customer.ParseCustomerType(cmd.CustomerType)
	if err != nil {
		return nil, err
	}

	// Step 2: 創建 Customer 聚合（業務邏輯在 Domain Layer）
	newCustomer, err := customer.NewCustomer(cmd.Name, phone, cmd.Governorate, customerType)
	if err != nil {
		return nil, err
	}

	if cmd.Email != "" {
		if err := newCustomer.UpdateContact(cmd.Name, cmd.Email); err != nil {
			return nil, err
		}
	}

	// Step 3: 在事務中保存到 Repository
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		return uc.customerRepo.Save(ctx, newCustomer)
	})
	if err != nil {
		return nil, err
	}

	// Step 4: 返回結果（DTO 轉換）
	return &RegisterCustomerResult{
		CustomerID:   newCustomer.CustomerID().String(),
		Name:         newCustomer.Name(),
		Phone:        newCustomer.Phone().String(),
		JoinDate:     newCustomer.JoinDate(),
		Notification: notify.Success(fmt.Sprintf("تم تسجيل العميل %s بنجاح.", newCustomer.Name())),
	}, nil
}
