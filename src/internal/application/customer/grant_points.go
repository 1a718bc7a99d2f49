package customer

import (
	"fmt"

	"github.com/retailops/retail_crm/src/internal/application/notify"
	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
)

// ===========================
// GrantPoints Use Case
// ===========================

// GrantPointsCommand 手動授予積分指令
type GrantPointsCommand struct {
	CustomerID string // 客戶 ID（UUID 字串）
	Amount     int    // 授予的積分數量（必須 > 0）
	Reason     string // 授予原因（必填）
}

// GrantPointsResult 授予積分結果
//
// 輸出：
// - 更新後的帳本快照（Points / TotalPointsEarned / TotalPointsUsed）
// - ActionDetail: 人類可讀的操作描述，交給外部更新 API 記錄
// - Notification: 交給外部通知協作者顯示
type GrantPointsResult struct {
	CustomerID        string
	Points            int
	TotalPointsEarned int
	TotalPointsUsed   int
	ActionDetail      string
	Notification      notify.Notification
}

// GrantPointsUseCase 手動授予積分 Use Case
//
// 職責：
// 1. 驗證輸入（CustomerID 格式、積分數量）
// 2. 讀取客戶快照、執行帳本命令（業務邏輯在 Domain Layer）
// 3. 以樂觀鎖版本持久化更新（在事務中）
//
// 並發處理：
// - 版本不匹配時返回 ErrVersionConflict，由調用者決定重讀重試或放棄
// - 此核心不做自動重試（每次調用代表一次人工操作）
type GrantPointsUseCase struct {
	customerRepo customer.CustomerRepository
	txManager    shared.TransactionManager
}

// NewGrantPointsUseCase 創建 Use Case 實例
func NewGrantPointsUseCase(
	repo customer.CustomerRepository,
	txManager shared.TransactionManager,
) *GrantPointsUseCase {
	return &GrantPointsUseCase{
		customerRepo: repo,
		txManager:    txManager,
	}
}

// Execute 執行授予積分
//
// 錯誤處理：
// - ErrInvalidCustomerID: CustomerID 格式無效
// - ErrValidation: 積分數量或原因無效（不產生任何變更）
// - ErrCustomerNotFound: 客戶不存在
// - ErrVersionConflict: 併發寫入衝突
func (uc *GrantPointsUseCase) Execute(cmd GrantPointsCommand) (*GrantPointsResult, error) {
	// 1. 驗證並轉換輸入
	customerID, err := customer.CustomerIDFromString(cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse customer ID: %w", err)
	}

	amount, err := customer.NewPointsAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	// 2. 在事務中執行業務邏輯
	var result *GrantPointsResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		// 2a. 讀取客戶快照
		c, err := uc.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		// 2b. 執行帳本命令（驗證與狀態變更在聚合內）
		entry, err := c.GrantPoints(amount, cmd.Reason)
		if err != nil {
			return err
		}

		// 2c. 以樂觀鎖版本持久化
		if err := uc.customerRepo.Update(ctx, c, c.Version()); err != nil {
			return err
		}

		// 2d. 構建結果
		result = &GrantPointsResult{
			CustomerID:        c.CustomerID().String(),
			Points:            c.Points().Value(),
			TotalPointsEarned: c.TotalPointsEarned().Value(),
			TotalPointsUsed:   c.TotalPointsUsed().Value(),
			ActionDetail:      entry.Details(),
			Notification: notify.Success(
				fmt.Sprintf("تم إضافة %d نقطة بنجاح.", amount.Value()),
			),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
