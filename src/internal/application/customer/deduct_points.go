package customer

import (
	"fmt"

	"github.com/retailops/retail_crm/src/internal/application/notify"
	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
)

// ===========================
// DeductPoints Use Case
// ===========================

// DeductPointsCommand 手動扣減積分指令
type DeductPointsCommand struct {
	CustomerID string // 客戶 ID（UUID 字串）
	Amount     int    // 扣減的積分數量（必須 > 0 且 <= 可用餘額）
	Reason     string // 扣減原因（必填）
}

// DeductPointsResult 扣減積分結果
type DeductPointsResult struct {
	CustomerID        string
	Points            int
	TotalPointsEarned int
	TotalPointsUsed   int
	ActionDetail      string
	Notification      notify.Notification
}

// DeductPointsUseCase 手動扣減積分 Use Case
//
// 失敗語義：
// - 餘額不足（ErrInsufficientPoints）或輸入無效（ErrValidation）時，
//   客戶的任何字段都不變更（全有或全無，由聚合保證）
type DeductPointsUseCase struct {
	customerRepo customer.CustomerRepository
	txManager    shared.TransactionManager
}

// NewDeductPointsUseCase 創建 Use Case 實例
func NewDeductPointsUseCase(
	repo customer.CustomerRepository,
	txManager shared.TransactionManager,
) *DeductPointsUseCase {
	return &DeductPointsUseCase{
		customerRepo: repo,
		txManager:    txManager,
	}
}

// Execute 執行扣減積分
//
// 錯誤處理：
// - ErrInvalidCustomerID: CustomerID 格式無效
// - ErrValidation: 積分數量或原因無效
// - ErrInsufficientPoints: 可用餘額不足
// - ErrCustomerNotFound: 客戶不存在
// - ErrVersionConflict: 併發寫入衝突
func (uc *DeductPointsUseCase) Execute(cmd DeductPointsCommand) (*DeductPointsResult, error) {
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
	var result *DeductPointsResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		// 2a. 讀取客戶快照
		c, err := uc.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		// 2b. 執行帳本命令
		entry, err := c.DeductPoints(amount, cmd.Reason)
		if err != nil {
			return err
		}

		// 2c. 以樂觀鎖版本持久化
		if err := uc.customerRepo.Update(ctx, c, c.Version()); err != nil {
			return err
		}

		// 2d. 構建結果
		result = &DeductPointsResult{
			CustomerID:        c.CustomerID().String(),
			Points:            c.Points().Value(),
			TotalPointsEarned: c.TotalPointsEarned().Value(),
			TotalPointsUsed:   c.TotalPointsUsed().Value(),
			ActionDetail:      entry.Details(),
			Notification: notify.Success(
				fmt.Sprintf("تم خصم %d نقطة بنجاح.", amount.Value()),
			),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
