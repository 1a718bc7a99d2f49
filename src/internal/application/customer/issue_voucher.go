package customer

import (
	"fmt"
	"time"

	"github.com/retailops/retail_crm/src/internal/application/notify"
	"github.com/retailops/retail_crm/src/internal/domain/customer"
	"github.com/retailops/retail_crm/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// IssueVoucher Use Case
// ===========================

// IssueVoucherCommand 發行兌換券指令
//
// PointValue 由調用者從 SystemSettings 提供（每 1 點兌換的金額），
// 此核心不持有任何設定狀態
type IssueVoucherCommand struct {
	CustomerID     string          // 客戶 ID（UUID 字串）
	PointsToRedeem int             // 兌換的積分數量
	PointValue     decimal.Decimal // 積分兌換率（currency-per-point）
}

// VoucherDTO 兌換券載荷（顯示／列印用）
//
// 日期為預先格式化的字串（顯示用途，非機器可讀時間戳）
type VoucherDTO struct {
	CustomerName string
	Amount       decimal.Decimal
	Code         string
	IssueDate    string
	ExpiryDate   string
}

// IssueVoucherResult 發行兌換券結果
type IssueVoucherResult struct {
	Voucher           VoucherDTO
	CustomerID        string
	Points            int
	TotalPointsEarned int
	TotalPointsUsed   int
	ActionDetail      string
	Notification      notify.Notification
}

// IssueVoucherUseCase 發行兌換券 Use Case
//
// 職責：
// 1. 驗證輸入（CustomerID、積分數量、兌換率）
// 2. 執行兌換（帳本扣減 + 兌換券生成，業務邏輯在 Domain Layer）
// 3. 以樂觀鎖版本持久化更新
//
// 狀態機說明：每次發行是單一原子轉移，沒有「待定券」狀態；
// 券的核銷追蹤（若存在）屬於外部系統
type IssueVoucherUseCase struct {
	customerRepo customer.CustomerRepository
	txManager    shared.TransactionManager
}

// NewIssueVoucherUseCase 創建 Use Case 實例
func NewIssueVoucherUseCase(
	repo customer.CustomerRepository,
	txManager shared.TransactionManager,
) *IssueVoucherUseCase {
	return &IssueVoucherUseCase{
		customerRepo: repo,
		txManager:    txManager,
	}
}

// Execute 執行發行兌換券
//
// 錯誤處理：
// - ErrInvalidCustomerID: CustomerID 格式無效
// - ErrInvalidPointValue: 兌換率無效
// - ErrInvalidRedemption: 積分數量為 0 或超出餘額（不追加歷史條目）
// - ErrCustomerNotFound: 客戶不存在
// - ErrVersionConflict: 併發寫入衝突
func (uc *IssueVoucherUseCase) Execute(cmd IssueVoucherCommand) (*IssueVoucherResult, error) {
	// 1. 驗證並轉換輸入
	customerID, err := customer.CustomerIDFromString(cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse customer ID: %w", err)
	}

	pointsToRedeem, err := customer.NewPointsAmount(cmd.PointsToRedeem)
	if err != nil {
		// 負數積分在兌換語境下屬於無效兌換
		return nil, customer.ErrInvalidRedemption.WithContext(
			"requested", cmd.PointsToRedeem,
		)
	}

	pointValue, err := customer.NewPointValue(cmd.PointValue)
	if err != nil {
		return nil, err
	}

	// 2. 在事務中執行業務邏輯
	var result *IssueVoucherResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		// 2a. 讀取客戶快照
		c, err := uc.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		// 2b. 執行兌換命令
		voucher, entry, err := c.RedeemPoints(pointsToRedeem, pointValue, time.Now())
		if err != nil {
			return err
		}

		// 2c. 以樂觀鎖版本持久化
		if err := uc.customerRepo.Update(ctx, c, c.Version()); err != nil {
			return err
		}

		// 2d. 構建結果
		result = &IssueVoucherResult{
			Voucher: VoucherDTO{
				CustomerName: voucher.CustomerName,
				Amount:       voucher.Amount,
				Code:         voucher.Code,
				IssueDate:    voucher.IssueDate,
				ExpiryDate:   voucher.ExpiryDate,
			},
			CustomerID:        c.CustomerID().String(),
			Points:            c.Points().Value(),
			TotalPointsEarned: c.TotalPointsEarned().Value(),
			TotalPointsUsed:   c.TotalPointsUsed().Value(),
			ActionDetail:      entry.Details(),
			Notification: notify.Success(
				fmt.Sprintf("تم إصدار قسيمة بقيمة %s جنيه.", voucher.Amount.String()),
			),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
